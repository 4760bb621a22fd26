// Package host defines the narrow platform contracts a capability plugin
// consumes. The real chat/agent host implements these interfaces; the
// demohost package provides an in-memory implementation for the CLI and tests.
package host

import (
	"context"
	"errors"
	"log/slog"
)

var (
	// ErrProviderNotFound is returned when a channel provider id is unknown.
	ErrProviderNotFound = errors.New("channel provider not found")
	// ErrCommandExists is returned when a command name is already registered.
	ErrCommandExists = errors.New("command already registered")
	// ErrCommandNotFound is returned when unregistering an unknown command.
	ErrCommandNotFound = errors.New("command not registered")
)

// Command describes a slash command registered on a channel provider.
type Command struct {
	// Name is the command keyword without the leading slash.
	Name string
	// Description is a one-line summary shown in command listings.
	Description string
	// Usage is the human-readable invocation synopsis.
	Usage string
	// Handler is invoked for each command invocation.
	Handler func(ctx context.Context, inv CommandInvocation) error
}

// CommandInvocation carries a single command invocation from a channel.
type CommandInvocation struct {
	// ProviderID identifies the channel provider that received the command.
	ProviderID string
	// ChannelID identifies the channel the command was sent in.
	ChannelID string
	// UserID identifies the invoking user.
	UserID string
	// Args are the whitespace-split tokens following the command keyword.
	Args []string
	// Reply sends a message back to the invoking channel.
	Reply func(text string) error
}

// ChannelProvider is a chat surface on which commands can be registered.
type ChannelProvider interface {
	// ID returns the stable provider identifier.
	ID() string
	// Name returns the human-readable provider name.
	Name() string
	// RegisterCommand registers a slash command on this provider.
	RegisterCommand(cmd Command) error
	// UnregisterCommand removes a previously registered command by name.
	UnregisterCommand(name string) error
	// SendMessage delivers a message to a channel on this provider.
	SendMessage(ctx context.Context, channelID string, text string) error
}

// ConfigField describes one field of a plugin configuration schema.
type ConfigField struct {
	// Key is the setting name within the plugin's config namespace.
	Key string
	// Title is the label shown in the host's settings UI.
	Title string
	// Type is the field type (string, enum, secret).
	Type string
	// Enum lists the allowed values for enum fields.
	Enum []string
	// Default is applied when the setting is absent.
	Default string
	// Secret marks values the host must store and render redacted.
	Secret bool
}

// ConfigSchema declares a plugin's configuration surface to the host.
type ConfigSchema struct {
	// ID is the schema identifier, conventionally the config namespace.
	ID string
	// Title is the settings section heading.
	Title string
	// Fields enumerates the declared settings.
	Fields []ConfigField
}

// CapabilityDescriptor announces a capability this plugin serves requests for.
type CapabilityDescriptor struct {
	// ID is the unique descriptor identifier.
	ID string
	// Capability names the capability routed through the broker.
	Capability string
	// DisplayName is shown in the host's capability listings.
	DisplayName string
}

// Context is the host handle a plugin holds between init and shutdown.
type Context interface {
	// ChannelProviders returns the currently known channel providers.
	ChannelProviders() []ChannelProvider
	// Inject submits a request through the host's generic injection channel.
	// The response is an opaque string whose shape depends on the kind.
	Inject(ctx context.Context, req InjectRequest) (string, error)
	// Config returns the read-only settings stored under a namespace.
	// Absent namespaces yield an empty map.
	Config(namespace string) map[string]string
	// RegisterConfigSchema declares a configuration schema to the host.
	RegisterConfigSchema(schema ConfigSchema) error
	// UnregisterConfigSchema removes a declared configuration schema.
	UnregisterConfigSchema(id string) error
	// RegisterCapability announces a capability descriptor.
	RegisterCapability(desc CapabilityDescriptor) error
	// UnregisterCapability removes a capability descriptor.
	UnregisterCapability(id string) error
	// RegisterTools exposes agent tools through the host's tool-serving layer.
	RegisterTools(tools []Tool) error
	// UnregisterTools removes agent tools by name.
	UnregisterTools(names []string) error
	// Events returns the host event bus.
	Events() EventBus
	// Logger returns the operator-facing structured logger.
	Logger() *slog.Logger
}
