// Package demohost provides an in-memory host.Context implementation used by
// the CLI demo mode and by tests. The broker and confirmation endpoints are
// scriptable so callers can stand in for the real capability socket layer.
package demohost

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/videoforge/videoforge/internal/host"
)

// BrokerFunc answers capability injection requests.
type BrokerFunc func(ctx context.Context, req host.InjectRequest) (string, error)

// DemoHost is an in-memory chat/agent host.
type DemoHost struct {
	// mu guards all mutable registration state.
	mu sync.Mutex
	// providers holds the known channel providers in join order.
	providers []*MemoryChannel
	// config maps namespace to stored key/value settings.
	config map[string]map[string]string
	// schemas holds registered configuration schemas by id.
	schemas map[string]host.ConfigSchema
	// capabilities holds registered capability descriptors by id.
	capabilities map[string]host.CapabilityDescriptor
	// tools holds registered agent tools by name.
	tools map[string]host.Tool
	// toolOrder preserves tool registration order for deterministic listings.
	toolOrder []string
	// bus delivers host events to plugin subscribers.
	bus *Bus
	// logger is the operator-facing structured logger.
	logger *slog.Logger
	// credits is the simulated hosted-credit balance consumed by the broker.
	credits int

	// Broker answers capability requests. Defaults to the built-in simulator.
	Broker BrokerFunc
	// Confirm answers confirmation requests. Defaults to replying "yes".
	Confirm BrokerFunc
}

// Options configures a DemoHost.
type Options struct {
	// Logger is the operator logger. A disabled logger is used when nil.
	Logger *slog.Logger
	// Config seeds the stored settings, keyed by namespace.
	Config map[string]map[string]string
	// Credits is the simulated credit balance. Negative means unlimited.
	Credits int
}

// New constructs a DemoHost with no channel providers.
func New(opts Options) *DemoHost {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	config := make(map[string]map[string]string)
	for namespace, values := range opts.Config {
		copied := make(map[string]string, len(values))
		for key, value := range values {
			copied[key] = value
		}
		config[namespace] = copied
	}
	demo := &DemoHost{
		config:       config,
		schemas:      make(map[string]host.ConfigSchema),
		capabilities: make(map[string]host.CapabilityDescriptor),
		tools:        make(map[string]host.Tool),
		bus:          NewBus(),
		logger:       logger,
		credits:      opts.Credits,
	}
	demo.Broker = demo.simulateBroker
	demo.Confirm = func(ctx context.Context, req host.InjectRequest) (string, error) {
		return "yes", nil
	}
	return demo
}

// AddProvider registers a channel provider and publishes a join event.
func (d *DemoHost) AddProvider(provider *MemoryChannel) {
	d.mu.Lock()
	d.providers = append(d.providers, provider)
	d.mu.Unlock()
	// Late joiners are announced so plugins can register commands on them.
	d.bus.Publish(host.Event{Kind: host.EventChannelJoined, Provider: provider})
}

// ChannelProviders returns the known channel providers.
func (d *DemoHost) ChannelProviders() []host.ChannelProvider {
	d.mu.Lock()
	defer d.mu.Unlock()
	providers := make([]host.ChannelProvider, 0, len(d.providers))
	for _, provider := range d.providers {
		providers = append(providers, provider)
	}
	return providers
}

// Inject routes a request to the scripted broker or confirmation endpoint.
func (d *DemoHost) Inject(ctx context.Context, req host.InjectRequest) (string, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	switch req.Kind {
	case host.InjectCapability:
		return d.Broker(ctx, req)
	case host.InjectConfirm:
		return d.Confirm(ctx, req)
	default:
		return "", fmt.Errorf("unsupported inject kind: %s", req.Kind)
	}
}

// Config returns the settings stored under a namespace.
func (d *DemoHost) Config(namespace string) map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	stored, ok := d.config[namespace]
	if !ok {
		return map[string]string{}
	}
	copied := make(map[string]string, len(stored))
	for key, value := range stored {
		copied[key] = value
	}
	return copied
}

// SetConfig stores one setting under a namespace.
func (d *DemoHost) SetConfig(namespace string, key string, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	stored, ok := d.config[namespace]
	if !ok {
		stored = make(map[string]string)
		d.config[namespace] = stored
	}
	stored[key] = value
}

// RegisterConfigSchema declares a configuration schema.
func (d *DemoHost) RegisterConfigSchema(schema host.ConfigSchema) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.schemas[schema.ID]; exists {
		return fmt.Errorf("config schema already registered: %s", schema.ID)
	}
	d.schemas[schema.ID] = schema
	return nil
}

// UnregisterConfigSchema removes a declared configuration schema.
func (d *DemoHost) UnregisterConfigSchema(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.schemas[id]; !exists {
		return fmt.Errorf("config schema not registered: %s", id)
	}
	delete(d.schemas, id)
	return nil
}

// ConfigSchema returns a registered schema and whether it exists.
func (d *DemoHost) ConfigSchema(id string) (host.ConfigSchema, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	schema, ok := d.schemas[id]
	return schema, ok
}

// RegisterCapability announces a capability descriptor.
func (d *DemoHost) RegisterCapability(desc host.CapabilityDescriptor) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.capabilities[desc.ID]; exists {
		return fmt.Errorf("capability already registered: %s", desc.ID)
	}
	d.capabilities[desc.ID] = desc
	return nil
}

// UnregisterCapability removes a capability descriptor.
func (d *DemoHost) UnregisterCapability(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.capabilities[id]; !exists {
		return fmt.Errorf("capability not registered: %s", id)
	}
	delete(d.capabilities, id)
	return nil
}

// HasCapability reports whether a capability descriptor is registered.
func (d *DemoHost) HasCapability(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.capabilities[id]
	return ok
}

// RegisterTools exposes agent tools through the host.
func (d *DemoHost) RegisterTools(tools []host.Tool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, tool := range tools {
		if tool == nil {
			continue
		}
		name := tool.Name()
		if name == "" {
			continue
		}
		if _, exists := d.tools[name]; exists {
			return fmt.Errorf("tool already registered: %s", name)
		}
		d.tools[name] = tool
		d.toolOrder = append(d.toolOrder, name)
	}
	return nil
}

// UnregisterTools removes agent tools by name.
func (d *DemoHost) UnregisterTools(names []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, name := range names {
		if _, exists := d.tools[name]; !exists {
			return fmt.Errorf("tool not registered: %s", name)
		}
		delete(d.tools, name)
	}
	remaining := d.toolOrder[:0]
	for _, name := range d.toolOrder {
		if _, exists := d.tools[name]; exists {
			remaining = append(remaining, name)
		}
	}
	d.toolOrder = remaining
	return nil
}

// ToolNames returns the registered tool names in registration order.
func (d *DemoHost) ToolNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, len(d.toolOrder))
	copy(names, d.toolOrder)
	return names
}

// ServeTool runs a registered tool and returns the wire envelope served to
// agent callers.
func (d *DemoHost) ServeTool(ctx context.Context, name string, input json.RawMessage) (string, error) {
	d.mu.Lock()
	tool, ok := d.tools[name]
	d.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("tool not registered: %s", name)
	}
	result, err := tool.Run(ctx, input)
	if err != nil {
		return "", err
	}
	return host.MarshalToolResult(result)
}

// Events returns the host event bus.
func (d *DemoHost) Events() host.EventBus {
	return d.bus
}

// Logger returns the operator-facing structured logger.
func (d *DemoHost) Logger() *slog.Logger {
	return d.logger
}

// brokerEnvelope mirrors the capability-request payload for the simulator.
type brokerEnvelope struct {
	Capability string `json:"capability"`
	Input      struct {
		Prompt string `json:"prompt"`
	} `json:"input"`
}

// simulateBroker stands in for the capability socket layer: it enforces the
// simulated credit balance and returns a fake asset URL.
func (d *DemoHost) simulateBroker(ctx context.Context, req host.InjectRequest) (string, error) {
	var envelope brokerEnvelope
	if err := json.Unmarshal([]byte(req.Payload), &envelope); err != nil {
		return `{"error":"malformed_request"}`, nil
	}
	if envelope.Capability == "" || envelope.Input.Prompt == "" {
		return `{"error":"malformed_request"}`, nil
	}

	d.mu.Lock()
	if d.credits == 0 {
		d.mu.Unlock()
		return `{"error":"insufficient_credits"}`, nil
	}
	if d.credits > 0 {
		d.credits--
	}
	d.mu.Unlock()

	return fmt.Sprintf(`{"url":"https://cdn.videoforge.dev/demo/%s.mp4"}`, req.ID), nil
}
