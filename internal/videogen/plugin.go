// Package videogen implements the video-generation capability plugin: a
// /video slash command for chat channels and an agent tool set, both thin
// adapters over the host's capability broker. The plugin performs no
// generation, billing, or network I/O itself.
package videogen

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/videoforge/videoforge/internal/host"
)

// capabilityID identifies this plugin's capability-provider descriptor.
const capabilityID = "videoforge"

// Options configures a Plugin instance.
type Options struct {
	// Logger receives operator-facing log records. A disabled logger is used
	// when nil; raw broker error identifiers only ever appear here.
	Logger *slog.Logger
}

// Plugin is one plugin instance. All registration state lives on the
// instance so multiple plugins can coexist in one process and tests can
// construct them independently.
type Plugin struct {
	// logger is the operator-facing structured logger.
	logger *slog.Logger
	// mu guards the lifecycle state below.
	mu sync.Mutex
	// hostCtx is the host handle, non-nil only between Init and Shutdown.
	hostCtx host.Context
	// unsubscribe cancels the late-join event subscription.
	unsubscribe func()
	// registered holds the providers the command is registered on, by id.
	registered map[string]host.ChannelProvider
}

// New constructs an uninitialized plugin.
func New(opts Options) *Plugin {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Plugin{logger: logger}
}

// Init registers the configuration schema, the capability descriptor, the
// agent tool set, and the slash command on every known channel provider,
// then subscribes for providers that join later. It must be called exactly
// once before any handler executes.
func (p *Plugin) Init(hostCtx host.Context) error {
	p.mu.Lock()
	if p.hostCtx != nil {
		p.mu.Unlock()
		return ErrAlreadyInitialized
	}
	p.hostCtx = hostCtx
	p.registered = make(map[string]host.ChannelProvider)
	p.mu.Unlock()

	if err := hostCtx.RegisterConfigSchema(configSchema()); err != nil {
		p.reset()
		return fmt.Errorf("register config schema: %w", err)
	}
	if err := hostCtx.RegisterCapability(host.CapabilityDescriptor{
		ID:          capabilityID,
		Capability:  capabilityName,
		DisplayName: "Video Generation",
	}); err != nil {
		_ = hostCtx.UnregisterConfigSchema(ConfigNamespace)
		p.reset()
		return fmt.Errorf("register capability: %w", err)
	}
	if err := hostCtx.RegisterTools(p.tools()); err != nil {
		_ = hostCtx.UnregisterCapability(capabilityID)
		_ = hostCtx.UnregisterConfigSchema(ConfigNamespace)
		p.reset()
		return fmt.Errorf("register tools: %w", err)
	}

	for _, provider := range hostCtx.ChannelProviders() {
		p.registerOn(provider)
	}

	unsubscribe := hostCtx.Events().Subscribe(host.EventChannelJoined, p.handleChannelJoined)
	p.mu.Lock()
	p.unsubscribe = unsubscribe
	p.mu.Unlock()

	p.logger.Info("video plugin initialized", "providers", p.registeredCount())
	return nil
}

// Shutdown unwinds everything Init registered. It is idempotent: calling it
// when already shut down, or never initialized, is a no-op.
func (p *Plugin) Shutdown() {
	p.mu.Lock()
	hostCtx := p.hostCtx
	unsubscribe := p.unsubscribe
	registered := p.registered
	p.hostCtx = nil
	p.unsubscribe = nil
	p.registered = nil
	p.mu.Unlock()

	if hostCtx == nil {
		return
	}
	if unsubscribe != nil {
		unsubscribe()
	}
	for _, provider := range registered {
		if err := provider.UnregisterCommand(commandName); err != nil {
			p.logger.Warn("unregister command", "provider", provider.ID(), "error", err)
		}
	}
	if err := hostCtx.UnregisterTools(toolNames()); err != nil {
		p.logger.Warn("unregister tools", "error", err)
	}
	if err := hostCtx.UnregisterCapability(capabilityID); err != nil {
		p.logger.Warn("unregister capability", "error", err)
	}
	if err := hostCtx.UnregisterConfigSchema(ConfigNamespace); err != nil {
		p.logger.Warn("unregister config schema", "error", err)
	}
	p.logger.Info("video plugin shut down")
}

// context returns the host handle, or nil once shutdown has cleared it.
// Handlers check this and no-op after shutdown.
func (p *Plugin) context() host.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hostCtx
}

// reset clears lifecycle state after a failed Init.
func (p *Plugin) reset() {
	p.mu.Lock()
	p.hostCtx = nil
	p.unsubscribe = nil
	p.registered = nil
	p.mu.Unlock()
}

// registerOn registers the slash command on one provider, deduplicating by
// provider id so a repeated join event cannot register twice.
func (p *Plugin) registerOn(provider host.ChannelProvider) {
	p.mu.Lock()
	if p.registered == nil {
		p.mu.Unlock()
		return
	}
	if _, exists := p.registered[provider.ID()]; exists {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	if err := provider.RegisterCommand(p.command()); err != nil {
		p.logger.Warn("register command", "provider", provider.ID(), "error", err)
		return
	}

	p.mu.Lock()
	if p.registered != nil {
		p.registered[provider.ID()] = provider
	}
	p.mu.Unlock()
}

// handleChannelJoined registers the command on providers that join after init.
func (p *Plugin) handleChannelJoined(event host.Event) {
	if event.Provider == nil {
		return
	}
	if p.context() == nil {
		return
	}
	p.registerOn(event.Provider)
}

// registeredCount reports how many providers currently carry the command.
func (p *Plugin) registeredCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.registered)
}
