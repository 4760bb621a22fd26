package demohost

import (
	"context"
	"fmt"
	"sync"

	"github.com/videoforge/videoforge/internal/host"
)

// MemoryChannel is an in-memory channel provider that records registered
// commands and delivered messages.
type MemoryChannel struct {
	// id is the stable provider identifier.
	id string
	// name is the human-readable provider name.
	name string
	// mu guards commands and sent.
	mu sync.Mutex
	// commands holds registered commands by name.
	commands map[string]host.Command
	// sent records messages delivered via SendMessage.
	sent []string

	// OnReply, when set, observes each command reply as it is emitted.
	// The interactive CLI uses it to stream replies into the UI.
	OnReply func(text string)
}

// NewMemoryChannel constructs a channel provider with the given identity.
func NewMemoryChannel(id string, name string) *MemoryChannel {
	return &MemoryChannel{
		id:       id,
		name:     name,
		commands: make(map[string]host.Command),
	}
}

// ID returns the provider identifier.
func (c *MemoryChannel) ID() string {
	return c.id
}

// Name returns the provider display name.
func (c *MemoryChannel) Name() string {
	return c.name
}

// RegisterCommand registers a slash command on this provider.
func (c *MemoryChannel) RegisterCommand(cmd host.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.commands[cmd.Name]; exists {
		return fmt.Errorf("%w: %s", host.ErrCommandExists, cmd.Name)
	}
	c.commands[cmd.Name] = cmd
	return nil
}

// UnregisterCommand removes a registered command by name.
func (c *MemoryChannel) UnregisterCommand(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.commands[name]; !exists {
		return fmt.Errorf("%w: %s", host.ErrCommandNotFound, name)
	}
	delete(c.commands, name)
	return nil
}

// HasCommand reports whether a command is currently registered.
func (c *MemoryChannel) HasCommand(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.commands[name]
	return ok
}

// SendMessage records a delivered message.
func (c *MemoryChannel) SendMessage(ctx context.Context, channelID string, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	return nil
}

// Sent returns a copy of the messages delivered so far.
func (c *MemoryChannel) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	sent := make([]string, len(c.sent))
	copy(sent, c.sent)
	return sent
}

// Dispatch simulates a user invoking a registered command and returns the
// replies emitted by the handler, in order.
func (c *MemoryChannel) Dispatch(ctx context.Context, name string, channelID string, userID string, args []string) ([]string, error) {
	c.mu.Lock()
	cmd, ok := c.commands[name]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", host.ErrCommandNotFound, name)
	}

	var replies []string
	inv := host.CommandInvocation{
		ProviderID: c.id,
		ChannelID:  channelID,
		UserID:     userID,
		Args:       args,
		Reply: func(text string) error {
			replies = append(replies, text)
			if c.OnReply != nil {
				c.OnReply(text)
			}
			return nil
		},
	}
	if err := cmd.Handler(ctx, inv); err != nil {
		return replies, err
	}
	return replies, nil
}
