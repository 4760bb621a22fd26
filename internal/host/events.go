package host

// EventKind identifies a host event stream.
type EventKind string

const (
	// EventChannelJoined fires when a channel provider joins after plugin init.
	EventChannelJoined EventKind = "channel_joined"
)

// Event is a single host event delivered to subscribers.
type Event struct {
	// Kind identifies the event stream this event belongs to.
	Kind EventKind
	// Provider is the channel provider the event concerns, when applicable.
	Provider ChannelProvider
}

// EventBus delivers host events to plugin subscribers.
type EventBus interface {
	// Subscribe registers a callback for one event kind and returns an
	// unsubscribe function. Unsubscribing twice is a no-op.
	Subscribe(kind EventKind, fn func(Event)) (unsubscribe func())
}
