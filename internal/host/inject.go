package host

// InjectKind tags an injection request with its reserved routing marker.
type InjectKind string

const (
	// InjectCapability routes the payload to the capability broker.
	InjectCapability InjectKind = "capability"
	// InjectConfirm routes a yes/no question to the invoking user.
	InjectConfirm InjectKind = "confirm"
)

// InjectRequest is a request submitted through the host's injection channel.
type InjectRequest struct {
	// ID is a unique request identifier. The host assigns one when empty.
	ID string
	// Kind selects how the host routes the payload.
	Kind InjectKind
	// ProviderID identifies the originating channel provider, when any.
	ProviderID string
	// ChannelID identifies the originating channel, when any.
	ChannelID string
	// UserID identifies the user on whose behalf the request runs.
	UserID string
	// Payload is the opaque request body. Capability requests carry a JSON
	// envelope; confirmation requests carry plain question text.
	Payload string
}
