package videogen

import (
	"encoding/json"
	"strings"
)

// Result is the normalized outcome of a broker call: a success URL, a failure
// reason, or neither when the broker reported success without a URL.
type Result struct {
	// URL is the generated asset location on success.
	URL string
	// ErrorReason is the broker's internal failure identifier. It must be
	// sanitized before reaching users.
	ErrorReason string
}

// brokerReply is the structured envelope shape the broker may return.
type brokerReply struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// NormalizeResponse folds the broker's two response shapes into one Result.
// The broker replies with either a JSON envelope carrying url or error, or,
// in simpler cases, a bare URL string; neither shape may be assumed.
func NormalizeResponse(raw string) Result {
	var reply brokerReply
	if err := json.Unmarshal([]byte(raw), &reply); err == nil {
		return Result{URL: reply.URL, ErrorReason: reply.Error}
	}
	if strings.HasPrefix(raw, "http") {
		return Result{URL: raw}
	}
	return Result{ErrorReason: raw}
}
