package videogen

import (
	"errors"
	"log/slog"
)

// ErrAlreadyInitialized is returned when Init is called twice without an
// intervening Shutdown.
var ErrAlreadyInitialized = errors.New("plugin already initialized")

// reasonInsufficientCredits is the one broker failure identifier with a
// dedicated user-facing message.
const reasonInsufficientCredits = "insufficient_credits"

const (
	// msgInsufficientCredits tells the user how to proceed after a credit failure.
	msgInsufficientCredits = "Not enough credits for video generation. Please add credits to your account, or configure your own API key in the plugin settings."
	// msgGenericFailure is the single message for every other broker failure.
	msgGenericFailure = "Video generation failed. Please try again."
	// msgCompletedNoURL covers broker success replies that carry no URL.
	msgCompletedNoURL = "Video generation completed, but no video URL was returned."
)

// sanitizeFailure maps a broker failure identifier to user-facing text. The
// raw identifier is logged for operators and never echoed to the user.
func sanitizeFailure(logger *slog.Logger, reason string) string {
	logger.Warn("video generation failed", "reason", reason)
	if reason == reasonInsufficientCredits {
		return msgInsufficientCredits
	}
	return msgGenericFailure
}
