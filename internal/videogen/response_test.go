package videogen

import (
	"log/slog"
	"testing"

	"github.com/videoforge/videoforge/internal/testutil"
)

// TestNormalizeResponseJSONURL verifies the structured success shape.
func TestNormalizeResponseJSONURL(testingHandle *testing.T) {
	result := NormalizeResponse(`{"url":"https://cdn.example.com/video.mp4"}`)
	testutil.RequireEqual(testingHandle, result.URL, "https://cdn.example.com/video.mp4", "url should be extracted")
	testutil.RequireEqual(testingHandle, result.ErrorReason, "", "no error expected")
}

// TestNormalizeResponseJSONError verifies the structured failure shape.
func TestNormalizeResponseJSONError(testingHandle *testing.T) {
	result := NormalizeResponse(`{"error":"insufficient_credits"}`)
	testutil.RequireEqual(testingHandle, result.ErrorReason, "insufficient_credits", "error reason should be extracted")
	testutil.RequireEqual(testingHandle, result.URL, "", "no url expected")
}

// TestNormalizeResponseBareURL verifies the plain-URL broker shape.
func TestNormalizeResponseBareURL(testingHandle *testing.T) {
	result := NormalizeResponse("https://cdn.example.com/video.mp4")
	testutil.RequireEqual(testingHandle, result.URL, "https://cdn.example.com/video.mp4", "http-prefixed strings are URLs")
}

// TestNormalizeResponseOpaqueError verifies non-JSON non-URL strings are
// treated as opaque failure reasons.
func TestNormalizeResponseOpaqueError(testingHandle *testing.T) {
	result := NormalizeResponse("something went sideways")
	testutil.RequireEqual(testingHandle, result.ErrorReason, "something went sideways", "opaque strings are error reasons")
	testutil.RequireEqual(testingHandle, result.URL, "", "no url expected")
}

// TestNormalizeResponseEmptyEnvelope verifies a success envelope with neither
// field yields the neutral empty result.
func TestNormalizeResponseEmptyEnvelope(testingHandle *testing.T) {
	result := NormalizeResponse(`{}`)
	testutil.RequireEqual(testingHandle, result.URL, "", "no url expected")
	testutil.RequireEqual(testingHandle, result.ErrorReason, "", "no error expected")
}

// TestSanitizeFailureCredits verifies the credits identifier maps to the
// actionable credits message.
func TestSanitizeFailureCredits(testingHandle *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	message := sanitizeFailure(logger, "insufficient_credits")
	testutil.RequireStringContains(testingHandle, message, "credits", "credits failures mention credits")
}

// TestSanitizeFailureNeverLeaksIdentifier verifies unknown identifiers map to
// the generic message and never reach the user.
func TestSanitizeFailureNeverLeaksIdentifier(testingHandle *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	message := sanitizeFailure(logger, "model_unavailable")
	testutil.RequireStringContains(testingHandle, message, "failed", "generic failures say failed")
	testutil.RequireStringAbsent(testingHandle, message, "model_unavailable", "raw identifier must not leak")
}
