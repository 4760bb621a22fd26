package videogen

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/videoforge/videoforge/internal/demohost"
	"github.com/videoforge/videoforge/internal/host"
	"github.com/videoforge/videoforge/internal/testutil"
)

// newFixture wires an initialized plugin to a demo host with one channel.
func newFixture(testingHandle *testing.T, config map[string]string) (*Plugin, *demohost.DemoHost, *demohost.MemoryChannel) {
	testingHandle.Helper()
	demo := demohost.New(demohost.Options{
		Config:  map[string]map[string]string{ConfigNamespace: config},
		Credits: -1,
	})
	channel := demohost.NewMemoryChannel("chan-1", "Test Channel")
	demo.AddProvider(channel)

	plugin := New(Options{})
	testutil.RequireNoError(testingHandle, plugin.Init(demo), "init plugin")
	testingHandle.Cleanup(plugin.Shutdown)
	return plugin, demo, channel
}

// scriptConfirm makes the demo host answer every confirmation with answer.
func scriptConfirm(demo *demohost.DemoHost, answer string) {
	demo.Confirm = func(ctx context.Context, req host.InjectRequest) (string, error) {
		return answer, nil
	}
}

// scriptBroker records capability payloads and replies with a fixed response.
func scriptBroker(demo *demohost.DemoHost, response string) *[]string {
	payloads := &[]string{}
	demo.Broker = func(ctx context.Context, req host.InjectRequest) (string, error) {
		*payloads = append(*payloads, req.Payload)
		return response, nil
	}
	return payloads
}

// TestCommandEmptyPromptShowsUsage verifies bare /video prints usage help.
func TestCommandEmptyPromptShowsUsage(testingHandle *testing.T) {
	_, _, channel := newFixture(testingHandle, nil)

	replies, err := channel.Dispatch(context.Background(), "video", "c1", "u1", nil)
	testutil.RequireNoError(testingHandle, err, "dispatch")
	testutil.RequireEqual(testingHandle, len(replies), 1, "usage is a single reply")
	testutil.RequireStringContains(testingHandle, replies[0], "/video <prompt>", "usage names the command synopsis")
}

// TestCommandDeclineCancelsWithoutDispatch verifies a negative confirmation
// produces exactly one cancellation reply and never contacts the broker.
func TestCommandDeclineCancelsWithoutDispatch(testingHandle *testing.T) {
	_, demo, channel := newFixture(testingHandle, nil)
	scriptConfirm(demo, "no")
	payloads := scriptBroker(demo, `{"url":"https://cdn.example.com/video.mp4"}`)

	replies, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"a", "cat"})
	testutil.RequireNoError(testingHandle, err, "dispatch")
	testutil.RequireEqual(testingHandle, len(replies), 1, "decline yields exactly one reply")
	testutil.RequireStringContains(testingHandle, replies[0], "cancelled", "decline reply mentions cancellation")
	testutil.RequireEqual(testingHandle, len(*payloads), 0, "broker must not be contacted on decline")
}

// TestCommandAcceptRepliesProgressThenURL verifies the accept path emits a
// progress notice followed by the URL, echoed verbatim.
func TestCommandAcceptRepliesProgressThenURL(testingHandle *testing.T) {
	_, demo, channel := newFixture(testingHandle, nil)
	scriptConfirm(demo, "yes")
	scriptBroker(demo, "https://cdn.example.com/video.mp4")

	replies, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"a", "cat"})
	testutil.RequireNoError(testingHandle, err, "dispatch")
	testutil.RequireEqual(testingHandle, len(replies), 2, "accept yields progress then result")
	testutil.RequireStringContains(testingHandle, replies[0], "30 seconds to 2 minutes", "progress notice sets expectations")
	testutil.RequireEqual(testingHandle, replies[1], "https://cdn.example.com/video.mp4", "bare URL is echoed verbatim")
}

// TestCommandAffirmativeVariants verifies case and whitespace tolerance.
func TestCommandAffirmativeVariants(testingHandle *testing.T) {
	cases := map[string]bool{
		"yes":  true,
		"  Y ": true,
		"YES":  true,
		"no":   false,
		"":     false,
		"yep":  false,
	}
	for answer, want := range cases {
		testutil.RequireEqual(testingHandle, isAffirmative(answer), want, "answer "+answer)
	}
}

// TestCommandCreditFailureMessage verifies the credits identifier surfaces
// the actionable message without leaking the identifier.
func TestCommandCreditFailureMessage(testingHandle *testing.T) {
	_, demo, channel := newFixture(testingHandle, nil)
	scriptConfirm(demo, "yes")
	scriptBroker(demo, `{"error":"insufficient_credits"}`)

	replies, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"a", "cat"})
	testutil.RequireNoError(testingHandle, err, "dispatch")
	testutil.RequireEqual(testingHandle, len(replies), 2, "progress then failure")
	testutil.RequireStringContains(testingHandle, replies[1], "credits", "credit failures mention credits")
	testutil.RequireStringAbsent(testingHandle, replies[1], "insufficient_credits", "raw identifier must not leak")
}

// TestCommandGenericFailureSanitized verifies unknown broker identifiers are
// replaced by the generic failure message.
func TestCommandGenericFailureSanitized(testingHandle *testing.T) {
	_, demo, channel := newFixture(testingHandle, nil)
	scriptConfirm(demo, "yes")
	scriptBroker(demo, `{"error":"model_unavailable"}`)

	replies, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"a", "cat"})
	testutil.RequireNoError(testingHandle, err, "dispatch")
	testutil.RequireStringContains(testingHandle, replies[1], "failed", "generic failures say failed")
	testutil.RequireStringAbsent(testingHandle, replies[1], "model_unavailable", "raw identifier must not leak")
}

// TestCommandNoURLNotice verifies a success envelope without a URL yields
// the neutral completed-but-no-URL notice.
func TestCommandNoURLNotice(testingHandle *testing.T) {
	_, demo, channel := newFixture(testingHandle, nil)
	scriptConfirm(demo, "yes")
	scriptBroker(demo, `{}`)

	replies, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"a", "cat"})
	testutil.RequireNoError(testingHandle, err, "dispatch")
	testutil.RequireStringContains(testingHandle, replies[1], "no video URL", "notice explains the missing URL")
}

// TestCommandDurationOverrideDispatchesInteger verifies a --duration override
// reaches the broker as an integer seconds field.
func TestCommandDurationOverrideDispatchesInteger(testingHandle *testing.T) {
	_, demo, channel := newFixture(testingHandle, nil)
	scriptConfirm(demo, "yes")
	payloads := scriptBroker(demo, "https://cdn.example.com/video.mp4")

	_, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"a", "bird", "--duration", "10"})
	testutil.RequireNoError(testingHandle, err, "dispatch")
	testutil.RequireEqual(testingHandle, len(*payloads), 1, "one broker call expected")

	var envelope struct {
		Capability string         `json:"capability"`
		Input      map[string]any `json:"input"`
	}
	testutil.RequireNoError(testingHandle, json.Unmarshal([]byte((*payloads)[0]), &envelope), "parse payload")
	testutil.RequireEqual(testingHandle, envelope.Capability, "video-generation", "capability marker")
	testutil.RequireEqual(testingHandle, envelope.Input["duration"], float64(10), "duration dispatched as integer seconds")
	testutil.RequireEqual(testingHandle, envelope.Input["prompt"], "a bird", "prompt dispatched")
}

// TestCommandAPIKeyOmittedWhenUnset verifies the payload carries no apiKey
// field at all when configuration has none.
func TestCommandAPIKeyOmittedWhenUnset(testingHandle *testing.T) {
	_, demo, channel := newFixture(testingHandle, nil)
	scriptConfirm(demo, "yes")
	payloads := scriptBroker(demo, "https://cdn.example.com/video.mp4")

	_, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"a", "cat"})
	testutil.RequireNoError(testingHandle, err, "dispatch")

	var envelope struct {
		Input map[string]any `json:"input"`
	}
	testutil.RequireNoError(testingHandle, json.Unmarshal([]byte((*payloads)[0]), &envelope), "parse payload")
	_, present := envelope.Input["apiKey"]
	testutil.RequireEqual(testingHandle, present, false, "apiKey must be omitted, not empty")
}

// TestCommandAPIKeyAttachedWhenConfigured verifies BYOK keys reach the broker.
func TestCommandAPIKeyAttachedWhenConfigured(testingHandle *testing.T) {
	_, demo, channel := newFixture(testingHandle, map[string]string{"apiKey": "rk-test-1"})
	scriptConfirm(demo, "yes")
	payloads := scriptBroker(demo, "https://cdn.example.com/video.mp4")

	_, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"a", "cat"})
	testutil.RequireNoError(testingHandle, err, "dispatch")

	var envelope struct {
		Input map[string]any `json:"input"`
	}
	testutil.RequireNoError(testingHandle, json.Unmarshal([]byte((*payloads)[0]), &envelope), "parse payload")
	testutil.RequireEqual(testingHandle, envelope.Input["apiKey"], "rk-test-1", "configured key is attached")
}

// TestCommandSettingsSubcommand verifies /video settings reports the
// effective configuration without exposing the API key.
func TestCommandSettingsSubcommand(testingHandle *testing.T) {
	_, _, channel := newFixture(testingHandle, map[string]string{
		"model":  "kling-1.6",
		"apiKey": "rk-secret-9",
	})

	replies, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"settings"})
	testutil.RequireNoError(testingHandle, err, "dispatch")
	testutil.RequireEqual(testingHandle, len(replies), 1, "settings is a single reply")
	testutil.RequireStringContains(testingHandle, replies[0], "kling-1.6", "configured model shown")
	testutil.RequireStringContains(testingHandle, replies[0], "yes", "byok state shown")
	testutil.RequireStringAbsent(testingHandle, replies[0], "rk-secret-9", "API key value must not appear")
}

// TestCommandModelsSubcommand verifies /video models lists the catalog.
func TestCommandModelsSubcommand(testingHandle *testing.T) {
	_, _, channel := newFixture(testingHandle, nil)

	replies, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"models"})
	testutil.RequireNoError(testingHandle, err, "dispatch")
	testutil.RequireEqual(testingHandle, len(replies), 1, "models is a single reply")
	for _, id := range []string{"minimax-video", "wan-2.1", "kling-1.6", "luma-ray2"} {
		testutil.RequireStringContains(testingHandle, replies[0], id, "catalog lists "+id)
	}
}

// TestCommandDefaultsApplied verifies the hard-coded fallbacks reach the
// broker when nothing is configured or overridden.
func TestCommandDefaultsApplied(testingHandle *testing.T) {
	_, demo, channel := newFixture(testingHandle, nil)
	scriptConfirm(demo, "yes")
	payloads := scriptBroker(demo, "https://cdn.example.com/video.mp4")

	_, err := channel.Dispatch(context.Background(), "video", "c1", "u1", []string{"a", "cat"})
	testutil.RequireNoError(testingHandle, err, "dispatch")

	var envelope struct {
		Input map[string]any `json:"input"`
	}
	testutil.RequireNoError(testingHandle, json.Unmarshal([]byte((*payloads)[0]), &envelope), "parse payload")
	testutil.RequireEqual(testingHandle, envelope.Input["model"], "minimax-video", "default model")
	testutil.RequireEqual(testingHandle, envelope.Input["duration"], float64(5), "default duration")
	testutil.RequireEqual(testingHandle, envelope.Input["aspectRatio"], "16:9", "default aspect ratio")
}
