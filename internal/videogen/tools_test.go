package videogen

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/videoforge/videoforge/internal/host"
	"github.com/videoforge/videoforge/internal/testutil"
)

// TestGenerateVideoToolReturnsURL verifies the tool returns the asset URL
// without any confirmation round trip.
func TestGenerateVideoToolReturnsURL(testingHandle *testing.T) {
	plugin, demo, _ := newFixture(testingHandle, nil)
	confirms := 0
	demo.Confirm = func(ctx context.Context, req host.InjectRequest) (string, error) {
		confirms++
		return "no", nil
	}
	scriptBroker(demo, `{"url":"https://cdn.example.com/video.mp4"}`)

	tool := &GenerateVideoTool{plugin: plugin}
	result, err := tool.Run(context.Background(), json.RawMessage(`{"prompt":"a cat"}`))
	testutil.RequireNoError(testingHandle, err, "run tool")
	testutil.RequireEqual(testingHandle, result.IsError, false, "success expected")
	testutil.RequireEqual(testingHandle, result.Content, "https://cdn.example.com/video.mp4", "URL returned")
	testutil.RequireEqual(testingHandle, confirms, 0, "agent path bypasses confirmation")
}

// TestGenerateVideoToolRequiresPrompt verifies empty prompts are rejected
// before any broker contact.
func TestGenerateVideoToolRequiresPrompt(testingHandle *testing.T) {
	plugin, demo, _ := newFixture(testingHandle, nil)
	payloads := scriptBroker(demo, `{"url":"https://cdn.example.com/video.mp4"}`)

	tool := &GenerateVideoTool{plugin: plugin}
	result, err := tool.Run(context.Background(), json.RawMessage(`{"prompt":"   "}`))
	testutil.RequireNoError(testingHandle, err, "run tool")
	testutil.RequireEqual(testingHandle, result.IsError, true, "empty prompt is an error")
	testutil.RequireEqual(testingHandle, len(*payloads), 0, "broker must not be contacted")
}

// TestGenerateVideoToolSanitizesFailure verifies broker identifiers never
// reach the agent caller.
func TestGenerateVideoToolSanitizesFailure(testingHandle *testing.T) {
	plugin, demo, _ := newFixture(testingHandle, nil)
	scriptBroker(demo, `{"error":"model_unavailable"}`)

	tool := &GenerateVideoTool{plugin: plugin}
	result, err := tool.Run(context.Background(), json.RawMessage(`{"prompt":"a cat"}`))
	testutil.RequireNoError(testingHandle, err, "run tool")
	testutil.RequireEqual(testingHandle, result.IsError, true, "failure expected")
	testutil.RequireStringContains(testingHandle, result.Content, "failed", "generic failure message")
	testutil.RequireStringAbsent(testingHandle, result.Content, "model_unavailable", "raw identifier must not leak")
}

// TestGenerateVideoToolDurationOverride verifies a numeric duration override
// reaches the broker as integer seconds.
func TestGenerateVideoToolDurationOverride(testingHandle *testing.T) {
	plugin, demo, _ := newFixture(testingHandle, nil)
	payloads := scriptBroker(demo, `{"url":"https://cdn.example.com/video.mp4"}`)

	tool := &GenerateVideoTool{plugin: plugin}
	_, err := tool.Run(context.Background(), json.RawMessage(`{"prompt":"a bird","duration":10,"model":"wan-2.1"}`))
	testutil.RequireNoError(testingHandle, err, "run tool")

	var envelope struct {
		Input map[string]any `json:"input"`
	}
	testutil.RequireNoError(testingHandle, json.Unmarshal([]byte((*payloads)[0]), &envelope), "parse payload")
	testutil.RequireEqual(testingHandle, envelope.Input["duration"], float64(10), "duration dispatched as integer seconds")
	testutil.RequireEqual(testingHandle, envelope.Input["model"], "wan-2.1", "model override dispatched")
}

// TestListVideoModelsTool verifies the catalog JSON shape.
func TestListVideoModelsTool(testingHandle *testing.T) {
	tool := &ListVideoModelsTool{}
	result, err := tool.Run(context.Background(), json.RawMessage(`{}`))
	testutil.RequireNoError(testingHandle, err, "run tool")
	testutil.RequireEqual(testingHandle, result.IsError, false, "success expected")

	var models []map[string]any
	testutil.RequireNoError(testingHandle, json.Unmarshal([]byte(result.Content), &models), "parse models")
	testutil.RequireEqual(testingHandle, len(models), 4, "four catalog entries")
	for _, model := range models {
		for _, key := range []string{"id", "name", "speed", "quality"} {
			_, present := model[key]
			testutil.RequireTrue(testingHandle, present, "model entry has "+key)
		}
	}
}

// TestGetVideoSettingsTool verifies the effective settings report and that
// the API key never appears, only the derived byokConfigured flag.
func TestGetVideoSettingsTool(testingHandle *testing.T) {
	plugin, _, _ := newFixture(testingHandle, map[string]string{
		"model":  "luma-ray2",
		"apiKey": "rk-secret-3",
	})

	tool := &GetVideoSettingsTool{plugin: plugin}
	result, err := tool.Run(context.Background(), json.RawMessage(`{}`))
	testutil.RequireNoError(testingHandle, err, "run tool")

	var report map[string]any
	testutil.RequireNoError(testingHandle, json.Unmarshal([]byte(result.Content), &report), "parse report")
	testutil.RequireEqual(testingHandle, report["model"], "luma-ray2", "configured model reported")
	testutil.RequireEqual(testingHandle, report["byokConfigured"], true, "byok flag derived")
	testutil.RequireEqual(testingHandle, report["duration"], float64(5), "default duration reported")
	testutil.RequireStringAbsent(testingHandle, result.Content, "rk-secret-3", "API key value must not appear")
}

// TestToolsUnavailableAfterShutdown verifies tool runs after shutdown report
// unavailability instead of panicking.
func TestToolsUnavailableAfterShutdown(testingHandle *testing.T) {
	demoPlugin := New(Options{})
	tool := &GenerateVideoTool{plugin: demoPlugin}
	result, err := tool.Run(context.Background(), json.RawMessage(`{"prompt":"a cat"}`))
	testutil.RequireNoError(testingHandle, err, "run tool")
	testutil.RequireEqual(testingHandle, result.IsError, true, "uninitialized plugin is an error")
}
