package videogen

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/videoforge/videoforge/internal/host"
)

// tools returns the agent tool set for this plugin instance.
func (p *Plugin) tools() []host.Tool {
	return []host.Tool{
		&GenerateVideoTool{plugin: p},
		&ListVideoModelsTool{},
		&GetVideoSettingsTool{plugin: p},
	}
}

// toolNames lists the tool identifiers for unregistration.
func toolNames() []string {
	return []string{"generate_video", "list_video_models", "get_video_settings"}
}

// GenerateVideoTool generates a video from a prompt on behalf of an agent.
// It bypasses the chat confirmation gate: agent runs are assumed to have
// upstream human consent, and the broker's credit check is the backstop.
type GenerateVideoTool struct {
	// plugin provides config access and the shared dispatch path.
	plugin *Plugin
}

// Name returns the tool identifier used in tool calls.
func (t *GenerateVideoTool) Name() string {
	return "generate_video"
}

// Description summarizes the generation behavior for the agent.
func (t *GenerateVideoTool) Description() string {
	return "Generate a short video from a text prompt and return its URL. Generation may take up to two minutes and consumes video generation credits."
}

// Schema describes the generate_video payload.
func (t *GenerateVideoTool) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "Text description of the video to generate.",
			},
			"model": map[string]any{
				"type":        "string",
				"description": "Model id override. Use list_video_models for options.",
			},
			"duration": map[string]any{
				"type":        "number",
				"description": "Clip length in seconds.",
			},
			"aspectRatio": map[string]any{
				"type":        "string",
				"description": "Output aspect ratio (16:9, 9:16, 1:1).",
			},
			"sessionId": map[string]any{
				"type":        "string",
				"description": "Agent session id for request attribution.",
			},
		},
		"required": []string{"prompt"},
	}
}

// Run merges the tool arguments with configured defaults and dispatches one
// generation request through the shared path.
func (t *GenerateVideoTool) Run(ctx context.Context, input json.RawMessage) (host.ToolResult, error) {
	var payload struct {
		Prompt      string  `json:"prompt"`
		Model       string  `json:"model"`
		Duration    float64 `json:"duration"`
		AspectRatio string  `json:"aspectRatio"`
		SessionID   string  `json:"sessionId"`
	}
	if err := json.Unmarshal(input, &payload); err != nil {
		return host.ToolResult{IsError: true, Content: fmt.Sprintf("invalid input: %v", err)}, nil
	}
	payload.Prompt = strings.TrimSpace(payload.Prompt)
	if payload.Prompt == "" {
		return host.ToolResult{IsError: true, Content: "prompt is required"}, nil
	}

	hostCtx := t.plugin.context()
	if hostCtx == nil {
		return host.ToolResult{IsError: true, Content: "video generation is not available"}, nil
	}

	parsed := ParsedArgs{
		Prompt: payload.Prompt,
		Model:  payload.Model,
		Aspect: payload.AspectRatio,
	}
	if payload.Duration > 0 {
		parsed.Duration = strconv.Itoa(int(payload.Duration))
	}

	settings := loadSettings(hostCtx.Config(ConfigNamespace))
	req := buildRequest(parsed, settings)
	req.UserID = payload.SessionID

	outcome := t.plugin.generate(ctx, hostCtx, req)
	return host.ToolResult{Content: outcome.Text, IsError: outcome.IsError}, nil
}

// ListVideoModelsTool returns the static model catalog as JSON.
type ListVideoModelsTool struct{}

// Name returns the tool identifier used in tool calls.
func (t *ListVideoModelsTool) Name() string {
	return "list_video_models"
}

// Description summarizes the catalog listing for the agent.
func (t *ListVideoModelsTool) Description() string {
	return "List the available video generation models with speed and quality labels."
}

// Schema describes the empty list_video_models payload.
func (t *ListVideoModelsTool) Schema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

// Run returns the catalog as a JSON array of {id, name, speed, quality}.
func (t *ListVideoModelsTool) Run(ctx context.Context, input json.RawMessage) (host.ToolResult, error) {
	raw, err := json.Marshal(Models())
	if err != nil {
		return host.ToolResult{IsError: true, Content: fmt.Sprintf("encode models: %v", err)}, nil
	}
	return host.ToolResult{Content: string(raw)}, nil
}

// GetVideoSettingsTool reports the effective plugin settings. The API key is
// never included, only the derived byokConfigured flag.
type GetVideoSettingsTool struct {
	// plugin provides config access.
	plugin *Plugin
}

// Name returns the tool identifier used in tool calls.
func (t *GetVideoSettingsTool) Name() string {
	return "get_video_settings"
}

// Description summarizes the settings report for the agent.
func (t *GetVideoSettingsTool) Description() string {
	return "Get the current video generation settings, including whether a user API key is configured."
}

// Schema describes the empty get_video_settings payload.
func (t *GetVideoSettingsTool) Schema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

// Run returns the effective settings as a JSON object.
func (t *GetVideoSettingsTool) Run(ctx context.Context, input json.RawMessage) (host.ToolResult, error) {
	hostCtx := t.plugin.context()
	if hostCtx == nil {
		return host.ToolResult{IsError: true, Content: "video generation is not available"}, nil
	}
	settings := loadSettings(hostCtx.Config(ConfigNamespace))

	report := map[string]any{
		"provider":       settings.Provider,
		"model":          settings.Model,
		"duration":       settings.DurationSeconds(),
		"aspectRatio":    settings.AspectRatio,
		"byokConfigured": settings.BYOKConfigured(),
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return host.ToolResult{IsError: true, Content: fmt.Sprintf("encode settings: %v", err)}, nil
	}
	return host.ToolResult{Content: string(raw)}, nil
}
