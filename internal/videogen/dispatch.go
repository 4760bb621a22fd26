package videogen

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/videoforge/videoforge/internal/host"
)

// capabilityName is the capability routed through the host broker.
const capabilityName = "video-generation"

// generateRequest is the fully merged request submitted to the broker.
type generateRequest struct {
	// Prompt is the trimmed generation prompt.
	Prompt string
	// Model is the resolved model identifier.
	Model string
	// DurationSeconds is the resolved clip length in seconds.
	DurationSeconds int
	// AspectRatio is the resolved output aspect ratio.
	AspectRatio string
	// APIKey is the BYOK key, empty when hosted credits are used.
	APIKey string
	// ProviderID, ChannelID and UserID attribute the request to its origin.
	ProviderID string
	ChannelID  string
	UserID     string
}

// capabilityInput is the input block of the capability envelope.
type capabilityInput struct {
	Prompt      string `json:"prompt"`
	Model       string `json:"model"`
	Duration    int    `json:"duration"`
	AspectRatio string `json:"aspectRatio"`
	// APIKey is attached only when configured, never as an empty string.
	APIKey string `json:"apiKey,omitempty"`
}

// capabilityEnvelope is the payload submitted through the injection channel.
type capabilityEnvelope struct {
	Capability string          `json:"capability"`
	Input      capabilityInput `json:"input"`
}

// buildRequest layers invocation overrides over effective settings. Both the
// chat command and the generate_video tool build requests through here so the
// two paths cannot drift.
func buildRequest(parsed ParsedArgs, settings Settings) generateRequest {
	req := generateRequest{
		Prompt:          strings.TrimSpace(parsed.Prompt),
		Model:           settings.Model,
		DurationSeconds: settings.DurationSeconds(),
		AspectRatio:     settings.AspectRatio,
		APIKey:          settings.APIKey,
	}
	if parsed.Model != "" {
		req.Model = parsed.Model
	}
	if parsed.Duration != "" {
		if seconds, err := strconv.Atoi(parsed.Duration); err == nil && seconds > 0 {
			req.DurationSeconds = seconds
		}
	}
	if parsed.Aspect != "" {
		req.AspectRatio = parsed.Aspect
	}
	return req
}

// generateOutcome is the user- or agent-facing outcome of a generation run.
type generateOutcome struct {
	// Text is the asset URL on success, or a sanitized message otherwise.
	Text string
	// IsError reports a broker failure. A success without a URL is not one.
	IsError bool
}

// generate submits one capability request and folds the reply into an
// outcome safe to surface. Raw broker detail only reaches the operator log.
func (p *Plugin) generate(ctx context.Context, hostCtx host.Context, req generateRequest) generateOutcome {
	result := p.dispatch(ctx, hostCtx, req)
	switch {
	case result.URL != "":
		return generateOutcome{Text: result.URL}
	case result.ErrorReason != "":
		return generateOutcome{Text: sanitizeFailure(p.logger, result.ErrorReason), IsError: true}
	default:
		return generateOutcome{Text: msgCompletedNoURL}
	}
}

// dispatch builds the capability envelope, submits it, and normalizes the
// raw reply. Transport failures are folded into the failure result shape.
func (p *Plugin) dispatch(ctx context.Context, hostCtx host.Context, req generateRequest) Result {
	envelope := capabilityEnvelope{
		Capability: capabilityName,
		Input: capabilityInput{
			Prompt:      req.Prompt,
			Model:       req.Model,
			Duration:    req.DurationSeconds,
			AspectRatio: req.AspectRatio,
			APIKey:      req.APIKey,
		},
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("encode capability request", "error", err)
		return Result{ErrorReason: "encode_failed"}
	}

	raw, err := hostCtx.Inject(ctx, host.InjectRequest{
		Kind:       host.InjectCapability,
		ProviderID: req.ProviderID,
		ChannelID:  req.ChannelID,
		UserID:     req.UserID,
		Payload:    string(payload),
	})
	if err != nil {
		p.logger.Warn("capability dispatch failed", "error", err)
		return Result{ErrorReason: "dispatch_failed"}
	}
	return NormalizeResponse(raw)
}
