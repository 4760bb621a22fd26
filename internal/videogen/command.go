package videogen

import (
	"context"
	"fmt"
	"strings"

	"github.com/videoforge/videoforge/internal/host"
)

// commandName is the slash command keyword registered on channel providers.
const commandName = "video"

// command builds the slash-command registration for this plugin instance.
func (p *Plugin) command() host.Command {
	return host.Command{
		Name:        commandName,
		Description: "Generate a short video from a text prompt",
		Usage:       "/video <prompt> [--model <id>] [--duration <seconds>] [--aspect <ratio>]",
		Handler:     p.handleCommand,
	}
}

// handleCommand is the /video entry point for the chat path.
func (p *Plugin) handleCommand(ctx context.Context, inv host.CommandInvocation) error {
	hostCtx := p.context()
	if hostCtx == nil {
		// The plugin was shut down while the invocation was in flight.
		return nil
	}

	if len(inv.Args) > 0 {
		switch inv.Args[0] {
		case "settings":
			settings := loadSettings(hostCtx.Config(ConfigNamespace))
			return inv.Reply(settingsText(settings))
		case "models":
			return inv.Reply(modelsText())
		}
	}

	parsed := ParseArgs(inv.Args)
	if parsed.Prompt == "" {
		return inv.Reply(usageText())
	}

	settings := loadSettings(hostCtx.Config(ConfigNamespace))
	req := buildRequest(parsed, settings)
	req.ProviderID = inv.ProviderID
	req.ChannelID = inv.ChannelID
	req.UserID = inv.UserID

	confirmed, err := p.confirm(ctx, hostCtx, inv, req)
	if err != nil {
		p.logger.Warn("confirmation request failed", "error", err)
		confirmed = false
	}
	if !confirmed {
		return inv.Reply("Video generation cancelled.")
	}

	// Generation can take 30 seconds to 2 minutes; never block silently.
	if err := inv.Reply(fmt.Sprintf(
		"Generating a %d second %s video with %s. This can take 30 seconds to 2 minutes...",
		req.DurationSeconds, req.AspectRatio, req.Model,
	)); err != nil {
		return err
	}

	outcome := p.generate(ctx, hostCtx, req)
	return inv.Reply(outcome.Text)
}

// confirm asks the invoking user a yes/no question through the injection
// channel before hosted credits are spent. Only the chat path confirms;
// agent tools rely on upstream consent and the broker's own credit check.
func (p *Plugin) confirm(ctx context.Context, hostCtx host.Context, inv host.CommandInvocation, req generateRequest) (bool, error) {
	question := fmt.Sprintf(
		"Generate a %d second %s video? This will use video generation credits. Reply yes or no.",
		req.DurationSeconds, req.AspectRatio,
	)
	answer, err := hostCtx.Inject(ctx, host.InjectRequest{
		Kind:       host.InjectConfirm,
		ProviderID: inv.ProviderID,
		ChannelID:  inv.ChannelID,
		UserID:     inv.UserID,
		Payload:    question,
	})
	if err != nil {
		return false, err
	}
	return isAffirmative(answer), nil
}

// isAffirmative accepts "yes" or "y", case-insensitive, after trimming.
// Everything else, including an empty answer, is a decline.
func isAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}

// usageText is the help reply for an empty prompt or bare /video.
func usageText() string {
	var b strings.Builder
	b.WriteString("Usage: /video <prompt> [--model <id>] [--duration <seconds>] [--aspect <ratio>]\n")
	b.WriteString("Subcommands:\n")
	b.WriteString("  /video settings - show current video generation settings\n")
	b.WriteString("  /video models   - list available models\n")
	b.WriteString("Flags:\n")
	b.WriteString("  --model <id>          override the configured model\n")
	b.WriteString("  --duration <seconds>  override the clip length\n")
	b.WriteString("  --aspect <ratio>      override the aspect ratio (16:9, 9:16, 1:1)")
	return b.String()
}

// settingsText renders the effective settings. The API key itself is never
// shown, only whether one is configured.
func settingsText(settings Settings) string {
	byok := "no"
	if settings.BYOKConfigured() {
		byok = "yes"
	}
	var b strings.Builder
	b.WriteString("Video generation settings:\n")
	fmt.Fprintf(&b, "  provider:     %s\n", settings.Provider)
	fmt.Fprintf(&b, "  model:        %s\n", settings.Model)
	fmt.Fprintf(&b, "  duration:     %ds\n", settings.DurationSeconds())
	fmt.Fprintf(&b, "  aspect ratio: %s\n", settings.AspectRatio)
	fmt.Fprintf(&b, "  own API key:  %s", byok)
	return b.String()
}

// modelsText renders the static model catalog.
func modelsText() string {
	var b strings.Builder
	b.WriteString("Available models:\n")
	for _, model := range Models() {
		fmt.Fprintf(&b, "  %-14s %s (speed: %s, quality: %s)\n", model.ID, model.DisplayName, model.Speed, model.Quality)
	}
	return strings.TrimRight(b.String(), "\n")
}
