package videogen

import (
	"strconv"

	"github.com/videoforge/videoforge/internal/host"
)

// ConfigNamespace is the host settings namespace owned by this plugin.
const ConfigNamespace = "videogen"

// Hard-coded fallback defaults applied beneath stored configuration.
const (
	defaultProvider        = "replicate"
	defaultModel           = "minimax-video"
	defaultDurationSeconds = 5
	defaultAspectRatio     = "16:9"
)

// Settings are the effective plugin settings after defaulting.
type Settings struct {
	// Provider selects hosted generation or a custom endpoint.
	Provider string
	// Model is the default model identifier.
	Model string
	// Duration is the default clip length in seconds, as stored (string enum).
	Duration string
	// AspectRatio is the default output aspect ratio.
	AspectRatio string
	// APIKey is the user-supplied provider key, empty unless BYOK is set up.
	APIKey string
}

// BYOKConfigured reports whether a user API key is present.
func (s Settings) BYOKConfigured() bool {
	return s.APIKey != ""
}

// DurationSeconds converts the stored duration to integer seconds, falling
// back to the hard-coded default for absent or non-numeric values.
func (s Settings) DurationSeconds() int {
	seconds, err := strconv.Atoi(s.Duration)
	if err != nil || seconds <= 0 {
		return defaultDurationSeconds
	}
	return seconds
}

// loadSettings layers stored configuration over the fallback defaults.
func loadSettings(stored map[string]string) Settings {
	settings := Settings{
		Provider:    defaultProvider,
		Model:       defaultModel,
		Duration:    strconv.Itoa(defaultDurationSeconds),
		AspectRatio: defaultAspectRatio,
	}
	if value := stored["provider"]; value != "" {
		settings.Provider = value
	}
	if value := stored["model"]; value != "" {
		settings.Model = value
	}
	if value := stored["duration"]; value != "" {
		settings.Duration = value
	}
	if value := stored["aspectRatio"]; value != "" {
		settings.AspectRatio = value
	}
	settings.APIKey = stored["apiKey"]
	return settings
}

// configSchema declares the plugin's settings surface to the host.
func configSchema() host.ConfigSchema {
	return host.ConfigSchema{
		ID:    ConfigNamespace,
		Title: "Video Generation",
		Fields: []host.ConfigField{
			{
				Key:     "provider",
				Title:   "Provider",
				Type:    "enum",
				Enum:    []string{"replicate", "custom"},
				Default: defaultProvider,
			},
			{
				Key:     "model",
				Title:   "Default model",
				Type:    "enum",
				Enum:    []string{"minimax-video", "wan-2.1", "kling-1.6", "luma-ray2"},
				Default: defaultModel,
			},
			{
				Key:     "duration",
				Title:   "Duration (seconds)",
				Type:    "enum",
				Enum:    []string{"3", "5", "10"},
				Default: strconv.Itoa(defaultDurationSeconds),
			},
			{
				Key:     "aspectRatio",
				Title:   "Aspect ratio",
				Type:    "enum",
				Enum:    []string{"16:9", "9:16", "1:1"},
				Default: defaultAspectRatio,
			},
			{
				Key:    "apiKey",
				Title:  "API key (BYOK)",
				Type:   "string",
				Secret: true,
			},
		},
	}
}
