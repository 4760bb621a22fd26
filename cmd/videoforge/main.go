// Command videoforge runs the video-generation plugin against an in-process
// demo host: a one-shot print mode for scripting and an interactive terminal
// session for exploring the /video command.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/videoforge/videoforge/internal/demohost"
	"github.com/videoforge/videoforge/internal/host"
	"github.com/videoforge/videoforge/internal/logging"
	"github.com/videoforge/videoforge/internal/videogen"
)

// version is the CLI build version.
const version = "0.1.0"

// options holds all CLI flags.
type options struct {
	// Config is a settings file path or inline JSON for the videogen namespace.
	Config string
	// Credits is the simulated credit balance; negative means unlimited.
	Credits int
	// LogFormat selects operator log encoding (text|json).
	LogFormat string
	// Print runs a single invocation and exits.
	Print bool
	// Verbose lowers the operator log level to debug.
	Verbose bool
	// Version prints the CLI version.
	Version bool
	// Yes auto-confirms the generation prompt in print mode.
	Yes bool
}

// main wires Cobra and executes the CLI.
func main() {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "videoforge [/video arguments]",
		Short: "VideoForge - video generation plugin demo host",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Version {
				fmt.Println(version)
				return nil
			}
			return runRoot(cmd, opts, args)
		},
	}
	rootCmd.Args = cobra.ArbitraryArgs

	applyFlags(rootCmd.Flags(), opts)
	rootCmd.AddCommand(doctorCommand(opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyFlags defines all CLI flags.
func applyFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.Config, "config", "", "Settings file path or inline JSON")
	flags.IntVar(&opts.Credits, "credits", -1, "Simulated credit balance (-1 for unlimited)")
	flags.StringVar(&opts.LogFormat, "log-format", "text", "Operator log format (text|json)")
	flags.BoolVarP(&opts.Print, "print", "p", false, "Run one invocation and exit")
	flags.BoolVar(&opts.Verbose, "verbose", false, "Verbose operator logging")
	flags.BoolVarP(&opts.Version, "version", "v", false, "Output the version number")
	flags.BoolVarP(&opts.Yes, "yes", "y", false, "Auto-confirm the generation prompt in print mode")
}

// runRoot builds the demo host, initializes the plugin, and dispatches to
// print or interactive mode.
func runRoot(cmd *cobra.Command, opts *options, args []string) error {
	// A local .env may carry VIDEOFORGE_* overrides; absence is fine.
	_ = godotenv.Load()

	settings, err := loadDemoSettings(opts.Config)
	if err != nil {
		return err
	}
	applyEnvOverrides(settings)

	logger := logging.New(os.Stderr, opts.LogFormat, opts.Verbose)
	demo := demohost.New(demohost.Options{
		Logger:  logger,
		Config:  map[string]map[string]string{videogen.ConfigNamespace: settings},
		Credits: opts.Credits,
	})
	channel := demohost.NewMemoryChannel("demo", "Demo Channel")
	demo.AddProvider(channel)

	plugin := videogen.New(videogen.Options{Logger: logger})
	if err := plugin.Init(demo); err != nil {
		return fmt.Errorf("init plugin: %w", err)
	}
	defer plugin.Shutdown()

	if opts.Print {
		return runPrintMode(cmd, opts, demo, channel, args)
	}
	return runInteractiveTUI(opts, demo, channel)
}

// runPrintMode executes one /video invocation and prints the replies.
func runPrintMode(cmd *cobra.Command, opts *options, demo *demohost.DemoHost, channel *demohost.MemoryChannel, args []string) error {
	tokens := commandTokens(args)
	demo.Confirm = func(ctx context.Context, req host.InjectRequest) (string, error) {
		if opts.Yes {
			return "yes", nil
		}
		// Without --yes the prompt is declined; print mode never blocks on input.
		fmt.Fprintln(cmd.OutOrStdout(), req.Payload)
		return "no", nil
	}

	replies, err := channel.Dispatch(cmd.Context(), "video", "demo-channel", "demo-user", tokens)
	if err != nil {
		return fmt.Errorf("dispatch command: %w", err)
	}
	for _, reply := range replies {
		fmt.Fprintln(cmd.OutOrStdout(), reply)
	}
	return nil
}

// commandTokens normalizes CLI arguments into /video command tokens,
// stripping a leading "/video" so both calling styles work.
func commandTokens(args []string) []string {
	var tokens []string
	for _, arg := range args {
		tokens = append(tokens, strings.Fields(arg)...)
	}
	if len(tokens) > 0 && (tokens[0] == "/video" || tokens[0] == "video") {
		tokens = tokens[1:]
	}
	return tokens
}

// loadDemoSettings resolves the videogen settings from a path or inline JSON.
func loadDemoSettings(value string) (map[string]string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return map[string]string{}, nil
	}
	raw := []byte(trimmed)
	if !strings.HasPrefix(trimmed, "{") {
		fileRaw, err := os.ReadFile(trimmed)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		raw = fileRaw
	}
	var settings map[string]string
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return settings, nil
}

// applyEnvOverrides layers VIDEOFORGE_* environment values over settings.
func applyEnvOverrides(settings map[string]string) {
	overrides := map[string]string{
		"provider":    os.Getenv("VIDEOFORGE_PROVIDER"),
		"model":       os.Getenv("VIDEOFORGE_MODEL"),
		"duration":    os.Getenv("VIDEOFORGE_DURATION"),
		"aspectRatio": os.Getenv("VIDEOFORGE_ASPECT_RATIO"),
		"apiKey":      os.Getenv("VIDEOFORGE_API_KEY"),
	}
	for key, value := range overrides {
		if value != "" {
			settings[key] = value
		}
	}
}

// doctorCommand validates demo configuration.
func doctorCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check VideoForge demo configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			settings, err := loadDemoSettings(opts.Config)
			if err != nil {
				return err
			}
			applyEnvOverrides(settings)
			if err := validateDemoSettings(settings); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK: settings valid")
			if settings["apiKey"] != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "OK: own API key configured")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "OK: using hosted credits")
			}
			return nil
		},
	}
}

// validateDemoSettings rejects values outside the declared schema enums.
func validateDemoSettings(settings map[string]string) error {
	allowed := map[string][]string{
		"provider":    {"replicate", "custom"},
		"model":       {"minimax-video", "wan-2.1", "kling-1.6", "luma-ray2"},
		"duration":    {"3", "5", "10"},
		"aspectRatio": {"16:9", "9:16", "1:1"},
	}
	for key, values := range allowed {
		value := settings[key]
		if value == "" {
			continue
		}
		if !containsString(values, value) {
			return fmt.Errorf("invalid %s: %q (allowed: %s)", key, value, strings.Join(values, ", "))
		}
	}
	return nil
}

// containsString reports whether the list contains the value.
func containsString(values []string, value string) bool {
	for _, entry := range values {
		if entry == value {
			return true
		}
	}
	return false
}
