// Package cmd provides CLI commands for the spaces tool.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openspaces/spaces-cli/client"
	"github.com/openspaces/spaces-cli/config"
	"github.com/openspaces/spaces-cli/credentials"
	"github.com/openspaces/spaces-cli/pkg/audio"
	"github.com/openspaces/spaces-cli/pkg/logging"
	"github.com/openspaces/spaces-cli/pkg/transcript"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	expertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	noviceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	otherSpeakerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("135"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Global flags, registered on the root command.
var (
	flagConfigFile string
	flagServer     string
	flagTimeout    time.Duration
	flagOutput     string
	flagDebug      bool
)

// RegisterGlobalFlags attaches the shared persistent flags to the root
// command.
func RegisterGlobalFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVar(&flagConfigFile, "config", "", "config file (default is ~/.spaces/config.yaml)")
	pf.StringVar(&flagServer, "server", "", "knowledge service base URL")
	pf.DurationVar(&flagTimeout, "timeout", 0, "request timeout (e.g., 30s, 1m)")
	pf.StringVarP(&flagOutput, "output", "o", "", "output format: text, json, yaml")
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

// loadConfigDefault loads configuration from the --config path when given,
// otherwise from the standard location.
func loadConfigDefault() (*config.CLIConfig, error) {
	if flagConfigFile != "" {
		return config.LoadConfigFromPath(flagConfigFile)
	}
	return config.LoadConfig()
}

// applyGlobalFlags overrides config values with any set global flags.
func applyGlobalFlags(cfg *config.CLIConfig) {
	if flagServer != "" {
		cfg.ServiceURL = flagServer
	}
	if flagTimeout != 0 {
		cfg.Timeout = flagTimeout
	}
	if flagOutput != "" {
		cfg.OutputFormat = config.OutputFormat(flagOutput)
	}
	if flagDebug {
		cfg.Debug = true
	}
}

// Deps holds the injectable dependencies shared by all command groups.
// Tests replace LoadConfig and InitClient with scripted versions.
type Deps struct {
	LoadConfig func() (*config.CLIConfig, error)
	InitClient func(cfg *config.CLIConfig) (*client.Client, error)
}

// DefaultDeps returns the production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		LoadConfig: loadConfigDefault,
		InitClient: initClient,
	}
}

// initClient builds a service client from the resolved configuration.
func initClient(cfg *config.CLIConfig) (*client.Client, error) {
	opts := client.DefaultOptions()
	opts.RequestTimeout = cfg.Timeout
	opts.Logger = newLogger(cfg)
	opts.APIKey = activeAPIKey()
	return client.NewClient(cfg.ServiceURL, opts), nil
}

// activeAPIKey resolves the API key to send with requests. An unreachable
// keyring degrades to unauthenticated rather than blocking the command.
func activeAPIKey() string {
	if key := os.Getenv("SPACES_API_KEY"); key != "" {
		return key
	}
	store, err := credentials.NewStore()
	if err != nil {
		return ""
	}
	key, err := store.ActiveAPIKey()
	if err != nil {
		return ""
	}
	return key
}

// newLogger builds the command logger; debug mode lowers the level.
func newLogger(cfg *config.CLIConfig) logging.Logger {
	logCfg := logging.DefaultConfig()
	if cfg.Debug {
		logCfg.Level = logging.LevelDebug
	}
	return logging.NewLogger(logCfg)
}

// resolveConfig loads configuration through deps and applies the global
// flag overrides.
func resolveConfig(deps *Deps) (*config.CLIConfig, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	applyGlobalFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printOutput renders v in the requested format. textFn renders the
// human-readable form; json and yaml marshal v directly.
func printOutput(w io.Writer, format config.OutputFormat, v interface{}, textFn func() error) error {
	switch format {
	case config.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputFormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return textFn()
	}
}

// speakerStyle returns the display style for a transcript turn.
func speakerStyle(s transcript.Speaker) lipgloss.Style {
	switch s {
	case transcript.SpeakerExpert:
		return expertStyle
	case transcript.SpeakerNovice:
		return noviceStyle
	default:
		return otherSpeakerStyle
	}
}

// renderTranscript writes a parsed transcript as a speaker-labeled dialogue,
// or the raw text verbatim when no structure could be recovered.
func renderTranscript(w io.Writer, result transcript.Result) {
	if !result.Structured() {
		if result.Raw != "" {
			fmt.Fprintln(w, result.Raw)
		}
		return
	}
	for _, turn := range result.Turns {
		label := speakerStyle(turn.Speaker).Render(turn.DisplayName() + ":")
		fmt.Fprintf(w, "%s %s\n", label, turn.Text)
	}
}

// renderPlayerState writes a one-line progress readout.
func renderPlayerState(w io.Writer, st audio.State) {
	status := "paused"
	if st.Playing {
		status = "playing"
	}
	fmt.Fprintf(w, "[%s] %s / %s\n",
		status,
		audio.FormatTime(st.CurrentTime),
		audio.FormatTime(st.Duration))
}
