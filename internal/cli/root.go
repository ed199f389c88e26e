package cli

import (
	"fmt"
	"os"
	"strings"

	"canvas-cli/internal/agent"
	"canvas-cli/internal/config"
	"canvas-cli/internal/format"
	"canvas-cli/internal/logging"
	"canvas-cli/internal/transcript"
	"canvas-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	Model      string
	DataDir    string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "canvas",
		Short:        "Agent canvas: search-style TUI where answers land as floating widgets",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive canvas (needs ANTHROPIC_API_KEY)
  canvas

  # Check the environment before a session
  canvas doctor

  # Review what the agent said last session
  canvas transcript -n 20
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive canvas.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runCanvas(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("CANVAS_CONFIG", ""), "Path to config file (default: ~/.canvas/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Model, "model", "", "Model id (overrides config and CANVAS_MODEL)")
	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "Data directory for transcript and logs (overrides config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CANVAS_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newVersionCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newTranscriptCmd(app))

	return cmd
}

// loadConfig resolves the effective config: file, then env, then flags.
func loadConfig(app *App) (config.Config, error) {
	path := app.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if app.Model != "" {
		cfg.Model = app.Model
	}
	if app.DataDir != "" {
		cfg.DataDir = app.DataDir
	}
	return cfg, nil
}

func runCanvas(cmd *cobra.Command, app *App) error {
	cfg, err := loadConfig(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return writeErr(cmd, fmt.Errorf("ANTHROPIC_API_KEY is not set; the canvas needs it to talk to the agent"))
	}

	log, closeLog, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog.Close()

	ctx := cmd.Context()

	ts, err := transcript.Open(ctx, cfg.TranscriptPath())
	if err != nil {
		return writeErr(cmd, err)
	}
	defer ts.Close()

	bridge := agent.New(agent.Options{
		Model:      cfg.Model,
		MaxTokens:  cfg.MaxTokens,
		Transcript: ts,
		Logger:     log,
	})

	return tui.Run(ctx, bridge, cfg.ThemeColor, log)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
