package cli

import (
	"os"
	"path/filepath"

	"canvas-cli/internal/block"
	"canvas-cli/internal/transcript"

	"github.com/spf13/cobra"
)

// doctorCheck is one environment probe. Level is "ok", "warn" or "error".
type doctorCheck struct {
	Name   string `json:"name"`
	Level  string `json:"level"`
	Detail string `json:"detail,omitempty"`
}

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the environment the canvas needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var checks []doctorCheck

			if os.Getenv("ANTHROPIC_API_KEY") == "" {
				checks = append(checks, doctorCheck{Name: "api-key", Level: "error", Detail: "ANTHROPIC_API_KEY is not set"})
			} else {
				checks = append(checks, doctorCheck{Name: "api-key", Level: "ok"})
			}

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				checks = append(checks, doctorCheck{Name: "data-dir", Level: "error", Detail: err.Error()})
			} else if probe, err := os.CreateTemp(cfg.DataDir, ".doctor-*"); err != nil {
				checks = append(checks, doctorCheck{Name: "data-dir", Level: "error", Detail: err.Error()})
			} else {
				probe.Close()
				os.Remove(probe.Name())
				checks = append(checks, doctorCheck{Name: "data-dir", Level: "ok", Detail: cfg.DataDir})
			}

			if ts, err := transcript.Open(cmd.Context(), cfg.TranscriptPath()); err != nil {
				checks = append(checks, doctorCheck{Name: "transcript-db", Level: "error", Detail: err.Error()})
			} else {
				ts.Close()
				checks = append(checks, doctorCheck{Name: "transcript-db", Level: "ok", Detail: filepath.Base(cfg.TranscriptPath())})
			}

			if block.NormalizeHexColor(cfg.ThemeColor) == "" {
				checks = append(checks, doctorCheck{Name: "theme-color", Level: "warn", Detail: cfg.ThemeColor + " is not a hex color; default will be used"})
			} else {
				checks = append(checks, doctorCheck{Name: "theme-color", Level: "ok"})
			}

			hasErrors := false
			for _, c := range checks {
				if c.Level == "error" {
					hasErrors = true
				}
			}

			if err := writeOut(cmd, app, map[string]any{
				"data": checks,
				"meta": map[string]any{
					"checks":    len(checks),
					"hasErrors": hasErrors,
				},
			}); err != nil {
				return err
			}

			if fail && hasErrors {
				return errDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
