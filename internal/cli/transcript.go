package cli

import (
	"canvas-cli/internal/transcript"

	"github.com/spf13/cobra"
)

func newTranscriptCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Show recent conversation turns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			ts, err := transcript.Open(cmd.Context(), cfg.TranscriptPath())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ts.Close()

			turns, err := ts.Recent(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}

			return writeOut(cmd, app, map[string]any{
				"data": turns,
				"meta": map[string]any{"turns": len(turns)},
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of turns to show (newest last)")
	return cmd
}
