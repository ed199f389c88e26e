// Package tui renders the agent canvas: a search bar that hands queries to
// the agent bridge, and a floating-widget canvas where the agent's cards
// land as draggable, closable frames.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"canvas-cli/internal/agent"
)

// Run starts the interactive canvas and blocks until the user quits.
func Run(ctx context.Context, bridge *agent.Bridge, themeColor string, log *slog.Logger) error {
	applyColorProfilePreference()
	applyThemePreference()

	p := tea.NewProgram(
		newAppModel(ctx, bridge, themeColor, log),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
