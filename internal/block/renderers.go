package block

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Static renderers for the non-interactive block types. Each one absorbs bad
// input as an empty string; a card shell with zero visible content is a valid
// outcome.

func renderKeyValueBlock(b Block, ctx Context) string {
	kv, ok := b.(KeyValueBlock)
	if !ok || len(kv.Pairs) == 0 {
		return ""
	}

	keyStyle := lipgloss.NewStyle().Faint(true)
	valStyle := lipgloss.NewStyle().Foreground(ctx.Accent).Bold(true)

	// Two columns when they fit, one otherwise.
	colWidth := ctx.Width
	cols := 1
	if ctx.Width >= 44 {
		cols = 2
		colWidth = ctx.Width/2 - 1
	}

	cells := make([]string, 0, len(kv.Pairs))
	for _, p := range kv.Pairs {
		cell := keyStyle.Render(truncate(strings.ToUpper(p.Key), colWidth)) + "\n" +
			valStyle.Render(truncate(p.Value, colWidth))
		cells = append(cells, lipgloss.NewStyle().Width(colWidth).Render(cell))
	}

	var rows []string
	for i := 0; i < len(cells); i += cols {
		end := i + cols
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}
	return strings.Join(rows, "\n")
}

func renderImageBlock(b Block, ctx Context) string {
	img, ok := b.(ImageBlock)
	if !ok || img.URL == "" {
		return ""
	}
	// No inline image protocol; show a labeled placeholder that keeps the
	// reference usable (cmd-click in most terminals).
	inner := "🖼  " + truncate(img.URL, ctx.Width-6)
	if img.Caption != "" {
		inner += "\n" + lipgloss.NewStyle().Faint(true).Render(truncate(img.Caption, ctx.Width-6))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ctx.Accent).
		Padding(0, 1).
		Width(ctx.Width - 2).
		Render(inner)
}

func renderLinkBlock(b Block, ctx Context) string {
	l, ok := b.(LinkBlock)
	if !ok || l.URL == "" {
		return ""
	}
	label := l.Label
	if label == "" {
		label = l.URL
	}
	line := lipgloss.NewStyle().Foreground(ctx.Accent).Underline(true).Render(truncate(label, ctx.Width-3))
	if l.Label != "" {
		line += " " + lipgloss.NewStyle().Faint(true).Render(truncate(l.URL, ctx.Width-xansi.StringWidth(line)-2))
	}
	return "→ " + line
}

func renderFlashcardsBlock(b Block, ctx Context) string {
	fc, ok := b.(FlashcardsBlock)
	if !ok || len(fc.Items) == 0 {
		return ""
	}

	cols := 1
	cardWidth := ctx.Width - 2
	if ctx.Width >= 52 {
		cols = 2
		cardWidth = ctx.Width/2 - 3
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ctx.Accent).
		Padding(0, 1).
		Width(cardWidth)
	titleStyle := lipgloss.NewStyle().Bold(true)
	footStyle := lipgloss.NewStyle().Foreground(ctx.Accent)

	cells := make([]string, 0, len(fc.Items))
	for _, it := range fc.Items {
		title := it.Title
		if it.Icon != "" {
			title = it.Icon + " " + title
		}
		body := titleStyle.Render(truncate(title, cardWidth-2))
		if it.Description != "" {
			body += "\n" + lipgloss.NewStyle().Width(cardWidth-2).Render(it.Description)
		}
		if it.URL != "" {
			label := it.Label
			if label == "" {
				label = "Learn More"
			}
			body += "\n" + footStyle.Render(truncate(strings.ToUpper(label)+" ↗", cardWidth-2))
		}
		cells = append(cells, cardStyle.Render(body))
	}

	var rows []string
	for i := 0; i < len(cells); i += cols {
		end := i + cols
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}
