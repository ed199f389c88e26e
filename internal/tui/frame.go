package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"canvas-cli/internal/block"
	"canvas-cli/internal/canvas"
)

// frameLayout is a rendered widget frame plus its outer rectangle on the
// canvas grid. Rects are recomputed from the controller state whenever the
// canvas repaints or a mouse press needs hit-testing.
type frameLayout struct {
	id      string
	x, y    int
	w, h    int
	view    string
	canGrow bool
}

func (l frameLayout) contains(px, py int) bool {
	return px >= l.x && px < l.x+l.w && py >= l.y && py < l.y+l.h
}

// The title bar is the row just inside the top border. The top border itself
// also drags, which makes grabbing a frame forgiving.
func (l frameLayout) inTitleBar(px, py int) bool {
	if py != l.y && py != l.y+1 {
		return false
	}
	return l.contains(px, py) && !l.onClose(px, py)
}

// onClose covers the ✕ control at the right edge of the title bar, with a
// cell of slack on each side.
func (l frameLayout) onClose(px, py int) bool {
	if py != l.y+1 {
		return false
	}
	return px >= l.x+l.w-4 && px <= l.x+l.w-2
}

const (
	defaultFrameWidth = 48
	minFrameWidth     = 20
)

// frameWidth resolves the outer width of a widget's frame from its size
// hint, the registry defaults for its type, and the available canvas width.
func frameWidth(w *canvas.Widget, canvasW int) int {
	cfg, _ := canvas.LookupType(w.Type)
	fw := defaultFrameWidth
	if cfg.DefaultSize.Width > 0 {
		fw = cfg.DefaultSize.Width
	}
	if w.Size != nil && w.Size.Width > 0 {
		fw = w.Size.Width
	}
	if cfg.MinWidth > 0 && fw < cfg.MinWidth {
		fw = cfg.MinWidth
	}
	if fw < minFrameWidth {
		fw = minFrameWidth
	}
	if canvasW > 0 && fw > canvasW {
		fw = canvasW
	}
	return fw
}

// renderFrame draws a widget's chrome and card content into a bordered box.
func renderFrame(w *canvas.Widget, rc frameRenderContext) string {
	fw := frameWidth(w, rc.CanvasWidth)
	innerW := fw - 2

	accent := rc.Accent
	card := block.DecodeCard(w.Data)
	if card.Design.ThemeColor != "" {
		accent = lipgloss.Color(card.Design.ThemeColor)
	}

	borderColor := colorFrameBorder
	if rc.Focused {
		borderColor = accent
	}

	title := w.Title
	if title == "" {
		title = card.Title
	}
	header := renderTitleBar(title, innerW, accent, rc.Focused)

	body := block.RenderCard(rc.Registry, card, block.Context{
		Width:    innerW - 2,
		Accent:   accent,
		WidgetID: w.ID,
		Forms:    rc.Forms,
		Emit:     rc.Emit,
	})

	content := header
	if body != "" {
		content += "\n" + lipgloss.NewStyle().Padding(0, 1).Width(innerW).Render(body)
	}
	if w.Size != nil && w.Size.Height > 0 && !w.Size.Auto {
		content = clampHeight(content, w.Size.Height-2)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(innerW).
		Render(content)
}

type frameRenderContext struct {
	CanvasWidth int
	Accent      lipgloss.Color
	Focused     bool
	Registry    *block.Registry
	Forms       *block.FormSet
	Emit        func(action string, payload map[string]any)
}

// renderTitleBar lays out "● Title … ✕" across the inner frame width.
func renderTitleBar(title string, innerW int, accent lipgloss.Color, focused bool) string {
	dot := lipgloss.NewStyle().Foreground(accent).Render("●")
	closeMark := styleMuted().Render("✕")

	// dot + space on the left, space + close mark on the right
	avail := innerW - 2 - 4
	if avail < 1 {
		avail = 1
	}
	label := title
	if xansi.StringWidth(label) > avail {
		label = xansi.Cut(label, 0, avail-1) + "…"
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	if !focused {
		titleStyle = lipgloss.NewStyle().Foreground(colorChromeMutedFg)
	}
	rendered := titleStyle.Render(label)

	gap := innerW - 2 - 2 - xansi.StringWidth(label) - 1
	if gap < 1 {
		gap = 1
	}
	return " " + dot + " " + rendered + strings.Repeat(" ", gap) + closeMark
}

// clampHeight truncates a block to at most h lines, marking the cut with an
// ellipsis row so hidden content is discoverable.
func clampHeight(s string, h int) string {
	if h < 1 {
		h = 1
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= h {
		return s
	}
	lines = lines[:h]
	lines[h-1] = styleMuted().Render(" …")
	return strings.Join(lines, "\n")
}
