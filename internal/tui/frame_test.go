package tui

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"canvas-cli/internal/block"
	"canvas-cli/internal/canvas"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	lipgloss.SetHasDarkBackground(false)
	os.Exit(m.Run())
}

func TestFrameWidthResolution(t *testing.T) {
	w := &canvas.Widget{Type: canvas.TypeDynamicCard}
	if got := frameWidth(w, 120); got != defaultFrameWidth {
		t.Fatalf("default width = %d, want %d", got, defaultFrameWidth)
	}

	w.Size = &canvas.Size{Width: 60}
	if got := frameWidth(w, 120); got != 60 {
		t.Fatalf("hinted width = %d, want 60", got)
	}

	// Hints below the floor are raised.
	w.Size = &canvas.Size{Width: 4}
	if got := frameWidth(w, 120); got < minFrameWidth {
		t.Fatalf("width %d below floor %d", got, minFrameWidth)
	}

	// Narrow canvases clamp the frame.
	w.Size = &canvas.Size{Width: 80}
	if got := frameWidth(w, 30); got != 30 {
		t.Fatalf("clamped width = %d, want 30", got)
	}
}

func TestRenderFrameChrome(t *testing.T) {
	w := &canvas.Widget{
		ID:    "w1",
		Type:  canvas.TypeDynamicCard,
		Title: "Weather",
		Data: map[string]any{
			"title": "Weather",
			"content": []any{
				map[string]any{"type": "markdown", "data": map[string]any{"content": "Sunny."}},
			},
		},
	}
	out := renderFrame(w, frameRenderContext{
		CanvasWidth: 100,
		Accent:      lipgloss.Color(block.DefaultThemeColor),
		Registry:    block.DefaultRegistry(),
		Forms:       block.NewFormSet(),
	})

	if lipgloss.Width(out) != defaultFrameWidth {
		t.Fatalf("frame width = %d, want %d", lipgloss.Width(out), defaultFrameWidth)
	}
	p := xansi.Strip(out)
	if !strings.Contains(p, "Weather") {
		t.Fatalf("title missing:\n%s", p)
	}
	if !strings.Contains(p, "✕") {
		t.Fatalf("close control missing:\n%s", p)
	}
	if !strings.Contains(p, "Sunny.") {
		t.Fatalf("body missing:\n%s", p)
	}
}

func TestRenderFrameLongTitleTruncates(t *testing.T) {
	w := &canvas.Widget{
		ID:    "w1",
		Type:  canvas.TypeDynamicCard,
		Title: strings.Repeat("Quarterly Revenue Report ", 4),
		Data:  map[string]any{},
		Size:  &canvas.Size{Width: 40},
	}
	out := renderFrame(w, frameRenderContext{
		CanvasWidth: 100,
		Registry:    block.DefaultRegistry(),
		Forms:       block.NewFormSet(),
	})
	if lipgloss.Width(out) != 40 {
		t.Fatalf("frame width = %d, want 40", lipgloss.Width(out))
	}
	if !strings.Contains(xansi.Strip(out), "…") {
		t.Fatalf("long title not truncated:\n%s", xansi.Strip(out))
	}
}

func TestRenderFrameExplicitHeightClamps(t *testing.T) {
	w := &canvas.Widget{
		ID:    "w1",
		Type:  canvas.TypeDynamicCard,
		Title: "Tall",
		Data: map[string]any{
			"content": []any{
				map[string]any{"type": "markdown", "data": map[string]any{"content": strings.Repeat("line\n\n", 20)}},
			},
		},
		Size: &canvas.Size{Width: 40, Height: 8},
	}
	out := renderFrame(w, frameRenderContext{
		CanvasWidth: 100,
		Registry:    block.DefaultRegistry(),
		Forms:       block.NewFormSet(),
	})
	if h := lipgloss.Height(out); h != 8 {
		t.Fatalf("frame height = %d, want 8", h)
	}
}

func TestFrameHitRegions(t *testing.T) {
	l := frameLayout{id: "w1", x: 10, y: 5, w: 30, h: 10}

	if !l.contains(10, 5) || !l.contains(39, 14) {
		t.Fatal("corners should hit")
	}
	if l.contains(40, 5) || l.contains(10, 15) {
		t.Fatal("outside should miss")
	}

	// Close control sits at the right end of the title row.
	if !l.onClose(37, 6) {
		t.Fatal("close control should hit")
	}
	if l.onClose(37, 7) || l.onClose(12, 6) {
		t.Fatal("close control hit outside its cell")
	}

	// Title row drags, excluding the close control.
	if !l.inTitleBar(12, 6) || !l.inTitleBar(12, 5) {
		t.Fatal("title bar should hit")
	}
	if l.inTitleBar(37, 6) {
		t.Fatal("close control should not drag")
	}
	if l.inTitleBar(12, 8) {
		t.Fatal("body should not drag")
	}
}
