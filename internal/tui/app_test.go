package tui

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"log/slog"

	"canvas-cli/internal/agent"
	"canvas-cli/internal/block"
	"canvas-cli/internal/canvas"
)

func testModel() appModel {
	ti := textinput.New()
	ti.Placeholder = "Ask anything…"
	m := appModel{
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		search:     ti,
		controller: canvas.NewController(),
		forms:      block.NewFormSet(),
		registry:   block.DefaultRegistry(),
		themeColor: block.DefaultThemeColor,
		width:      100,
		height:     32,
		searched:   true,
		busy:       true,
	}
	return m
}

func cardEvent(title string) agent.CardEvent {
	return agent.CardEvent{
		Title: title,
		Content: []any{
			map[string]any{"type": "markdown", "data": map[string]any{"content": "hello"}},
		},
	}
}

func TestApplyCardEventCreatesWidget(t *testing.T) {
	m := testModel()
	m, _ = m.applyEvent(cardEvent("Weather"))

	if m.controller.Len() != 1 {
		t.Fatalf("widgets = %d, want 1", m.controller.Len())
	}
	w := m.controller.Widgets()[0]
	if w.Title != "Weather" || w.Type != canvas.TypeDynamicCard {
		t.Fatalf("widget = %+v", w)
	}
	if w.Data["content"] == nil {
		t.Fatal("content payload not stored")
	}
}

func TestApplyCardEventClearResetsForms(t *testing.T) {
	m := testModel()
	m, _ = m.applyEvent(cardEvent("Survey"))
	wid := m.controller.Widgets()[0].ID
	m.forms.Get(wid, block.FormBlock{Action: "submit_survey"})

	ev := cardEvent("Fresh Start")
	ev.ClearHistory = true
	m, _ = m.applyEvent(ev)

	if m.controller.Len() != 1 {
		t.Fatalf("widgets = %d, want 1", m.controller.Len())
	}
	if m.controller.Widgets()[0].Pos != (canvas.Point{}) {
		t.Fatalf("cleared widget not at origin: %+v", m.controller.Widgets()[0].Pos)
	}
	if _, ok := m.forms.First(wid); ok {
		t.Fatal("old form state survived clear")
	}
}

func TestApplyDeleteEventReleasesFocusAndForms(t *testing.T) {
	m := testModel()
	m, _ = m.applyEvent(cardEvent("Survey"))
	wid := m.controller.Widgets()[0].ID
	m.forms.Get(wid, block.FormBlock{Action: "submit_survey"})
	m.focus = focusCanvas
	m.focusedID = wid

	m, _ = m.applyEvent(agent.DeleteCardEvent{Title: "surv"})

	if m.controller.Len() != 0 {
		t.Fatalf("widgets = %d, want 0", m.controller.Len())
	}
	if m.focusedID != "" || m.focus != focusSearch {
		t.Fatal("focus not released after delete")
	}
	if _, ok := m.forms.First(wid); ok {
		t.Fatal("form state survived delete")
	}
}

func TestApplyThemeEventValidatesColor(t *testing.T) {
	m := testModel()
	m, _ = m.applyEvent(agent.ThemeEvent{Color: "#16A34A"})
	if m.themeColor != "#16A34A" {
		t.Fatalf("themeColor = %q", m.themeColor)
	}
	m, _ = m.applyEvent(agent.ThemeEvent{Color: "tomato"})
	if m.themeColor != "#16A34A" {
		t.Fatalf("malformed color replaced theme: %q", m.themeColor)
	}
}

func TestApplyTurnLifecycle(t *testing.T) {
	m := testModel()
	m, _ = m.applyEvent(agent.TextEvent{Text: "Here you go.\nMore detail."})
	if m.status != "Here you go." || m.statusIsErr {
		t.Fatalf("status = %q err=%v", m.status, m.statusIsErr)
	}

	m, _ = m.applyEvent(agent.ErrorEvent{Err: errors.New("api: boom")})
	if !m.statusIsErr {
		t.Fatal("error event not flagged")
	}

	m, _ = m.applyEvent(agent.TurnDoneEvent{})
	if m.busy {
		t.Fatal("busy not cleared on turn done")
	}
}

func TestMousePressFocusesAndDrags(t *testing.T) {
	m := testModel()
	m, _ = m.applyEvent(cardEvent("Weather"))
	wid := m.controller.Widgets()[0].ID

	// Press on the title row grabs the frame.
	mm, _ := m.updateMouse(tea.MouseMsg{
		X: 5, Y: canvasTop + 1,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	m = mm.(appModel)
	if m.focusedID != wid || m.focus != focusCanvas {
		t.Fatalf("press did not focus widget, focusedID=%q", m.focusedID)
	}
	if !m.drag.active {
		t.Fatal("press on title row did not start a drag")
	}

	mm, _ = m.updateMouse(tea.MouseMsg{X: 25, Y: canvasTop + 9, Action: tea.MouseActionMotion})
	m = mm.(appModel)
	w, _ := m.controller.ByID(wid)
	if w.Pos.X != 20 || w.Pos.Y != 8 {
		t.Fatalf("drag moved widget to %+v, want (20,8)", w.Pos)
	}

	mm, _ = m.updateMouse(tea.MouseMsg{X: 25, Y: canvasTop + 9, Action: tea.MouseActionRelease})
	m = mm.(appModel)
	if m.drag.active {
		t.Fatal("release did not end the drag")
	}
}

func TestMousePressOnCloseRemovesWidget(t *testing.T) {
	m := testModel()
	m, _ = m.applyEvent(cardEvent("Weather"))

	layouts := m.computeLayouts()
	l := layouts[0]
	mm, _ := m.updateMouse(tea.MouseMsg{
		X: l.x + l.w - 3, Y: canvasTop + l.y + 1,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	m = mm.(appModel)
	if m.controller.Len() != 0 {
		t.Fatal("close control did not remove the widget")
	}
}

func TestMousePressPromotesTopmostOverlap(t *testing.T) {
	m := testModel()
	m, _ = m.applyEvent(cardEvent("Under"))
	m, _ = m.applyEvent(cardEvent("Over"))
	under := m.controller.Widgets()[0]
	over := m.controller.Widgets()[1]

	// Stack both at the same spot; the later (higher z) one must win the hit.
	m.controller.SetPosition(under.ID, canvas.Point{X: 0, Y: 0})
	m.controller.SetPosition(over.ID, canvas.Point{X: 0, Y: 0})

	mm, _ := m.updateMouse(tea.MouseMsg{
		X: 5, Y: canvasTop + 1,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	m = mm.(appModel)
	if m.focusedID != over.ID {
		t.Fatalf("focused %q, want topmost %q", m.focusedID, over.ID)
	}
}

func TestViewComposesWidgetsOverCanvas(t *testing.T) {
	m := testModel()
	m.busy = false
	m, _ = m.applyEvent(cardEvent("Weather Now"))

	out := m.View()
	if !strings.Contains(out, "Weather Now") {
		t.Fatalf("widget title missing from view")
	}
	if !strings.Contains(out, "✦ canvas") {
		t.Fatalf("top bar missing from view")
	}
	lines := strings.Split(out, "\n")
	if len(lines) != m.height {
		t.Fatalf("view has %d lines, want %d", len(lines), m.height)
	}
}

func TestLandingViewCentersSearch(t *testing.T) {
	m := testModel()
	m.searched = false
	m.search.Placeholder = "Ask anything…"

	out := m.View()
	if !strings.Contains(out, "✦ canvas") {
		t.Fatal("logo missing from landing view")
	}
	lines := strings.Split(out, "\n")
	if len(lines) != m.height {
		t.Fatalf("landing view has %d lines, want %d", len(lines), m.height)
	}
}
