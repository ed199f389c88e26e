package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"log/slog"

	"canvas-cli/internal/agent"
	"canvas-cli/internal/block"
	"canvas-cli/internal/canvas"
)

// The canvas occupies everything between the top bar and the footer line.
const canvasTop = 2

type focusArea int

const (
	focusSearch focusArea = iota
	focusCanvas
)

type dragState struct {
	id     string
	offX   int
	offY   int
	active bool
}

// bridgeEventMsg wraps one agent event pulled off the bridge channel.
type bridgeEventMsg struct{ ev agent.Event }

type appModel struct {
	ctx    context.Context
	log    *slog.Logger
	bridge *agent.Bridge

	controller *canvas.Controller
	forms      *block.FormSet
	registry   *block.Registry

	// themeColor is the session default accent; set_theme swaps it. Cards
	// carrying their own design token override it per card.
	themeColor string

	search      textinput.Model
	spin        spinner.Model
	busy        bool
	searched    bool
	status      string
	statusIsErr bool

	focus     focusArea
	focusedID string
	drag      dragState

	width  int
	height int
}

func newAppModel(ctx context.Context, bridge *agent.Bridge, themeColor string, log *slog.Logger) appModel {
	ti := textinput.New()
	ti.Prompt = "❯ "
	ti.Placeholder = "Ask anything…"
	ti.CharLimit = 512
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return appModel{
		ctx:        ctx,
		log:        log,
		bridge:     bridge,
		controller: canvas.NewController(),
		forms:      block.NewFormSet(),
		registry:   block.DefaultRegistry(),
		themeColor: themeColor,
		search:     ti,
		spin:       sp,
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenEvents(m.bridge.Events()))
}

// listenEvents pulls the next bridge event. Re-armed after every receipt so
// the channel drains through the update loop, one event per cycle.
func listenEvents(ch <-chan agent.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return bridgeEventMsg{ev: ev}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = searchWidth(m.width)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case bridgeEventMsg:
		var cmd tea.Cmd
		m, cmd = m.applyEvent(msg.ev)
		return m, tea.Batch(cmd, listenEvents(m.bridge.Events()))

	case block.SubmitCompleteMsg:
		if st, ok := m.forms.ByKey(msg.Key); ok {
			st.MarkSubmitted()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.focus == focusSearch {
		return m.updateSearchKey(msg)
	}
	return m.updateCanvasKey(msg)
}

func (m appModel) updateSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		q := strings.TrimSpace(m.search.Value())
		if q == "" || m.busy {
			return m, nil
		}
		return m.startQuery(q)
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			return m, nil
		}
		return m, tea.Quit
	case "tab":
		if top, ok := m.topWidget(); ok {
			return m.focusWidget(top.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m appModel) updateCanvasKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w, ok := m.controller.ByID(m.focusedID)
	if !ok {
		m.focus = focusSearch
		m.search.Focus()
		return m, textinput.Blink
	}
	st, hasForm := m.forms.First(w.ID)

	switch msg.String() {
	case "esc":
		m.focus = focusSearch
		m.focusedID = ""
		m.search.Focus()
		return m, textinput.Blink

	case "ctrl+w":
		m.closeWidget(w.ID)
		if top, ok := m.topWidget(); ok {
			return m.focusWidget(top.ID)
		}
		m.focus = focusSearch
		m.search.Focus()
		return m, textinput.Blink

	case "tab", "shift+tab":
		if hasForm {
			delta := 1
			if msg.String() == "shift+tab" {
				delta = -1
			}
			return m, st.CycleFocus(delta)
		}
		if next, ok := m.nextWidget(w.ID); ok {
			return m.focusWidget(next)
		}
		return m, nil

	case "enter":
		if !hasForm {
			return m, nil
		}
		if st.OnSubmitControl() {
			return m.submitForm(st, w.Title)
		}
		if ft, fok := st.FocusedFieldType(); fok {
			switch ft {
			case block.FieldTextarea, block.FieldSelect:
				return m, st.Update(msg)
			}
		}
		return m, st.CycleFocus(1)

	case "ctrl+left", "ctrl+right":
		m.resizeWidget(w, msg.String() == "ctrl+right")
		return m, nil
	}

	if hasForm {
		return m, st.Update(msg)
	}
	return m, nil
}

func (m appModel) startQuery(q string) (tea.Model, tea.Cmd) {
	m.searched = true
	m.busy = true
	m.status = ""
	m.statusIsErr = false
	m.log.Info("query", "text", q)
	send := func() tea.Msg {
		m.bridge.SendUser(m.ctx, q)
		return nil
	}
	return m, tea.Batch(m.spin.Tick, send)
}

// submitForm fires the form's action exactly once and forwards the resulting
// submission to the agent as a synthetic user message.
func (m appModel) submitForm(st *block.FormState, cardTitle string) (tea.Model, tea.Cmd) {
	var sub *agent.Submission
	settle := st.Submit(func(action string, payload map[string]any) {
		sub = &agent.Submission{Action: action, Payload: payload, CardTitle: cardTitle}
	})
	if sub == nil {
		return m, settle
	}
	m.busy = true
	captured := *sub
	m.log.Info("form submit", "action", captured.Action, "card", captured.CardTitle)
	send := func() tea.Msg {
		m.bridge.SendSubmission(m.ctx, captured)
		return nil
	}
	return m, tea.Batch(settle, m.spin.Tick, send)
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.searched {
		return m, nil
	}
	px, py := msg.X, msg.Y-canvasTop

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y < canvasTop {
			m.focus = focusSearch
			m.focusedID = ""
			m.search.Focus()
			return m, textinput.Blink
		}
		layouts := m.computeLayouts()
		for i := len(layouts) - 1; i >= 0; i-- {
			l := layouts[i]
			if !l.contains(px, py) {
				continue
			}
			if l.onClose(px, py) {
				m.closeWidget(l.id)
				return m, nil
			}
			m.controller.BringToFront(l.id)
			m.focus = focusCanvas
			m.focusedID = l.id
			m.search.Blur()
			if l.inTitleBar(px, py) {
				m.drag = dragState{id: l.id, offX: px - l.x, offY: py - l.y, active: true}
			}
			return m, nil
		}
		m.focus = focusSearch
		m.focusedID = ""
		m.search.Focus()
		return m, textinput.Blink

	case tea.MouseActionMotion:
		if !m.drag.active {
			return m, nil
		}
		m.controller.SetPosition(m.drag.id, m.clampPos(px-m.drag.offX, py-m.drag.offY))
		return m, nil

	case tea.MouseActionRelease:
		m.drag.active = false
		return m, nil
	}
	return m, nil
}

func (m *appModel) closeWidget(id string) {
	if removed, ok := m.controller.Close(id, ""); ok {
		m.forms.Drop(removed)
	}
	if m.focusedID == id {
		m.focusedID = ""
	}
	if m.drag.id == id {
		m.drag.active = false
	}
}

func (m appModel) focusWidget(id string) (tea.Model, tea.Cmd) {
	m.focus = focusCanvas
	m.focusedID = id
	m.search.Blur()
	m.controller.BringToFront(id)
	if st, ok := m.forms.First(id); ok {
		return m, st.CycleFocus(0)
	}
	return m, nil
}

func (m appModel) topWidget() (canvas.Widget, bool) {
	ws := m.controller.Widgets()
	if len(ws) == 0 {
		return canvas.Widget{}, false
	}
	return ws[len(ws)-1], true
}

// nextWidget cycles through the stack in paint order.
func (m appModel) nextWidget(id string) (string, bool) {
	ws := m.controller.Widgets()
	if len(ws) < 2 {
		return "", false
	}
	for i, w := range ws {
		if w.ID == id {
			return ws[(i+1)%len(ws)].ID, true
		}
	}
	return ws[0].ID, true
}

func (m appModel) resizeWidget(w canvas.Widget, grow bool) {
	cfg, _ := canvas.LookupType(w.Type)
	if !cfg.Resizable {
		return
	}
	cur := frameWidth(&w, m.canvasWidth())
	step := 4
	if !grow {
		step = -4
	}
	nw := cur + step
	if cfg.MinWidth > 0 && nw < cfg.MinWidth {
		nw = cfg.MinWidth
	}
	if nw < minFrameWidth {
		nw = minFrameWidth
	}
	if cw := m.canvasWidth(); cw > 0 && nw > cw {
		nw = cw
	}
	size := canvas.Size{Width: nw, Auto: true}
	if w.Size != nil {
		size.Height = w.Size.Height
		size.Auto = w.Size.Auto
	}
	m.controller.SetSize(w.ID, size)
}

// applyEvent folds one bridge event into the canvas state.
func (m appModel) applyEvent(ev agent.Event) (appModel, tea.Cmd) {
	switch ev := ev.(type) {
	case agent.CardEvent:
		if ev.ClearHistory {
			// The collection is about to be replaced wholesale; any form
			// state belongs to widgets that no longer exist.
			m.forms = block.NewFormSet()
		}
		data := map[string]any{"title": ev.Title}
		if ev.Content != nil {
			data["content"] = ev.Content
		}
		if ev.Design != nil {
			data["design"] = ev.Design
		}
		w := m.controller.Upsert(canvas.UpsertRequest{
			Type:  canvas.TypeDynamicCard,
			Title: ev.Title,
			Data:  data,
			ID:    ev.ID,
			Clear: ev.ClearHistory,
			Size:  ev.Size,
		})
		m.log.Info("card upsert", "id", w.ID, "title", w.Title)
		return m, nil

	case agent.DeleteCardEvent:
		if removed, ok := m.controller.Close(ev.ID, ev.Title); ok {
			m.forms.Drop(removed)
			if m.focusedID == removed {
				m.focusedID = ""
				m.focus = focusSearch
				m.search.Focus()
			}
		}
		return m, nil

	case agent.ThemeEvent:
		if c := block.NormalizeHexColor(ev.Color); c != "" {
			m.themeColor = c
		}
		return m, nil

	case agent.TextEvent:
		m.status = firstLine(ev.Text)
		m.statusIsErr = false
		return m, nil

	case agent.ErrorEvent:
		m.status = firstLine(ev.Err.Error())
		m.statusIsErr = true
		m.log.Error("turn failed", "err", ev.Err)
		return m, nil

	case agent.TurnDoneEvent:
		m.busy = false
		return m, nil
	}
	return m, nil
}

// computeLayouts renders every frame and resolves its rect, ascending z.
func (m appModel) computeLayouts() []frameLayout {
	accent := accentColor(m.themeColor)
	cw := m.canvasWidth()
	ws := m.controller.Widgets()
	out := make([]frameLayout, 0, len(ws))
	for i := range ws {
		w := &ws[i]
		focused := w.ID == m.focusedID
		view := renderFrame(w, frameRenderContext{
			CanvasWidth: cw,
			Accent:      accent,
			Focused:     focused,
			Registry:    m.registry,
			Forms:       m.forms,
		})
		out = append(out, frameLayout{
			id:   w.ID,
			x:    w.Pos.X,
			y:    w.Pos.Y,
			w:    lipgloss.Width(view),
			h:    lipgloss.Height(view),
			view: view,
		})
	}
	return out
}

func (m appModel) canvasWidth() int { return m.width }

func (m appModel) canvasHeight() int {
	h := m.height - canvasTop - 1
	if h < 0 {
		h = 0
	}
	return h
}

func (m appModel) clampPos(x, y int) canvas.Point {
	maxX := m.canvasWidth() - 6
	maxY := m.canvasHeight() - 2
	if x < 0 {
		x = 0
	}
	if maxX >= 0 && x > maxX {
		x = maxX
	}
	if y < 0 {
		y = 0
	}
	if maxY >= 0 && y > maxY {
		y = maxY
	}
	return canvas.Point{X: x, Y: y}
}

func searchWidth(total int) int {
	w := total - 24
	if w > 56 {
		w = 56
	}
	if w < 16 {
		w = 16
	}
	return w
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if !m.searched {
		return m.viewLanding()
	}

	var b strings.Builder
	b.WriteString(m.viewTopBar())
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	grid := blankCanvas(m.canvasWidth(), m.canvasHeight())
	for _, l := range m.computeLayouts() {
		grid = overlay(grid, l.view, l.x, l.y)
	}
	b.WriteString(strings.Join(grid, "\n"))
	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m appModel) viewLanding() string {
	accent := accentColor(m.themeColor)
	logo := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("✦ canvas")
	tag := styleMuted().Render("ask, and widgets appear")

	inputW := searchWidth(m.width) + 8
	if inputW > m.width-4 {
		inputW = m.width - 4
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(inputW).
		Render(m.search.View())

	content := lipgloss.JoinVertical(lipgloss.Center, logo, "", box, "", tag)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m appModel) viewTopBar() string {
	accent := accentColor(m.themeColor)
	logo := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("✦ canvas")

	right := ""
	if m.busy {
		right = m.spin.View() + styleMuted().Render("thinking")
	}

	bar := " " + logo + "  " + m.search.View()
	gap := m.width - xansi.StringWidth(bar) - xansi.StringWidth(right) - 1
	if gap < 1 {
		gap = 1
	}
	return xansi.Cut(bar+strings.Repeat(" ", gap)+right, 0, m.width)
}

func (m appModel) viewFooter() string {
	help := "tab focus · drag to move · ctrl+w close · esc search · ctrl+c quit"
	left := m.status
	if left != "" {
		if m.statusIsErr {
			left = lipgloss.NewStyle().Foreground(colorErrorFg).Render(left)
		} else {
			left = styleMuted().Render(left)
		}
	}
	rightStyled := styleMuted().Render(help)
	gap := m.width - xansi.StringWidth(m.status) - xansi.StringWidth(help) - 2
	if gap < 1 {
		gap = 1
	}
	return xansi.Cut(" "+left+strings.Repeat(" ", gap)+rightStyled, 0, m.width)
}
