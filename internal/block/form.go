package block

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Phase is the one-way lifecycle of an interactive form:
// idle -> submitting -> submitted. There is no reset and no error path; the
// UI records local completion independent of any external acknowledgment.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSubmitted
)

// submitSettle is the cosmetic delay between emitting the action and showing
// the terminal submitted state (the original UI used 600ms).
const submitSettle = 500 * time.Millisecond

// SubmitCompleteMsg flips a submitting form to submitted. Delivered through
// the host program's update loop so the transition stays serialized with
// everything else.
type SubmitCompleteMsg struct {
	Key string
}

type fieldInput struct {
	spec     FieldSpec
	text     textinput.Model
	area     textarea.Model
	selected int
}

// FormState is the locally-persistent state of one form block instance:
// field values, focus, and submission phase. It survives card re-renders via
// the FormSet and dies with its widget.
type FormState struct {
	key   string
	spec  FormBlock
	phase Phase

	inputs []fieldInput
	// focus indexes inputs; len(inputs) is the submit control.
	focus int
}

func newFormState(key string, spec FormBlock) *FormState {
	st := &FormState{key: key, spec: spec}
	for _, f := range spec.Fields {
		in := fieldInput{spec: f}
		switch f.Type {
		case FieldTextarea:
			ta := textarea.New()
			ta.Placeholder = f.Placeholder
			ta.SetHeight(3)
			ta.CharLimit = 0
			ta.ShowLineNumbers = false
			in.area = ta
		case FieldSelect:
			in.selected = -1 // nothing chosen yet
		default:
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = f.Placeholder
			ti.CharLimit = 256
			if f.Type == FieldPassword {
				ti.EchoMode = textinput.EchoPassword
			}
			in.text = ti
		}
		st.inputs = append(st.inputs, in)
	}
	return st
}

func (st *FormState) Phase() Phase    { return st.phase }
func (st *FormState) Key() string     { return st.key }
func (st *FormState) Action() string  { return st.spec.Action }
func (st *FormState) FieldCount() int { return len(st.inputs) }

// OnSubmitControl reports whether focus sits on the submit button.
func (st *FormState) OnSubmitControl() bool { return st.focus == len(st.inputs) }

// FocusedFieldType reports the type of the focused field. ok is false on the
// submit control.
func (st *FormState) FocusedFieldType() (string, bool) {
	if st.focus >= len(st.inputs) {
		return "", false
	}
	return st.inputs[st.focus].spec.Type, true
}

// CycleFocus moves focus by delta across fields plus the submit control,
// wrapping at both ends.
func (st *FormState) CycleFocus(delta int) tea.Cmd {
	if st.phase != PhaseIdle {
		return nil
	}
	st.blurFocused()
	n := len(st.inputs) + 1
	st.focus = ((st.focus+delta)%n + n) % n
	return st.focusFocused()
}

func (st *FormState) blurFocused() {
	if st.focus >= len(st.inputs) {
		return
	}
	in := &st.inputs[st.focus]
	switch in.spec.Type {
	case FieldTextarea:
		in.area.Blur()
	case FieldSelect:
	default:
		in.text.Blur()
	}
}

func (st *FormState) focusFocused() tea.Cmd {
	if st.focus >= len(st.inputs) {
		return nil
	}
	in := &st.inputs[st.focus]
	switch in.spec.Type {
	case FieldTextarea:
		return in.area.Focus()
	case FieldSelect:
		return nil
	default:
		return in.text.Focus()
	}
}

// Update routes a message to the focused field. Select fields cycle their
// options on left/right (and enter, so keyboard-only flows work).
func (st *FormState) Update(msg tea.Msg) tea.Cmd {
	if st.phase != PhaseIdle || st.focus >= len(st.inputs) {
		return nil
	}
	in := &st.inputs[st.focus]
	switch in.spec.Type {
	case FieldSelect:
		if key, ok := msg.(tea.KeyMsg); ok && len(in.spec.Options) > 0 {
			n := len(in.spec.Options)
			switch key.String() {
			case "left", "shift+enter":
				in.selected = ((in.selected-1)%n + n) % n
			case "right", "enter", " ":
				in.selected = (in.selected + 1) % n
			}
		}
		return nil
	case FieldTextarea:
		var cmd tea.Cmd
		in.area, cmd = in.area.Update(msg)
		return cmd
	default:
		var cmd tea.Cmd
		in.text, cmd = in.text.Update(msg)
		return cmd
	}
}

// Values snapshots the current field values for the action payload.
func (st *FormState) Values() map[string]any {
	out := map[string]any{}
	for _, in := range st.inputs {
		switch in.spec.Type {
		case FieldSelect:
			if in.selected >= 0 && in.selected < len(in.spec.Options) {
				out[in.spec.Name] = in.spec.Options[in.selected].Value
			}
		case FieldTextarea:
			if v := in.area.Value(); v != "" {
				out[in.spec.Name] = v
			}
		default:
			if v := in.text.Value(); v != "" {
				out[in.spec.Name] = v
			}
		}
	}
	return out
}

// Submit fires the action callback exactly once and moves to submitting.
// Duplicate submits (stray events, repeated keys) are no-ops. The returned
// command completes the submitting -> submitted transition after a short
// settle; completion does not depend on the callback's outcome.
func (st *FormState) Submit(emit func(action string, payload map[string]any)) tea.Cmd {
	if st.phase != PhaseIdle {
		return nil
	}
	st.phase = PhaseSubmitting
	if emit != nil {
		emit(st.spec.Action, st.Values())
	}
	key := st.key
	return tea.Tick(submitSettle, func(time.Time) tea.Msg {
		return SubmitCompleteMsg{Key: key}
	})
}

// MarkSubmitted finishes the lifecycle. Safe to call in any phase; a form
// can only ever end up submitted once.
func (st *FormState) MarkSubmitted() {
	if st.phase == PhaseSubmitting {
		st.phase = PhaseSubmitted
	}
}

func (st *FormState) setWidth(w int) {
	if w < 10 {
		w = 10
	}
	for i := range st.inputs {
		switch st.inputs[i].spec.Type {
		case FieldTextarea:
			st.inputs[i].area.SetWidth(w)
		case FieldSelect:
		default:
			st.inputs[i].text.Width = w - 2
		}
	}
}

// FormSet pools form state across renders, keyed by widget id + form
// identity. Dropping a widget drops its forms; in-flight submissions are
// simply abandoned.
type FormSet struct {
	forms map[string]*FormState
	// order preserves block order per widget so "the widget's form" is stable.
	order map[string][]string
}

func NewFormSet() *FormSet {
	return &FormSet{forms: map[string]*FormState{}, order: map[string][]string{}}
}

func formKey(widgetID string, spec FormBlock) string {
	id := spec.ID
	if id == "" {
		id = spec.Action
	}
	return widgetID + "\x00" + id
}

// Get returns the live state for this form instance, creating it on first
// sight. The decoded spec wins over a stale one only for brand-new forms;
// an in-progress form keeps its state even if the agent re-sends the card.
func (s *FormSet) Get(widgetID string, spec FormBlock) *FormState {
	key := formKey(widgetID, spec)
	if st, ok := s.forms[key]; ok {
		return st
	}
	st := newFormState(key, spec)
	s.forms[key] = st
	s.order[widgetID] = append(s.order[widgetID], key)
	return st
}

// ByKey resolves a form by its settle-message key.
func (s *FormSet) ByKey(key string) (*FormState, bool) {
	st, ok := s.forms[key]
	return st, ok
}

// First returns the first idle-or-submitting form of a widget, if any.
func (s *FormSet) First(widgetID string) (*FormState, bool) {
	for _, key := range s.order[widgetID] {
		st, ok := s.forms[key]
		if !ok {
			continue
		}
		if st.phase != PhaseSubmitted {
			return st, true
		}
	}
	return nil, false
}

// Drop forgets all forms belonging to a widget.
func (s *FormSet) Drop(widgetID string) {
	for _, key := range s.order[widgetID] {
		delete(s.forms, key)
	}
	delete(s.order, widgetID)
}
