package block

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sampleForm() FormBlock {
	return FormBlock{
		ID:     "booking",
		Action: "book_flight",
		Fields: []FieldSpec{
			{Name: "name", Label: "Name", Type: FieldText, Required: true},
			{Name: "seat", Label: "Seat", Type: FieldSelect, Options: []FieldOption{
				{Label: "Window", Value: "window"},
				{Label: "Aisle", Value: "aisle"},
			}},
		},
	}
}

func TestFormSubmit_ExactlyOnce(t *testing.T) {
	set := NewFormSet()
	st := set.Get("w-1", sampleForm())

	calls := 0
	var gotAction string
	emit := func(action string, payload map[string]any) {
		calls++
		gotAction = action
	}

	cmd := st.Submit(emit)
	if cmd == nil {
		t.Fatalf("first submit should schedule the settle command")
	}
	if calls != 1 || gotAction != "book_flight" {
		t.Fatalf("expected one emission of book_flight, got %d/%q", calls, gotAction)
	}
	if st.Phase() != PhaseSubmitting {
		t.Fatalf("expected submitting phase, got %v", st.Phase())
	}

	// Stray duplicate event: no second emission, no new command.
	if dup := st.Submit(emit); dup != nil || calls != 1 {
		t.Fatalf("duplicate submit must be a no-op (calls=%d)", calls)
	}

	st.MarkSubmitted()
	if st.Phase() != PhaseSubmitted {
		t.Fatalf("expected terminal submitted phase, got %v", st.Phase())
	}
	if again := st.Submit(emit); again != nil || calls != 1 {
		t.Fatalf("submitted form must stay terminal (calls=%d)", calls)
	}
}

func TestFormValues_TypedInputAndSelect(t *testing.T) {
	set := NewFormSet()
	st := set.Get("w-1", sampleForm())
	st.CycleFocus(0) // focus first field

	for _, r := range "Ada" {
		st.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	st.CycleFocus(1) // select field
	st.Update(tea.KeyMsg{Type: tea.KeyRight})

	vals := st.Values()
	if vals["name"] != "Ada" {
		t.Fatalf("typed value lost: %v", vals)
	}
	if vals["seat"] != "window" {
		t.Fatalf("select cycle should land on first option: %v", vals)
	}
}

func TestFormFocus_WrapsAcrossFieldsAndSubmit(t *testing.T) {
	set := NewFormSet()
	st := set.Get("w-1", sampleForm())
	st.CycleFocus(0)
	st.CycleFocus(1)
	st.CycleFocus(1)
	if !st.OnSubmitControl() {
		t.Fatalf("two steps from field 0 should reach the submit control")
	}
	st.CycleFocus(1)
	if st.OnSubmitControl() || st.focus != 0 {
		t.Fatalf("focus should wrap back to the first field, got %d", st.focus)
	}
	st.CycleFocus(-1)
	if !st.OnSubmitControl() {
		t.Fatalf("reverse wrap should land on the submit control")
	}
}

func TestFormSet_StateSurvivesReRenderAndDropsWithWidget(t *testing.T) {
	set := NewFormSet()
	st := set.Get("w-1", sampleForm())
	st.CycleFocus(0)
	st.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	// Agent re-sends the same card: same state instance comes back.
	again := set.Get("w-1", sampleForm())
	if again != st {
		t.Fatalf("re-render created a fresh form state")
	}

	set.Drop("w-1")
	if _, ok := set.ByKey(st.Key()); ok {
		t.Fatalf("dropped widget's form state still resolvable")
	}
	// A close mid-submission behaves the same way; the settle message for a
	// dropped form simply finds nothing.
	if _, ok := set.First("w-1"); ok {
		t.Fatalf("dropped widget still reports a form")
	}
}

func TestFormRender_SubmittedStateIsTerminalView(t *testing.T) {
	set := NewFormSet()
	ctx := Context{Width: 50, WidgetID: "w-1", Forms: set}
	reg := DefaultRegistry()

	spec := sampleForm()
	out := reg.Render(spec, ctx)
	if out == "" {
		t.Fatalf("idle form should render fields")
	}

	st := set.Get("w-1", spec)
	st.Submit(nil)
	st.MarkSubmitted()
	out = reg.Render(spec, ctx)
	if !strings.Contains(strings.ToLower(out), "submitted") {
		t.Fatalf("submitted form should render the terminal state, got %q", out)
	}
}
