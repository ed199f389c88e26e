package block

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderFormBlock(b Block, ctx Context) string {
	spec, ok := b.(FormBlock)
	if !ok {
		return ""
	}
	// Without a state pool there is nowhere to keep the field values; render
	// nothing rather than a dead form.
	if ctx.Forms == nil {
		return ""
	}
	st := ctx.Forms.Get(ctx.WidgetID, spec)
	st.setWidth(ctx.Width - 4)

	if st.phase == PhaseSubmitted {
		okStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1).
			Width(ctx.Width - 2)
		return okStyle.Render("✓ Submitted Successfully\n" +
			lipgloss.NewStyle().Faint(true).Render("The agent has received your input."))
	}

	labelStyle := lipgloss.NewStyle().Faint(true)
	requiredMark := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("*")
	focusMark := lipgloss.NewStyle().Foreground(ctx.Accent).Render("› ")

	var lines []string
	for i, in := range st.inputs {
		label := labelStyle.Render(strings.ToUpper(in.spec.Label))
		if in.spec.Required {
			label += " " + requiredMark
		}
		prefix := "  "
		if st.phase == PhaseIdle && st.focus == i {
			prefix = focusMark
		}
		lines = append(lines, prefix+label)

		switch in.spec.Type {
		case FieldSelect:
			choice := "Select an option"
			if in.selected >= 0 && in.selected < len(in.spec.Options) {
				choice = in.spec.Options[in.selected].Label
			}
			sel := "◂ " + choice + " ▸"
			if st.focus == i {
				sel = lipgloss.NewStyle().Foreground(ctx.Accent).Render(sel)
			}
			lines = append(lines, "  "+sel)
		case FieldTextarea:
			lines = append(lines, indent(in.area.View(), "  "))
		default:
			lines = append(lines, "  "+in.text.View())
		}
	}

	label := st.spec.SubmitLabel
	if label == "" {
		label = "Submit"
	}
	if st.phase == PhaseSubmitting {
		label = "Processing…"
	}
	btn := lipgloss.NewStyle().Padding(0, 2)
	if st.OnSubmitControl() || st.phase == PhaseSubmitting {
		btn = btn.Background(ctx.Accent).Foreground(lipgloss.Color("255")).Bold(true)
	} else {
		btn = btn.Faint(true)
	}
	lines = append(lines, "", "  "+btn.Render(label))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(ctx.Width - 2).
		Render(strings.Join(lines, "\n"))
}

func indent(s, prefix string) string {
	parts := strings.Split(s, "\n")
	for i := range parts {
		parts[i] = prefix + parts[i]
	}
	return strings.Join(parts, "\n")
}
