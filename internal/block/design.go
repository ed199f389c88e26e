package block

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThemeColor matches the frontend default accent.
const DefaultThemeColor = "#2563EB"

// Design carries the shared design tokens a card passes to each of its
// blocks. Currently just a theme color; extensible.
type Design struct {
	ThemeColor string
}

// ParseDesign reads the design object from a card payload. Malformed input
// yields the zero value; callers substitute the process-wide default.
func ParseDesign(raw any) Design {
	m, ok := raw.(map[string]any)
	if !ok {
		return Design{}
	}
	return Design{ThemeColor: NormalizeHexColor(str(m["themeColor"]))}
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NormalizeHexColor validates a hex color token. Anything that is not a
// #rgb/#rrggbb literal comes back empty so lookups fall through to defaults.
func NormalizeHexColor(s string) string {
	s = strings.TrimSpace(s)
	if hexColorRe.MatchString(s) {
		return s
	}
	return ""
}

// Accent resolves the design's theme color against a fallback token.
func (d Design) Accent(fallback string) lipgloss.Color {
	if d.ThemeColor != "" {
		return lipgloss.Color(d.ThemeColor)
	}
	if c := NormalizeHexColor(fallback); c != "" {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(DefaultThemeColor)
}
