package block

import (
	"strings"
)

// Card is the decoded payload of a dynamic_card widget: a title, an ordered
// block sequence, and shared design tokens.
type Card struct {
	Title  string
	Blocks []Block
	Design Design
}

// DecodeCard reads a widget's opaque data payload. Whatever is malformed is
// dropped; the zero Card renders as an empty shell.
func DecodeCard(data map[string]any) Card {
	c := Card{Title: str(data["title"])}
	if raw, ok := data["content"].([]any); ok {
		c.Blocks = Decode(raw)
	}
	c.Design = ParseDesign(data["design"])
	return c
}

// RenderCard composes the card body: each block rendered through the
// registry in order, blank-line separated, empty results skipped.
func RenderCard(reg *Registry, c Card, ctx Context) string {
	var parts []string
	for _, b := range c.Blocks {
		if out := reg.Render(b, ctx); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}
