package block

import "github.com/charmbracelet/lipgloss"

// Context is what a renderer gets to work with: layout width, the resolved
// accent color, the form state pool, and the action-emission callback used by
// interactive blocks. Emit may be nil (non-interactive contexts, tests).
type Context struct {
	Width    int
	Accent   lipgloss.Color
	WidgetID string
	Forms    *FormSet
	Emit     func(action string, payload map[string]any)
}

// RenderFunc renders one block to a string for the given context. Returning
// "" means the block contributes nothing to the card.
type RenderFunc func(b Block, ctx Context) string

// Registry maps a content-block type name to its renderer. Pure lookup, no
// state; unknown keys yield a no-op renderer.
type Registry struct {
	renderers map[string]RenderFunc
}

func NewRegistry() *Registry {
	return &Registry{renderers: map[string]RenderFunc{}}
}

func (r *Registry) Register(kind string, fn RenderFunc) {
	r.renderers[kind] = fn
}

// Render dispatches on the block's kind. Unregistered kinds render nothing,
// so a single unrecognized block never blanks the whole card.
func (r *Registry) Render(b Block, ctx Context) string {
	if b == nil {
		return ""
	}
	fn, ok := r.renderers[b.Kind()]
	if !ok {
		return ""
	}
	return fn(b, ctx)
}

// DefaultRegistry wires the built-in block renderers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindMarkdown, renderMarkdownBlock)
	r.Register(KindKeyValue, renderKeyValueBlock)
	r.Register(KindImage, renderImageBlock)
	r.Register(KindLink, renderLinkBlock)
	r.Register(KindForm, renderFormBlock)
	r.Register(KindFlashcards, renderFlashcardsBlock)
	return r
}
