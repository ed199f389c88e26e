package canvas

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Placement cascade for new widgets. Derived from the collection size so that
// a burst of creations fans out instead of stacking on one cell.
const (
	cascadeColStep = 5
	cascadeColWrap = 45
	cascadeRowStep = 2
	cascadeRowWrap = 14
)

// initialZ matches the first z assigned being initialZ+1.
const initialZ = 10

// Controller owns the authoritative widget collection.
//
// It is not safe for concurrent use; all mutation happens on the host event
// loop (the bubbletea Update goroutine). Every operation is total: unknown
// ids and titles are silently ignored, since the caller is an asynchronous
// agent that cannot observe the current widget set.
type Controller struct {
	widgets  []*Widget // insertion order; title matching is first-match-wins
	highestZ int
}

// UpsertRequest is one create-or-update instruction from the agent bridge.
type UpsertRequest struct {
	Type  string
	Title string
	Data  map[string]any

	// ID targets an existing widget when set. Without it, identity falls back
	// to a (type, title) match.
	ID string

	// Clear replaces the whole collection with this one widget at the origin.
	Clear bool

	// Size is applied only when non-nil; upserts keep the prior hint otherwise.
	Size *Size
}

func NewController() *Controller {
	return &Controller{highestZ: initialZ}
}

// nextZ advances the monotonic z counter. The counter never moves backward,
// even when the operation that bumped it turns out to be a no-op.
func (c *Controller) nextZ() int {
	c.highestZ++
	return c.highestZ
}

// Upsert creates or updates a widget.
//
// Identity resolution: explicit id match first, then (type, title) match in
// insertion order, else a new widget with a generated id. A matched widget
// keeps its position, merges Data shallowly (incoming keys win), replaces the
// title, takes the size hint only if one was supplied, and is promoted to the
// top of the stack.
func (c *Controller) Upsert(req UpsertRequest) *Widget {
	if req.Clear {
		w := &Widget{
			ID:    orGeneratedID(req.ID),
			Type:  req.Type,
			Title: req.Title,
			Data:  cloneData(req.Data),
			Z:     c.nextZ(),
			Pos:   Point{},
			Size:  req.Size,
		}
		c.widgets = []*Widget{w}
		return w
	}

	if w := c.match(req.ID, req.Type, req.Title); w != nil {
		w.Title = req.Title
		w.Data = mergeData(w.Data, req.Data)
		w.Z = c.nextZ()
		if req.Size != nil {
			w.Size = req.Size
		}
		return w
	}

	w := &Widget{
		ID:    orGeneratedID(req.ID),
		Type:  req.Type,
		Title: req.Title,
		Data:  cloneData(req.Data),
		Z:     c.nextZ(),
		Pos:   cascadePosition(len(c.widgets)),
		Size:  req.Size,
	}
	c.widgets = append(c.widgets, w)
	return w
}

func (c *Controller) match(id, typ, title string) *Widget {
	for _, w := range c.widgets {
		if id != "" && w.ID == id {
			return w
		}
		if w.Type == typ && w.Title == title {
			return w
		}
	}
	return nil
}

// Close removes a widget: exact id when given, else the first widget (in
// insertion order) whose title contains the substring, case-insensitively.
// No-op when nothing matches. The removed id is reported so callers can
// release per-widget state.
func (c *Controller) Close(id, titleSubstring string) (string, bool) {
	if id != "" {
		return c.remove(id)
	}
	needle := strings.ToLower(strings.TrimSpace(titleSubstring))
	if needle == "" {
		return "", false
	}
	for _, w := range c.widgets {
		if strings.Contains(strings.ToLower(w.Title), needle) {
			return c.remove(w.ID)
		}
	}
	return "", false
}

func (c *Controller) remove(id string) (string, bool) {
	for i, w := range c.widgets {
		if w.ID == id {
			c.widgets = append(c.widgets[:i], c.widgets[i+1:]...)
			return id, true
		}
	}
	return "", false
}

// BringToFront promotes the widget to the top of the stack. The z counter
// advances even when the id is unknown, keeping allocation monotonic across
// queued operations.
func (c *Controller) BringToFront(id string) {
	z := c.nextZ()
	if w := c.byID(id); w != nil {
		w.Z = z
	}
}

// SetPosition records a user drag. Positions are owned by the user after
// creation; the controller never re-derives them.
func (c *Controller) SetPosition(id string, p Point) {
	if w := c.byID(id); w != nil {
		w.Pos = p
	}
}

// SetSize records an explicit user resize. Like positions, sizes are owned
// by the user once set.
func (c *Controller) SetSize(id string, s Size) {
	if w := c.byID(id); w != nil {
		w.Size = &s
	}
}

func (c *Controller) byID(id string) *Widget {
	for _, w := range c.widgets {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// ByID returns a copy of the widget, if present.
func (c *Controller) ByID(id string) (Widget, bool) {
	if w := c.byID(id); w != nil {
		return *w, true
	}
	return Widget{}, false
}

// Len reports the live widget count.
func (c *Controller) Len() int { return len(c.widgets) }

// Widgets returns the collection sorted by ascending z (paint order).
func (c *Controller) Widgets() []Widget {
	out := make([]Widget, 0, len(c.widgets))
	for _, w := range c.widgets {
		out = append(out, *w)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// TopZ reports the current value of the z counter.
func (c *Controller) TopZ() int { return c.highestZ }

func cascadePosition(n int) Point {
	return Point{
		X: (n * cascadeColStep) % cascadeColWrap,
		Y: (n * cascadeRowStep) % cascadeRowWrap,
	}
}

func orGeneratedID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// mergeData merges shallowly: incoming keys override, other old keys survive.
func mergeData(old, in map[string]any) map[string]any {
	out := make(map[string]any, len(old)+len(in))
	for k, v := range old {
		out[k] = v
	}
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneData(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
