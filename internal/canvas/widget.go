package canvas

// Point is a cell offset on the canvas, relative to the canvas origin.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a widget size hint. Auto means the height follows the content
// (the width is still honored).
type Size struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Auto   bool `json:"auto,omitempty"`
}

// Widget is one displayed unit on the canvas.
//
// Data is an opaque payload owned by the widget type; the controller merges it
// shallowly on upsert and never looks inside. For dynamic cards it holds the
// card title, content blocks and design tokens as decoded JSON.
type Widget struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Title string         `json:"title"`
	Data  map[string]any `json:"data"`
	Z     int            `json:"zIndex"`
	Pos   Point          `json:"position"`

	// Size is nil unless the caller supplied an explicit hint at creation or
	// on a later upsert. Upserts without a hint keep the previous value.
	Size *Size `json:"initialSize,omitempty"`
}
