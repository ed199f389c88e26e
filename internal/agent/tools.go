package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"canvas-cli/internal/canvas"
)

// Canvas tool surface: one tool per verb. Executing a canvas tool only
// decodes its input and queues a typed event; the UI applies the mutation on
// its own dispatch, so the tool itself never touches canvas state.

type renderCardInput struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Content      []any           `json:"content"`
	Design       map[string]any  `json:"design"`
	ClearHistory bool            `json:"clearHistory"`
	Dimensions   json.RawMessage `json:"dimensions"`
}

type deleteCardInput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type setThemeInput struct {
	ThemeColor string `json:"themeColor"`
}

func (b *Bridge) renderCardTool() Tool {
	schema := Schema{
		Type: "object",
		Properties: map[string]Property{
			"id":    {Type: "string", Description: "Stable id to update an existing card instead of creating a new one"},
			"title": {Type: "string", Description: "Card title, also shown in the widget title bar"},
			"content": {Type: "array", Description: "Ordered content blocks", Items: &Property{
				Type: "object",
				Properties: map[string]Property{
					"type": {Type: "string", Enum: []string{"markdown", "key_value", "image", "link", "form", "flashcards"}},
					"data": {Type: "object", Description: "Block payload; shape depends on type"},
				},
			}},
			"design":       {Type: "object", Description: "Shared design tokens, e.g. {\"themeColor\": \"#2563EB\"}"},
			"clearHistory": {Type: "boolean", Description: "Replace all existing cards with this one"},
			"dimensions":   {Type: "object", Description: "Size hint in terminal cells: {\"width\": number, \"height\": number | \"auto\"}"},
		},
		Required: []string{"title", "content"},
	}
	return NewFuncTool("render_card",
		"Displays a flexible card with mixed content on the user's canvas. "+
			"The PRIMARY way to show information; re-sending the same title updates the card in place.",
		schema,
		func(ctx context.Context, input json.RawMessage) (string, error) {
			var in renderCardInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", fmt.Errorf("render_card: %w", err)
			}
			if in.Title == "" {
				return "", fmt.Errorf("render_card: title is required")
			}
			b.emit(CardEvent{
				ID:           in.ID,
				Title:        in.Title,
				Content:      in.Content,
				Design:       in.Design,
				ClearHistory: in.ClearHistory,
				Size:         decodeDimensions(in.Dimensions),
			})
			return fmt.Sprintf("Card %q rendered.", in.Title), nil
		})
}

func (b *Bridge) deleteCardTool() Tool {
	schema := Schema{
		Type: "object",
		Properties: map[string]Property{
			"id":    {Type: "string", Description: "Exact widget id"},
			"title": {Type: "string", Description: "Case-insensitive title substring; first match is closed"},
		},
	}
	return NewFuncTool("delete_card", "Closes a card/widget on the canvas.", schema,
		func(ctx context.Context, input json.RawMessage) (string, error) {
			var in deleteCardInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", fmt.Errorf("delete_card: %w", err)
			}
			b.emit(DeleteCardEvent{ID: in.ID, Title: in.Title})
			return "Card closed.", nil
		})
}

func (b *Bridge) setThemeTool() Tool {
	schema := Schema{
		Type: "object",
		Properties: map[string]Property{
			"themeColor": {Type: "string", Description: "Hex color like #2563EB, used as the default accent"},
		},
		Required: []string{"themeColor"},
	}
	return NewFuncTool("set_theme", "Sets the default theme color for cards that do not carry their own.", schema,
		func(ctx context.Context, input json.RawMessage) (string, error) {
			var in setThemeInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", fmt.Errorf("set_theme: %w", err)
			}
			b.emit(ThemeEvent{Color: in.ThemeColor})
			return "Theme updated.", nil
		})
}

// decodeDimensions accepts {"width": n, "height": n | "auto"}. Anything
// unusable yields nil, which upsert treats as "no hint".
func decodeDimensions(raw json.RawMessage) *canvas.Size {
	if len(raw) == 0 {
		return nil
	}
	var dims struct {
		Width  float64 `json:"width"`
		Height any     `json:"height"`
	}
	if err := json.Unmarshal(raw, &dims); err != nil {
		return nil
	}
	if dims.Width <= 0 {
		return nil
	}
	s := &canvas.Size{Width: int(dims.Width)}
	switch h := dims.Height.(type) {
	case float64:
		if h > 0 {
			s.Height = int(h)
		} else {
			s.Auto = true
		}
	default:
		// "auto", absent, or garbage: height follows content.
		s.Auto = true
	}
	return s
}
