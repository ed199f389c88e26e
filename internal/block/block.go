// Package block decodes the untyped content-block payloads sent by the agent
// and renders them for the terminal. Each block type degrades independently:
// malformed or unknown entries decode to nothing and render as empty rather
// than failing the card.
package block

import (
	"sort"
)

// Kind tags recognized content-block types. The set mirrors the renderer
// registry; anything else is dropped at decode time.
const (
	KindMarkdown   = "markdown"
	KindKeyValue   = "key_value"
	KindImage      = "image"
	KindLink       = "link"
	KindForm       = "form"
	KindFlashcards = "flashcards"
)

// Block is one typed, self-contained piece of card content.
type Block interface {
	Kind() string
}

type MarkdownBlock struct {
	Content string
}

func (MarkdownBlock) Kind() string { return KindMarkdown }

// KV is one key/value pair. Pairs are sorted by key at decode time so a card
// re-renders identically for the same payload.
type KV struct {
	Key   string
	Value string
}

type KeyValueBlock struct {
	Pairs []KV
}

func (KeyValueBlock) Kind() string { return KindKeyValue }

type ImageBlock struct {
	URL     string
	Caption string
}

func (ImageBlock) Kind() string { return KindImage }

type LinkBlock struct {
	URL   string
	Label string
}

func (LinkBlock) Kind() string { return KindLink }

// FieldKind values accepted in form field specs.
const (
	FieldText     = "text"
	FieldNumber   = "number"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldSelect   = "select"
	FieldTextarea = "textarea"
)

type FieldOption struct {
	Label string
	Value string
}

type FieldSpec struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Options     []FieldOption
	Required    bool
}

type FormBlock struct {
	ID          string
	Fields      []FieldSpec
	SubmitLabel string
	Action      string
}

func (FormBlock) Kind() string { return KindForm }

type FlashcardItem struct {
	Title       string
	Description string
	URL         string
	Label       string
	Icon        string
}

type FlashcardsBlock struct {
	Items []FlashcardItem
}

func (FlashcardsBlock) Kind() string { return KindFlashcards }

// Decode turns the raw content array from the agent into typed blocks.
// Entries that are not maps, carry an unknown type, or are missing a required
// field are skipped, per the never-crash-the-canvas failure policy.
func Decode(raw []any) []Block {
	var out []Block
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		data, _ := m["data"].(map[string]any)
		if b := decodeOne(str(m["type"]), data); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func decodeOne(kind string, data map[string]any) Block {
	switch kind {
	case KindMarkdown:
		content := str(data["content"])
		if content == "" {
			return nil
		}
		return MarkdownBlock{Content: content}

	case KindKeyValue:
		pairs, _ := data["data"].(map[string]any)
		if len(pairs) == 0 {
			return nil
		}
		b := KeyValueBlock{}
		for k, v := range pairs {
			b.Pairs = append(b.Pairs, KV{Key: k, Value: str(v)})
		}
		sort.Slice(b.Pairs, func(i, j int) bool { return b.Pairs[i].Key < b.Pairs[j].Key })
		return b

	case KindImage:
		url := str(data["url"])
		if url == "" {
			return nil
		}
		return ImageBlock{URL: url, Caption: str(data["caption"])}

	case KindLink:
		url := str(data["url"])
		if url == "" {
			return nil
		}
		return LinkBlock{URL: url, Label: str(data["label"])}

	case KindForm:
		return decodeForm(data)

	case KindFlashcards:
		items, _ := data["items"].([]any)
		b := FlashcardsBlock{}
		for _, it := range items {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			title := str(m["title"])
			if title == "" {
				continue
			}
			b.Items = append(b.Items, FlashcardItem{
				Title:       title,
				Description: str(m["description"]),
				URL:         str(m["url"]),
				Label:       str(m["label"]),
				Icon:        str(m["icon"]),
			})
		}
		if len(b.Items) == 0 {
			return nil
		}
		return b
	}
	return nil
}

func decodeForm(data map[string]any) Block {
	action := str(data["action"])
	rawFields, _ := data["fields"].([]any)
	if action == "" || len(rawFields) == 0 {
		return nil
	}
	b := FormBlock{
		ID:          str(data["id"]),
		Action:      action,
		SubmitLabel: str(data["submitLabel"]),
	}
	for _, rf := range rawFields {
		m, ok := rf.(map[string]any)
		if !ok {
			continue
		}
		f := FieldSpec{
			Name:        str(m["name"]),
			Label:       str(m["label"]),
			Type:        str(m["type"]),
			Placeholder: str(m["placeholder"]),
			Required:    boolVal(m["required"]),
		}
		if f.Name == "" {
			continue
		}
		switch f.Type {
		case FieldText, FieldNumber, FieldEmail, FieldPassword, FieldSelect, FieldTextarea:
		default:
			f.Type = FieldText
		}
		if opts, ok := m["options"].([]any); ok {
			for _, ro := range opts {
				switch o := ro.(type) {
				case map[string]any:
					f.Options = append(f.Options, FieldOption{Label: str(o["label"]), Value: str(o["value"])})
				case string:
					f.Options = append(f.Options, FieldOption{Label: o, Value: o})
				}
			}
		}
		b.Fields = append(b.Fields, f)
	}
	if len(b.Fields) == 0 {
		return nil
	}
	return b
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func boolVal(v any) bool {
	b, _ := v.(bool)
	return b
}
