package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	payload := map[string]any{
		"data": []any{map[string]any{"role": "user", "content": "hi"}},
		"meta": map[string]any{"turns": 1},
	}
	if err := Write(&buf, payload, "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"role":"user"`) {
		t.Fatalf("json output = %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("json output missing trailing newline")
	}
}

func TestWriteEDNKeywordizesKeys(t *testing.T) {
	var buf bytes.Buffer
	payload := map[string]any{"turns": 2, "hasErrors": false}
	if err := Write(&buf, payload, "edn", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	if !strings.Contains(out, ":turns 2") || !strings.Contains(out, ":hasErrors false") {
		t.Fatalf("edn output = %q", out)
	}
}

func TestWriteEDNIntegralFloats(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"n": 3.0, "f": 1.5}, "edn", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, ":n 3") || strings.Contains(out, "3.0") {
		t.Fatalf("integral float not printed as int: %q", out)
	}
	if !strings.Contains(out, ":f 1.5") {
		t.Fatalf("fractional float mangled: %q", out)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{}, "yaml", false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
