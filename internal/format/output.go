package format

import (
        "encoding/json"
        "fmt"
        "io"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - edn
func Write(w io.Writer, v any, format string, pretty bool) error {
        switch format {
        case "", "json":
                return WriteJSON(w, v, pretty)
        case "edn":
                return WriteEDN(w, v, pretty)
        default:
                return fmt.Errorf("unknown format: %s", format)
        }
}

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: We intentionally keep output strict JSON only. Anything beyond the
// payload itself belongs in a `meta` object, not in prose around the JSON.
func WriteJSON(w io.Writer, v any, pretty bool) error {
        var b []byte
        var err error
        if pretty {
                b, err = json.MarshalIndent(v, "", "  ")
        } else {
                b, err = json.Marshal(v)
        }
        if err != nil {
                return err
        }

        _, err = fmt.Fprintln(w, string(b))
        return err
}
