// Package format writes command results as JSON or EDN.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type Kind string

const (
	JSON Kind = "json"
	EDN  Kind = "edn"
)

// Parse validates a --format value. Empty means JSON.
func Parse(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", JSON:
		return JSON, nil
	case EDN:
		return EDN, nil
	default:
		return "", fmt.Errorf("unknown format: %s (want json or edn)", s)
	}
}

// Write encodes v to w in the named format, followed by a newline.
func Write(w io.Writer, v any, format string, pretty bool) error {
	k, err := Parse(format)
	if err != nil {
		return err
	}
	if k == EDN {
		return WriteEDN(w, v, pretty)
	}
	return WriteJSON(w, v, pretty)
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
