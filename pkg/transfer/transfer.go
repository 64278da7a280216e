// Package transfer moves the whole collection in and out of the process as
// a human readable JSON envelope.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/symptoms/pkg/entry"
)

// Version is the export envelope version.
const Version = 1

// ErrMalformedInput is returned when import data is not an object with an
// entries array.
var ErrMalformedInput = errors.New("transfer: malformed input")

// Envelope is the export document.
type Envelope struct {
	Version    int             `json:"version"`
	ExportedAt entry.Timestamp `json:"exportedAt"`
	Entries    []entry.Entry   `json:"entries"`
}

// Marshal renders entries as an indented export document.
func Marshal(entries []entry.Entry, now time.Time) ([]byte, error) {
	if entries == nil {
		entries = []entry.Entry{}
	}
	return json.MarshalIndent(Envelope{
		Version:    Version,
		ExportedAt: entry.Stamp(now),
		Entries:    entries,
	}, "", "  ")
}

// Export writes the export document for entries to w.
func Export(w io.Writer, entries []entry.Entry, now time.Time) error {
	b, err := Marshal(entries, now)
	if err != nil {
		return fmt.Errorf("transfer: encode: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("transfer: write: %w", err)
	}
	return nil
}

// Import reads an export document from r.
func Import(r io.Reader) ([]entry.Entry, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("transfer: read: %w", err)
	}
	return Parse(b)
}

// Parse decodes an export document. Only the entries field is required;
// version and exportedAt are ignored. Entries that cannot be represented
// fail the whole parse with an error matching both ErrMalformedInput and
// entry.ErrValidation.
func Parse(data []byte) ([]entry.Entry, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedInput)
	}
	raw, ok := doc["entries"]
	if !ok {
		return nil, fmt.Errorf("%w: missing entries array", ErrMalformedInput)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: entries is not an array", ErrMalformedInput)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	out := make([]entry.Entry, 0, len(items))
	for i, item := range items {
		var e entry.Entry
		if err := json.Unmarshal(item, &e); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrMalformedInput, i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
