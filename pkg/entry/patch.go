package entry

import (
	"fmt"
	"strings"
	"time"
)

// Patch is a partial update. Nil fields are left untouched; the category can
// never be changed.
type Patch struct {
	Label     *string    `json:"label,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Severity  *Severity  `json:"severity,omitempty"`
}

// Ptr returns a pointer to v, handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Label == nil && p.Notes == nil && p.Timestamp == nil && p.Severity == nil
}

// Apply merges the patch over e and returns the result. The original entry
// is never modified.
func (e Entry) Apply(p Patch) (Entry, error) {
	out := e
	if p.Label != nil {
		label := strings.TrimSpace(*p.Label)
		if label == "" {
			return e, fmt.Errorf("%w: label is required", ErrValidation)
		}
		out.Label = label
	}
	if p.Notes != nil {
		out.Notes = NormalizeNotes(*p.Notes)
	}
	if p.Timestamp != nil {
		if p.Timestamp.IsZero() {
			return e, fmt.Errorf("%w: timestamp is required", ErrValidation)
		}
		out.Timestamp = Stamp(*p.Timestamp)
	}
	if p.Severity != nil {
		if !e.IsSymptom() {
			return e, fmt.Errorf("%w: %s entries have no severity", ErrValidation, e.Category())
		}
		s, err := NewSymptom(*p.Severity)
		if err != nil {
			return e, err
		}
		out.Kind = s
	}
	if err := out.Validate(); err != nil {
		return e, err
	}
	return out, nil
}
