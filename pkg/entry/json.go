package entry

import (
	"encoding/json"
	"fmt"
	"strings"
)

// wireEntry is the persisted and exported shape of an entry.
type wireEntry struct {
	ID        string    `json:"id" validate:"required"`
	Category  Category  `json:"category" validate:"required,category"`
	Label     string    `json:"label" validate:"required"`
	Timestamp Timestamp `json:"timestamp"`
	CreatedAt Timestamp `json:"createdAt"`
	Notes     string    `json:"notes,omitempty"`
	Severity  *Severity `json:"severity,omitempty" validate:"omitempty,min=1,max=10"`
}

// MarshalJSON flattens the kind into the category and optional severity fields.
func (e Entry) MarshalJSON() ([]byte, error) {
	w := wireEntry{
		ID:        e.ID,
		Category:  e.Category(),
		Label:     e.Label,
		Timestamp: e.Timestamp,
		CreatedAt: e.CreatedAt,
		Notes:     e.Notes,
	}
	if s, ok := e.Severity(); ok {
		w.Severity = &s
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire shape and rebuilds the kind, failing with
// ErrValidation when the data cannot be represented as a valid entry.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var w wireEntry
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := validate.Struct(&w); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var kind Kind
	switch {
	case w.Category.IsSymptom():
		if w.Severity == nil {
			return fmt.Errorf("%w: symptom %q has no severity", ErrValidation, w.ID)
		}
		s, err := NewSymptom(*w.Severity)
		if err != nil {
			return err
		}
		kind = s
	default:
		if w.Severity != nil {
			return fmt.Errorf("%w: %s entry %q carries a severity", ErrValidation, w.Category, w.ID)
		}
		i, err := NewIntake(w.Category)
		if err != nil {
			return err
		}
		kind = i
	}

	decoded := Entry{
		ID:        w.ID,
		Label:     strings.TrimSpace(w.Label),
		Timestamp: w.Timestamp,
		CreatedAt: w.CreatedAt,
		Notes:     NormalizeNotes(w.Notes),
		Kind:      kind,
	}
	if err := decoded.Validate(); err != nil {
		return err
	}
	*e = decoded
	return nil
}
