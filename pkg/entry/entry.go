// Package entry defines the logged event model: categories, the intake and
// symptom kinds, and the invariants every stored entry satisfies.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation is returned whenever an entry, kind or patch violates the model invariants.
var ErrValidation = errors.New("entry: validation failed")

// Severity is the 1-10 intensity of a symptom.
type Severity int

const (
	// MinSeverity is the mildest severity.
	MinSeverity Severity = 1
	// MaxSeverity is the worst severity.
	MaxSeverity Severity = 10
)

// Valid reports whether s is in [MinSeverity, MaxSeverity].
func (s Severity) Valid() bool {
	return s >= MinSeverity && s <= MaxSeverity
}

// Kind is the category specific part of an entry. Only Intake and Symptom
// implement it, so a severity can exist only on a symptom.
type Kind interface {
	Category() Category
	isKind()
}

// Intake is the kind of every non-symptom entry.
type Intake struct {
	category Category
}

// NewIntake returns the intake kind for c. Symptoms and unknown categories are rejected.
func NewIntake(c Category) (Intake, error) {
	if !c.Valid() {
		return Intake{}, fmt.Errorf("%w: unknown category %q", ErrValidation, c)
	}
	if c.IsSymptom() {
		return Intake{}, fmt.Errorf("%w: symptom entries require a severity", ErrValidation)
	}
	return Intake{category: c}, nil
}

// Category implements Kind.
func (i Intake) Category() Category { return i.category }

func (Intake) isKind() {}

// Symptom is the kind of a symptom entry.
type Symptom struct {
	Severity Severity
}

// NewSymptom returns the symptom kind, rejecting severities outside 1-10.
func NewSymptom(s Severity) (Symptom, error) {
	if !s.Valid() {
		return Symptom{}, fmt.Errorf("%w: severity %d outside [%d,%d]", ErrValidation, s, MinSeverity, MaxSeverity)
	}
	return Symptom{Severity: s}, nil
}

// Category implements Kind.
func (Symptom) Category() Category { return CategorySymptom }

func (Symptom) isKind() {}

// Entry is one logged event.
type Entry struct {
	// ID is assigned at creation and never changes.
	ID string
	// Label is the food, drink, medication or symptom name.
	Label string
	// Timestamp is when the event happened, as asserted by the user.
	Timestamp Timestamp
	// CreatedAt is when the entry was inserted.
	CreatedAt Timestamp
	// Notes is optional free text.
	Notes string
	// Kind carries the category and, for symptoms, the severity.
	Kind Kind
}

// New builds a validated entry. Label and notes are trimmed; blank notes are dropped.
func New(id string, kind Kind, label string, at, createdAt time.Time, notes string) (Entry, error) {
	e := Entry{
		ID:        strings.TrimSpace(id),
		Label:     strings.TrimSpace(label),
		Timestamp: Timestamp{Time: at.UTC()},
		CreatedAt: Timestamp{Time: createdAt.UTC()},
		Notes:     NormalizeNotes(notes),
		Kind:      kind,
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// NormalizeNotes trims notes; whitespace only notes become empty (absent).
func NormalizeNotes(notes string) string {
	return strings.TrimSpace(notes)
}

// Category returns the entry category, or "" when the kind is missing.
func (e Entry) Category() Category {
	if e.Kind == nil {
		return ""
	}
	return e.Kind.Category()
}

// Severity returns the severity and true for symptoms.
func (e Entry) Severity() (Severity, bool) {
	if s, ok := e.Kind.(Symptom); ok {
		return s.Severity, true
	}
	return 0, false
}

// IsSymptom reports whether the entry is a symptom.
func (e Entry) IsSymptom() bool {
	_, ok := e.Kind.(Symptom)
	return ok
}

// Validate checks every model invariant.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if strings.TrimSpace(e.Label) == "" {
		return fmt.Errorf("%w: label is required", ErrValidation)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrValidation)
	}
	if e.CreatedAt.IsZero() {
		return fmt.Errorf("%w: createdAt is required", ErrValidation)
	}
	switch k := e.Kind.(type) {
	case Intake:
		if _, err := NewIntake(k.category); err != nil {
			return err
		}
	case Symptom:
		if _, err := NewSymptom(k.Severity); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: kind is required", ErrValidation)
	}
	return nil
}

// Matches reports whether query is a case-insensitive substring of the label or notes.
func (e Entry) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Label), q) ||
		(e.Notes != "" && strings.Contains(strings.ToLower(e.Notes), q))
}

func (e Entry) String() string {
	if s, ok := e.Severity(); ok {
		return fmt.Sprintf("%s %s (%d/10)", e.Category().Label(), e.Label, s)
	}
	return fmt.Sprintf("%s %s", e.Category().Label(), e.Label)
}
