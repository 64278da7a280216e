package entry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAt      = time.Date(2026, 3, 3, 20, 0, 0, 0, time.UTC)
	testCreated = time.Date(2026, 3, 3, 20, 5, 0, 0, time.UTC)
)

func mustIntake(t *testing.T, c Category) Intake {
	t.Helper()
	k, err := NewIntake(c)
	require.NoError(t, err)
	return k
}

func mustSymptom(t *testing.T, s Severity) Symptom {
	t.Helper()
	k, err := NewSymptom(s)
	require.NoError(t, err)
	return k
}

func TestNewTrimsAndNormalizes(t *testing.T) {
	assert := assert.New(t)

	e, err := New(" id-1 ", mustIntake(t, CategoryEat), "  rice ", testAt, testCreated, "   ")
	require.NoError(t, err)

	assert.Equal("id-1", e.ID)
	assert.Equal("rice", e.Label)
	assert.Equal("", e.Notes)
	assert.Equal(CategoryEat, e.Category())
	_, ok := e.Severity()
	assert.False(ok)
}

func TestNewRejectsBlankLabel(t *testing.T) {
	_, err := New("id-1", mustIntake(t, CategoryDrink), "   ", testAt, testCreated, "")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestIntakeRejectsSymptom(t *testing.T) {
	_, err := NewIntake(CategorySymptom)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewIntake(Category("snack"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSymptomSeverityRange(t *testing.T) {
	for _, s := range []Severity{0, -1, 11, 100} {
		_, err := NewSymptom(s)
		assert.ErrorIs(t, err, ErrValidation, "severity %d", s)
	}
	for s := MinSeverity; s <= MaxSeverity; s++ {
		_, err := NewSymptom(s)
		assert.NoError(t, err, "severity %d", s)
	}
}

func TestValidateRejectsZeroSeveritySymptom(t *testing.T) {
	e := Entry{
		ID:        "id",
		Label:     "headache",
		Timestamp: Stamp(testAt),
		CreatedAt: Stamp(testCreated),
		Kind:      Symptom{},
	}
	assert.ErrorIs(t, e.Validate(), ErrValidation)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Meds ")
	require.NoError(t, err)
	assert.Equal(t, CategoryMeds, c)

	_, err = ParseCategory("snack")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJSONRoundTripSymptom(t *testing.T) {
	assert := assert.New(t)

	e, err := New("s-1", mustSymptom(t, 7), "headache", testAt, testCreated, "after lunch")
	require.NoError(t, err)

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(`{
		"id": "s-1",
		"category": "symptom",
		"label": "headache",
		"timestamp": "2026-03-03T20:00:00.000Z",
		"createdAt": "2026-03-03T20:05:00.000Z",
		"notes": "after lunch",
		"severity": 7
	}`, string(b))

	var back Entry
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(e.ID, back.ID)
	assert.True(e.Timestamp.Equal(back.Timestamp.Time))
	s, ok := back.Severity()
	assert.True(ok)
	assert.Equal(Severity(7), s)
}

func TestJSONIntakeOmitsSeverityAndNotes(t *testing.T) {
	e, err := New("e-1", mustIntake(t, CategoryEat), "toast", testAt, testCreated, "")
	require.NoError(t, err)

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "severity")
	assert.NotContains(t, string(b), "notes")
}

func TestJSONRejectsInvariantViolations(t *testing.T) {
	cases := map[string]string{
		"symptom without severity": `{"id":"a","category":"symptom","label":"x","timestamp":"2026-03-03T20:00:00Z","createdAt":"2026-03-03T20:00:00Z"}`,
		"intake with severity":     `{"id":"a","category":"eat","label":"x","severity":3,"timestamp":"2026-03-03T20:00:00Z","createdAt":"2026-03-03T20:00:00Z"}`,
		"unknown category":         `{"id":"a","category":"snack","label":"x","timestamp":"2026-03-03T20:00:00Z","createdAt":"2026-03-03T20:00:00Z"}`,
		"blank label":              `{"id":"a","category":"eat","label":"  ","timestamp":"2026-03-03T20:00:00Z","createdAt":"2026-03-03T20:00:00Z"}`,
		"severity out of range":    `{"id":"a","category":"symptom","label":"x","severity":11,"timestamp":"2026-03-03T20:00:00Z","createdAt":"2026-03-03T20:00:00Z"}`,
		"missing timestamp":        `{"id":"a","category":"eat","label":"x","createdAt":"2026-03-03T20:00:00Z"}`,
		"bad timestamp":            `{"id":"a","category":"eat","label":"x","timestamp":"yesterday","createdAt":"2026-03-03T20:00:00Z"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var e Entry
			assert.ErrorIs(t, json.Unmarshal([]byte(raw), &e), ErrValidation)
		})
	}
}

func TestApplyLabelKeepsEverythingElse(t *testing.T) {
	assert := assert.New(t)

	e, err := New("s-1", mustSymptom(t, 4), "nausea", testAt, testCreated, "mild")
	require.NoError(t, err)

	out, err := e.Apply(Patch{Label: Ptr("X")})
	require.NoError(t, err)

	assert.Equal("X", out.Label)
	assert.Equal(e.ID, out.ID)
	assert.Equal(e.Notes, out.Notes)
	assert.Equal(e.Timestamp, out.Timestamp)
	assert.Equal(e.CreatedAt, out.CreatedAt)
	s, ok := out.Severity()
	assert.True(ok)
	assert.Equal(Severity(4), s)
	assert.Equal("nausea", e.Label, "original must not change")
}

func TestApplyRejectsSeverityOnIntake(t *testing.T) {
	e, err := New("e-1", mustIntake(t, CategoryMeds), "aspirin", testAt, testCreated, "")
	require.NoError(t, err)

	_, err = e.Apply(Patch{Severity: Ptr(Severity(3))})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApplyClearsNotes(t *testing.T) {
	e, err := New("e-1", mustIntake(t, CategoryOther), "walk", testAt, testCreated, "30 min")
	require.NoError(t, err)

	out, err := e.Apply(Patch{Notes: Ptr("  ")})
	require.NoError(t, err)
	assert.Equal(t, "", out.Notes)
}

func TestMatches(t *testing.T) {
	e, err := New("e-1", mustIntake(t, CategoryEat), "Chicken Soup", testAt, testCreated, "homemade")
	require.NoError(t, err)

	assert.True(t, e.Matches("chick"))
	assert.True(t, e.Matches("MADE"))
	assert.True(t, e.Matches(""))
	assert.False(t, e.Matches("beef"))
}
