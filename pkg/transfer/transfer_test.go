package transfer

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/symptoms/pkg/entry"
)

var testNow = time.Date(2026, 3, 3, 20, 0, 0, 0, time.UTC)

func sample(t *testing.T) []entry.Entry {
	t.Helper()
	meds, err := entry.NewIntake(entry.CategoryMeds)
	require.NoError(t, err)
	sym, err := entry.NewSymptom(5)
	require.NoError(t, err)
	a, err := entry.New("a", meds, "aspirin", testNow, testNow, "")
	require.NoError(t, err)
	b, err := entry.New("b", sym, "nausea", testNow, testNow, "mild")
	require.NoError(t, err)
	return []entry.Entry{a, b}
}

func TestParseEmptyEntries(t *testing.T) {
	got, err := Parse([]byte(`{"entries":[]}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseMalformed(t *testing.T) {
	for name, in := range map[string]string{
		"not json":     "not json",
		"no entries":   `{"foo":1}`,
		"array":        `[{"entries":[]}]`,
		"null":         `null`,
		"entries null": `{"entries":null}`,
		"entries obj":  `{"entries":{"id":"a"}}`,
		"string":       `"entries"`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(in))
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestParseInvalidEntry(t *testing.T) {
	_, err := Parse([]byte(`{"entries":[{"id":"a","category":"symptom","label":"x","timestamp":"2026-03-03T20:00:00Z","createdAt":"2026-03-03T20:00:00Z"}]}`))
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.ErrorIs(t, err, entry.ErrValidation)
}

func TestExportImportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sample(t), testNow))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, float64(Version), doc["version"])
	assert.Equal(t, "2026-03-03T20:00:00.000Z", doc["exportedAt"])
	assert.Contains(t, buf.String(), "\n  \"entries\": [")

	got, err := Import(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "aspirin", got[0].Label)
	s, ok := got[1].Severity()
	assert.True(t, ok)
	assert.Equal(t, entry.Severity(5), s)
}

func TestExportNilIsEmptyArray(t *testing.T) {
	b, err := Marshal(nil, testNow)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"entries": []`)
}

func TestFileClipboard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	c := FileClipboard{Path: path}
	require.NoError(t, c.WriteText("hello"))
	got, err := c.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	_, err = FileClipboard{Path: filepath.Join(t.TempDir(), "missing")}.ReadText()
	assert.Error(t, err)
}

func TestFileClipboardStdio(t *testing.T) {
	var out bytes.Buffer
	c := FileClipboard{Path: "-", In: strings.NewReader(`{"entries":[]}`), Out: &out}

	require.NoError(t, c.WriteText("exported"))
	assert.Equal(t, "exported", out.String())

	got, err := c.ReadText()
	require.NoError(t, err)
	assert.Equal(t, `{"entries":[]}`, got)
}
