package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/symptoms/pkg/entry"
)

var testNow = time.Date(2026, 3, 3, 20, 0, 0, 0, time.UTC)

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func newTestLogger() (*log.Logger, *memory.Handler) {
	h := memory.New()
	return &log.Logger{Handler: h, Level: log.DebugLevel}, h
}

func failures(h *memory.Handler, kind string) []*log.Entry {
	var out []*log.Entry
	for _, e := range h.Entries {
		if e.Fields["failure"] == kind {
			out = append(out, e)
		}
	}
	return out
}

func intake(t *testing.T, id, label string) entry.Entry {
	t.Helper()
	k, err := entry.NewIntake(entry.CategoryEat)
	require.NoError(t, err)
	e, err := entry.New(id, k, label, testNow, testNow, "")
	require.NoError(t, err)
	return e
}

func symptom(t *testing.T, id, label string, s entry.Severity) entry.Entry {
	t.Helper()
	k, err := entry.NewSymptom(s)
	require.NoError(t, err)
	e, err := entry.New(id, k, label, testNow, testNow.Add(time.Minute), "after lunch")
	require.NoError(t, err)
	return e
}

func ids(entries []entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestReadAllMissingIsEmpty(t *testing.T) {
	l, h := newTestLogger()
	p := New(NewMemoryKV(), WithLogger(l))

	got := p.ReadAll(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, failures(h, failureRead))
}

func TestWriteAllReadAllIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	p := New(kv)

	want := []entry.Entry{intake(t, "a", "toast"), symptom(t, "b", "headache", 6)}
	p.WriteAll(ctx, want)
	first := p.ReadAll(ctx)
	blob, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)

	p.WriteAll(ctx, first)
	second := p.ReadAll(ctx)
	again, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)

	assert.Equal(t, ids(want), ids(second))
	assert.JSONEq(t, string(blob), string(again))
	assert.Contains(t, string(blob), `"version":1`)
}

func TestReadAllMalformedLogsAndReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	for name, blob := range map[string]string{
		"not json":   "not json",
		"truncated":  `{"version":1,"entries":[`,
		"wrong type": `"a string"`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(ctx, DefaultKey, []byte(blob)))
			l, h := newTestLogger()
			p := New(kv, WithLogger(l))

			assert.Empty(t, p.ReadAll(ctx))
			got := failures(h, failureRead)
			require.Len(t, got, 1)
			assert.Equal(t, log.ErrorLevel, got[0].Level)
			assert.Equal(t, "persistence", got[0].Fields["component"])
			assert.Equal(t, DefaultKey, got[0].Fields["key"])
		})
	}
}

func TestReadAllFailureLogged(t *testing.T) {
	l, h := newTestLogger()
	p := New(failingKV{}, WithLogger(l))

	assert.Empty(t, p.ReadAll(context.Background()))
	assert.Len(t, failures(h, failureRead), 1)
}

func TestWriteFailureLoggedNotReturned(t *testing.T) {
	ctx := context.Background()
	l, h := newTestLogger()
	p := New(failingKV{}, WithLogger(l))

	got, err := p.Add(ctx, intake(t, "a", "toast"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(got))
	assert.Len(t, failures(h, failureWrite), 1)
	assert.True(t, p.Unsaved())
}

func TestUnsavedClearedBySuccessfulWrite(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryKV())
	assert.False(t, p.Unsaved())

	_, err := p.Add(ctx, intake(t, "a", "toast"))
	require.NoError(t, err)
	assert.False(t, p.Unsaved())
}

func TestReadAllSkipsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	blob := `{"version":1,"entries":[
		{"id":"a","category":"eat","label":"toast","timestamp":"2026-03-03T20:00:00.000Z","createdAt":"2026-03-03T20:00:00.000Z"},
		{"id":"b","category":"symptom","label":"headache","timestamp":"2026-03-03T20:00:00.000Z","createdAt":"2026-03-03T20:00:00.000Z"}
	]}`
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(blob)))
	l, h := newTestLogger()
	p := New(kv, WithLogger(l))

	assert.Equal(t, []string{"a"}, ids(p.ReadAll(ctx)))
	assert.Len(t, failures(h, failureRead), 1)
}

func TestReadAllLegacyArray(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	blob := `[{"id":"a","category":"drink","label":"tea","timestamp":"2026-03-03T20:00:00Z","createdAt":"2026-03-03T20:00:00Z"}]`
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(blob)))

	got := New(kv).ReadAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, entry.CategoryDrink, got[0].Category())
}

func TestReadAllRunsMigrationOnVersionMismatch(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	blob := `{"version":0,"entries":[{"id":"a","category":"eat","label":"toast","timestamp":"2026-03-03T20:00:00Z","createdAt":"2026-03-03T20:00:00Z"}]}`
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(blob)))

	called := 0
	upper := func(env RawEnvelope) (RawEnvelope, error) {
		called++
		for i, msg := range env.Entries {
			var m map[string]any
			if err := json.Unmarshal(msg, &m); err != nil {
				return env, err
			}
			m["label"] = strings.ToUpper(m["label"].(string))
			b, err := json.Marshal(m)
			if err != nil {
				return env, err
			}
			env.Entries[i] = b
		}
		env.Version = 1
		return env, nil
	}
	l, h := newTestLogger()
	p := New(kv, WithLogger(l), WithMigrations(Migrations{0: upper}))

	got := p.ReadAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, 1, called)
	assert.Equal(t, "TOAST", got[0].Label)
	assert.Empty(t, failures(h, failureRead))
}

func TestReadAllDefaultMigrationFromVersionZero(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	blob := `{"entries":[{"id":"a","category":"eat","label":"toast","timestamp":"2026-03-03T20:00:00Z","createdAt":"2026-03-03T20:00:00Z"}]}`
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(blob)))
	p := New(kv)

	got := p.ReadAll(ctx)
	require.Len(t, got, 1)

	p.WriteAll(ctx, got)
	b, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"version":1`)
}

func TestReadAllNewerVersionPassesThrough(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	blob := `{"version":7,"entries":[{"id":"a","category":"eat","label":"toast","timestamp":"2026-03-03T20:00:00Z","createdAt":"2026-03-03T20:00:00Z"}]}`
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(blob)))
	l, h := newTestLogger()

	got := New(kv, WithLogger(l)).ReadAll(ctx)
	assert.Equal(t, []string{"a"}, ids(got))

	warned := false
	for _, e := range h.Entries {
		if e.Level == log.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestAddRejectsDuplicateAndInvalid(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryKV())

	_, err := p.Add(ctx, intake(t, "a", "toast"))
	require.NoError(t, err)

	_, err = p.Add(ctx, intake(t, "a", "jam"))
	assert.ErrorIs(t, err, entry.ErrValidation)

	_, err = p.Add(ctx, entry.Entry{ID: "b", Label: "x"})
	assert.ErrorIs(t, err, entry.ErrValidation)

	assert.Len(t, p.ReadAll(ctx), 1)
}

func TestUpdateByIDChangesOnlyLabel(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryKV())
	orig := symptom(t, "s", "headache", 8)
	_, err := p.Add(ctx, orig)
	require.NoError(t, err)

	got, err := p.UpdateByID(ctx, "s", entry.Patch{Label: entry.Ptr("X")})
	require.NoError(t, err)
	require.Len(t, got, 1)

	stored := p.ReadAll(ctx)[0]
	assert.Equal(t, "X", stored.Label)
	assert.Equal(t, orig.ID, stored.ID)
	assert.Equal(t, orig.Notes, stored.Notes)
	assert.True(t, orig.Timestamp.Equal(stored.Timestamp.Time))
	assert.True(t, orig.CreatedAt.Equal(stored.CreatedAt.Time))
	assert.Equal(t, entry.CategorySymptom, stored.Category())
	s, ok := stored.Severity()
	assert.True(t, ok)
	assert.Equal(t, entry.Severity(8), s)
}

func TestUpdateByIDMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryKV())
	_, err := p.Add(ctx, intake(t, "a", "toast"))
	require.NoError(t, err)

	got, err := p.UpdateByID(ctx, "nope", entry.Patch{Label: entry.Ptr("X")})
	require.NoError(t, err)
	assert.Equal(t, "toast", got[0].Label)
}

func TestUpdateByIDInvalidPatchWritesNothing(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryKV())
	_, err := p.Add(ctx, intake(t, "a", "toast"))
	require.NoError(t, err)

	_, err = p.UpdateByID(ctx, "a", entry.Patch{Severity: entry.Ptr(entry.Severity(4))})
	assert.ErrorIs(t, err, entry.ErrValidation)
	_, err = p.UpdateByID(ctx, "a", entry.Patch{Label: entry.Ptr("  ")})
	assert.ErrorIs(t, err, entry.ErrValidation)

	stored := p.ReadAll(ctx)[0]
	assert.Equal(t, "toast", stored.Label)
	assert.False(t, stored.IsSymptom())
}

func TestDeleteByID(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryKV())
	for _, id := range []string{"a", "b", "c"} {
		_, err := p.Add(ctx, intake(t, id, "toast"))
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"a", "c"}, ids(p.DeleteByID(ctx, "b")))
	assert.Equal(t, []string{"a", "c"}, ids(p.ReadAll(ctx)))

	assert.Equal(t, []string{"a", "c"}, ids(p.DeleteByID(ctx, "missing")))
	assert.ElementsMatch(t, []string{"a", "c"}, ids(p.ReadAll(ctx)))
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryKV())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := p.Add(ctx, intake(t, fmt.Sprintf("id-%02d", i), "toast"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, p.ReadAll(ctx), 50)
}

func TestMigrationsUpgrade(t *testing.T) {
	_, err := Migrations{}.Upgrade(RawEnvelope{Version: 3}, CurrentVersion)
	assert.ErrorIs(t, err, errUnknownVersion)

	stuck := Migrations{0: func(env RawEnvelope) (RawEnvelope, error) { return env, nil }}
	_, err = stuck.Upgrade(RawEnvelope{Version: 0}, CurrentVersion)
	assert.Error(t, err)

	env, err := DefaultMigrations().Upgrade(RawEnvelope{Version: 0}, CurrentVersion)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, env.Version)
}
