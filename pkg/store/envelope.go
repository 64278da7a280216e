package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/symptoms/pkg/entry"
)

// CurrentVersion is the schema version written by WriteAll.
const CurrentVersion = 1

// Envelope is the stored form of the collection.
type Envelope struct {
	Version int           `json:"version"`
	Entries []entry.Entry `json:"entries"`
}

// RawEnvelope is an envelope whose entries have not been decoded yet, the
// shape migrations operate on.
type RawEnvelope struct {
	Version int               `json:"version"`
	Entries []json.RawMessage `json:"entries"`
}

// Migration rewrites an envelope of one version into the next version.
type Migration func(RawEnvelope) (RawEnvelope, error)

// Migrations maps a source version to the step that upgrades it.
type Migrations map[int]Migration

// DefaultMigrations is the chain applied on load.
func DefaultMigrations() Migrations {
	return Migrations{
		// Version 0 blobs predate the version field; the entry shape is unchanged.
		0: func(env RawEnvelope) (RawEnvelope, error) {
			env.Version = 1
			return env, nil
		},
	}
}

var errUnknownVersion = errors.New("store: no migration path")

// Upgrade walks the chain from env.Version to target. When a version has no
// step the envelope is returned as far as it got, with errUnknownVersion.
func (m Migrations) Upgrade(env RawEnvelope, target int) (RawEnvelope, error) {
	for env.Version != target {
		step, ok := m[env.Version]
		if !ok {
			return env, fmt.Errorf("%w from version %d to %d", errUnknownVersion, env.Version, target)
		}
		next, err := step(env)
		if err != nil {
			return env, fmt.Errorf("store: migrate version %d: %w", env.Version, err)
		}
		if next.Version <= env.Version {
			return env, fmt.Errorf("store: migration from version %d did not advance", env.Version)
		}
		env = next
	}
	return env, nil
}

// decodeRaw accepts the envelope object and, as version 0, a bare array of
// entries.
func decodeRaw(b []byte) (RawEnvelope, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return RawEnvelope{}, err
		}
		return RawEnvelope{Version: 0, Entries: list}, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return RawEnvelope{}, errors.New("store: blob is not a JSON object")
	}
	var env RawEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return RawEnvelope{}, err
	}
	return env, nil
}

func encode(entries []entry.Entry) ([]byte, error) {
	if entries == nil {
		entries = []entry.Entry{}
	}
	return json.Marshal(Envelope{Version: CurrentVersion, Entries: entries})
}
