package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/apex/log"

	"tableflip.dev/symptoms/pkg/entry"
)

// DefaultKey is the key the collection blob is stored under.
const DefaultKey = "symptoms:entries"

const (
	failureRead  = "storage_read"
	failureWrite = "storage_write"
)

// Persistence reads and writes the whole collection as one blob. Every
// read-modify-write holds a mutex so concurrent callers cannot lose updates.
//
// Storage failures never reach the caller: a failed read yields an empty
// collection, a failed write leaves the previous blob, and both are logged at
// error level with a "failure" field.
type Persistence struct {
	mu         sync.Mutex
	kv         KV
	key        string
	log        log.Interface
	migrations Migrations
	// unsaved is set when the last write failed and cleared by the next
	// successful one.
	unsaved bool
}

// Option configures a Persistence.
type Option func(*Persistence)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(p *Persistence) {
		if key != "" {
			p.key = key
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l log.Interface) Option {
	return func(p *Persistence) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMigrations replaces DefaultMigrations.
func WithMigrations(m Migrations) Option {
	return func(p *Persistence) {
		p.migrations = m
	}
}

// New wraps kv.
func New(kv KV, opts ...Option) *Persistence {
	p := &Persistence{
		kv:         kv,
		key:        DefaultKey,
		log:        log.Log,
		migrations: DefaultMigrations(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key is the key the collection is stored under.
func (p *Persistence) Key() string {
	return p.key
}

// ReadAll returns the stored collection, migrated to CurrentVersion. A
// missing or unreadable blob reads as empty.
func (p *Persistence) ReadAll(ctx context.Context) []entry.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readAll(ctx)
}

// WriteAll replaces the stored collection.
func (p *Persistence) WriteAll(ctx context.Context, entries []entry.Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writeAll(ctx, entries)
}

// Add appends e and returns the new collection. An invalid entry, or one
// whose id is already stored, fails with entry.ErrValidation and nothing is
// written.
func (p *Persistence) Add(ctx context.Context, e entry.Entry) ([]entry.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	all := p.readAll(ctx)
	if indexOf(all, e.ID) >= 0 {
		return all, fmt.Errorf("%w: duplicate id %q", entry.ErrValidation, e.ID)
	}
	all = append(all, e)
	p.writeAll(ctx, all)
	return all, nil
}

// UpdateByID applies patch to the entry with the given id and returns the
// new collection. A missing id is a no-op. A patch that would break the
// entry invariants fails with entry.ErrValidation and nothing is written.
func (p *Persistence) UpdateByID(ctx context.Context, id string, patch entry.Patch) ([]entry.Entry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	all := p.readAll(ctx)
	i := indexOf(all, id)
	if i < 0 {
		return all, nil
	}
	updated, err := all[i].Apply(patch)
	if err != nil {
		return all, err
	}
	all[i] = updated
	p.writeAll(ctx, all)
	return all, nil
}

// DeleteByID removes the entry with the given id, if any, and returns the
// new collection.
func (p *Persistence) DeleteByID(ctx context.Context, id string) []entry.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	all := p.readAll(ctx)
	i := indexOf(all, id)
	if i < 0 {
		return all
	}
	all = append(all[:i], all[i+1:]...)
	p.writeAll(ctx, all)
	return all
}

// Unsaved reports whether the last write failed, so the stored blob is
// behind what callers were handed.
func (p *Persistence) Unsaved() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unsaved
}

// Close releases the byte store.
func (p *Persistence) Close() error {
	return closeKV(p.kv)
}

func (p *Persistence) readAll(ctx context.Context) []entry.Entry {
	b, err := p.kv.Get(ctx, p.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.diagnose(failureRead, err, "read collection")
		}
		return []entry.Entry{}
	}

	raw, err := decodeRaw(b)
	if err != nil {
		p.diagnose(failureRead, err, "decode collection")
		return []entry.Entry{}
	}

	if raw.Version != CurrentVersion {
		from := raw.Version
		raw, err = p.migrations.Upgrade(raw, CurrentVersion)
		if err != nil {
			p.logger().WithError(err).WithField("version", raw.Version).Warn("using entries without migration")
		} else {
			p.logger().WithFields(log.Fields{"from": from, "to": raw.Version}).Info("migrated collection")
		}
	}

	out := make([]entry.Entry, 0, len(raw.Entries))
	for i, msg := range raw.Entries {
		var e entry.Entry
		if err := json.Unmarshal(msg, &e); err != nil {
			p.diagnose(failureRead, err, fmt.Sprintf("skip entry %d", i))
			continue
		}
		out = append(out, e)
	}
	return out
}

func (p *Persistence) writeAll(ctx context.Context, entries []entry.Entry) {
	b, err := encode(entries)
	if err != nil {
		p.diagnose(failureWrite, err, "encode collection")
		p.unsaved = true
		return
	}
	if err := p.kv.Set(ctx, p.key, b); err != nil {
		p.diagnose(failureWrite, err, "write collection")
		p.unsaved = true
		return
	}
	p.unsaved = false
	p.logger().WithField("entries", len(entries)).Debug("wrote collection")
}

func (p *Persistence) logger() *log.Entry {
	return p.log.WithFields(log.Fields{"component": "persistence", "key": p.key})
}

func (p *Persistence) diagnose(failure string, err error, msg string) {
	p.logger().WithError(err).WithField("failure", failure).Error(msg)
}

func indexOf(entries []entry.Entry, id string) int {
	for i := range entries {
		if entries[i].ID == id {
			return i
		}
	}
	return -1
}
