// Package app is the entry store: the in-memory view of the collection that
// the CLI, TUI and MCP server share, kept in step with persistence.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"tableflip.dev/symptoms/pkg/entry"
)

// ErrNoPersistence is returned by New when no persistence is given.
var ErrNoPersistence = errors.New("app: no persistence configured")

// Persistence is the durable side of the store. store.Persistence
// implements it.
type Persistence interface {
	ReadAll(ctx context.Context) []entry.Entry
	WriteAll(ctx context.Context, entries []entry.Entry)
	Add(ctx context.Context, e entry.Entry) ([]entry.Entry, error)
	UpdateByID(ctx context.Context, id string, patch entry.Patch) ([]entry.Entry, error)
	DeleteByID(ctx context.Context, id string) []entry.Entry
	Unsaved() bool
	Close() error
}

// Service holds the cached collection. After every mutation the cache is
// replaced with the collection persistence returned, never computed on the
// side. Mutations hold the service lock for their whole duration, so the
// writes of a batch never interleave with another mutation.
type Service struct {
	mu          sync.Mutex
	persistence Persistence
	entries     []entry.Entry

	now   func() time.Time
	newID func() string
	log   log.Interface
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the uuid id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Interface) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New loads the collection from p once and returns the service.
func New(ctx context.Context, p Persistence, opts ...Option) (*Service, error) {
	if p == nil {
		return nil, ErrNoPersistence
	}
	s := &Service{
		persistence: p,
		now:         time.Now,
		newID:       uuid.NewString,
		log:         log.Log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.entries = p.ReadAll(ctx)
	return s, nil
}

func (s *Service) logger() *log.Entry {
	return s.log.WithFields(log.Fields{"component": "entry-store"})
}

// Reload re-reads the collection, picking up writes made by other processes.
func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.persistence.ReadAll(ctx)
}

// CreateSimpleEntries logs one intake entry per label that is non-empty
// after trimming, at the given time, or now when at is zero. Each
// entry is written on its own, in order. The symptom category is rejected
// with entry.ErrValidation since symptoms need a severity.
func (s *Service) CreateSimpleEntries(ctx context.Context, labels []string, category entry.Category, at time.Time) ([]entry.Entry, error) {
	kind, err := entry.NewIntake(category)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if at.IsZero() {
		at = now
	}

	pending := make([]entry.Entry, 0, len(labels))
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			continue
		}
		e, err := entry.New(s.newID(), kind, label, at, now, "")
		if err != nil {
			return nil, err
		}
		pending = append(pending, e)
	}

	created := make([]entry.Entry, 0, len(pending))
	for _, e := range pending {
		all, err := s.persistence.Add(ctx, e)
		if err != nil {
			return created, fmt.Errorf("app: add %q: %w", e.Label, err)
		}
		s.entries = all
		created = append(created, e)
	}
	s.logger().WithFields(log.Fields{"category": category, "count": len(created)}).Debug("created entries")
	return created, nil
}

// CreateSymptom logs a symptom. Severity outside 1-10 or a blank name fails
// with entry.ErrValidation. A zero at means now.
func (s *Service) CreateSymptom(ctx context.Context, name string, severity entry.Severity, at time.Time, notes string) (entry.Entry, error) {
	kind, err := entry.NewSymptom(severity)
	if err != nil {
		return entry.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if at.IsZero() {
		at = now
	}
	e, err := entry.New(s.newID(), kind, name, at, now, notes)
	if err != nil {
		return entry.Entry{}, err
	}
	all, err := s.persistence.Add(ctx, e)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("app: add %q: %w", e.Label, err)
	}
	s.entries = all
	s.logger().WithFields(log.Fields{"id": e.ID, "severity": severity}).Debug("created symptom")
	return e, nil
}

// UpdateEntry applies patch to the entry with id. It reports false, with no
// error, when the id does not exist.
func (s *Service) UpdateEntry(ctx context.Context, id string, patch entry.Patch) (entry.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.entries, id) < 0 {
		return entry.Entry{}, false, nil
	}
	all, err := s.persistence.UpdateByID(ctx, id, patch)
	if err != nil {
		return entry.Entry{}, true, err
	}
	s.entries = all
	i := indexOf(all, id)
	if i < 0 {
		// Removed by another writer since the cache was loaded.
		return entry.Entry{}, false, nil
	}
	return all[i], true, nil
}

// DeleteEntry removes the entry with id and reports whether it existed.
func (s *Service) DeleteEntry(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed := indexOf(s.entries, id) >= 0
	s.entries = s.persistence.DeleteByID(ctx, id)
	return existed
}

// Close releases persistence. Mutations already wrote through, so the cache
// is only flushed when the last write failed; otherwise writes made by other
// processes since the cache was loaded would be lost.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persistence.Unsaved() {
		s.logger().WithField("entries", len(s.entries)).Info("flushing unsaved entries")
		s.persistence.WriteAll(ctx, s.entries)
	}
	return s.persistence.Close()
}

func indexOf(entries []entry.Entry, id string) int {
	for i := range entries {
		if entries[i].ID == id {
			return i
		}
	}
	return -1
}
