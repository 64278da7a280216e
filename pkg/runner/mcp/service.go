// Package mcp provides the Model Context Protocol server integration for symptoms.
package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/timeutil"
)

// Service adapts the entry store to transport friendly arguments and results.
type Service struct {
	App *app.Service
}

// ErrEntryNotFound is returned when no entry has the requested id.
var ErrEntryNotFound = errors.New("entry not found")

// DefaultSearchLimit caps search_entries when no limit is given.
const DefaultSearchLimit = 20

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
	Label         string `json:"label"`
	Severity      int    `json:"severity,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Timestamp     string `json:"timestamp"`
	CreatedAt     string `json:"createdAt"`
	Local         string `json:"local"`
	Age           string `json:"age"`
}

// LogEntriesOptions are the arguments of log_entries.
type LogEntriesOptions struct {
	Category string   `json:"category"`
	Labels   []string `json:"labels"`
	At       string   `json:"at"`
}

// LogSymptomOptions are the arguments of log_symptom.
type LogSymptomOptions struct {
	Name     string `json:"name"`
	Severity int    `json:"severity"`
	At       string `json:"at"`
	Notes    string `json:"notes"`
}

// UpdateEntryOptions are the arguments of update_entry. Nil fields are left
// alone.
type UpdateEntryOptions struct {
	ID       string  `json:"id"`
	Label    *string `json:"label"`
	Notes    *string `json:"notes"`
	At       *string `json:"at"`
	Severity *int    `json:"severity"`
}

// SearchOptions are the arguments of search_entries.
type SearchOptions struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Since    string `json:"since"`
	Limit    int    `json:"limit"`
}

// NewService wraps the entry store.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return errors.New("entry store is not configured")
	}
	return nil
}

// LogEntries creates one intake entry per label.
func (s *Service) LogEntries(ctx context.Context, opts LogEntriesOptions) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	category, err := entry.ParseCategory(opts.Category)
	if err != nil {
		return nil, err
	}
	at, err := ParseAt(opts.At)
	if err != nil {
		return nil, err
	}
	created, err := s.App.CreateSimpleEntries(ctx, opts.Labels, category, at)
	if err != nil {
		return nil, err
	}
	return toDTOs(created), nil
}

// LogSymptom creates a symptom entry.
func (s *Service) LogSymptom(ctx context.Context, opts LogSymptomOptions) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	at, err := ParseAt(opts.At)
	if err != nil {
		return EntryDTO{}, err
	}
	e, err := s.App.CreateSymptom(ctx, opts.Name, entry.Severity(opts.Severity), at, opts.Notes)
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

// UpdateEntry applies the given fields to one entry.
func (s *Service) UpdateEntry(ctx context.Context, opts UpdateEntryOptions) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	patch := entry.Patch{Label: opts.Label, Notes: opts.Notes}
	if opts.At != nil {
		at, err := ParseAt(*opts.At)
		if err != nil {
			return EntryDTO{}, err
		}
		if at.IsZero() {
			return EntryDTO{}, fmt.Errorf("%w: at must not be empty", entry.ErrValidation)
		}
		patch.Timestamp = &at
	}
	if opts.Severity != nil {
		patch.Severity = entry.Ptr(entry.Severity(*opts.Severity))
	}
	if patch.IsEmpty() {
		return EntryDTO{}, errors.New("nothing to update")
	}

	updated, ok, err := s.App.UpdateEntry(ctx, strings.TrimSpace(opts.ID), patch)
	if err != nil {
		return EntryDTO{}, err
	}
	if !ok {
		return EntryDTO{}, fmt.Errorf("%w: %s", ErrEntryNotFound, opts.ID)
	}
	return toDTO(updated), nil
}

// DeleteEntry removes one entry and reports whether it existed.
func (s *Service) DeleteEntry(ctx context.Context, id string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.App.DeleteEntry(ctx, strings.TrimSpace(id)), nil
}

// EntryByID returns one entry.
func (s *Service) EntryByID(_ context.Context, id string) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	e, ok := s.App.Get(strings.TrimSpace(id))
	if !ok {
		return EntryDTO{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return toDTO(e), nil
}

// SearchEntries filters history, newest first.
func (s *Service) SearchEntries(_ context.Context, opts SearchOptions) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := app.Query{Search: opts.Query, Limit: opts.Limit}
	if q.Limit <= 0 {
		q.Limit = DefaultSearchLimit
	}
	if strings.TrimSpace(opts.Category) != "" {
		c, err := entry.ParseCategory(opts.Category)
		if err != nil {
			return nil, err
		}
		q.Category = c
	}
	if strings.TrimSpace(opts.Since) != "" {
		since, _, err := timeutil.WindowStart(time.Now(), opts.Since)
		if err != nil {
			return nil, err
		}
		q.Since = since
	}
	return toDTOs(s.App.History(q)), nil
}

// RecentEntries returns the home screen view.
func (s *Service) RecentEntries(_ context.Context, limit int) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return toDTOs(s.App.Recent(limit)), nil
}

// SuggestLabels ranks previously used labels of a category.
func (s *Service) SuggestLabels(_ context.Context, category, query string, limit int) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	c, err := entry.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	labels := s.App.Suggestions(c, query, limit)
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}

// ExportEntries returns the export document.
func (s *Service) ExportEntries(ctx context.Context) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := s.App.Export(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Report summarizes the window ending now, e.g. "1w".
func (s *Service) Report(_ context.Context, window string) (app.ReportResult, error) {
	if err := s.ready(); err != nil {
		return app.ReportResult{}, err
	}
	if strings.TrimSpace(window) == "" {
		window = timeutil.DefaultWindow
	}
	until := time.Now()
	since, _, err := timeutil.WindowStart(until, window)
	if err != nil {
		return app.ReportResult{}, err
	}
	return s.App.Report(since, until), nil
}

// ParseAt accepts an RFC 3339 instant or a local "YYYY-MM-DDTHH:mm" value.
// An empty value means now and yields the zero time.
func ParseAt(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := timeutil.ParseInstant(v); err == nil {
		return t, nil
	}
	t, err := timeutil.ParseLocalInput(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid at %q, expected RFC 3339 or YYYY-MM-DDTHH:mm", v)
	}
	return t, nil
}

func toDTO(e entry.Entry) EntryDTO {
	dto := EntryDTO{
		ID:            e.ID,
		Category:      string(e.Category()),
		CategoryLabel: e.Category().Label(),
		Label:         e.Label,
		Notes:         e.Notes,
		Timestamp:     entry.FormatTime(e.Timestamp.Time),
		CreatedAt:     entry.FormatTime(e.CreatedAt.Time),
		Local:         timeutil.LocalDisplay(e.Timestamp.Time),
		Age:           timeutil.RelativeAge(e.Timestamp.Time),
	}
	if sev, ok := e.Severity(); ok {
		dto.Severity = int(sev)
	}
	return dto
}

func toDTOs(entries []entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}
