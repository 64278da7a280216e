package app

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"

	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/transfer"
)

// Import merges entries into the collection and reports how many were
// added. Entries whose id already exists are dropped, as are repeats of an
// id within the batch; existing entries are never overwritten. Every entry
// is validated before anything is written, so a failure leaves the
// collection untouched.
func (s *Service) Import(ctx context.Context, entries []entry.Entry) (int, error) {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return 0, fmt.Errorf("app: import entry %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.entries)+len(entries))
	for _, e := range s.entries {
		seen[e.ID] = struct{}{}
	}
	merged := make([]entry.Entry, len(s.entries), len(s.entries)+len(entries))
	copy(merged, s.entries)
	added := 0
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		merged = append(merged, e)
		added++
	}
	if added == 0 {
		return 0, nil
	}

	s.persistence.WriteAll(ctx, merged)
	s.entries = merged
	s.logger().WithFields(log.Fields{"added": added, "skipped": len(entries) - added}).Info("imported entries")
	return added, nil
}

// ImportFrom parses an export document from r and merges it.
func (s *Service) ImportFrom(ctx context.Context, r io.Reader) (int, error) {
	entries, err := transfer.Import(r)
	if err != nil {
		return 0, err
	}
	return s.Import(ctx, entries)
}

// Export writes the export document of the current collection to w.
func (s *Service) Export(_ context.Context, w io.Writer) error {
	return transfer.Export(w, s.snapshot(), s.now())
}
