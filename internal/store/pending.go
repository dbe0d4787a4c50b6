package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"hrsync/internal/entity"
)

// PendingSummary is the cross-employee outstanding-request snapshot shown
// to privileged roles. Each poll replaces it wholesale; it is never
// merged field by field.
type PendingSummary struct {
	Leaves      int       `json:"leaves"`
	Timesheets  int       `json:"timesheets"`
	Advances    int       `json:"advances"`
	Total       int       `json:"total"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type PendingStore struct {
	api PendingAPI

	mu      sync.Mutex
	summary *PendingSummary
	loading bool
	err     string
}

func NewPending(backend PendingAPI) *PendingStore {
	return &PendingStore{api: backend}
}

// Poll replaces the snapshot on success. On failure the previous snapshot
// stays visible (stale while error) and loading is cleared so repeated
// failures do not leave an indefinite spinner.
func (s *PendingStore) Poll(ctx context.Context) (*PendingSummary, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	payload, err := s.api.PendingRequestSummary(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	summary := summaryFrom(payload)
	s.mu.Lock()
	s.summary = summary
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return summary, nil
}

// Run drives the poll cadence: one immediate poll, then a fixed interval.
// There is no backoff and no failure cap. Polls are skipped while the
// session is not privileged.
func (s *PendingStore) Run(ctx context.Context, interval time.Duration, privileged func() bool) {
	poll := func() {
		if privileged != nil && !privileged() {
			return
		}
		if _, err := s.Poll(ctx); err != nil {
			slog.Warn("pending requests poll failed", "err", err)
		}
	}

	poll()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}

func summaryFrom(payload any) *PendingSummary {
	rec, _ := entity.UnwrapRecord(payload)
	summary := &PendingSummary{
		Leaves:      countOf(rec, "leaves"),
		Timesheets:  countOf(rec, "timesheets"),
		Advances:    countOf(rec, "advances"),
		LastUpdated: time.Now(),
	}
	if total, ok := entity.Number(rec["total"]); ok {
		summary.Total = int(total)
	} else {
		summary.Total = summary.Leaves + summary.Timesheets + summary.Advances
	}
	return summary
}

func countOf(rec entity.Record, key string) int {
	if nested, ok := rec[key].(map[string]any); ok {
		if n, ok := entity.Number(nested["count"]); ok {
			return int(n)
		}
	}
	if n, ok := entity.Number(rec[key]); ok {
		return int(n)
	}
	return 0
}

func (s *PendingStore) Summary() *PendingSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func (s *PendingStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *PendingStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *PendingStore) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"summary": s.summary,
		"loading": s.loading,
		"error":   s.err,
	}
}
