package store

import (
	"context"
	"sync"

	"hrsync/internal/entity"
)

// AdvanceStore follows the leave pattern minus the revise operation.
type AdvanceStore struct {
	api AdvanceAPI

	mu      sync.Mutex
	mine    []entity.Record
	loading bool
	err     string
}

func NewAdvances(backend AdvanceAPI) *AdvanceStore {
	return &AdvanceStore{api: backend}
}

func (s *AdvanceStore) FetchMine(ctx context.Context, employeeID string) ([]entity.Record, error) {
	s.setLoading()
	payload, err := s.api.ListAdvances(ctx, employeeID)
	if err != nil {
		return nil, s.fail(err)
	}
	records, _ := entity.UnwrapList(payload)
	records = entity.NormalizeIDs(records)

	s.mu.Lock()
	s.mine = records
	s.settle()
	s.mu.Unlock()
	return records, nil
}

func (s *AdvanceStore) Create(ctx context.Context, employeeID string, data entity.Record) (entity.Record, error) {
	s.setLoading()
	payload, err := s.api.CreateAdvance(ctx, employeeID, data)
	if err != nil {
		return nil, s.fail(err)
	}

	created, ok := entity.UnwrapRecord(payload, "advance")
	s.mu.Lock()
	if ok {
		created = entity.NormalizeID(created)
		s.mine = append([]entity.Record{created}, s.mine...)
	}
	s.settle()
	s.mu.Unlock()
	return created, nil
}

func (s *AdvanceStore) Update(ctx context.Context, employeeID, advanceID string, data entity.Record) (entity.Record, error) {
	if advanceID == "" {
		return nil, s.localFail(ErrNoCanonicalID)
	}
	s.setLoading()
	payload, err := s.api.UpdateAdvance(ctx, employeeID, advanceID, data)
	if err != nil {
		return nil, s.fail(err)
	}

	updated, ok := entity.UnwrapRecord(payload, "advance")
	s.mu.Lock()
	if ok {
		updated = entity.NormalizeID(updated)
		for i := range s.mine {
			if s.mine[i].ID() == advanceID {
				s.mine[i] = updated
			}
		}
	}
	s.settle()
	s.mu.Unlock()
	return updated, nil
}

func (s *AdvanceStore) Delete(ctx context.Context, employeeID, advanceID string) error {
	if advanceID == "" {
		return s.localFail(ErrNoCanonicalID)
	}
	s.setLoading()
	if _, err := s.api.DeleteAdvance(ctx, employeeID, advanceID); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.mine = removeByID(s.mine, advanceID)
	s.settle()
	s.mu.Unlock()
	return nil
}

// Approve does not patch cached lists; callers reload after success.
func (s *AdvanceStore) Approve(ctx context.Context, employeeID, advanceID string, approved bool) error {
	if advanceID == "" {
		return s.localFail(ErrNoCanonicalID)
	}
	status := "approved"
	if !approved {
		status = "rejected"
	}
	s.setLoading()
	if _, err := s.api.ApproveAdvance(ctx, employeeID, advanceID, entity.Record{"status": status}); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.settle()
	s.mu.Unlock()
	return nil
}

func (s *AdvanceStore) Mine() []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Record(nil), s.mine...)
}

func (s *AdvanceStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *AdvanceStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AdvanceStore) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"mine":    s.mine,
		"loading": s.loading,
		"error":   s.err,
	}
}

func (s *AdvanceStore) setLoading() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *AdvanceStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

func (s *AdvanceStore) localFail(err error) error {
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

func (s *AdvanceStore) settle() {
	s.loading = false
	s.err = ""
}
