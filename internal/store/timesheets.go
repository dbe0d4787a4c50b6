package store

import (
	"context"
	"sync"

	"hrsync/internal/entity"
)

// TimesheetStore caches the employee's own timesheets and the manager's
// per-employee review views, each with independent pagination. Every
// entry passes through the timesheet normalizer on the way in.
type TimesheetStore struct {
	api TimesheetAPI

	mu               sync.Mutex
	mine             []entity.Record
	minePagination   entity.Pagination
	byEmployee       map[string][]entity.Record
	reviewPagination map[string]entity.Pagination
	loading          bool
	err              string
}

func NewTimesheets(backend TimesheetAPI) *TimesheetStore {
	return &TimesheetStore{
		api:              backend,
		byEmployee:       make(map[string][]entity.Record),
		reviewPagination: make(map[string]entity.Pagination),
	}
}

func (s *TimesheetStore) FetchMine(ctx context.Context, employeeID string, page, limit int) ([]entity.Record, error) {
	s.setLoading()
	payload, err := s.api.ListTimesheets(ctx, employeeID, page, limit)
	if err != nil {
		return nil, s.fail(err)
	}
	records := normalizeTimesheets(payload)
	pagination := entity.PaginationFrom(payload, page, limit)

	s.mu.Lock()
	s.mine = records
	s.minePagination = pagination
	s.settle()
	s.mu.Unlock()
	return records, nil
}

// Create prepends the created entry, using the submitted data as the
// normalization fallback so fields the backend echoes back incompletely
// are filled from what was sent.
func (s *TimesheetStore) Create(ctx context.Context, employeeID string, data entity.Record) (entity.Record, error) {
	s.setLoading()
	payload, err := s.api.CreateTimesheet(ctx, employeeID, data)
	if err != nil {
		return nil, s.fail(err)
	}

	raw, ok := entity.UnwrapRecord(payload, "timesheet")
	var created entity.Record
	s.mu.Lock()
	if ok {
		created = normalizeTimesheet(raw, data)
		s.mine = append([]entity.Record{created}, s.mine...)
	}
	s.settle()
	s.mu.Unlock()
	return created, nil
}

func (s *TimesheetStore) Update(ctx context.Context, employeeID, timesheetID string, data entity.Record) (entity.Record, error) {
	if timesheetID == "" {
		return nil, s.localFail(ErrNoCanonicalID)
	}
	s.setLoading()
	payload, err := s.api.UpdateTimesheet(ctx, employeeID, timesheetID, data)
	if err != nil {
		return nil, s.fail(err)
	}

	raw, ok := entity.UnwrapRecord(payload, "timesheet")
	var updated entity.Record
	s.mu.Lock()
	if ok {
		fallback := data
		for i := range s.mine {
			if s.mine[i].ID() == timesheetID {
				fallback = s.mine[i]
				break
			}
		}
		updated = normalizeTimesheet(raw, fallback)
		for i := range s.mine {
			if s.mine[i].ID() == timesheetID {
				s.mine[i] = updated
			}
		}
	}
	s.settle()
	s.mu.Unlock()
	return updated, nil
}

func (s *TimesheetStore) Delete(ctx context.Context, employeeID, timesheetID string) error {
	if timesheetID == "" {
		return s.localFail(ErrNoCanonicalID)
	}
	s.setLoading()
	if _, err := s.api.DeleteTimesheet(ctx, employeeID, timesheetID); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.mine = removeByID(s.mine, timesheetID)
	s.settle()
	s.mu.Unlock()
	return nil
}

func (s *TimesheetStore) FetchForEmployee(ctx context.Context, employeeID string, page, limit int) ([]entity.Record, error) {
	s.setLoading()
	payload, err := s.api.ListTimesheets(ctx, employeeID, page, limit)
	if err != nil {
		return nil, s.fail(err)
	}
	records := normalizeTimesheets(payload)
	pagination := entity.PaginationFrom(payload, page, limit)

	s.mu.Lock()
	s.byEmployee[employeeID] = records
	s.reviewPagination[employeeID] = pagination
	s.settle()
	s.mu.Unlock()
	return records, nil
}

// Approve does not patch the review caches; the caller reloads after a
// successful call.
func (s *TimesheetStore) Approve(ctx context.Context, employeeID, timesheetID string, approved bool, note string) error {
	if timesheetID == "" {
		return s.localFail(ErrNoCanonicalID)
	}
	status := "approved"
	if !approved {
		status = "rejected"
	}
	body := entity.Record{"status": status}
	if note != "" {
		body["note"] = note
	}
	s.setLoading()
	if _, err := s.api.ApproveTimesheet(ctx, employeeID, timesheetID, body); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.settle()
	s.mu.Unlock()
	return nil
}

func normalizeTimesheets(payload any) []entity.Record {
	raw, _ := entity.UnwrapList(payload)
	out := make([]entity.Record, len(raw))
	for i, r := range raw {
		out[i] = normalizeTimesheet(r, nil)
	}
	return out
}

func normalizeTimesheet(r, fallback entity.Record) entity.Record {
	out := entity.NormalizeID(entity.NormalizeTimesheet(r, fallback))
	if _, has := out["status"]; !has {
		// Backend default when the field is missing entirely.
		out["status"] = "recorded"
	}
	return out
}

func (s *TimesheetStore) Mine() []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Record(nil), s.mine...)
}

func (s *TimesheetStore) MinePagination() entity.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minePagination
}

func (s *TimesheetStore) ForEmployee(employeeID string) []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Record(nil), s.byEmployee[employeeID]...)
}

func (s *TimesheetStore) ForEmployeePagination(employeeID string) entity.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewPagination[employeeID]
}

func (s *TimesheetStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *TimesheetStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *TimesheetStore) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"mine":           s.mine,
		"minePagination": s.minePagination,
		"loading":        s.loading,
		"error":          s.err,
	}
}

func (s *TimesheetStore) setLoading() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *TimesheetStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

func (s *TimesheetStore) localFail(err error) error {
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

func (s *TimesheetStore) settle() {
	s.loading = false
	s.err = ""
}
