package store

import (
	"context"
	"sync"
	"time"

	"hrsync/internal/api"
	"hrsync/internal/entity"
)

// LeaveStore caches the employee's own leave requests and the manager
// review views. Manager-side mutations never patch the cached lists: the
// caller reloads the affected view after a successful call.
type LeaveStore struct {
	api LeaveAPI

	mu                sync.Mutex
	mine              []entity.Record
	minePagination    entity.Pagination
	pending           []entity.Record
	pendingPagination entity.Pagination
	all               []entity.Record
	allPagination     entity.Pagination
	byEmployee        map[string][]entity.Record
	reviewPagination  map[string]entity.Pagination
	loading           bool
	err               string
}

func NewLeaves(backend LeaveAPI) *LeaveStore {
	return &LeaveStore{
		api:              backend,
		byEmployee:       make(map[string][]entity.Record),
		reviewPagination: make(map[string]entity.Pagination),
	}
}

func (s *LeaveStore) FetchMine(ctx context.Context, employeeID string, page, limit int) ([]entity.Record, error) {
	s.setLoading()
	payload, err := s.api.ListLeaves(ctx, employeeID, page, limit)
	if err != nil {
		return nil, s.fail(err)
	}
	records, _ := entity.UnwrapList(payload)
	records = entity.NormalizeIDs(records)
	pagination := entity.PaginationFrom(payload, page, limit)

	s.mu.Lock()
	s.mine = records
	s.minePagination = pagination
	s.settle()
	s.mu.Unlock()
	return records, nil
}

func (s *LeaveStore) Create(ctx context.Context, employeeID string, data entity.Record) (entity.Record, error) {
	s.setLoading()
	payload, err := s.api.CreateLeave(ctx, employeeID, data)
	if err != nil {
		return nil, s.fail(err)
	}

	created, ok := entity.UnwrapRecord(payload, "leave")
	s.mu.Lock()
	if ok {
		created = entity.NormalizeID(created)
		s.mine = append([]entity.Record{created}, s.mine...)
	}
	s.settle()
	s.mu.Unlock()
	return created, nil
}

func (s *LeaveStore) Update(ctx context.Context, employeeID, leaveID string, data entity.Record) (entity.Record, error) {
	if leaveID == "" {
		return nil, s.localFail(ErrNoCanonicalID)
	}
	s.setLoading()
	payload, err := s.api.UpdateLeave(ctx, employeeID, leaveID, data)
	if err != nil {
		return nil, s.fail(err)
	}

	updated, ok := entity.UnwrapRecord(payload, "leave")
	s.mu.Lock()
	if ok {
		updated = entity.NormalizeID(updated)
		for i := range s.mine {
			if s.mine[i].ID() == leaveID {
				s.mine[i] = updated
			}
		}
	}
	s.settle()
	s.mu.Unlock()
	return updated, nil
}

func (s *LeaveStore) Delete(ctx context.Context, employeeID, leaveID string) error {
	if leaveID == "" {
		return s.localFail(ErrNoCanonicalID)
	}
	s.setLoading()
	if _, err := s.api.DeleteLeave(ctx, employeeID, leaveID); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.mine = removeByID(s.mine, leaveID)
	s.settle()
	s.mu.Unlock()
	return nil
}

func (s *LeaveStore) FetchPending(ctx context.Context, page, limit int) ([]entity.Record, error) {
	s.setLoading()
	payload, err := s.api.PendingLeaves(ctx, page, limit)
	if err != nil {
		return nil, s.fail(err)
	}
	records, _ := entity.UnwrapList(payload)
	records = entity.NormalizeIDs(records)
	pagination := entity.PaginationFrom(payload, page, limit)

	s.mu.Lock()
	s.pending = records
	s.pendingPagination = pagination
	s.settle()
	s.mu.Unlock()
	return records, nil
}

// AllLeavesFilter narrows the cross-employee view. Status and type go to
// the backend as query parameters; the date range is applied client-side
// after the fetch, inclusive on both bounds, comparing parsed dates.
type AllLeavesFilter struct {
	Status string
	Type   string
	Page   int
	Limit  int
	From   time.Time
	To     time.Time
}

func (s *LeaveStore) FetchAll(ctx context.Context, filter AllLeavesFilter) ([]entity.Record, error) {
	s.setLoading()
	payload, err := s.api.AllLeaves(ctx, api.AllLeavesParams{
		Status: filter.Status,
		Type:   filter.Type,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, s.fail(err)
	}
	records, _ := entity.UnwrapList(payload)
	records = entity.NormalizeIDs(records)
	records = filterByStartDate(records, filter.From, filter.To)
	pagination := entity.PaginationFrom(payload, filter.Page, filter.Limit)

	s.mu.Lock()
	s.all = records
	s.allPagination = pagination
	s.settle()
	s.mu.Unlock()
	return records, nil
}

func (s *LeaveStore) FetchForEmployee(ctx context.Context, employeeID string, page, limit int) ([]entity.Record, error) {
	s.setLoading()
	payload, err := s.api.ListLeaves(ctx, employeeID, page, limit)
	if err != nil {
		return nil, s.fail(err)
	}
	records, _ := entity.UnwrapList(payload)
	records = entity.NormalizeIDs(records)
	pagination := entity.PaginationFrom(payload, page, limit)

	s.mu.Lock()
	s.byEmployee[employeeID] = records
	s.reviewPagination[employeeID] = pagination
	s.settle()
	s.mu.Unlock()
	return records, nil
}

// Approve signals success without touching any cached list. Patching
// every simultaneously-cached view of the same leave is more complexity
// than the pull-based refresh model warrants; callers reload instead.
func (s *LeaveStore) Approve(ctx context.Context, employeeID, leaveID string, approved bool, note string) error {
	if leaveID == "" {
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
	if _, err := s.api.ApproveLeave(ctx, employeeID, leaveID, body); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.settle()
	s.mu.Unlock()
	return nil
}

// Revise follows the same reload-on-mutate contract as Approve.
func (s *LeaveStore) Revise(ctx context.Context, employeeID, leaveID string, data entity.Record) error {
	if leaveID == "" {
		return s.localFail(ErrNoCanonicalID)
	}
	s.setLoading()
	if _, err := s.api.ReviseLeave(ctx, employeeID, leaveID, data); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.settle()
	s.mu.Unlock()
	return nil
}

var leaveStartCandidates = []string{"startDate", "start_date", "from"}

func filterByStartDate(records []entity.Record, from, to time.Time) []entity.Record {
	if from.IsZero() && to.IsZero() {
		return records
	}
	out := make([]entity.Record, 0, len(records))
	for _, r := range records {
		raw, ok := entity.First(r, leaveStartCandidates...)
		if !ok {
			continue
		}
		start, ok := entity.ParseDate(raw)
		if !ok {
			continue
		}
		if !from.IsZero() && start.Before(from) {
			continue
		}
		if !to.IsZero() && start.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *LeaveStore) Mine() []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Record(nil), s.mine...)
}

func (s *LeaveStore) Pending() []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Record(nil), s.pending...)
}

func (s *LeaveStore) All() []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Record(nil), s.all...)
}

func (s *LeaveStore) ForEmployee(employeeID string) []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Record(nil), s.byEmployee[employeeID]...)
}

func (s *LeaveStore) ForEmployeePagination(employeeID string) entity.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewPagination[employeeID]
}

func (s *LeaveStore) MinePagination() entity.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minePagination
}

func (s *LeaveStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *LeaveStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *LeaveStore) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"mine":              s.mine,
		"minePagination":    s.minePagination,
		"pending":           s.pending,
		"pendingPagination": s.pendingPagination,
		"all":               s.all,
		"allPagination":     s.allPagination,
		"loading":           s.loading,
		"error":             s.err,
	}
}

func (s *LeaveStore) setLoading() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *LeaveStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

func (s *LeaveStore) localFail(err error) error {
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

func (s *LeaveStore) settle() {
	s.loading = false
	s.err = ""
}
