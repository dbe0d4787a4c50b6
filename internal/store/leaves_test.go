package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"hrsync/internal/api"
	"hrsync/internal/entity"
)

type fakeLeaveAPI struct {
	listFn    func(ctx context.Context, employeeID string, page, limit int) (any, error)
	createFn  func(ctx context.Context, employeeID string, data entity.Record) (any, error)
	allFn     func(ctx context.Context, p api.AllLeavesParams) (any, error)
	approveFn func(ctx context.Context, employeeID, leaveID string, data entity.Record) (any, error)

	approveCalls int
	lastAllQuery api.AllLeavesParams
}

func (f *fakeLeaveAPI) ListLeaves(ctx context.Context, employeeID string, page, limit int) (any, error) {
	if f.listFn != nil {
		return f.listFn(ctx, employeeID, page, limit)
	}
	return []any{}, nil
}

func (f *fakeLeaveAPI) CreateLeave(ctx context.Context, employeeID string, data entity.Record) (any, error) {
	if f.createFn != nil {
		return f.createFn(ctx, employeeID, data)
	}
	return map[string]any{}, nil
}

func (f *fakeLeaveAPI) UpdateLeave(ctx context.Context, employeeID, leaveID string, data entity.Record) (any, error) {
	return map[string]any{"leave": map[string]any{"_id": leaveID, "reason": data["reason"]}}, nil
}

func (f *fakeLeaveAPI) DeleteLeave(ctx context.Context, employeeID, leaveID string) (any, error) {
	return map[string]any{}, nil
}

func (f *fakeLeaveAPI) ApproveLeave(ctx context.Context, employeeID, leaveID string, data entity.Record) (any, error) {
	f.approveCalls++
	if f.approveFn != nil {
		return f.approveFn(ctx, employeeID, leaveID, data)
	}
	return map[string]any{}, nil
}

func (f *fakeLeaveAPI) ReviseLeave(ctx context.Context, employeeID, leaveID string, data entity.Record) (any, error) {
	return map[string]any{}, nil
}

func (f *fakeLeaveAPI) PendingLeaves(ctx context.Context, page, limit int) (any, error) {
	return []any{map[string]any{"_id": "l1", "status": "pending"}}, nil
}

func (f *fakeLeaveAPI) AllLeaves(ctx context.Context, p api.AllLeavesParams) (any, error) {
	f.lastAllQuery = p
	if f.allFn != nil {
		return f.allFn(ctx, p)
	}
	return []any{}, nil
}

func TestCreateLeavePrepends(t *testing.T) {
	backend := &fakeLeaveAPI{
		listFn: func(ctx context.Context, employeeID string, page, limit int) (any, error) {
			return []any{map[string]any{"_id": "old"}}, nil
		},
		createFn: func(ctx context.Context, employeeID string, data entity.Record) (any, error) {
			return map[string]any{"leave": map[string]any{"_id": "new"}}, nil
		},
	}
	s := NewLeaves(backend)
	if _, err := s.FetchMine(context.Background(), "e1", 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created, err := s.Create(context.Background(), "e1", entity.Record{"type": "annual"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID() != "new" {
		t.Fatalf("created leave not normalized: %v", created)
	}
	mine := s.Mine()
	if len(mine) != 2 || mine[0].ID() != "new" || mine[1].ID() != "old" {
		t.Fatalf("created leave must be prepended, got %v", mine)
	}
}

func TestUpdateLeaveRequiresCanonicalID(t *testing.T) {
	s := NewLeaves(&fakeLeaveAPI{})
	_, err := s.Update(context.Background(), "e1", "", entity.Record{})
	if !errors.Is(err, ErrNoCanonicalID) {
		t.Fatalf("expected ErrNoCanonicalID, got %v", err)
	}
}

func TestFetchAllSendsServerFiltersAppliesDateRange(t *testing.T) {
	backend := &fakeLeaveAPI{
		allFn: func(ctx context.Context, p api.AllLeavesParams) (any, error) {
			return []any{
				map[string]any{"_id": "in", "startDate": "2026-02-10"},
				map[string]any{"_id": "early", "startDate": "2026-01-05"},
				map[string]any{"_id": "late", "startDate": "2026-03-20"},
				map[string]any{"_id": "lower-bound", "startDate": "2026-02-01"},
				map[string]any{"_id": "unparseable", "startDate": "sometime"},
			}, nil
		},
	}
	s := NewLeaves(backend)

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	all, err := s.FetchAll(context.Background(), AllLeavesFilter{Status: "approved", Type: "annual", From: from, To: to})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if backend.lastAllQuery.Status != "approved" || backend.lastAllQuery.Type != "annual" {
		t.Fatalf("status/type must go to the backend, got %+v", backend.lastAllQuery)
	}
	if len(all) != 2 {
		t.Fatalf("expected the in-range entries, got %v", all)
	}
	if all[0].ID() != "in" || all[1].ID() != "lower-bound" {
		t.Fatalf("inclusive bounds violated: %v", all)
	}
}

func TestFetchForEmployeeKeepsOwnPagination(t *testing.T) {
	backend := &fakeLeaveAPI{
		listFn: func(ctx context.Context, employeeID string, page, limit int) (any, error) {
			return map[string]any{
				"items":      []any{map[string]any{"_id": "l1"}},
				"pagination": map[string]any{"page": float64(2), "limit": float64(5), "total": float64(12), "totalPages": float64(3)},
			}, nil
		},
	}
	s := NewLeaves(backend)

	records, err := s.FetchForEmployee(context.Background(), "e1", 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one leave, got %d", len(records))
	}

	pg := s.ForEmployeePagination("e1")
	if pg.Page != 2 || pg.Limit != 5 || pg.Total != 12 || pg.TotalPages != 3 {
		t.Fatalf("per-employee pagination not retained: %+v", pg)
	}
	// The employee view owns its tuple; the "mine" tuple stays untouched.
	if mine := s.MinePagination(); mine.Total != 0 {
		t.Fatalf("mine pagination must be independent, got %+v", mine)
	}
}

func TestApproveDoesNotPatchCaches(t *testing.T) {
	backend := &fakeLeaveAPI{}
	s := NewLeaves(backend)
	if _, err := s.FetchPending(context.Background(), 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Approve(context.Background(), "e1", "l1", true, "ok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.approveCalls != 1 {
		t.Fatalf("expected one approve call, got %d", backend.approveCalls)
	}

	pending := s.Pending()
	if len(pending) != 1 || pending[0]["status"] != "pending" {
		t.Fatalf("cached view must stay untouched until reload, got %v", pending)
	}
}
