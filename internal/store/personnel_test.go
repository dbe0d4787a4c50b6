package store

import (
	"context"
	"errors"
	"testing"

	"hrsync/internal/api"
	"hrsync/internal/entity"
)

type fakePersonnelAPI struct {
	listFn       func(ctx context.Context, p api.ListEmployeesParams) (any, error)
	statsFn      func(ctx context.Context) (any, error)
	deletedFn    func(ctx context.Context) (any, error)
	createFn     func(ctx context.Context, data entity.Record) (any, error)
	updateFn     func(ctx context.Context, id string, data entity.Record) (any, error)
	deleteFn     func(ctx context.Context, id string) (any, error)
	restoreFn    func(ctx context.Context, id string) (any, error)
	updateRoleFn func(ctx context.Context, id, userID, role string) (any, error)

	roleCalls int
}

func (f *fakePersonnelAPI) ListEmployees(ctx context.Context, p api.ListEmployeesParams) (any, error) {
	if f.listFn != nil {
		return f.listFn(ctx, p)
	}
	return map[string]any{"employees": []any{}}, nil
}

func (f *fakePersonnelAPI) EmployeeStatistics(ctx context.Context) (any, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx)
	}
	return map[string]any{}, nil
}

func (f *fakePersonnelAPI) DeletedEmployees(ctx context.Context) (any, error) {
	if f.deletedFn != nil {
		return f.deletedFn(ctx)
	}
	return []any{}, nil
}

func (f *fakePersonnelAPI) CreateEmployee(ctx context.Context, data entity.Record) (any, error) {
	if f.createFn != nil {
		return f.createFn(ctx, data)
	}
	return map[string]any{}, nil
}

func (f *fakePersonnelAPI) UpdateEmployee(ctx context.Context, id string, data entity.Record) (any, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, data)
	}
	return map[string]any{}, nil
}

func (f *fakePersonnelAPI) DeleteEmployee(ctx context.Context, id string) (any, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return map[string]any{}, nil
}

func (f *fakePersonnelAPI) RestoreEmployee(ctx context.Context, id string) (any, error) {
	if f.restoreFn != nil {
		return f.restoreFn(ctx, id)
	}
	return map[string]any{}, nil
}

func (f *fakePersonnelAPI) UpdateEmployeeRole(ctx context.Context, id, userID, role string) (any, error) {
	f.roleCalls++
	if f.updateRoleFn != nil {
		return f.updateRoleFn(ctx, id, userID, role)
	}
	return map[string]any{}, nil
}

func TestFetchListNormalizesAndPaginates(t *testing.T) {
	backend := &fakePersonnelAPI{
		listFn: func(ctx context.Context, p api.ListEmployeesParams) (any, error) {
			return map[string]any{
				"data": map[string]any{
					"employees": []any{
						map[string]any{"_id": "a1", "firstName": "Ayşe", "lastName": "Yılmaz"},
					},
					"pagination": map[string]any{"total": float64(1)},
				},
			}, nil
		},
	}
	s := NewPersonnel(backend)

	list, err := s.FetchList(context.Background(), 1, 10, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one entry, got %d", len(list))
	}
	if list[0]["id"] != "a1" || list[0]["_id"] != "a1" {
		t.Fatalf("id not normalized: %v", list[0])
	}
	if list[0]["firstName"] != "Ayşe" {
		t.Fatal("original fields must survive normalization")
	}

	pg := s.Pagination()
	if pg.Page != 1 || pg.Limit != 10 || pg.Total != 1 {
		t.Fatalf("unexpected pagination: %+v", pg)
	}
	if s.Loading() || s.Err() != "" {
		t.Fatal("loading and error must be clear after success")
	}
}

func TestFetchListFailureKeepsPreviousList(t *testing.T) {
	calls := 0
	backend := &fakePersonnelAPI{
		listFn: func(ctx context.Context, p api.ListEmployeesParams) (any, error) {
			calls++
			if calls == 1 {
				return map[string]any{"employees": []any{map[string]any{"id": "e1"}}}, nil
			}
			return nil, errors.New("boom")
		},
	}
	s := NewPersonnel(backend)

	if _, err := s.FetchList(context.Background(), 1, 10, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.FetchList(context.Background(), 2, 10, "", ""); err == nil {
		t.Fatal("expected second fetch to fail")
	}

	list := s.List()
	if len(list) != 1 || list[0].ID() != "e1" {
		t.Fatalf("previous list must stay visible, got %v", list)
	}
	if s.Err() == "" {
		t.Fatal("error slot should record the failure")
	}
	if s.Loading() {
		t.Fatal("loading must clear on failure")
	}
}

func TestAddThenFailedUpdateKeepsNewEntity(t *testing.T) {
	backend := &fakePersonnelAPI{
		createFn: func(ctx context.Context, data entity.Record) (any, error) {
			return map[string]any{"data": map[string]any{"_id": "p9", "firstName": "Can"}}, nil
		},
		updateFn: func(ctx context.Context, id string, data entity.Record) (any, error) {
			return nil, errors.New("not found")
		},
	}
	s := NewPersonnel(backend)

	created, err := s.Add(context.Background(), entity.Record{"firstName": "Can"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID() != "p9" {
		t.Fatalf("created entity not normalized: %v", created)
	}

	if _, err := s.Update(context.Background(), "other", entity.Record{"x": 1}); err == nil {
		t.Fatal("expected update failure")
	}

	list := s.List()
	if len(list) != 1 || list[0].ID() != "p9" || list[0]["firstName"] != "Can" {
		t.Fatalf("added entity must remain unmodified, got %v", list)
	}
}

func TestAddIgnoresEntityLessSuccessBody(t *testing.T) {
	backend := &fakePersonnelAPI{
		createFn: func(ctx context.Context, data entity.Record) (any, error) {
			return map[string]any{"success": true}, nil
		},
	}
	s := NewPersonnel(backend)

	if _, err := s.Add(context.Background(), entity.Record{"firstName": "Can"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list := s.List(); len(list) != 0 {
		t.Fatalf("a body without an entity must not be cached, got %v", list)
	}
}

func TestUpdateReplacesCurrentUnconditionally(t *testing.T) {
	backend := &fakePersonnelAPI{
		updateFn: func(ctx context.Context, id string, data entity.Record) (any, error) {
			return map[string]any{"employee": map[string]any{"_id": id, "firstName": "New"}}, nil
		},
	}
	s := NewPersonnel(backend)

	if _, err := s.Update(context.Background(), "p2", entity.Record{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	current := s.Current()
	if current == nil || current.ID() != "p2" {
		t.Fatalf("current must be replaced by the update result, got %v", current)
	}
}

func TestDeleteRemovesFromActiveListOnly(t *testing.T) {
	backend := &fakePersonnelAPI{
		listFn: func(ctx context.Context, p api.ListEmployeesParams) (any, error) {
			return []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}}, nil
		},
	}
	s := NewPersonnel(backend)
	if _, err := s.FetchList(context.Background(), 1, 10, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := s.List()
	if len(list) != 1 || list[0].ID() != "b" {
		t.Fatalf("expected only b to remain, got %v", list)
	}
	if len(s.Deleted()) != 0 {
		t.Fatal("delete must not populate the archive locally")
	}
}

func TestRestoreMovesBetweenLists(t *testing.T) {
	backend := &fakePersonnelAPI{
		deletedFn: func(ctx context.Context) (any, error) {
			return []any{map[string]any{"id": "d1"}}, nil
		},
		restoreFn: func(ctx context.Context, id string) (any, error) {
			return map[string]any{"employee": map[string]any{"_id": "d1"}}, nil
		},
	}
	s := NewPersonnel(backend)
	if _, err := s.FetchDeleted(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored, err := s.Restore(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.ID() != "d1" {
		t.Fatalf("restored entity not normalized: %v", restored)
	}
	if len(s.Deleted()) != 0 {
		t.Fatal("restored entry must leave the archive")
	}
	list := s.List()
	if len(list) != 1 || list[0].ID() != "d1" {
		t.Fatalf("restored entry must join the active list, got %v", list)
	}
}

func TestUpdateRoleRequiresUserID(t *testing.T) {
	backend := &fakePersonnelAPI{}
	s := NewPersonnel(backend)

	err := s.UpdateRole(context.Background(), "p1", "", "manager")
	if !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
	if backend.roleCalls != 0 {
		t.Fatal("no network call may happen without a userId")
	}
	if s.Err() == "" {
		t.Fatal("local failure should still populate the error slot")
	}
}

func TestUpdateRolePatchesMatchingEntries(t *testing.T) {
	backend := &fakePersonnelAPI{
		listFn: func(ctx context.Context, p api.ListEmployeesParams) (any, error) {
			return []any{
				map[string]any{"id": "p1", "userId": "u1", "user": map[string]any{"id": "u1", "role": "employee"}},
				map[string]any{"id": "p2", "userId": "u2"},
			}, nil
		},
	}
	s := NewPersonnel(backend)
	if _, err := s.FetchList(context.Background(), 1, 10, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.UpdateRole(context.Background(), "p1", "u1", "manager"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := s.List()
	patched := list[0]
	if patched["role"] != "manager" || patched["userRole"] != "manager" || patched["accountRole"] != "manager" {
		t.Fatalf("all role fields must be written, got %v", patched)
	}
	user, ok := patched["user"].(map[string]any)
	if !ok || user["role"] != "manager" {
		t.Fatalf("nested user role must be written, got %v", patched["user"])
	}
	if _, has := list[1]["role"]; has {
		t.Fatal("unrelated entries must not be patched")
	}
}
