package store

import (
	"context"
	"sync"

	"hrsync/internal/api"
	"hrsync/internal/entity"
)

// PersonnelStore mirrors the personnel collection: the active list, the
// soft-deleted archive, the record on display, and derived statistics.
// Each fetch replaces its slice wholesale with the last successful server
// response; failures leave prior data untouched.
type PersonnelStore struct {
	api PersonnelAPI

	mu         sync.Mutex
	list       []entity.Record
	deleted    []entity.Record
	current    entity.Record
	statistics entity.Record
	pagination entity.Pagination
	loading    bool
	err        string
}

func NewPersonnel(backend PersonnelAPI) *PersonnelStore {
	return &PersonnelStore{api: backend}
}

func (s *PersonnelStore) FetchList(ctx context.Context, page, limit int, department, search string) ([]entity.Record, error) {
	s.setLoading()
	payload, err := s.api.ListEmployees(ctx, api.ListEmployeesParams{
		Page:       page,
		Limit:      limit,
		Department: department,
		Search:     search,
	})
	if err != nil {
		return nil, s.fail(err)
	}

	records, _ := entity.UnwrapList(payload)
	records = entity.NormalizeIDs(records)
	pagination := entity.PaginationFrom(payload, page, limit)

	s.mu.Lock()
	s.list = records
	s.pagination = pagination
	s.settle()
	s.mu.Unlock()
	return records, nil
}

func (s *PersonnelStore) FetchStatistics(ctx context.Context) (entity.Record, error) {
	s.setLoading()
	payload, err := s.api.EmployeeStatistics(ctx)
	if err != nil {
		return nil, s.fail(err)
	}
	stats, _ := entity.UnwrapRecord(payload, "statistics")

	s.mu.Lock()
	s.statistics = stats
	s.settle()
	s.mu.Unlock()
	return stats, nil
}

func (s *PersonnelStore) FetchDeleted(ctx context.Context) ([]entity.Record, error) {
	s.setLoading()
	payload, err := s.api.DeletedEmployees(ctx)
	if err != nil {
		return nil, s.fail(err)
	}
	records, _ := entity.UnwrapList(payload)
	records = entity.NormalizeIDs(records)

	s.mu.Lock()
	s.deleted = records
	s.settle()
	s.mu.Unlock()
	return records, nil
}

func (s *PersonnelStore) Add(ctx context.Context, data entity.Record) (entity.Record, error) {
	s.setLoading()
	payload, err := s.api.CreateEmployee(ctx, data)
	if err != nil {
		return nil, s.fail(err)
	}

	created, ok := entity.UnwrapRecord(payload, "employee")
	s.mu.Lock()
	if ok {
		created = entity.NormalizeID(created)
		// A success body without an entity unwraps to itself; an id-less
		// result is treated as "no entity returned", not cached.
		if created.ID() != "" {
			s.list = append(s.list, created)
		}
	}
	s.settle()
	s.mu.Unlock()

	s.refreshStatistics()
	return created, nil
}

func (s *PersonnelStore) Update(ctx context.Context, id string, data entity.Record) (entity.Record, error) {
	if id == "" {
		return nil, s.localFail(ErrNoCanonicalID)
	}
	s.setLoading()
	payload, err := s.api.UpdateEmployee(ctx, id, data)
	if err != nil {
		return nil, s.fail(err)
	}

	updated, ok := entity.UnwrapRecord(payload, "employee")
	s.mu.Lock()
	if ok {
		updated = entity.NormalizeID(updated)
		for i := range s.list {
			if s.list[i].ID() == id {
				s.list[i] = updated
			}
		}
		// The updated record always replaces the one on display, even
		// when the ids differ. Kept as observed behavior.
		s.current = updated
	}
	s.settle()
	s.mu.Unlock()

	s.refreshStatistics()
	return updated, nil
}

// Delete removes the entry from the active list only. The backend soft
// deletes; callers re-fetch the archive separately.
func (s *PersonnelStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return s.localFail(ErrNoCanonicalID)
	}
	s.setLoading()
	if _, err := s.api.DeleteEmployee(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.list = removeByID(s.list, id)
	s.settle()
	s.mu.Unlock()

	s.refreshStatistics()
	return nil
}

func (s *PersonnelStore) Restore(ctx context.Context, id string) (entity.Record, error) {
	if id == "" {
		return nil, s.localFail(ErrNoCanonicalID)
	}
	s.setLoading()
	payload, err := s.api.RestoreEmployee(ctx, id)
	if err != nil {
		return nil, s.fail(err)
	}

	restored, ok := entity.UnwrapRecord(payload, "employee")
	s.mu.Lock()
	s.deleted = removeByID(s.deleted, id)
	if ok {
		restored = entity.NormalizeID(restored)
		s.list = append(s.list, restored)
	}
	s.settle()
	s.mu.Unlock()

	s.refreshStatistics()
	return restored, nil
}

// UpdateRole requires a linked user account; without one it fails before
// any network call.
func (s *PersonnelStore) UpdateRole(ctx context.Context, personnelID, userID, role string) error {
	if userID == "" {
		return s.localFail(ErrMissingUserID)
	}
	s.setLoading()
	if _, err := s.api.UpdateEmployeeRole(ctx, personnelID, userID, role); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	for i := range s.list {
		s.list[i] = patchRole(s.list[i], personnelID, userID, role)
	}
	s.current = patchRole(s.current, personnelID, userID, role)
	s.settle()
	s.mu.Unlock()
	return nil
}

// patchRole writes the new role into every redundant field the UI reads
// from, plus the nested user object. The reads have not been consolidated
// yet, so all of them are kept in step.
func patchRole(r entity.Record, personnelID, userID, role string) entity.Record {
	if r == nil {
		return nil
	}
	if r.ID() != personnelID && entity.AsString(r["userId"]) != userID {
		return r
	}
	out := r.Clone()
	out["role"] = role
	out["userRole"] = role
	out["accountRole"] = role
	if nested, ok := out["user"].(map[string]any); ok {
		user := make(map[string]any, len(nested)+1)
		for k, v := range nested {
			user[k] = v
		}
		user["role"] = role
		out["user"] = user
	} else {
		out["user"] = map[string]any{"id": userID, "role": role}
	}
	return out
}

func (s *PersonnelStore) refreshStatistics() {
	background("personnel statistics", func(ctx context.Context) error {
		payload, err := s.api.EmployeeStatistics(ctx)
		if err != nil {
			return err
		}
		stats, _ := entity.UnwrapRecord(payload, "statistics")
		s.mu.Lock()
		s.statistics = stats
		s.mu.Unlock()
		return nil
	})
}

func (s *PersonnelStore) List() []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Record(nil), s.list...)
}

func (s *PersonnelStore) Deleted() []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Record(nil), s.deleted...)
}

func (s *PersonnelStore) Current() entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *PersonnelStore) Statistics() entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics
}

func (s *PersonnelStore) Pagination() entity.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *PersonnelStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err is the shared error slot for incidental display. The error returned
// by each operation is the authoritative signal: a concurrent unrelated
// call may overwrite this slot.
func (s *PersonnelStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *PersonnelStore) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"list":       s.list,
		"deleted":    s.deleted,
		"current":    s.current,
		"statistics": s.statistics,
		"pagination": s.pagination,
		"loading":    s.loading,
		"error":      s.err,
	}
}

func (s *PersonnelStore) setLoading() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *PersonnelStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

func (s *PersonnelStore) localFail(err error) error {
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

// settle clears loading and error after a successful call. Callers must
// hold the lock.
func (s *PersonnelStore) settle() {
	s.loading = false
	s.err = ""
}

func removeByID(records []entity.Record, id string) []entity.Record {
	out := make([]entity.Record, 0, len(records))
	for _, r := range records {
		if r.ID() == id {
			continue
		}
		out = append(out, r)
	}
	return out
}
