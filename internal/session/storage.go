package session

import (
	"context"
	"encoding/json"
	"sync"

	"hrsync/internal/entity"
)

// Storage is the opaque key-value persistence contract for session state.
// Absent values are not errors: reads return zero values.
type Storage interface {
	SaveToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
	RemoveToken(ctx context.Context) error
	SaveUser(ctx context.Context, user entity.Record) error
	User(ctx context.Context) (entity.Record, error)
	RemoveUser(ctx context.Context) error
	SaveBusiness(ctx context.Context, business entity.Record) error
	Business(ctx context.Context) (entity.Record, error)
	RemoveBusiness(ctx context.Context) error
	ClearAll(ctx context.Context) error
}

const (
	keyToken    = "token"
	keyUser     = "user"
	keyBusiness = "business"
)

// kv is the primitive each backend implements; kvStorage lifts it to the
// Storage contract.
type kv interface {
	get(ctx context.Context, key string) ([]byte, bool, error)
	set(ctx context.Context, key string, value []byte) error
	delete(ctx context.Context, key string) error
	clear(ctx context.Context) error
}

type kvStorage struct {
	kv kv
}

func (s *kvStorage) SaveToken(ctx context.Context, token string) error {
	return s.kv.set(ctx, keyToken, []byte(token))
}

func (s *kvStorage) Token(ctx context.Context) (string, error) {
	value, ok, err := s.kv.get(ctx, keyToken)
	if err != nil || !ok {
		return "", err
	}
	return string(value), nil
}

func (s *kvStorage) RemoveToken(ctx context.Context) error {
	return s.kv.delete(ctx, keyToken)
}

func (s *kvStorage) SaveUser(ctx context.Context, user entity.Record) error {
	return s.saveRecord(ctx, keyUser, user)
}

func (s *kvStorage) User(ctx context.Context) (entity.Record, error) {
	return s.loadRecord(ctx, keyUser)
}

func (s *kvStorage) RemoveUser(ctx context.Context) error {
	return s.kv.delete(ctx, keyUser)
}

func (s *kvStorage) SaveBusiness(ctx context.Context, business entity.Record) error {
	return s.saveRecord(ctx, keyBusiness, business)
}

func (s *kvStorage) Business(ctx context.Context) (entity.Record, error) {
	return s.loadRecord(ctx, keyBusiness)
}

func (s *kvStorage) RemoveBusiness(ctx context.Context) error {
	return s.kv.delete(ctx, keyBusiness)
}

func (s *kvStorage) ClearAll(ctx context.Context) error {
	return s.kv.clear(ctx)
}

func (s *kvStorage) saveRecord(ctx context.Context, key string, record entity.Record) error {
	encoded, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.kv.set(ctx, key, encoded)
}

func (s *kvStorage) loadRecord(ctx context.Context, key string) (entity.Record, error) {
	value, ok, err := s.kv.get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	var record entity.Record
	if err := json.Unmarshal(value, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// NewMemory keeps session state in process memory; tests and throwaway
// runs use it.
func NewMemory() Storage {
	return &kvStorage{kv: &memoryKV{values: make(map[string][]byte)}}
}

type memoryKV struct {
	mu     sync.Mutex
	values map[string][]byte
}

func (m *memoryKV) get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *memoryKV) set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKV) delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memoryKV) clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string][]byte)
	return nil
}
