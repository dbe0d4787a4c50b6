package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	cryptoutil "hrsync/internal/platform/crypto"
)

// NewFile persists session state to a single file, sealed with the
// crypto service. An unconfigured service stores plaintext JSON, which is
// acceptable for development only.
func NewFile(path string, crypto *cryptoutil.Service) Storage {
	return &kvStorage{kv: &fileKV{path: path, crypto: crypto}}
}

type fileKV struct {
	mu     sync.Mutex
	path   string
	crypto *cryptoutil.Service
}

func (f *fileKV) get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return nil, false, err
	}
	value, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

func (f *fileKV) set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *fileKV) delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	delete(values, key)
	return f.save(values)
}

func (f *fileKV) clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (f *fileKV) load() (map[string][]byte, error) {
	sealed, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string][]byte), nil
	}
	if err != nil {
		return nil, err
	}
	plain, err := f.crypto.Decrypt(sealed)
	if err != nil {
		return nil, err
	}
	var values map[string][]byte
	if err := json.Unmarshal(plain, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = make(map[string][]byte)
	}
	return values, nil
}

func (f *fileKV) save(values map[string][]byte) error {
	plain, err := json.Marshal(values)
	if err != nil {
		return err
	}
	sealed, err := f.crypto.Encrypt(plain)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, sealed, 0o600)
}
