package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"hrsync/internal/entity"
)

// AuthAPI is the slice of the backend client the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (any, error)
	Register(ctx context.Context, data entity.Record) (any, error)
	Logout(ctx context.Context) error
}

var tokenCandidates = []string{"token", "accessToken", "jwt"}

// Manager owns the current session: the bearer token, the signed-in user,
// and the optional business record. It persists through Storage and
// notifies subscribers when the session user appears or disappears.
type Manager struct {
	api     AuthAPI
	storage Storage

	mu       sync.Mutex
	token    string
	user     entity.Record
	business entity.Record
	subs     map[int]func(entity.Record)
	nextSub  int
}

func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage, subs: make(map[int]func(entity.Record))}
}

// Attach wires the backend client after construction; the client itself
// needs the manager as its token source.
func (m *Manager) Attach(api AuthAPI) {
	m.api = api
}

// Restore loads a persisted session, if any, and notifies subscribers.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.storage.Token(ctx)
	if err != nil {
		return err
	}
	user, err := m.storage.User(ctx)
	if err != nil {
		return err
	}
	business, err := m.storage.Business(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.business = business
	m.mu.Unlock()

	if user != nil {
		m.notify(user)
	}
	return nil
}

func (m *Manager) Login(ctx context.Context, email, password string) (entity.Record, error) {
	payload, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, payload)
}

func (m *Manager) Register(ctx context.Context, data entity.Record) (entity.Record, error) {
	payload, err := m.api.Register(ctx, data)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, payload)
}

func (m *Manager) establish(ctx context.Context, payload any) (entity.Record, error) {
	envelope, _ := entity.UnwrapRecord(payload)
	token := ""
	if raw, ok := entity.First(envelope, tokenCandidates...); ok {
		token = entity.AsString(raw)
	}
	// Only an explicit user object counts. Without one the envelope must
	// not be mistaken for the signed-in user.
	var user entity.Record
	if nested, ok := envelope["user"].(map[string]any); ok {
		user = entity.NormalizeID(entity.Record(nested))
	}
	var business entity.Record
	if nested, ok := envelope["business"].(map[string]any); ok {
		business = entity.NormalizeID(entity.Record(nested))
	}

	if token != "" {
		if err := m.storage.SaveToken(ctx, token); err != nil {
			return nil, err
		}
	}
	if user != nil {
		if err := m.storage.SaveUser(ctx, user); err != nil {
			return nil, err
		}
	}
	if business != nil {
		if err := m.storage.SaveBusiness(ctx, business); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.business = business
	m.mu.Unlock()

	if user != nil {
		m.notify(user)
	}
	return user, nil
}

// Logout clears the session even when the backend call fails: the local
// state must not outlive the user's intent.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		slog.Warn("logout call failed", "err", err)
	}
	if err := m.storage.ClearAll(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.business = nil
	m.mu.Unlock()

	m.notify(nil)
	return nil
}

// OnAuthStateChange registers a callback invoked with the current user
// immediately and again on every sign-in or sign-out. The returned
// function unsubscribes.
func (m *Manager) OnAuthStateChange(fn func(entity.Record)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	current := m.user
	m.mu.Unlock()

	fn(current)
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) notify(user entity.Record) {
	m.mu.Lock()
	callbacks := make([]func(entity.Record), 0, len(m.subs))
	for _, fn := range m.subs {
		callbacks = append(callbacks, fn)
	}
	m.mu.Unlock()
	for _, fn := range callbacks {
		fn(user)
	}
}

// Token implements the API client's token source.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *Manager) User() entity.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *Manager) Business() entity.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.business
}

// Valid reports whether a token is present and not past its expiry.
func (m *Manager) Valid() bool {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == "" {
		return false
	}
	claims, err := ParseClaims(token)
	if err != nil {
		// An opaque token is still usable; the backend decides.
		return true
	}
	return !claims.Expired(time.Now())
}

// Privileged reports whether the signed-in role may read cross-employee
// aggregates. The token claim wins; the stored user record is the
// fallback for opaque tokens.
func (m *Manager) Privileged() bool {
	m.mu.Lock()
	token := m.token
	user := m.user
	m.mu.Unlock()

	if token != "" {
		if claims, err := ParseClaims(token); err == nil && claims.Role != "" {
			return claims.Privileged()
		}
	}
	if user != nil {
		switch entity.AsString(user["role"]) {
		case "owner", "manager":
			return true
		}
	}
	return false
}
