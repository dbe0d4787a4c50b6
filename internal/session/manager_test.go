package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hrsync/internal/entity"
)

type fakeAuthAPI struct {
	loginPayload any
	logoutCalls  int
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (any, error) {
	return f.loginPayload, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, data entity.Record) (any, error) {
	return f.loginPayload, nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return nil
}

func signedToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: "u1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLoginPersistsAndNotifies(t *testing.T) {
	api := &fakeAuthAPI{loginPayload: map[string]any{
		"token": "tok-1",
		"user":  map[string]any{"_id": "u1", "role": "manager"},
	}}
	storage := NewMemory()
	m := NewManager(storage)
	m.Attach(api)

	var seen []entity.Record
	unsubscribe := m.OnAuthStateChange(func(user entity.Record) {
		seen = append(seen, user)
	})
	defer unsubscribe()

	user, err := m.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID() != "u1" {
		t.Fatalf("user not normalized: %v", user)
	}

	// Immediate snapshot (nil) plus the sign-in.
	if len(seen) != 2 || seen[0] != nil || seen[1] == nil {
		t.Fatalf("unexpected notifications: %v", seen)
	}

	stored, err := storage.Token(context.Background())
	if err != nil || stored != "tok-1" {
		t.Fatalf("token not persisted: %q %v", stored, err)
	}
}

func TestLoginWithoutUserObjectKeepsTokenOnly(t *testing.T) {
	api := &fakeAuthAPI{loginPayload: map[string]any{"token": "tok-2"}}
	storage := NewMemory()
	m := NewManager(storage)
	m.Attach(api)

	calls := 0
	m.OnAuthStateChange(func(entity.Record) { calls++ })

	user, err := m.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatalf("no user object means no user, got %v", user)
	}
	if m.User() != nil {
		t.Fatalf("envelope must not be stored as the user, got %v", m.User())
	}
	if stored, _ := storage.User(context.Background()); stored != nil {
		t.Fatalf("no user record may be persisted, got %v", stored)
	}
	if calls != 1 {
		t.Fatalf("only the immediate snapshot should fire, got %d", calls)
	}

	if token, _ := m.Token(context.Background()); token != "tok-2" {
		t.Fatalf("token must still be kept: %q", token)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	api := &fakeAuthAPI{loginPayload: map[string]any{
		"token": "tok-1",
		"user":  map[string]any{"_id": "u1"},
	}}
	storage := NewMemory()
	m := NewManager(storage)
	m.Attach(api)

	if _, err := m.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var last entity.Record = entity.Record{"sentinel": true}
	m.OnAuthStateChange(func(user entity.Record) { last = user })

	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.logoutCalls != 1 {
		t.Fatal("backend logout must be called")
	}
	if last != nil {
		t.Fatalf("subscribers must see the sign-out, got %v", last)
	}
	if token, _ := storage.Token(context.Background()); token != "" {
		t.Fatal("storage must be cleared")
	}
	if m.User() != nil {
		t.Fatal("user must be cleared")
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	api := &fakeAuthAPI{loginPayload: map[string]any{"token": "t", "user": map[string]any{"_id": "u1"}}}
	m := NewManager(NewMemory())
	m.Attach(api)

	calls := 0
	unsubscribe := m.OnAuthStateChange(func(entity.Record) { calls++ })
	unsubscribe()

	if _, err := m.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("only the immediate snapshot should fire, got %d", calls)
	}
}

func TestRestoreLoadsPersistedSession(t *testing.T) {
	storage := NewMemory()
	ctx := context.Background()
	if err := storage.SaveToken(ctx, "tok-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := storage.SaveUser(ctx, entity.Record{"id": "u9", "role": "owner"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := NewManager(storage)
	if err := m.Restore(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.User().ID() != "u9" {
		t.Fatalf("user not restored: %v", m.User())
	}
	if token, _ := m.Token(ctx); token != "tok-9" {
		t.Fatalf("token not restored: %q", token)
	}
	if !m.Privileged() {
		t.Fatal("owner role must be privileged")
	}
}

func TestPrivilegedFromClaims(t *testing.T) {
	m := NewManager(NewMemory())
	m.token = signedToken(t, "manager", time.Hour)
	if !m.Privileged() {
		t.Fatal("manager claim must be privileged")
	}
	if !m.Valid() {
		t.Fatal("unexpired token must be valid")
	}

	m.token = signedToken(t, "employee", time.Hour)
	if m.Privileged() {
		t.Fatal("employee claim must not be privileged")
	}

	m.token = signedToken(t, "manager", -time.Hour)
	if m.Valid() {
		t.Fatal("expired token must not be valid")
	}
}

func TestParseClaims(t *testing.T) {
	token := signedToken(t, "owner", time.Hour)
	claims, err := ParseClaims(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Role != "owner" || claims.UserID != "u1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.Privileged() {
		t.Fatal("owner must be privileged")
	}
	if claims.Expired(time.Now()) {
		t.Fatal("claims should not be expired yet")
	}
}
