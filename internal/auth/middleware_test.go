package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sakif/krishi-mitra/internal/apperror"
	"github.com/sakif/krishi-mitra/internal/model"
)

// stubUserRepo implements repository.UserRepository over a fixed map.
// Only GetByUsername matters to the middleware; the rest are stubs.
type stubUserRepo struct {
	users map[string]*model.User
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, name string) (*model.User, error) {
	u, ok := s.users[strings.ToLower(name)]
	if !ok {
		return nil, apperror.NotFound("user", name)
	}
	return u, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }
func (s *stubUserRepo) Update(ctx context.Context, name string, user *model.User) error {
	return nil
}
func (s *stubUserRepo) UpdatePassword(ctx context.Context, name, hash string) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, name string) error               { return nil }
func (s *stubUserRepo) ListAll(ctx context.Context) ([]model.User, error)           { return nil, nil }
func (s *stubUserRepo) Count(ctx context.Context) (int, error)                      { return 0, nil }

func newMiddlewareFixture(t *testing.T) (*TokenService, *stubUserRepo) {
	t.Helper()
	ts := newTestTokenService(t)
	repo := &stubUserRepo{users: map[string]*model.User{
		"farmer": {Username: "farmer", Role: model.RoleUser},
		"admin":  {Username: "admin", Role: model.RoleAdmin},
	}}
	return ts, repo
}

// echoUser is a terminal handler that records the authenticated user.
func echoUser(captured **model.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := UserFromContext(r.Context()); ok {
			*captured = user
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	ts, repo := newMiddlewareFixture(t)
	token, _ := ts.Generate("farmer")

	var captured *model.User
	handler := RequireAuth(ts, repo)(echoUser(&captured))

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured == nil || captured.Username != "farmer" {
		t.Errorf("handler did not receive the resolved user: %+v", captured)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	ts, repo := newMiddlewareFixture(t)
	handler := RequireAuth(ts, repo)(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	ts, repo := newMiddlewareFixture(t)
	handler := RequireAuth(ts, repo)(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	req.Header.Set("Authorization", "Bearer garbage.token.here")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	ts, repo := newMiddlewareFixture(t)

	// A structurally valid token whose subject no longer resolves must
	// be rejected — this is the only "revocation" the design has.
	token, _ := ts.Generate("farmer")
	delete(repo.users, "farmer")

	handler := RequireAuth(ts, repo)(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for a token whose user was deleted", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	ts, repo := newMiddlewareFixture(t)

	chain := func(next http.Handler) http.Handler {
		return RequireAuth(ts, repo)(RequireAdmin()(next))
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		username   string
		wantStatus int
	}{
		{"admin passes", "admin", http.StatusOK},
		{"regular user forbidden", "farmer", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _ := ts.Generate(tt.username)
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			chain(ok).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
