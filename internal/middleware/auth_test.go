package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"interviewai/internal/models"
	"interviewai/internal/repositories"
	"interviewai/internal/utils"
)

const testSecret = "test-secret"

type fakeUsers struct {
	getFn func(id string) (*models.User, error)
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return f.getFn(id)
}

func activeUser(id string, role models.Role) func(string) (*models.User, error) {
	return func(string) (*models.User, error) {
		return &models.User{ID: id, Email: id + "@example.com", Role: role, IsActive: true}, nil
	}
}

func bearer(t *testing.T, id string) string {
	t.Helper()
	token, err := utils.IssueToken(testSecret, utils.Identity{ID: id, Email: id + "@example.com", Role: "free"}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	return "Bearer " + token
}

func serveAuth(users UserLookup, authz string) (*httptest.ResponseRecorder, *models.User) {
	var seen *models.User
	handler := Authenticate(testSecret, users, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CurrentUser(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthenticateLoadsUser(t *testing.T) {
	rec, user := serveAuth(&fakeUsers{getFn: activeUser("user-1", models.RolePremium)}, bearer(t, "user-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if user == nil || user.ID != "user-1" || user.Role != models.RolePremium {
		t.Fatalf("expected stored role from lookup, got %+v", user)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	cases := []struct {
		name   string
		authz  string
		users  *fakeUsers
		status int
	}{
		{"missing header", "", &fakeUsers{getFn: activeUser("u", models.RoleFree)}, http.StatusUnauthorized},
		{"bad token", "Bearer nope", &fakeUsers{getFn: activeUser("u", models.RoleFree)}, http.StatusUnauthorized},
		{"deleted user", bearer(t, "u"), &fakeUsers{getFn: func(string) (*models.User, error) { return nil, repositories.ErrUserNotFound }}, http.StatusUnauthorized},
		{"inactive user", bearer(t, "u"), &fakeUsers{getFn: func(string) (*models.User, error) { return &models.User{ID: "u"}, nil }}, http.StatusUnauthorized},
		{"store failure", bearer(t, "u"), &fakeUsers{getFn: func(string) (*models.User, error) { return nil, errors.New("db down") }}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, user := serveAuth(tc.users, tc.authz)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if user != nil {
				t.Fatal("handler must not run")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(user *models.User) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user != nil {
			req = req.WithContext(WithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := serve(&models.User{Role: models.RoleAdmin}); code != http.StatusNoContent {
		t.Fatalf("expected admin to pass, got %d", code)
	}
	if code := serve(&models.User{Role: models.RoleFree}); code != http.StatusForbidden {
		t.Fatalf("expected 403 for free user, got %d", code)
	}
	if code := serve(nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", code)
	}
}
