package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"interviewai/internal/models"
	"interviewai/internal/repositories"
	"interviewai/internal/testhelpers"
	"interviewai/internal/utils"
)

const testSecret = "handler-secret"

type fixedQuota struct {
	err error
}

func (f fixedQuota) Quota(ctx context.Context, owner *models.User) (int64, int, int, error) {
	if f.err != nil {
		return 0, 0, 0, f.err
	}
	if owner.IsFree() {
		return 1, 2, 1, nil
	}
	return 4, -1, -1, nil
}

func newAuthHandler(t *testing.T) (*AuthHandler, *repositories.UserRepository) {
	t.Helper()
	repo := &repositories.UserRepository{DB: testhelpers.SetupTestDB(t)}
	return NewAuthHandler(repo, fixedQuota{}, testSecret, time.Hour, zap.NewNop()), repo
}

func seedUser(t *testing.T, repo *repositories.UserRepository, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Name: "Seeded", Email: email, PasswordHash: string(hash), IsActive: true}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	if !active {
		repo.DB.Model(user).Update("is_active", false)
		user.IsActive = false
	}
	return user
}

func TestRegisterHandler(t *testing.T) {
	h, repo := newAuthHandler(t)
	route := validated[*models.RegisterRequest](h.RegisterHandler)

	rec := serve(t, http.MethodPost, "/register", "/register", route, nil, map[string]string{
		"name": "Alice", "email": "Alice@Example.com", "password": "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["message"] != "User registered successfully" || body["token"] == "" {
		t.Fatalf("unexpected body: %v", body)
	}
	user := body["user"].(map[string]interface{})
	if user["role"] != "free" || user["interviewLimit"] != float64(2) || user["remainingInterviews"] != float64(1) {
		t.Fatalf("unexpected user view: %v", user)
	}

	stored, err := repo.GetUserByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("expected user to be stored: %v", err)
	}
	if !stored.IsActive {
		t.Fatal("expected registered user to be active")
	}

	probe := httptest.NewRequest(http.MethodGet, "/", nil)
	probe.Header.Set("Authorization", "Bearer "+body["token"].(string))
	claims, err := utils.VerifyToken(probe, testSecret)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if claims["id"] != stored.ID {
		t.Fatalf("token subject mismatch: %v", claims["id"])
	}

	dup := serve(t, http.MethodPost, "/register", "/register", route, nil, map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "secret1",
	})
	if dup.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", dup.Code)
	}
	if decode(t, dup)["error"] != "User already exists with this email" {
		t.Fatal("unexpected duplicate email message")
	}
}

func TestLoginHandler(t *testing.T) {
	h, repo := newAuthHandler(t)
	seedUser(t, repo, "bob@example.com", "secret1", true)
	seedUser(t, repo, "off@example.com", "secret1", false)
	route := validated[*models.LoginRequest](h.LoginHandler)

	cases := []struct {
		name    string
		email   string
		pass    string
		status  int
		message string
	}{
		{"success", "bob@example.com", "secret1", http.StatusOK, "Login successful"},
		{"wrong password", "bob@example.com", "nope", http.StatusUnauthorized, "Invalid credentials"},
		{"unknown email", "who@example.com", "secret1", http.StatusUnauthorized, "Invalid credentials"},
		{"inactive", "off@example.com", "secret1", http.StatusUnauthorized, "Your account has been deactivated"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, http.MethodPost, "/login", "/login", route, nil, map[string]string{"email": tc.email, "password": tc.pass})
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			body := decode(t, rec)
			got := body["error"]
			if tc.status == http.StatusOK {
				got = body["message"]
			}
			if got != tc.message {
				t.Fatalf("expected %q, got %v", tc.message, got)
			}
		})
	}
}

func TestMeHandlerPremiumIsUnlimited(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := serve(t, http.MethodGet, "/me", "/me", http.HandlerFunc(h.MeHandler), premiumUser, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	user := decode(t, rec)["user"].(map[string]interface{})
	if user["interviewLimit"] != "unlimited" || user["remainingInterviews"] != "unlimited" {
		t.Fatalf("expected unlimited quota, got %v", user)
	}
	if user["id"] != premiumUser.ID {
		t.Fatalf("unexpected id %v", user["id"])
	}
}

func TestMeHandlerQuotaError(t *testing.T) {
	h := NewAuthHandler(nil, fixedQuota{err: errors.New("db down")}, testSecret, time.Hour, zap.NewNop())

	rec := serve(t, http.MethodGet, "/me", "/me", http.HandlerFunc(h.MeHandler), freeUser, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestUpdatePasswordPersistsHash(t *testing.T) {
	h, repo := newAuthHandler(t)
	user := seedUser(t, repo, "carol@example.com", "secret1", true)
	route := validated[*models.UpdatePasswordRequest](h.UpdatePasswordHandler)

	wrong := serve(t, http.MethodPut, "/pw", "/pw", route, user, map[string]string{"currentPassword": "bad", "newPassword": "secret2"})
	if wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong current password, got %d", wrong.Code)
	}

	rec := serve(t, http.MethodPut, "/pw", "/pw", route, user, map[string]string{"currentPassword": "secret1", "newPassword": "secret2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	stored, err := repo.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserByID returned error: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret2")) != nil {
		t.Fatal("expected new password hash to be persisted")
	}
}

func TestUpdateDetailsHandler(t *testing.T) {
	h, repo := newAuthHandler(t)
	user := seedUser(t, repo, "dan@example.com", "secret1", true)
	seedUser(t, repo, "taken@example.com", "secret1", true)
	route := validated[*models.UpdateDetailsRequest](h.UpdateDetailsHandler)

	rec := serve(t, http.MethodPut, "/d", "/d", route, user, map[string]string{"name": "Daniel", "phone": "555"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	updated := decode(t, rec)["user"].(map[string]interface{})
	if updated["name"] != "Daniel" || updated["phone"] != "555" || updated["email"] != "dan@example.com" {
		t.Fatalf("unexpected update result: %v", updated)
	}

	clash := serve(t, http.MethodPut, "/d", "/d", route, user, map[string]string{"email": "taken@example.com"})
	if clash.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for taken email, got %d", clash.Code)
	}
}

func TestListUsersHandler(t *testing.T) {
	h, repo := newAuthHandler(t)
	seedUser(t, repo, "a@example.com", "secret1", true)
	seedUser(t, repo, "b@example.com", "secret1", true)

	rec := serve(t, http.MethodGet, "/users", "/users", http.HandlerFunc(h.ListUsersHandler), &models.User{Role: models.RoleAdmin}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if decode(t, rec)["count"] != float64(2) {
		t.Fatal("expected two users")
	}
}
