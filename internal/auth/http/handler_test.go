package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmedvedev/secure-content/internal/auth/service"
	"github.com/dmedvedev/secure-content/internal/common/logger"
	userdomain "github.com/dmedvedev/secure-content/internal/user/domain"
	userrepo "github.com/dmedvedev/secure-content/internal/user/repository"
)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user userdomain.User) (userdomain.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = 1
	return user, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (userdomain.User, error) {
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]userdomain.User, error) {
	return nil, nil
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (stubHasher) Compare(hash string, password string) error {
	if hash != "hashed:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

type stubIssuer struct{}

func (stubIssuer) Issue(subject, role string, now time.Time) (string, error) {
	return "signed-token", nil
}

func setupRouter(t *testing.T) (*chi.Mux, *mockUserRepo) {
	t.Helper()

	repo := &mockUserRepo{}
	log, _ := logger.New("", "test", "ERROR")
	svc := service.NewAuthService(repo, stubHasher{}, stubIssuer{}, log)

	r := chi.NewRouter()
	r.Route("/auth", NewHandler(svc, log).Routes)

	return r, repo
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRegister_Success(t *testing.T) {
	router, _ := setupRouter(t)

	rec := postJSON(t, router, "/auth/register",
		`{"username":"alice","password":"password123","email":"alice@example.com"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	var body registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Username != "alice" || body.Email != "alice@example.com" {
		t.Errorf("unexpected body: %+v", body)
	}
	if body.Message == "" {
		t.Error("expected confirmation message")
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	router, _ := setupRouter(t)

	rec := postJSON(t, router, "/auth/register", `{"username":`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegister_Conflict(t *testing.T) {
	router, repo := setupRouter(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{ID: 1, Username: username}, nil
	}

	rec := postJSON(t, router, "/auth/register",
		`{"username":"alice","password":"password123","email":"alice@example.com"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != "Username already exists" {
		t.Errorf("unexpected error message: %q", body.Error)
	}
}

func TestRegister_ValidationError(t *testing.T) {
	router, _ := setupRouter(t)

	rec := postJSON(t, router, "/auth/register",
		`{"username":"al","password":"password123","email":"alice@example.com"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_Success(t *testing.T) {
	router, repo := setupRouter(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{
			ID:           1,
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "hashed:password123",
			Role:         "USER",
		}, nil
	}

	rec := postJSON(t, router, "/auth/login",
		`{"username":"alice","password":"password123"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var body loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Token != "signed-token" {
		t.Errorf("expected token, got %q", body.Token)
	}
	if body.Type != "Bearer" {
		t.Errorf("expected Bearer type, got %q", body.Type)
	}
	if body.Username != "alice" || body.Email != "alice@example.com" {
		t.Errorf("unexpected identity in body: %+v", body)
	}
}

func TestLogin_FailureIsUniform(t *testing.T) {
	router, repo := setupRouter(t)

	// Unknown username.
	recUnknown := postJSON(t, router, "/auth/login",
		`{"username":"ghost","password":"password123"}`)

	// Known username, wrong password.
	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{Username: "alice", PasswordHash: "hashed:password123"}, nil
	}
	recWrongPass := postJSON(t, router, "/auth/login",
		`{"username":"alice","password":"wrong-password"}`)

	if recUnknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", recUnknown.Code)
	}
	if recWrongPass.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", recWrongPass.Code)
	}
	if recUnknown.Body.String() != recWrongPass.Body.String() {
		t.Errorf("login failure bodies differ: %q vs %q", recUnknown.Body, recWrongPass.Body)
	}
}
