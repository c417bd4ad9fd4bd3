package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"contas/internal/domain/user"
	"contas/internal/shared/auth"
)

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc        func(ctx context.Context, params user.CreateParams) (*user.User, error)
	GetByIDFunc       func(ctx context.Context, id int64) (*user.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*user.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &user.User{ID: 1, Username: params.Username, Name: params.Name, PasswordHash: params.PasswordHash, Active: true}, nil
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func newAuthHandler(repo *MockUserRepo) *AuthHandler {
	return NewAuthHandler(user.NewService(repo), auth.NewJWT("test-secret"))
}

func TestHandleRegister_Success(t *testing.T) {
	handler := newAuthHandler(&MockUserRepo{})

	body, _ := json.Marshal(RegisterRequest{Username: "maria", Name: "Maria", Password: "secret1"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.HandleRegister(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp AuthResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
	if resp.User == nil || resp.User.Username != "maria" {
		t.Errorf("resp.User = %+v, want username maria", resp.User)
	}

	cookies := rr.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "access_token" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected access_token cookie to be set")
	}
}

func TestHandleRegister_UsernameTaken(t *testing.T) {
	repo := &MockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*user.User, error) {
			return &user.User{ID: 1, Username: username}, nil
		},
	}
	handler := newAuthHandler(repo)

	body, _ := json.Marshal(RegisterRequest{Username: "maria", Name: "Maria", Password: "secret1"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.HandleRegister(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestHandleRegister_ShortPassword(t *testing.T) {
	handler := newAuthHandler(&MockUserRepo{})

	body, _ := json.Marshal(RegisterRequest{Username: "maria", Name: "Maria", Password: "123"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.HandleRegister(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHandleLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	repo := &MockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*user.User, error) {
			return &user.User{ID: 1, Username: username, PasswordHash: hash, Active: true}, nil
		},
	}
	handler := newAuthHandler(repo)

	body, _ := json.Marshal(LoginRequest{Username: "maria", Password: "secret1"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.HandleLogin(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp AuthResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	handler := newAuthHandler(&MockUserRepo{})

	body, _ := json.Marshal(LoginRequest{Username: "nobody", Password: "secret1"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.HandleLogin(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestHandleLogin_MethodNotAllowed(t *testing.T) {
	handler := newAuthHandler(&MockUserRepo{})

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/login", nil)
	rr := httptest.NewRecorder()
	handler.HandleLogin(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleLogout_ClearsCookie(t *testing.T) {
	handler := newAuthHandler(&MockUserRepo{})

	req, _ := http.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rr := httptest.NewRecorder()
	handler.HandleLogout(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}

	cookies := rr.Result().Cookies()
	var cleared bool
	for _, c := range cookies {
		if c.Name == "access_token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected access_token cookie to be cleared")
	}
}

func TestHandleMe_Success(t *testing.T) {
	repo := &MockUserRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*user.User, error) {
			return &user.User{ID: id, Username: "maria", Name: "Maria", Active: true}, nil
		},
	}
	handler := newAuthHandler(repo)

	req := authenticatedRequest(http.MethodGet, "/api/users/me", nil)
	rr := httptest.NewRecorder()
	handler.HandleMe(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var u user.User
	json.NewDecoder(rr.Body).Decode(&u)
	if u.Username != "maria" {
		t.Errorf("u.Username = %q, want %q", u.Username, "maria")
	}
}

func TestHandleMe_Unauthenticated(t *testing.T) {
	handler := newAuthHandler(&MockUserRepo{})

	req, _ := http.NewRequest(http.MethodGet, "/api/users/me", nil)
	rr := httptest.NewRecorder()
	handler.HandleMe(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
