package user

import (
	"context"
	"errors"
	"testing"

	"contas/internal/shared/auth"
)

// MockUserRepo implements Repository for testing
type MockUserRepo struct {
	CreateFunc        func(ctx context.Context, params CreateParams) (*User, error)
	GetByIDFunc       func(ctx context.Context, id int64) (*User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params CreateParams) (*User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &User{ID: 1, Username: params.Username, Name: params.Name, Active: true}, nil
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func TestRegister_NormalizesUsername(t *testing.T) {
	var gotParams CreateParams
	repo := &MockUserRepo{
		CreateFunc: func(ctx context.Context, params CreateParams) (*User, error) {
			gotParams = params
			return &User{ID: 1, Username: params.Username, Active: true}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "  Maria.Silva ", " Maria Silva ", "secret1")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if gotParams.Username != "maria.silva" {
		t.Errorf("Username = %q, want %q", gotParams.Username, "maria.silva")
	}
	if gotParams.Name != "Maria Silva" {
		t.Errorf("Name = %q, want %q", gotParams.Name, "Maria Silva")
	}
	if gotParams.PasswordHash == "" || gotParams.PasswordHash == "secret1" {
		t.Error("expected password to be hashed")
	}
	if err := auth.VerifyPassword(gotParams.PasswordHash, "secret1"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc := NewService(&MockUserRepo{})

	if _, err := svc.Register(context.Background(), "   ", "Name", "secret1"); err == nil {
		t.Error("Register() expected error for empty username")
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := NewService(&MockUserRepo{})

	if _, err := svc.Register(context.Background(), "maria", "Maria", "12345"); err == nil {
		t.Error("Register() expected error for short password")
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := &MockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return &User{ID: 1, Username: username}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "maria", "Maria", "secret1")
	if err != ErrUsernameTaken {
		t.Errorf("Register() error = %v, want ErrUsernameTaken", err)
	}
}

func TestAuthenticate_Success(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	repo := &MockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return &User{ID: 1, Username: username, PasswordHash: hash, Active: true}, nil
		},
	}
	svc := NewService(repo)

	u, err := svc.Authenticate(context.Background(), "Maria", "secret1")
	if err != nil {
		t.Fatalf("Authenticate() error: %v", err)
	}
	if u.ID != 1 {
		t.Errorf("u.ID = %d, want 1", u.ID)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc := NewService(&MockUserRepo{})

	_, err := svc.Authenticate(context.Background(), "nobody", "secret1")
	if err != ErrInvalidCredentials {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	hash, _ := auth.HashPassword("secret1")
	repo := &MockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return &User{ID: 1, Username: username, PasswordHash: hash, Active: false}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "maria", "secret1")
	if err != ErrInvalidCredentials {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	hash, _ := auth.HashPassword("secret1")
	repo := &MockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return &User{ID: 1, Username: username, PasswordHash: hash, Active: true}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "maria", "wrong")
	if err != ErrInvalidCredentials {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(&MockUserRepo{})

	_, err := svc.Get(context.Background(), 99)
	if err != ErrUserNotFound {
		t.Errorf("Get() error = %v, want ErrUserNotFound", err)
	}
}

func TestGet_RepoError(t *testing.T) {
	repo := &MockUserRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*User, error) {
			return nil, errors.New("db error")
		},
	}
	svc := NewService(repo)

	if _, err := svc.Get(context.Background(), 1); err == nil {
		t.Error("Get() expected error, got nil")
	}
}
