package usecase

import (
	"context"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64) (string, error) {
			return fmt.Sprintf("token-%d", userID), nil
		},
		ParseFn: func(token string) (int64, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
				return 0, pkgAuth.ErrInvalidToken
			}
			return id, nil
		},
	}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	uc := NewAuthUseCase(factory.Users(), testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, token, err := uc.Register(ctx, "Alice", "alice@example.com", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("expected customer role, got %q", user.Role)
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := factory.Users().GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	uc := NewAuthUseCase(factory.Users(), testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "Bob", "bob@example.com", "secret1"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, "Bobby", "bob@example.com", "secret2"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewFactoryStub().Users(), testhelpers.HasherStub{}, newStrategyStub())

	cases := []struct {
		name, userName, email, password string
	}{
		{"empty name", "", "a@example.com", "password"},
		{"empty email", "A", "", "password"},
		{"short password", "A", "a@example.com", "123"},
	}
	for _, tc := range cases {
		if _, _, err := uc.Register(context.Background(), tc.userName, tc.email, tc.password); err != domainErrors.ErrInvalidCredentials {
			t.Fatalf("%s: expected invalid credentials error, got %v", tc.name, err)
		}
	}
}

func TestAuthUseCaseRegisterOverlongPassword(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewFactoryStub().Users(), testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", pkgAuth.ErrPasswordTooLong
	}}, newStrategyStub())
	if _, _, err := uc.Register(context.Background(), "User", "user@example.com", "password"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewFactoryStub().Users(), testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", fmt.Errorf("hash error")
	}}, newStrategyStub())
	if _, _, err := uc.Register(context.Background(), "User", "user@example.com", "password"); err == nil {
		t.Fatal("expected hashing error")
	}
}

func TestAuthUseCaseRegisterIssueTokenError(t *testing.T) {
	strategy := testhelpers.StrategyStub{IssueFn: func(int64) (string, error) {
		return "", fmt.Errorf("cannot issue token")
	}}
	uc := NewAuthUseCase(testhelpers.NewFactoryStub().Users(), testhelpers.HasherStub{}, strategy)
	if _, _, err := uc.Register(context.Background(), "User", "user@example.com", "password"); err == nil {
		t.Fatal("expected token issuing error")
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	uc := NewAuthUseCase(factory.Users(), testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "Carol", "carol@example.com", "123456"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, "carol@example.com", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseAuthenticateNotFound(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewFactoryStub().Users(), testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Authenticate(context.Background(), "absent@example.com", "pass"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewFactoryStub().Users(), testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Authenticate(context.Background(), "", "pass"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "a@example.com", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewFactoryStub().Users(), testhelpers.HasherStub{}, newStrategyStub())

	id, err := uc.ParseToken("token-42")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if _, err := uc.ParseToken("bad-token"); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
	if _, err := uc.ParseToken(""); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseGetByID(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	seeded := factory.SeedUser(model.User{Name: "Dan", Email: "dan@example.com", Role: model.RoleAdmin})
	uc := NewAuthUseCase(factory.Users(), testhelpers.HasherStub{}, newStrategyStub())

	user, err := uc.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if user.Email != "dan@example.com" || user.Role != model.RoleAdmin {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := uc.GetByID(context.Background(), 999); err != domainErrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
