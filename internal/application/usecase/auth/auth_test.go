package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ledgerbook/backend/internal/application/adapter"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
	"github.com/ledgerbook/backend/internal/integration/adapters"
	"github.com/ledgerbook/backend/internal/integration/persistence"
	"github.com/ledgerbook/backend/internal/integration/persistence/model"
)

type fixture struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &fixture{
		users:     persistence.NewUserRepository(db),
		passwords: adapters.NewPasswordService(),
		tokens:    adapters.NewTokenService("test-secret", persistence.NewTokenRepository(db)),
	}
}

func (f *fixture) register(t *testing.T, email, password string) *RegisterUserOutput {
	t.Helper()
	out, err := NewRegisterUserUseCase(f.users, f.passwords, f.tokens).Execute(context.Background(), RegisterUserInput{
		Email:    email,
		Name:     "Test User",
		Password: password,
	})
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	return out
}

func requireAuthErr(t *testing.T, err error, code domainerror.AuthErrorCode) {
	t.Helper()
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if authErr.Code != code {
		t.Fatalf("expected error code %s, got %s", code, authErr.Code)
	}
}

func TestRegisterUser(t *testing.T) {
	t.Run("registers a new user and issues tokens", func(t *testing.T) {
		f := newFixture(t)

		out := f.register(t, "alice@example.com", "correct-horse")
		if out.AccessToken == "" || out.RefreshToken == "" {
			t.Fatal("expected token pair to be issued")
		}
		if out.User == nil || out.User.Email != "alice@example.com" {
			t.Fatalf("unexpected user: %+v", out.User)
		}
		if !out.User.Active {
			t.Fatal("expected new user to be active")
		}
		if out.User.Superadmin {
			t.Fatal("expected new user not to be superadmin")
		}
		if out.User.PasswordHash == "correct-horse" {
			t.Fatal("expected password to be hashed")
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@example.com", "correct-horse")

		_, err := NewRegisterUserUseCase(f.users, f.passwords, f.tokens).Execute(context.Background(), RegisterUserInput{
			Email:    "alice@example.com",
			Name:     "Impostor",
			Password: "another-pass",
		})
		requireAuthErr(t, err, domainerror.ErrCodeEmailExists)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		f := newFixture(t)

		_, err := NewRegisterUserUseCase(f.users, f.passwords, f.tokens).Execute(context.Background(), RegisterUserInput{
			Email:    "not-an-email",
			Name:     "Test User",
			Password: "correct-horse",
		})
		requireAuthErr(t, err, domainerror.ErrCodeInvalidEmail)
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		f := newFixture(t)

		_, err := NewRegisterUserUseCase(f.users, f.passwords, f.tokens).Execute(context.Background(), RegisterUserInput{
			Email:    "alice@example.com",
			Name:     "Test User",
			Password: "short",
		})
		requireAuthErr(t, err, domainerror.ErrCodeWeakPassword)
	})
}

func TestLoginUser(t *testing.T) {
	t.Run("logs in with valid credentials", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@example.com", "correct-horse")

		out, err := NewLoginUserUseCase(f.users, f.passwords, f.tokens).Execute(context.Background(), LoginUserInput{
			Email:    "alice@example.com",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("failed to login: %v", err)
		}
		if out.AccessToken == "" || out.RefreshToken == "" {
			t.Fatal("expected token pair to be issued")
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@example.com", "correct-horse")

		_, err := NewLoginUserUseCase(f.users, f.passwords, f.tokens).Execute(context.Background(), LoginUserInput{
			Email:    "alice@example.com",
			Password: "wrong-horse",
		})
		requireAuthErr(t, err, domainerror.ErrCodeInvalidCredentials)
	})

	t.Run("rejects an unknown email with the same error as a wrong password", func(t *testing.T) {
		f := newFixture(t)

		_, err := NewLoginUserUseCase(f.users, f.passwords, f.tokens).Execute(context.Background(), LoginUserInput{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})
		requireAuthErr(t, err, domainerror.ErrCodeInvalidCredentials)
	})

	t.Run("rejects a disabled account even with valid credentials", func(t *testing.T) {
		f := newFixture(t)
		out := f.register(t, "alice@example.com", "correct-horse")

		out.User.Active = false
		if err := f.users.Update(context.Background(), out.User); err != nil {
			t.Fatalf("failed to disable user: %v", err)
		}

		_, err := NewLoginUserUseCase(f.users, f.passwords, f.tokens).Execute(context.Background(), LoginUserInput{
			Email:    "alice@example.com",
			Password: "correct-horse",
		})
		requireAuthErr(t, err, domainerror.ErrCodeAccountDisabled)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("rotates the refresh token and revokes the old one", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "alice@example.com", "correct-horse")

		uc := NewRefreshTokenUseCase(f.tokens, f.users)
		out, err := uc.Execute(context.Background(), RefreshTokenInput{
			RefreshToken: registered.RefreshToken,
		})
		if err != nil {
			t.Fatalf("failed to refresh token: %v", err)
		}
		if out.RefreshToken == registered.RefreshToken {
			t.Fatal("expected a new refresh token")
		}

		// The original token was invalidated by the rotation.
		_, err = uc.Execute(context.Background(), RefreshTokenInput{
			RefreshToken: registered.RefreshToken,
		})
		requireAuthErr(t, err, domainerror.ErrCodeInvalidToken)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		f := newFixture(t)

		_, err := NewRefreshTokenUseCase(f.tokens, f.users).Execute(context.Background(), RefreshTokenInput{
			RefreshToken: "not-a-jwt",
		})
		requireAuthErr(t, err, domainerror.ErrCodeInvalidToken)
	})

	t.Run("rejects a refresh for a disabled account", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "alice@example.com", "correct-horse")

		registered.User.Active = false
		if err := f.users.Update(context.Background(), registered.User); err != nil {
			t.Fatalf("failed to disable user: %v", err)
		}

		_, err := NewRefreshTokenUseCase(f.tokens, f.users).Execute(context.Background(), RefreshTokenInput{
			RefreshToken: registered.RefreshToken,
		})
		requireAuthErr(t, err, domainerror.ErrCodeAccountDisabled)
	})
}

func TestLogoutUser(t *testing.T) {
	t.Run("invalidates the refresh token", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "alice@example.com", "correct-horse")

		if _, err := NewLogoutUserUseCase(f.tokens).Execute(context.Background(), LogoutUserInput{
			RefreshToken: registered.RefreshToken,
		}); err != nil {
			t.Fatalf("failed to logout: %v", err)
		}

		_, err := NewRefreshTokenUseCase(f.tokens, f.users).Execute(context.Background(), RefreshTokenInput{
			RefreshToken: registered.RefreshToken,
		})
		requireAuthErr(t, err, domainerror.ErrCodeInvalidToken)
	})

	t.Run("is idempotent for an already invalid token", func(t *testing.T) {
		f := newFixture(t)

		if _, err := NewLogoutUserUseCase(f.tokens).Execute(context.Background(), LogoutUserInput{
			RefreshToken: "not-a-jwt",
		}); err != nil {
			t.Fatalf("expected logout to succeed, got %v", err)
		}
	})
}
