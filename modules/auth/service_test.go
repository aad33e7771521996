package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "github.com/example/study-task-manager/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestService creates an AuthService over an in-memory SQLite database.
func setupTestService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	service := NewAuthService(
		NewUserRepository(db),
		NewPasswordHasherWithCost(bcrypt.MinCost),
		NewJWTManager(testJWTConfig()),
	)
	return service, db
}

func countUsers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	return count
}

func TestAuthService_Register(t *testing.T) {
	service, db := setupTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "Ada", "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("Register() returned a user without an id")
	}
	if user.PasswordHash == "s3cret" || !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Errorf("PasswordHash = %q, want a bcrypt hash", user.PasswordHash)
	}

	found, err := NewUserRepository(db).FindByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if found.ID != user.ID || found.Name != "Ada" {
		t.Errorf("stored user = %+v, want id %d name Ada", found, user.ID)
	}
}

func TestAuthService_Register_NameOptional(t *testing.T) {
	service, _ := setupTestService(t)

	user, err := service.Register(context.Background(), "", "anon@example.com", "pw")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Name != "" {
		t.Errorf("Name = %q, want empty", user.Name)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	service, db := setupTestService(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "missing email", email: "", password: "pw", wantErr: ErrMissingCredentials},
		{name: "missing password", email: "a@example.com", password: "", wantErr: ErrMissingCredentials},
		{name: "password over bcrypt limit", email: "a@example.com", password: strings.Repeat("x", 73), wantErr: ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), "", tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := countUsers(t, db); got != 0 {
		t.Errorf("users = %d, want 0", got)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	service, db := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "", "dup@example.com", "first"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := service.Register(ctx, "", "dup@example.com", "second")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("second Register() error = %v, want ErrUserExists", err)
	}

	if got := countUsers(t, db); got != 1 {
		t.Errorf("users = %d, want 1", got)
	}

	// Email comparison is exact.
	if _, err := service.Register(ctx, "", "Dup@example.com", "third"); err != nil {
		t.Errorf("Register() with different case error = %v", err)
	}
}

func TestUserRepository_Create_UniqueIndex(t *testing.T) {
	_, db := setupTestService(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Email: "race@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := repo.Create(ctx, &domain.User{Email: "race@example.com", PasswordHash: "h"})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Create() duplicate error = %v, want ErrUserExists", err)
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	service, _ := setupTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "", "login@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, "login@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, "nobody@example.com", "correct-horse")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		tokens, err := service.Login(ctx, "login@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if tokens.TokenType != "Bearer" {
			t.Errorf("TokenType = %q, want Bearer", tokens.TokenType)
		}

		claims, err := service.ValidateToken(ctx, tokens.AccessToken)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("claims.UserID = %d, want %d", claims.UserID, user.ID)
		}

		refreshed, err := service.RefreshTokens(ctx, tokens.RefreshToken)
		if err != nil {
			t.Fatalf("RefreshTokens() error = %v", err)
		}
		if refreshed.AccessToken == "" || refreshed.RefreshToken == tokens.RefreshToken {
			t.Error("RefreshTokens() did not issue a new pair")
		}
	})

	t.Run("refresh with access token", func(t *testing.T) {
		tokens, err := service.Login(ctx, "login@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if _, err := service.RefreshTokens(ctx, tokens.AccessToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("RefreshTokens() error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestAuthService_GetUser(t *testing.T) {
	service, _ := setupTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "Grace", "grace@example.com", "pw")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := service.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Email != "grace@example.com" {
		t.Errorf("Email = %q, want grace@example.com", got.Email)
	}

	if _, err := service.GetUser(ctx, user.ID+100); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser() error = %v, want ErrUserNotFound", err)
	}
}
