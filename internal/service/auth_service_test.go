package service

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aebalz/menulist-tracker/internal/model"
	"github.com/aebalz/menulist-tracker/internal/repository"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) AuthServiceInterface {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour)
}

func TestRegister(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register("alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Register("alice", "other@example.com", "s3cret"); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
	if _, err := svc.Register("bob", "alice@example.com", "s3cret"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)

	registered, err := svc.Register("alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Either identifier works.
	for _, identifier := range []string{"alice", "alice@example.com"} {
		tokenString, err := svc.Login(identifier, "s3cret")
		if err != nil {
			t.Fatalf("Login(%q): %v", identifier, err)
		}

		token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		if err != nil || !token.Valid {
			t.Fatalf("token does not verify: %v", err)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			t.Fatalf("unexpected claims type: %T", token.Claims)
		}
		if uint(claims["user_id"].(float64)) != registered.ID {
			t.Fatalf("user_id claim = %v, want %d", claims["user_id"], registered.ID)
		}
		if claims["username"] != "alice" {
			t.Fatalf("username claim = %v", claims["username"])
		}
	}
}

func TestLoginFailures(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	// Unknown users produce the same error as bad passwords.
	if _, err := svc.Login("mallory", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
