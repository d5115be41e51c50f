package service

import (
	"errors"
	"time"

	"github.com/aebalz/menulist-tracker/internal/model"
	"github.com/aebalz/menulist-tracker/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Auth failures surfaced to the HTTP layer.
var (
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthServiceInterface defines registration and login.
type AuthServiceInterface interface {
	Register(username, email, password string) (*model.User, error)
	Login(identifier, password string) (string, error)
}

// AuthService implements AuthServiceInterface.
type AuthService struct {
	UserRepo  repository.UserRepositoryInterface
	JWTSecret string
	JWTExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepositoryInterface, jwtSecret string, jwtExpiry time.Duration) AuthServiceInterface {
	return &AuthService{UserRepo: userRepo, JWTSecret: jwtSecret, JWTExpiry: jwtExpiry}
}

// Register creates a new user with a bcrypt-hashed password. Duplicate
// usernames and emails are rejected before the insert so the caller can
// report which field collided.
func (s *AuthService) Register(username, email, password string) (*model.User, error) {
	if _, err := s.UserRepo.GetUserByUsername(username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.UserRepo.GetUserByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	return s.UserRepo.CreateUser(user)
}

// Login verifies credentials against either username or email and issues a
// signed JWT. Unknown identifiers and wrong passwords are indistinguishable
// to the caller.
func (s *AuthService) Login(identifier, password string) (string, error) {
	user, err := s.UserRepo.GetUserByUsernameOrEmail(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.JWTExpiry).Unix(),
		"iat":      time.Now().Unix(),
	})
	return token.SignedString([]byte(s.JWTSecret))
}
