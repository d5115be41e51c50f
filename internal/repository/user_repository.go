package repository

import (
	"github.com/aebalz/menulist-tracker/internal/model"
	"gorm.io/gorm"
)

// UserRepositoryInterface defines the interface for user persistence.
type UserRepositoryInterface interface {
	CreateUser(user *model.User) (*model.User, error)
	GetUserByID(id uint) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByUsernameOrEmail(identifier string) (*model.User, error)
}

// UserRepository implements UserRepositoryInterface.
type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) UserRepositoryInterface {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new user row.
func (r *UserRepository) CreateUser(user *model.User) (*model.User, error) {
	if result := r.DB.Create(user); result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

// GetUserByID retrieves a user by primary key.
func (r *UserRepository) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if result := r.DB.First(&user, id); result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by exact username.
func (r *UserRepository) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if result := r.DB.Where("username = ?", username).First(&user); result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by exact email.
func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if result := r.DB.Where("email = ?", email).First(&user); result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// GetUserByUsernameOrEmail retrieves a user matching either column. Login
// accepts both identifiers, same as the registration form's uniqueness rule.
func (r *UserRepository) GetUserByUsernameOrEmail(identifier string) (*model.User, error) {
	var user model.User
	if result := r.DB.Where("username = ? OR email = ?", identifier, identifier).First(&user); result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
