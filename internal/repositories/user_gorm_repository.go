package repositories

import (
	"errors"
	"fmt"

	"kassa/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create stores user. The password must already be hashed.
func (r *GORMUserRepository) Create(user *models.User) error {
	err := r.db.Create(user).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("create user %s: %w", user.Username, ErrUsernameTaken)
	case err != nil:
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername looks a user up by login name.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}
