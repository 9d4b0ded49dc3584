package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/integration/persistence/model"
)

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{db: db}
}

// Register inserts the user inside a transaction so two concurrent first
// registrations cannot both become owner.
func (r *userRepository) Register(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken, total int64
		if err := tx.Model(&model.UserModel{}).Where("email = ?", user.Email).Count(&taken).Error; err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken > 0 {
			return domainerror.ErrEmailAlreadyExists
		}

		if err := tx.Model(&model.UserModel{}).Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if total == 0 {
			user.Role = entity.UserRoleOwner
		}

		if err := tx.Create(model.UserFromEntity(user)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainerror.ErrEmailAlreadyExists
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
}

// FindByEmail retrieves a user by their email address.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var row model.UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return row.ToEntity(), nil
}
