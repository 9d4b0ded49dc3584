package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/entity"
)

// UserRepository stores back-office users.
type UserRepository interface {
	// Register stores a new user. The first user ever stored is promoted to owner,
	// and user.Role is updated to the stored role.
	// Returns domainerror.ErrEmailAlreadyExists when the email is taken.
	Register(ctx context.Context, user *entity.User) error

	// FindByEmail returns domainerror.ErrUserNotFound when nobody uses the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// PasswordService hashes and checks passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
	ValidatePasswordStrength(password string) error
}

// TokenClaims are the claims carried by an access token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Role      entity.UserRole
	ExpiresAt time.Time
}

// TokenService issues and validates bearer tokens.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, user *entity.User) (string, time.Time, error)
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
