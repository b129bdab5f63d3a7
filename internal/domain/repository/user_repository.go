package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken matches the stored token digest and only returns a
	// user whose token has not yet expired.
	GetByResetToken(ctx context.Context, hashedToken string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, hashedToken string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	// UpdateProfile writes name, email and (when non-nil) avatar in a single
	// statement.
	UpdateProfile(ctx context.Context, id, name, email string, avatar *entity.Avatar) (*entity.User, error)
}
