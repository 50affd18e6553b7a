package repository

import (
	"context"

	"myflix-api/internal/domain"
)

// UserRepository defines persistence operations for User documents. Every username
// argument is matched case-insensitively.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (string, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error)
	AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}
