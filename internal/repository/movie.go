package repository

import (
	"context"

	"myflix-api/internal/domain"
)

// MovieRepository exposes the movie catalog. Title, genre and director names are
// matched case-insensitively.
type MovieRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]domain.Movie, error)
	GetByID(ctx context.Context, id string) (*domain.Movie, error)
	GetByTitle(ctx context.Context, title string) (*domain.Movie, error)
	FindGenre(ctx context.Context, name string) (*domain.Genre, error)
	FindDirector(ctx context.Context, name string) (*domain.Director, error)
	// Upsert replaces the movie with the same title or inserts it. It reports whether
	// a new document was created.
	Upsert(ctx context.Context, movie *domain.Movie) (bool, error)
}
