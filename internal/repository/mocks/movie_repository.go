package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"myflix-api/internal/domain"
)

// MovieRepository is a testify mock of repository.MovieRepository.
type MovieRepository struct {
	mock.Mock
}

func (m *MovieRepository) Init(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MovieRepository) List(ctx context.Context) ([]domain.Movie, error) {
	args := m.Called(ctx)
	movies, _ := args.Get(0).([]domain.Movie)
	return movies, args.Error(1)
}

func (m *MovieRepository) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*domain.Movie)
	return movie, args.Error(1)
}

func (m *MovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	args := m.Called(ctx, title)
	movie, _ := args.Get(0).(*domain.Movie)
	return movie, args.Error(1)
}

func (m *MovieRepository) FindGenre(ctx context.Context, name string) (*domain.Genre, error) {
	args := m.Called(ctx, name)
	genre, _ := args.Get(0).(*domain.Genre)
	return genre, args.Error(1)
}

func (m *MovieRepository) FindDirector(ctx context.Context, name string) (*domain.Director, error) {
	args := m.Called(ctx, name)
	director, _ := args.Get(0).(*domain.Director)
	return director, args.Error(1)
}

func (m *MovieRepository) Upsert(ctx context.Context, movie *domain.Movie) (bool, error) {
	args := m.Called(ctx, movie)
	return args.Bool(0), args.Error(1)
}
