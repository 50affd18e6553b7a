package service

import (
	"context"
	"errors"
	"strings"

	"myflix-api/internal/domain"
	"myflix-api/internal/repository"
)

var (
	// ErrMovieNotFound indicates that no movie has the requested title.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrGenreNotFound indicates that no movie carries the requested genre.
	ErrGenreNotFound = errors.New("genre not found")
	// ErrDirectorNotFound indicates that no movie carries the requested director.
	ErrDirectorNotFound = errors.New("director not found")
)

// MovieService exposes read access to the catalog.
type MovieService interface {
	List(ctx context.Context) ([]domain.Movie, error)
	GetByTitle(ctx context.Context, title string) (*domain.Movie, error)
	GetGenre(ctx context.Context, name string) (*domain.Genre, error)
	GetDirector(ctx context.Context, name string) (*domain.Director, error)
}

type movieService struct {
	movies repository.MovieRepository
}

func NewMovieService(movies repository.MovieRepository) MovieService {
	return &movieService{movies: movies}
}

func (s *movieService) List(ctx context.Context) ([]domain.Movie, error) {
	return s.movies.List(ctx)
}

func (s *movieService) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	movie, err := s.movies.GetByTitle(ctx, strings.TrimSpace(title))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMovieNotFound
	}
	return movie, err
}

func (s *movieService) GetGenre(ctx context.Context, name string) (*domain.Genre, error) {
	genre, err := s.movies.FindGenre(ctx, strings.TrimSpace(name))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGenreNotFound
	}
	return genre, err
}

func (s *movieService) GetDirector(ctx context.Context, name string) (*domain.Director, error) {
	director, err := s.movies.FindDirector(ctx, strings.TrimSpace(name))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDirectorNotFound
	}
	return director, err
}
