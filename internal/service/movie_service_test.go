package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myflix-api/internal/domain"
	"myflix-api/internal/repository"
	"myflix-api/internal/repository/mocks"
)

func TestMovieServiceNotFound(t *testing.T) {
	ctx := context.Background()
	movies := new(mocks.MovieRepository)
	svc := NewMovieService(movies)

	movies.On("GetByTitle", ctx, "Heat").Return(nil, repository.ErrNotFound)
	movies.On("FindGenre", ctx, "Horror").Return(nil, repository.ErrNotFound)
	movies.On("FindDirector", ctx, "Nobody").Return(nil, repository.ErrNotFound)

	_, err := svc.GetByTitle(ctx, " Heat ")
	assert.ErrorIs(t, err, ErrMovieNotFound)
	_, err = svc.GetGenre(ctx, "Horror")
	assert.ErrorIs(t, err, ErrGenreNotFound)
	_, err = svc.GetDirector(ctx, "Nobody")
	assert.ErrorIs(t, err, ErrDirectorNotFound)
}

func TestMovieServicePassesThrough(t *testing.T) {
	ctx := context.Background()
	movies := new(mocks.MovieRepository)
	svc := NewMovieService(movies)

	boom := errors.New("socket closed")
	movies.On("List", ctx).Return([]domain.Movie{{Title: "Tombstone"}}, nil)
	movies.On("FindGenre", ctx, "drama").Return(&domain.Genre{Name: "Drama"}, nil)
	movies.On("FindDirector", ctx, "demme").Return(nil, boom)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	genre, err := svc.GetGenre(ctx, "drama")
	require.NoError(t, err)
	assert.Equal(t, "Drama", genre.Name)

	_, err = svc.GetDirector(ctx, "demme")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDirectorNotFound)
}
