//go:build integration

package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"myflix-api/internal/domain"
	"myflix-api/internal/repository"
)

type RepositorySuite struct {
	suite.Suite
	container *tcmongo.MongoDBContainer
	db        *DB
	movies    repository.MovieRepository
	users     repository.UserRepository
}

func (s *RepositorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(s.T(), err)
	s.container = container

	uri, err := container.ConnectionString(ctx)
	require.NoError(s.T(), err)

	s.db, err = Open(ctx, uri, "myflix_test", 30*time.Second)
	require.NoError(s.T(), err)

	s.movies = NewMovieRepository(s.db)
	s.users = NewUserRepository(s.db)
	require.NoError(s.T(), s.movies.Init(ctx))
	require.NoError(s.T(), s.users.Init(ctx))
}

func (s *RepositorySuite) TearDownSuite() {
	ctx := context.Background()
	if s.db != nil {
		_ = s.db.Close(ctx)
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *RepositorySuite) SetupTest() {
	ctx := context.Background()
	require.NoError(s.T(), s.db.Collection(moviesCollection).Drop(ctx))
	require.NoError(s.T(), s.db.Collection(usersCollection).Drop(ctx))
	require.NoError(s.T(), s.movies.Init(ctx))
	require.NoError(s.T(), s.users.Init(ctx))
}

func (s *RepositorySuite) TestMovieLookupsIgnoreCase() {
	ctx := context.Background()
	created, err := s.movies.Upsert(ctx, &domain.Movie{
		Title:       "Tombstone",
		Description: "A lawman retires to Tombstone.",
		Genre:       domain.Genre{Name: "Western", Description: "Frontier stories."},
		Director:    domain.Director{Name: "George P. Cosmatos", Bio: "Film director."},
		Actors:      []string{"Kurt Russell", "Val Kilmer"},
	})
	s.Require().NoError(err)
	s.True(created)

	lower, err := s.movies.GetByTitle(ctx, "tombstone")
	s.Require().NoError(err)
	upper, err := s.movies.GetByTitle(ctx, "TOMBSTONE")
	s.Require().NoError(err)
	s.Equal(lower.ID, upper.ID)

	genre, err := s.movies.FindGenre(ctx, "western")
	s.Require().NoError(err)
	s.Equal("Western", genre.Name)

	director, err := s.movies.FindDirector(ctx, "george p. cosmatos")
	s.Require().NoError(err)
	s.Equal("Film director.", director.Bio)

	_, err = s.movies.GetByTitle(ctx, "Heat")
	s.ErrorIs(err, repository.ErrNotFound)

	created, err = s.movies.Upsert(ctx, &domain.Movie{Title: "TOMBSTONE", Description: "Updated."})
	s.Require().NoError(err)
	s.False(created)

	all, err := s.movies.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *RepositorySuite) TestUserUniquenessIgnoresCase() {
	ctx := context.Background()
	_, err := s.users.Create(ctx, &domain.User{Username: "jdoe42", PasswordHash: "hash", Email: "a@b.com"})
	s.Require().NoError(err)

	_, err = s.users.Create(ctx, &domain.User{Username: "JDOE42", PasswordHash: "hash", Email: "c@d.com"})
	s.ErrorIs(err, repository.ErrDuplicateUsername)

	_, err = s.users.Create(ctx, &domain.User{Username: "other", PasswordHash: "hash", Email: "A@B.COM"})
	s.ErrorIs(err, repository.ErrDuplicateEmail)
}

func (s *RepositorySuite) TestFavoritesRoundTrip() {
	ctx := context.Background()
	_, err := s.movies.Upsert(ctx, &domain.Movie{Title: "Heat", Description: "Crime."})
	s.Require().NoError(err)
	movie, err := s.movies.GetByTitle(ctx, "heat")
	s.Require().NoError(err)

	_, err = s.users.Create(ctx, &domain.User{Username: "jdoe42", PasswordHash: "hash", Email: "a@b.com"})
	s.Require().NoError(err)

	user, err := s.users.AddFavorite(ctx, "JDoe42", movie.ID)
	s.Require().NoError(err)
	user, err = s.users.AddFavorite(ctx, "jdoe42", movie.ID)
	s.Require().NoError(err)
	s.Equal([]string{movie.ID, movie.ID}, user.FavoriteMovies)

	user, err = s.users.RemoveFavorite(ctx, "jdoe42", movie.ID)
	s.Require().NoError(err)
	s.Empty(user.FavoriteMovies)

	s.Require().NoError(s.users.Delete(ctx, "JDOE42"))
	s.ErrorIs(s.users.Delete(ctx, "jdoe42"), repository.ErrNotFound)

	_, err = s.movies.GetByID(ctx, movie.ID)
	s.NoError(err)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}
