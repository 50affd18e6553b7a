package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"myflix-api/internal/config"
	"myflix-api/internal/repository"
	"myflix-api/internal/repository/mongodb"
	"myflix-api/internal/repository/sqlite"
)

// Store bundles the repositories of the configured backend.
type Store struct {
	Movies repository.MovieRepository
	Users  repository.UserRepository
	close  func(ctx context.Context) error
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// OpenStore connects to the configured backend and makes sure its schema and
// indexes exist.
func OpenStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*Store, error) {
	var store *Store

	switch cfg.Store.Driver {
	case config.DriverMongo:
		db, err := mongodb.Open(ctx, cfg.Store.URI, cfg.Store.Database, cfg.Store.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		store = &Store{
			Movies: mongodb.NewMovieRepository(db),
			Users:  mongodb.NewUserRepository(db),
			close:  db.Close,
		}
		logger.Infof("using mongo database %s", cfg.Store.Database)
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		store = &Store{
			Movies: sqlite.NewMovieRepository(db),
			Users:  sqlite.NewUserRepository(db),
			close:  func(context.Context) error { return db.Close() },
		}
		logger.Infof("using sqlite database %s", cfg.Store.Path)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	if err := store.Movies.Init(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("init movie repository: %w", err)
	}
	if err := store.Users.Init(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("init user repository: %w", err)
	}
	return store, nil
}
