package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"myflix-api/internal/domain"
	"myflix-api/internal/repository"
)

const createMoviesTable = `
CREATE TABLE IF NOT EXISTS movies (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	title_key TEXT NOT NULL,
	description TEXT NOT NULL,
	genre_name TEXT NOT NULL DEFAULT '',
	genre_key TEXT NOT NULL DEFAULT '',
	genre_description TEXT NOT NULL DEFAULT '',
	director_name TEXT NOT NULL DEFAULT '',
	director_key TEXT NOT NULL DEFAULT '',
	director_bio TEXT NOT NULL DEFAULT '',
	director_birth DATETIME,
	director_death DATETIME,
	actors TEXT NOT NULL DEFAULT '[]',
	image_path TEXT NOT NULL DEFAULT '',
	featured INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_movies_title_key ON movies(title_key);
CREATE INDEX IF NOT EXISTS idx_movies_genre_key ON movies(genre_key);
CREATE INDEX IF NOT EXISTS idx_movies_director_key ON movies(director_key);
`

const selectMovie = `
SELECT id, title, description, genre_name, genre_description, director_name, director_bio,
	director_birth, director_death, actors, image_path, featured
FROM movies`

type MovieRepository struct {
	db *sql.DB
}

func NewMovieRepository(db *sql.DB) repository.MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createMoviesTable); err != nil {
		return fmt.Errorf("create movies table: %w", err)
	}
	return nil
}

func (r *MovieRepository) List(ctx context.Context) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx, selectMovie+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	return scanMovie(r.db.QueryRowContext(ctx, selectMovie+` WHERE id = ?`, id))
}

func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	return scanMovie(r.db.QueryRowContext(ctx, selectMovie+` WHERE title_key = ? ORDER BY rowid LIMIT 1`, foldKey(title)))
}

func (r *MovieRepository) FindGenre(ctx context.Context, name string) (*domain.Genre, error) {
	movie, err := scanMovie(r.db.QueryRowContext(ctx, selectMovie+` WHERE genre_key = ? ORDER BY rowid LIMIT 1`, foldKey(name)))
	if err != nil {
		return nil, err
	}
	return &movie.Genre, nil
}

func (r *MovieRepository) FindDirector(ctx context.Context, name string) (*domain.Director, error) {
	movie, err := scanMovie(r.db.QueryRowContext(ctx, selectMovie+` WHERE director_key = ? ORDER BY rowid LIMIT 1`, foldKey(name)))
	if err != nil {
		return nil, err
	}
	return &movie.Director, nil
}

func (r *MovieRepository) Upsert(ctx context.Context, movie *domain.Movie) (bool, error) {
	actors := movie.Actors
	if actors == nil {
		actors = []string{}
	}
	encodedActors, err := json.Marshal(actors)
	if err != nil {
		return false, fmt.Errorf("encode actors: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM movies WHERE title_key = ? ORDER BY rowid LIMIT 1`, foldKey(movie.Title)).Scan(&existingID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		existingID = ""
	case err != nil:
		return false, fmt.Errorf("lookup movie %q: %w", movie.Title, err)
	}

	args := []any{
		movie.Title,
		movie.Description,
		movie.Genre.Name,
		movie.Genre.Description,
		movie.Director.Name,
		movie.Director.Bio,
		nullTime(movie.Director.Birth),
		nullTime(movie.Director.Death),
		string(encodedActors),
		movie.ImagePath,
		movie.Featured,
		foldKey(movie.Title),
		foldKey(movie.Genre.Name),
		foldKey(movie.Director.Name),
	}

	created := existingID == ""
	if created {
		movie.ID = newID()
		_, err = tx.ExecContext(ctx, `
INSERT INTO movies (title, description, genre_name, genre_description, director_name, director_bio,
	director_birth, director_death, actors, image_path, featured, title_key, genre_key, director_key, id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, append(args, movie.ID)...)
	} else {
		movie.ID = existingID
		_, err = tx.ExecContext(ctx, `
UPDATE movies SET title = ?, description = ?, genre_name = ?, genre_description = ?, director_name = ?,
	director_bio = ?, director_birth = ?, director_death = ?, actors = ?, image_path = ?, featured = ?,
	title_key = ?, genre_key = ?, director_key = ?
WHERE id = ?`, append(args, existingID)...)
	}
	if err != nil {
		return false, fmt.Errorf("upsert movie %q: %w", movie.Title, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit movie %q: %w", movie.Title, err)
	}
	return created, nil
}

func scanMovie(row interface {
	Scan(dest ...any) error
}) (*domain.Movie, error) {
	var (
		movie         domain.Movie
		birth, death  sql.NullTime
		encodedActors string
	)
	if err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre.Name,
		&movie.Genre.Description,
		&movie.Director.Name,
		&movie.Director.Bio,
		&birth,
		&death,
		&encodedActors,
		&movie.ImagePath,
		&movie.Featured,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan movie: %w", err)
	}

	if err := json.Unmarshal([]byte(encodedActors), &movie.Actors); err != nil {
		return nil, fmt.Errorf("decode actors of movie %s: %w", movie.ID, err)
	}
	if movie.Actors == nil {
		movie.Actors = []string{}
	}
	movie.Director.Birth = timePtr(birth)
	movie.Director.Death = timePtr(death)
	return &movie, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
