package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"myflix-api/internal/domain"
	"myflix-api/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	username_key TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	email_key TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	birthday DATETIME
);
CREATE TABLE IF NOT EXISTS user_favorites (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	movie_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_user_favorites_user ON user_favorites(user_id);
`

const selectUser = `SELECT id, username, email, password_hash, birthday FROM users`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	id := newID()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, username, username_key, email, email_key, password_hash, birthday)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		user.Username,
		foldKey(user.Username),
		user.Email,
		foldKey(user.Email),
		user.PasswordHash,
		nullTime(user.Birthday),
	)
	if err != nil {
		return "", translateWriteError(err, "insert user")
	}

	user.ID = id
	user.FavoriteMovies = []string{}
	return id, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	rows.Close()

	for i := range users {
		favorites, err := loadFavorites(ctx, r.db, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].FavoriteMovies = favorites
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	return getUser(ctx, r.db, `id = ?`, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return getUser(ctx, r.db, `username_key = ?`, foldKey(username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return getUser(ctx, r.db, `email_key = ?`, foldKey(email))
}

func (r *UserRepository) Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Empty() {
		return r.GetByUsername(ctx, username)
	}

	var (
		sets []string
		args []any
	)
	if patch.Email != nil {
		sets = append(sets, "email = ?", "email_key = ?")
		args = append(args, *patch.Email, foldKey(*patch.Email))
	}
	if patch.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *patch.PasswordHash)
	}
	if patch.Birthday != nil {
		sets = append(sets, "birthday = ?")
		args = append(args, nullTime(patch.Birthday))
	}

	return r.mutate(ctx, username, func(tx *sql.Tx, userID string) error {
		_, err := tx.ExecContext(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, append(args, userID)...)
		if err != nil {
			return translateWriteError(err, "update user")
		}
		return nil
	})
}

// AddFavorite appends movieID even when it is already present.
func (r *UserRepository) AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	if err := validID(movieID); err != nil {
		return nil, err
	}
	return r.mutate(ctx, username, func(tx *sql.Tx, userID string) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO user_favorites (user_id, movie_id) VALUES (?, ?)`, userID, movieID); err != nil {
			return fmt.Errorf("insert favorite: %w", err)
		}
		return nil
	})
}

// RemoveFavorite drops every occurrence of movieID.
func (r *UserRepository) RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	if err := validID(movieID); err != nil {
		return nil, err
	}
	return r.mutate(ctx, username, func(tx *sql.Tx, userID string) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_favorites WHERE user_id = ? AND movie_id = ?`, userID, movieID); err != nil {
			return fmt.Errorf("delete favorite: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username_key = ?`, foldKey(username))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// mutate runs fn inside a transaction for the user matching username and returns the
// user as it reads after the change.
func (r *UserRepository) mutate(ctx context.Context, username string, fn func(tx *sql.Tx, userID string) error) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var userID string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE username_key = ?`, foldKey(username)).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := fn(tx, userID); err != nil {
		return nil, err
	}

	user, err := getUser(ctx, tx, `id = ?`, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return user, nil
}

func getUser(ctx context.Context, q querier, where string, arg any) (*domain.User, error) {
	user, err := scanUser(q.QueryRowContext(ctx, selectUser+` WHERE `+where, arg))
	if err != nil {
		return nil, err
	}
	favorites, err := loadFavorites(ctx, q, user.ID)
	if err != nil {
		return nil, err
	}
	user.FavoriteMovies = favorites
	return user, nil
}

func loadFavorites(ctx context.Context, q querier, userID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT movie_id FROM user_favorites WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	favorites := []string{}
	for rows.Next() {
		var movieID string
		if err := rows.Scan(&movieID); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, movieID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return favorites, nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user     domain.User
		birthday sql.NullTime
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&birthday,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Birthday = timePtr(birthday)
	return &user, nil
}

func translateWriteError(err error, op string) error {
	switch {
	case isUniqueViolation(err, "users.username_key"):
		return repository.ErrDuplicateUsername
	case isUniqueViolation(err, "users.email_key"):
		return repository.ErrDuplicateEmail
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
