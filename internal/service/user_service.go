package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"myflix-api/internal/domain"
	"myflix-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when the username is taken, ignoring case.
	ErrUserAlreadyExists = errors.New("username already exists")
	// ErrEmailAlreadyExists is returned when the email is taken, ignoring case.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrUserNotFound indicates that no user has the requested username or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrPermissionDenied is returned when a user acts on another user's account.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidMovieID is returned for movie ids that are not well-formed.
	ErrInvalidMovieID = errors.New("invalid movie id")
	// ErrUnknownMovie is returned when a favorite references a movie that does not exist.
	ErrUnknownMovie = errors.New("movie does not exist")
	// ErrPasswordTooLong is returned for passwords longer than bcrypt accepts (72 bytes).
	ErrPasswordTooLong = errors.New("password is longer than 72 bytes")
)

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Birthday *time.Time
}

// UpdateInput is a partial profile update. Nil fields are left unchanged.
type UpdateInput struct {
	Email    *string
	Password *string
	Birthday *time.Time
}

// UserService describes user lifecycle operations. The actor argument is the username of
// the authenticated caller; mutations are allowed on the actor's own account only.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, actor, username string, in UpdateInput) (*domain.User, error)
	AddFavorite(ctx context.Context, actor, username, movieID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, actor, username, movieID string) (*domain.User, error)
	Delete(ctx context.Context, actor, username string) error
}

type userService struct {
	users      repository.UserRepository
	movies     repository.MovieRepository
	bcryptCost int
}

func NewUserService(users repository.UserRepository, movies repository.MovieRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		users:      users,
		movies:     movies,
		bcryptCost: bcryptCost,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Birthday:     in.Birthday,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, translateUserError(err)
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrUserNotFound
		}
		return nil, translateUserError(err)
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, translateUserError(err)
	}
	return sanitizeUser(user), nil
}

func (s *userService) Update(ctx context.Context, actor, username string, in UpdateInput) (*domain.User, error) {
	if err := Authorize(actor, username); err != nil {
		return nil, err
	}

	var patch domain.UserPatch
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		patch.Email = &email
	}
	if in.Password != nil {
		hash, err := s.hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}
	patch.Birthday = in.Birthday

	user, err := s.users.Update(ctx, strings.TrimSpace(username), patch)
	if err != nil {
		return nil, translateUserError(err)
	}
	return sanitizeUser(user), nil
}

func (s *userService) AddFavorite(ctx context.Context, actor, username, movieID string) (*domain.User, error) {
	if err := Authorize(actor, username); err != nil {
		return nil, err
	}

	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidID):
			return nil, ErrInvalidMovieID
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUnknownMovie
		default:
			return nil, err
		}
	}

	user, err := s.users.AddFavorite(ctx, strings.TrimSpace(username), movieID)
	if err != nil {
		return nil, translateUserError(err)
	}
	return sanitizeUser(user), nil
}

func (s *userService) RemoveFavorite(ctx context.Context, actor, username, movieID string) (*domain.User, error) {
	if err := Authorize(actor, username); err != nil {
		return nil, err
	}

	user, err := s.users.RemoveFavorite(ctx, strings.TrimSpace(username), movieID)
	if err != nil {
		return nil, translateUserError(err)
	}
	return sanitizeUser(user), nil
}

func (s *userService) Delete(ctx context.Context, actor, username string) error {
	if err := Authorize(actor, username); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, strings.TrimSpace(username)); err != nil {
		return translateUserError(err)
	}
	return nil
}

func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Authorize allows an account to be changed by its owner only. Usernames compare
// without regard to case, the same way the store matches them.
func Authorize(actor, username string) error {
	if actor == "" || !strings.EqualFold(strings.TrimSpace(actor), strings.TrimSpace(username)) {
		return ErrPermissionDenied
	}
	return nil
}

func translateUserError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrUserAlreadyExists
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailAlreadyExists
	case errors.Is(err, repository.ErrInvalidID):
		return ErrInvalidMovieID
	default:
		return err
	}
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	favorites := user.FavoriteMovies
	if favorites == nil {
		favorites = []string{}
	}
	return &domain.User{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Birthday:       user.Birthday,
		FavoriteMovies: favorites,
	}
}
