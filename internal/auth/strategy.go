package auth

import (
	"context"
	"errors"
	"strings"

	"myflix-api/internal/domain"
	"myflix-api/internal/service"
)

// Strategy resolves a bearer token to the user it identifies.
type Strategy interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// UserLookup loads users by id.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// JWTStrategy verifies the token and then loads its user, so tokens of deleted
// accounts stop working.
type JWTStrategy struct {
	tokens *TokenManager
	users  UserLookup
}

func NewJWTStrategy(tokens *TokenManager, users UserLookup) *JWTStrategy {
	return &JWTStrategy{tokens: tokens, users: users}
}

func (s *JWTStrategy) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if !strings.EqualFold(user.Username, claims.Subject) {
		return nil, ErrTokenInvalid
	}
	return user, nil
}

var _ Strategy = (*JWTStrategy)(nil)
