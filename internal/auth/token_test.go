package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myflix-api/internal/domain"
	"myflix-api/internal/service"
)

const userID = "64b7f0c2a1b2c3d4e5f60718"

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(&domain.User{ID: userID, Username: "jdoe42"})
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "jdoe42", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	_, err = NewTokenManager("other-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.Issue(&domain.User{Username: "no-id"})
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue(&domain.User{ID: userID, Username: "jdoe42"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "jdoe42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

type lookupFunc func(ctx context.Context, id string) (*domain.User, error)

func (f lookupFunc) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return f(ctx, id)
}

func TestJWTStrategyResolve(t *testing.T) {
	ctx := context.Background()
	m := NewTokenManager("secret", time.Hour)
	token, err := m.Issue(&domain.User{ID: userID, Username: "jdoe42"})
	require.NoError(t, err)

	t.Run("known user", func(t *testing.T) {
		strategy := NewJWTStrategy(m, lookupFunc(func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Username: "JDoe42"}, nil
		}))
		user, err := strategy.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("deleted user", func(t *testing.T) {
		strategy := NewJWTStrategy(m, lookupFunc(func(context.Context, string) (*domain.User, error) {
			return nil, service.ErrUserNotFound
		}))
		_, err := strategy.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("subject mismatch", func(t *testing.T) {
		strategy := NewJWTStrategy(m, lookupFunc(func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Username: "someone-else"}, nil
		}))
		_, err := strategy.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("timeout")
		strategy := NewJWTStrategy(m, lookupFunc(func(context.Context, string) (*domain.User, error) {
			return nil, boom
		}))
		_, err := strategy.Resolve(ctx, token)
		assert.ErrorIs(t, err, boom)
	})
}
