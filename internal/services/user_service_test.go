package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaukau001/url-shortener-api/internal/apperrors"
	"github.com/kaukau001/url-shortener-api/internal/auth"
)

func newTestUserService(t *testing.T, repo *fakeUserRepo) *UserService {
	t.Helper()
	tokens, err := auth.NewTokenIssuer("test-secret", 24*time.Hour)
	require.NoError(t, err)
	return NewUserService(repo, tokens, zerolog.Nop())
}

func TestUserService_Register(t *testing.T) {
	t.Run("returns the public view without the hash", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(t, repo)

		user, err := svc.Register(context.Background(), "a@example.com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "a@example.com", user.Email)

		stored, err := repo.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "secret1", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
	})

	t.Run("second registration with the same email conflicts", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(t, repo)

		_, err := svc.Register(context.Background(), "a@example.com", "secret1")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "a@example.com", "other22")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("lookup failure is masked as unavailable", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.findErr = apperrors.Timeout("find user")
		svc := newTestUserService(t, repo)

		_, err := svc.Register(context.Background(), "a@example.com", "secret1")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
	})
}

func TestUserService_Login(t *testing.T) {
	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(t, repo)

		registered, err := svc.Register(context.Background(), "a@example.com", "secret1")
		require.NoError(t, err)

		result, err := svc.Login(context.Background(), "a@example.com", "secret1")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, registered.ID, result.User.ID)

		tokens, err := auth.NewTokenIssuer("test-secret", 24*time.Hour)
		require.NoError(t, err)
		claims, err := tokens.Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.Subject)
		assert.Equal(t, "a@example.com", claims.Email)
	})

	t.Run("wrong password yields no token and no error", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(t, repo)

		_, err := svc.Register(context.Background(), "a@example.com", "secret1")
		require.NoError(t, err)

		result, err := svc.Login(context.Background(), "a@example.com", "wrong99")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("unknown email yields no token and no error", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(t, repo)

		result, err := svc.Login(context.Background(), "nobody@example.com", "secret1")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("email matching is case-sensitive and exact", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestUserService(t, repo)

		_, err := svc.Register(context.Background(), "a@example.com", "secret1")
		require.NoError(t, err)

		result, err := svc.Login(context.Background(), "A@example.com", "secret1")
		require.NoError(t, err)
		assert.Nil(t, result)
	})
}
