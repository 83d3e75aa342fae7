package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-access-admin/internal/auth"
	"go-access-admin/internal/model"
	"go-access-admin/pkg/apierror"
)

func requireResultCode(t *testing.T, err error, want int) {
	t.Helper()

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, want, apiErr.ResultCode)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	newFixture := func(t *testing.T) *AuthService {
		users := newFakeUserStore(model.User{
			ID:            1,
			Login:         "admin",
			PasswordHash:  hash,
			AccessLayerID: model.AccessLayerAdmin,
		})
		return NewAuthService(users, newTestTokenService(t))
	}

	t.Run("valid credentials mint a verifiable token pair", func(t *testing.T) {
		t.Parallel()

		tokens := newTestTokenService(t)
		users := newFakeUserStore(model.User{ID: 1, Login: "admin", PasswordHash: hash, AccessLayerID: 0})
		svc := NewAuthService(users, tokens)

		user, accessToken, refreshToken, err := svc.Login(context.Background(), "admin", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Login)
		require.NotEmpty(t, accessToken)
		require.NotEmpty(t, refreshToken)

		claims, err := tokens.Verify(accessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(1), claims.UserID)
		assert.Equal(t, "admin", claims.Login)
		assert.Equal(t, model.AccessLayerAdmin, claims.AccessLayerID)
	})

	t.Run("unknown login", func(t *testing.T) {
		t.Parallel()

		svc := newFixture(t)
		_, _, _, err := svc.Login(context.Background(), "nobody", "s3cret")
		requireResultCode(t, err, apierror.CodeNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		svc := newFixture(t)
		_, _, _, err := svc.Login(context.Background(), "admin", "wrong")
		requireResultCode(t, err, apierror.CodeInvalidPassword)
	})

	t.Run("empty login", func(t *testing.T) {
		t.Parallel()

		svc := newFixture(t)
		_, _, _, err := svc.Login(context.Background(), "   ", "s3cret")
		requireResultCode(t, err, apierror.CodeInvalidRequest)
	})

	t.Run("login is trimmed before lookup", func(t *testing.T) {
		t.Parallel()

		svc := newFixture(t)
		user, _, _, err := svc.Login(context.Background(), "  admin  ", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Login)
	})

	t.Run("wrong password error is not a user-not-found error", func(t *testing.T) {
		t.Parallel()

		svc := newFixture(t)
		_, _, _, unknownErr := svc.Login(context.Background(), "nobody", "s3cret")
		_, _, _, wrongErr := svc.Login(context.Background(), "admin", "wrong")

		var a, b *apierror.APIError
		require.ErrorAs(t, unknownErr, &a)
		require.ErrorAs(t, wrongErr, &b)
		assert.NotEqual(t, a.ResultCode, b.ResultCode)
		assert.False(t, errors.Is(wrongErr, unknownErr))
	})
}

func TestAuthService_RotatePair(t *testing.T) {
	t.Parallel()

	tokens := newTestTokenService(t)
	svc := NewAuthService(newFakeUserStore(), tokens)

	user := model.User{ID: 5, Login: "operator", AccessLayerID: model.AccessLayerUser}
	accessToken, refreshToken, err := svc.RotatePair(user)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	claims, err := tokens.Verify(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, model.AccessLayerUser, claims.AccessLayerID)
}
