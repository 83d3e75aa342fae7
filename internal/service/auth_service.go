package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-access-admin/internal/auth"
	"go-access-admin/internal/model"
	"go-access-admin/pkg/apierror"
)

// AuthService implements the login protocol: find the account, verify the
// secret, mint the access/refresh pair. Token verification failures never
// surface here; that is the session guard's domain.
type AuthService struct {
	users  UserStore
	tokens *auth.TokenService
}

func NewAuthService(users UserStore, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login distinguishes an unknown login (result code 1) from a known login
// with a wrong password (result code 2), as the dashboard renders the two
// differently.
func (s *AuthService) Login(ctx context.Context, login string, password string) (model.User, string, string, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return model.User{}, "", "", apierror.New("BAD_REQUEST", "login is required", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.User{}, "", "", apierror.New("NOT_FOUND", "user not found", apierror.CodeNotFound, http.StatusNotFound)
		}
		return model.User{}, "", "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return model.User{}, "", "", apierror.New("INVALID_PASSWORD", "invalid password", apierror.CodeInvalidPassword, http.StatusUnauthorized)
	}

	accessToken, refreshToken, err := s.tokens.IssuePair(user.ID, user.Login, user.AccessLayerID)
	if err != nil {
		return model.User{}, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

// RotatePair mints a fresh access/refresh pair for an account resolved from
// a refresh token. The caller re-reads the account first, so the new tokens
// carry the current access layer.
func (s *AuthService) RotatePair(user model.User) (string, string, error) {
	return s.tokens.IssuePair(user.ID, user.Login, user.AccessLayerID)
}
