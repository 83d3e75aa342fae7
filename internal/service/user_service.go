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

type UserService struct {
	users  UserStore
	layers AccessLayerStore
}

func NewUserService(users UserStore, layers AccessLayerStore) *UserService {
	return &UserService{users: users, layers: layers}
}

func (s *UserService) List(ctx context.Context, page int, pageSize int) ([]model.User, int, error) {
	offset, limit := pageOffset(page, pageSize)

	users, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (s *UserService) Add(ctx context.Context, login string, password string, accessLayerID int) (model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return model.User{}, apierror.New("BAD_REQUEST", "login and password are required", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	if _, err := s.layers.FindByID(ctx, accessLayerID); err != nil {
		if errors.Is(err, model.ErrAccessLayerNotFound) {
			return model.User{}, apierror.New("BAD_REQUEST", "unknown access layer", apierror.CodeInvalidRequest, http.StatusBadRequest)
		}
		return model.User{}, err
	}

	exists, err := s.users.ExistsByLogin(ctx, login)
	if err != nil {
		return model.User{}, err
	}
	if exists {
		return model.User{}, apierror.New("ALREADY_EXISTS", "login already exists", apierror.CodeInvalidRequest, http.StatusConflict)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, err
	}

	return s.users.Create(ctx, login, hash, accessLayerID)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, model.ErrUserNotFound) {
		return apierror.New("NOT_FOUND", "user not found", apierror.CodeNotFound, http.StatusNotFound)
	}
	return err
}

func (s *UserService) SetPassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return apierror.New("BAD_REQUEST", "password is required", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	err = s.users.UpdatePassword(ctx, id, hash)
	if errors.Is(err, model.ErrUserNotFound) {
		return apierror.New("NOT_FOUND", "user not found", apierror.CodeNotFound, http.StatusNotFound)
	}
	return err
}

func (s *UserService) SetAccessLayer(ctx context.Context, id int64, accessLayerID int) error {
	if _, err := s.layers.FindByID(ctx, accessLayerID); err != nil {
		if errors.Is(err, model.ErrAccessLayerNotFound) {
			return apierror.New("BAD_REQUEST", "unknown access layer", apierror.CodeInvalidRequest, http.StatusBadRequest)
		}
		return err
	}

	err := s.users.UpdateAccessLayer(ctx, id, accessLayerID)
	if errors.Is(err, model.ErrUserNotFound) {
		return apierror.New("NOT_FOUND", "user not found", apierror.CodeNotFound, http.StatusNotFound)
	}
	return err
}
