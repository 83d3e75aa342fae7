package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-access-admin/internal/model"
	"go-access-admin/internal/service"
	"go-access-admin/pkg/apierror"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	users, count, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, model.UserResponse{ID: u.ID, Login: u.Login, AccessLayerID: u.AccessLayerID})
	}

	writeJSON(w, http.StatusOK, model.UsersResponse{Users: out, Count: count, ResultCode: 0})
}

func (h *UserHandler) Add(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.AddUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", apierror.CodeInvalidRequest, http.StatusBadRequest))
		return
	}

	if _, err := h.service.Add(r.Context(), payload.Login, payload.Password, payload.AccessLayerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.ResultResponse{ResultCode: apierror.CodeObjectAdded})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ResultResponse{ResultCode: apierror.CodeObjectDeleted})
}

func (h *UserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.SetUserPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", apierror.CodeInvalidRequest, http.StatusBadRequest))
		return
	}

	if err := h.service.SetPassword(r.Context(), id, payload.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ResultResponse{ResultCode: apierror.CodeObjectChanged})
}

func (h *UserHandler) SetAccessLayer(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.SetUserAccessLayerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", apierror.CodeInvalidRequest, http.StatusBadRequest))
		return
	}

	if err := h.service.SetAccessLayer(r.Context(), id, payload.AccessLayerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ResultResponse{ResultCode: apierror.CodeObjectChanged})
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, apierror.New("BAD_REQUEST", "invalid id", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	return id, nil
}
