package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go-access-admin/internal/model"
	"go-access-admin/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := model.ErrorResponse{ResultCode: 0, Message: "unexpected server error"}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.ResultCode = apiErr.ResultCode
		body.Message = apiErr.Message
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrEmployeeNotFound),
		errors.Is(err, model.ErrAccessLayerNotFound):
		status = http.StatusNotFound
		body.ResultCode = apierror.CodeNotFound
		body.Message = "not found"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.ResultCode = apierror.CodeInvalidPassword
		body.Message = "invalid credentials"
	case errors.Is(err, model.ErrUnauthorized), errors.Is(err, model.ErrTokenInvalid):
		status = http.StatusUnauthorized
		body.ResultCode = apierror.CodeUnauthenticated
		body.Message = "authentication required"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		body.ResultCode = apierror.CodeAccessDenied
		body.Message = "access denied"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.ResultCode = apierror.CodeInvalidRequest
		body.Message = "invalid request"
	default:
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, body)
}

// pageParams reads ?page= and ?page_size= with the dashboard's defaults.
func pageParams(r *http.Request) (page int, pageSize int) {
	page = queryInt(r, "page", 1)
	pageSize = queryInt(r, "page_size", 10)
	return page, pageSize
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}
