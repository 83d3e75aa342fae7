package handler

import (
	"encoding/json"
	"net/http"

	"go-access-admin/internal/middleware"
	"go-access-admin/internal/model"
	"go-access-admin/internal/service"
	"go-access-admin/pkg/apierror"
)

type AuthHandler struct {
	service       *service.AuthService
	secureCookies bool
}

func NewAuthHandler(service *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{service: service, secureCookies: secureCookies}
}

// Login verifies credentials and, on success, sets both session cookies and
// answers with result code 1000. Unknown logins and wrong passwords map to
// codes 1 and 2 via the service.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", apierror.CodeInvalidRequest, http.StatusBadRequest))
		return
	}

	user, accessToken, refreshToken, err := h.service.Login(r.Context(), payload.Login, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.SetSessionCookies(w, accessToken, refreshToken, h.secureCookies)
	writeJSON(w, http.StatusOK, model.UserLoginResponse{
		Login:         user.Login,
		AccessLayerID: user.AccessLayerID,
		ResultCode:    apierror.CodeAuthSuccess,
	})
}

// Session is the probe the dashboard calls on load. The session guard has
// already resolved (and, if needed, refreshed) the session by the time this
// runs.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, model.UserLoginResponse{
		Login:         session.Login,
		AccessLayerID: session.AccessLayerID,
		ResultCode:    apierror.CodeAuthSuccess,
	})
}

// Logout clears both cookies. Client-side only: tokens already issued stay
// valid until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookies(w, h.secureCookies)
	writeJSON(w, http.StatusOK, model.ResultResponse{ResultCode: 0})
}
