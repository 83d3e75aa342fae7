package middleware

import (
	"context"
	"net/http"

	"go-access-admin/internal/model"
	"go-access-admin/pkg/apierror"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

type tokenService interface {
	Verify(tokenString string) (*model.AuthClaims, error)
	IssuePair(userID int64, login string, accessLayerID int) (string, string, error)
}

type userGetter interface {
	FindByLogin(ctx context.Context, login string) (model.User, error)
}

type contextKey string

const sessionContextKey contextKey = "session"

// Session is what the guard attaches to the request context. AccessLayerID
// is re-read from storage on every request rather than taken from the token,
// so tier revocation applies before the token expires.
type Session struct {
	UserID        int64
	Login         string
	AccessLayerID int
}

type AuthMiddleware struct {
	tokens        tokenService
	users         userGetter
	secureCookies bool
}

func NewAuthMiddleware(tokens tokenService, users userGetter, secureCookies bool) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, secureCookies: secureCookies}
}

// RequireAuth resolves the session from the token cookies: the access token
// first, then the refresh token. A successful refresh fallback rotates BOTH
// cookies on the response before the handler runs. Token failures never
// propagate as errors; they collapse into the fallback chain and finally
// into a 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session, ok := m.resolveFromCookie(r, AccessTokenCookie); ok {
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
			return
		}

		if session, ok := m.resolveFromCookie(r, RefreshTokenCookie); ok {
			accessToken, refreshToken, err := m.tokens.IssuePair(session.UserID, session.Login, session.AccessLayerID)
			if err != nil {
				writeErrorBody(w, http.StatusInternalServerError, apierror.CodeUnauthenticated, "session refresh failed")
				return
			}

			SetSessionCookies(w, accessToken, refreshToken, m.secureCookies)
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
			return
		}

		writeErrorBody(w, http.StatusUnauthorized, apierror.CodeUnauthenticated, "authentication required")
	})
}

// RequireAdmin gates privileged operations on tier 0. Runs after
// RequireAuth; a valid session with any other tier yields 403, distinct from
// the 401 for no session.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			writeErrorBody(w, http.StatusUnauthorized, apierror.CodeUnauthenticated, "authentication required")
			return
		}

		if session.AccessLayerID != model.AccessLayerAdmin {
			writeErrorBody(w, http.StatusForbidden, apierror.CodeAccessDenied, "access denied")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// resolveFromCookie verifies the named token cookie and re-reads the account
// it references. A token for a deleted account resolves to no session.
func (m *AuthMiddleware) resolveFromCookie(r *http.Request, cookieName string) (Session, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}

	claims, err := m.tokens.Verify(cookie.Value)
	if err != nil {
		return Session{}, false
	}

	// A deleted account and a storage failure both resolve to no session;
	// the guard never leaks internals through the auth path.
	user, err := m.users.FindByLogin(r.Context(), claims.Login)
	if err != nil {
		return Session{}, false
	}

	return Session{UserID: user.ID, Login: user.Login, AccessLayerID: user.AccessLayerID}, true
}

func withSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// SetSessionCookies attaches both token cookies to the response. Used on
// login and on refresh rotation.
func SetSessionCookies(w http.ResponseWriter, accessToken string, refreshToken string, secure bool) {
	http.SetCookie(w, sessionCookie(AccessTokenCookie, accessToken, secure))
	http.SetCookie(w, sessionCookie(RefreshTokenCookie, refreshToken, secure))
}

// ClearSessionCookies overwrites both cookies with empty expired values.
// Logout is client-side only: previously issued tokens stay valid until
// their natural expiry.
func ClearSessionCookies(w http.ResponseWriter, secure bool) {
	access := sessionCookie(AccessTokenCookie, "", secure)
	access.MaxAge = -1
	refresh := sessionCookie(RefreshTokenCookie, "", secure)
	refresh.MaxAge = -1
	http.SetCookie(w, access)
	http.SetCookie(w, refresh)
}

func sessionCookie(name string, value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
