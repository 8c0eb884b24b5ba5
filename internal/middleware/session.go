package middleware

import (
	"context"
	"net/http"

	"github.com/portfolio-dev/portfolio-server/internal/auth"
	"github.com/portfolio-dev/portfolio-server/internal/config"
	apperrors "github.com/portfolio-dev/portfolio-server/internal/errors"
	"github.com/portfolio-dev/portfolio-server/internal/httputil"
)

const (
	SessionCookie = "admin_token"

	AdminLoginPath     = "/admin/login"
	AdminDashboardPath = "/admin/dashboard"
)

type contextKey string

const ClaimsContextKey contextKey = "adminClaims"

// GetClaims returns the verified session claims stored by RequireSession.
func GetClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// SessionToken reads the session cookie; empty when absent.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the cookie with the attributes it was set with,
// otherwise browsers keep the original.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// SessionMiddleware gates the admin pages and the write API on the session cookie.
type SessionMiddleware struct {
	guard *auth.Guard
}

func NewSessionMiddleware(guard *auth.Guard) *SessionMiddleware {
	return &SessionMiddleware{guard: guard}
}

// EdgeGate guards /admin/*. The login page bounces signed-in visitors to the
// dashboard; every other admin page bounces anonymous visitors to login.
func (m *SessionMiddleware) EdgeGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticated := m.guard.IsAuthenticated(SessionToken(r))

		if r.URL.Path == AdminLoginPath {
			if authenticated {
				http.Redirect(w, r, AdminDashboardPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if !authenticated {
			http.Redirect(w, r, AdminLoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSession rejects API calls without a valid session with a 401 JSON body.
func (m *SessionMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.guard.Verify(SessionToken(r))
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); !ok || appErr.Code == apperrors.ErrCodeConfiguration {
				httputil.WriteError(w, apperrors.Unauthorized("Authentication required"))
				return
			}
			httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
