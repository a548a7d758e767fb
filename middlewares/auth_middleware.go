package middlewares

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/gediyoneyasu/WCU-CS-management/models"
)

const (
	SessionCookie = "wcu_session"
	// idle window; slides forward while the session is in use
	SessionTTL = 24 * time.Hour
)

// SessionStore is the server-side session lookup. The gorm-backed
// implementation lives in store.go; tests supply a fake.
type SessionStore interface {
	Get(id string) (*models.Session, error)
	Touch(id string, expiresAt time.Time) error
}

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// SignSessionToken wraps a session ID in an HS256 token for the cookie.
// The signature keeps session IDs unguessable; expiry and revocation
// stay server-side in the sessions table.
func SignSessionToken(secret, sessionID string) (string, error) {
	claims := sessionClaims{
		SID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(secret))
}

func parseSessionToken(secret, token string) (string, error) {
	tk, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN_METHOD"})
		}
		return []byte(secret), nil
	})
	if err != nil || !tk.Valid {
		return "", echo.ErrUnauthorized
	}
	claims, ok := tk.Claims.(*sessionClaims)
	if !ok || claims.SID == "" {
		return "", echo.ErrUnauthorized
	}
	return claims.SID, nil
}

// LoadSession resolves the session cookie into an Identity. It never
// rejects the request itself; RequireRole does the gating. A valid hit
// slides the session's expiry forward.
func LoadSession(secret string, store SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			sid, err := parseSessionToken(secret, cookie.Value)
			if err != nil {
				return next(c)
			}
			sess, err := store.Get(sid)
			if err != nil || sess == nil || sess.Expired(time.Now()) {
				return next(c)
			}

			// sliding renewal; skip the write while the window is fresh
			exp := time.Now().Add(SessionTTL)
			if exp.Sub(sess.ExpiresAt) > time.Hour {
				_ = store.Touch(sess.ID, exp)
			}

			setIdentity(c, Identity{
				Role:      sess.Role,
				SubjectID: sess.SubjectID,
				Name:      sess.Name,
				SessionID: sess.ID,
			})
			return next(c)
		}
	}
}

// SetSessionCookie writes the HTTP-only login cookie. Secure is only
// set under the production flag so local HTTP logins keep working.
func SetSessionCookie(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(SessionTTL),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HttpOnly: true,
	})
}
