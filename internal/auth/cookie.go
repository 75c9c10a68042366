package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie holding the session token.
const SessionCookieName = "session"

// SessionCookie persists session tokens in an HTTP-only, SameSite=Lax cookie.
// No server-side session state exists: clearing the cookie is the whole logout,
// and a copied token stays valid until it expires.
type SessionCookie struct {
	alwaysSecure bool
}

// NewSessionCookie builds the adapter. With alwaysSecure (production) every
// cookie is marked Secure; otherwise only cookies served over https are.
func NewSessionCookie(alwaysSecure bool) *SessionCookie {
	return &SessionCookie{alwaysSecure: alwaysSecure}
}

// Persist writes token with an expiry matching its claims.
func (s *SessionCookie) Persist(c echo.Context, token Token) {
	c.SetCookie(s.cookie(c, token.Value, token.ExpiresAt, 0))
}

// Retrieve returns the raw token value, if any.
func (s *SessionCookie) Retrieve(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Clear expires the cookie on the client. Calling it without a session is harmless.
func (s *SessionCookie) Clear(c echo.Context) {
	c.SetCookie(s.cookie(c, "", time.Unix(0, 0), -1))
}

func (s *SessionCookie) cookie(c echo.Context, value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.alwaysSecure || c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	}
}
