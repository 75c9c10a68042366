package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "advising/internal/errors"
)

const identityContextKey = "identity"

var errSessionAbsent = errors.New("session absent")

// SessionMiddleware resolves the session cookie into an Identity stored on the
// context. Missing, malformed, forged or expired tokens leave the request
// anonymous; they never fail it. A cookie holding an unusable token is cleared.
func SessionMiddleware(codec *Codec, cookies *SessionCookie) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityContextKey,
		TokenLookup: "cookie:" + SessionCookieName,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			identity, ok := codec.Verify(raw)
			if !ok {
				return nil, errSessionAbsent
			}
			return &identity, nil
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			if _, present := cookies.Retrieve(c); present {
				cookies.Clear(c)
			}
			return nil
		},
	})
}

// IdentityFrom returns the identity resolved by SessionMiddleware.
func IdentityFrom(c echo.Context) (*Identity, bool) {
	identity, ok := c.Get(identityContextKey).(*Identity)
	return identity, ok && identity != nil
}

// Gate runs the Authorizer once per request, before any handler. Page areas
// redirect to their login page; API areas answer 401.
func Gate(authz *Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := IdentityFrom(c)
			decision := authz.Authorize(identity, c.Request().URL.Path)
			if decision.Allowed {
				return next(c)
			}
			if decision.RedirectTo != "" {
				return c.Redirect(http.StatusSeeOther, decision.RedirectTo)
			}
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}
}
