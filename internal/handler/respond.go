package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"advising/internal/auth"
	apperrors "advising/internal/errors"
	"advising/internal/logger"
)

// fail converts err into an echo HTTP error. Upstream causes are logged here
// and never reach the client.
func fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= 500 {
		logger.Error().
			Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("path", c.Request().URL.Path).
			Msg("request failed")
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bind decodes and validates the request body into dst.
func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return fail(c, apperrors.Validation("invalid request body"))
	}
	if err := c.Validate(dst); err != nil {
		return fail(c, apperrors.Validation("%s", err.Error()))
	}
	return nil
}

// identity returns the session identity. Routes behind the Gate always have
// one; the check covers handlers mounted outside a protected area.
func identity(c echo.Context) (*auth.Identity, error) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		return nil, fail(c, apperrors.ErrUnauthorized)
	}
	return id, nil
}

// identityWithID is identity plus the parsed account id.
func identityWithID(c echo.Context) (*auth.Identity, uuid.UUID, error) {
	id, err := identity(c)
	if err != nil {
		return nil, uuid.Nil, err
	}
	userID, err := uuid.Parse(id.ID)
	if err != nil {
		return nil, uuid.Nil, fail(c, apperrors.ErrUnauthorized)
	}
	return id, userID, nil
}
