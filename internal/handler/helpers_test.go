package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"advising/internal/auth"
	apperrors "advising/internal/errors"
	"advising/internal/model"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

// call runs h against a JSON request, with identity set as the session when
// non-nil, and returns the recorder after echo's error handler has run.
func call(e *echo.Echo, h echo.HandlerFunc, method, target, body string, identity *auth.Identity) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set("identity", identity)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func studentSession() *auth.Identity {
	return &auth.Identity{
		ID:                  uuid.NewString(),
		Email:               "ada@uni.example",
		Name:                "Ada",
		Role:                model.RoleStudent,
		MatriculationNumber: "MAT/2024/001",
	}
}

func adminSession() *auth.Identity {
	return &auth.Identity{ID: uuid.NewString(), Email: "admin@uni.example", Name: "Admin", Role: model.RoleAdmin}
}
