package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"advising/internal/auth"
	apperrors "advising/internal/errors"
	"advising/internal/model"
	"advising/internal/service"
)

func sessionCookie(rec interface{ Result() *http.Response }) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	e := newTestEcho()
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, auth.NewSessionCookie(false))

	identity := *studentSession()
	expires := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	svc.On("Login", mock.Anything, "ada@uni.example", "pw", model.RoleStudent).
		Return(identity, auth.Token{Value: "signed", ExpiresAt: expires}, nil)

	rec := call(e, h.Login, http.MethodPost, "/api/auth/login",
		`{"email":"ada@uni.example","password":"pw","userType":"student"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, identity, resp.User)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.NotContains(t, rec.Body.String(), "signed")
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
		wantErr  string
	}{
		{
			name:     "invalid credentials",
			body:     `{"email":"ada@uni.example","password":"bad"}`,
			svcErr:   apperrors.ErrInvalidCredentials,
			wantCode: http.StatusUnauthorized,
			wantErr:  "INVALID_CREDENTIALS",
		},
		{
			name:     "store down",
			body:     `{"email":"ada@uni.example","password":"bad"}`,
			svcErr:   apperrors.Upstream("find account", assert.AnError),
			wantCode: http.StatusServiceUnavailable,
			wantErr:  "UPSTREAM_FAILURE",
		},
		{
			name:     "missing password",
			body:     `{"email":"ada@uni.example"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "unknown user type",
			body:     `{"email":"ada@uni.example","password":"pw","userType":"dean"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			svc := new(MockAuthService)
			h := NewAuthHandler(svc, auth.NewSessionCookie(false))
			if tt.svcErr != nil {
				svc.On("Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(auth.Identity{}, auth.Token{}, tt.svcErr)
			}

			rec := call(e, h.Login, http.MethodPost, "/api/auth/login", tt.body, nil)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decodeError(t, rec).Code)
			assert.Nil(t, sessionCookie(rec))
			assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
		})
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	e := newTestEcho()
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, auth.NewSessionCookie(false))

	matric := "MAT/2024/001"
	user := &model.User{ID: uuid.New(), Name: "Ada", Email: "ada@uni.example", Role: model.RoleStudent, MatricNumber: &matric, PasswordHash: "$2a$10$hash"}
	svc.On("SignupStudent", mock.Anything, service.StudentSignup{
		Name: "Ada", Email: "ada@uni.example", Password: "secret1", MatricNumber: matric,
	}).Return(user, nil)

	rec := call(e, h.Signup, http.MethodPost, "/api/auth/signup",
		`{"name":"Ada","email":"ada@uni.example","password":"secret1","matricNumber":"MAT/2024/001"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matric_number":"MAT/2024/001"`)
	assert.NotContains(t, rec.Body.String(), "$2a$10$hash")
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	e := newTestEcho()
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, auth.NewSessionCookie(false))
	svc.On("SignupStudent", mock.Anything, mock.Anything).
		Return(nil, apperrors.Duplicate("an account with this email already exists"))

	rec := call(e, h.Signup, http.MethodPost, "/api/auth/signup",
		`{"name":"Ada","email":"ada@uni.example","password":"secret1","matricNumber":"M1"}`, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "DUPLICATE_RESOURCE", resp.Code)
	assert.Contains(t, resp.Error, "already exists")
}

func TestAuthHandler_StaffSignupUsesRouteRole(t *testing.T) {
	e := newTestEcho()
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, auth.NewSessionCookie(false))

	svc.On("SignupStaff", mock.Anything, mock.MatchedBy(func(req service.StaffSignup) bool {
		return req.Role == model.RoleAdvisor && req.RegistrationCode == "code"
	})).Return(&model.User{ID: uuid.New(), Email: "g@uni.example", Role: model.RoleAdvisor}, nil)

	rec := call(e, h.AdvisorSignup, http.MethodPost, "/api/auth/advisor/signup",
		`{"name":"Grace","email":"g@uni.example","password":"secret1","adminCode":"code","role":"admin"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestAuthHandler_LogoutIsIdempotent(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(new(MockAuthService), auth.NewSessionCookie(false))

	for _, identity := range []*auth.Identity{studentSession(), nil} {
		rec := call(e, h.Logout, http.MethodPost, "/api/auth/logout", "", identity)

		assert.Equal(t, http.StatusOK, rec.Code)
		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(new(MockAuthService), auth.NewSessionCookie(false))

	rec := call(e, h.Session, http.MethodGet, "/api/auth/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	identity := studentSession()
	rec = call(e, h.Session, http.MethodGet, "/api/auth/session", "", identity)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, *identity, resp.User)
}
