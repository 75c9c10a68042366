package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"advising/internal/auth"
	apperrors "advising/internal/errors"
	"advising/internal/model"
	"advising/internal/repository"
)

const bcryptCost = 10

// StudentSignup carries the fields of a student registration.
type StudentSignup struct {
	Name         string
	Email        string
	Password     string
	MatricNumber string
}

// StaffSignup carries the fields of an admin or advisor registration.
type StaffSignup struct {
	Name             string
	Email            string
	Password         string
	Role             model.Role
	RegistrationCode string
}

// AuthService handles authentication operations.
type AuthService interface {
	// VerifyCredentials returns the identity for email/password or ErrInvalidCredentials.
	VerifyCredentials(ctx context.Context, email, password string) (auth.Identity, error)
	// Login verifies credentials and issues a session token. A non-empty
	// userType must match the account role.
	Login(ctx context.Context, email, password string, userType model.Role) (auth.Identity, auth.Token, error)
	SignupStudent(ctx context.Context, req StudentSignup) (*model.User, error)
	SignupStaff(ctx context.Context, req StaffSignup) (*model.User, error)
}

type authService struct {
	users            repository.UserRepository
	codec            *auth.Codec
	registrationCode []byte
	// dummyHash is compared against when no account matches so both failure
	// paths spend the same bcrypt work.
	dummyHash []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, codec *auth.Codec, registrationCode string) (AuthService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("no-such-account"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &authService{
		users:            users,
		codec:            codec,
		registrationCode: []byte(registrationCode),
		dummyHash:        dummy,
	}, nil
}

// normalizeEmail is applied on signup and on login, so lookups stay exact
// against the stored form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// VerifyCredentials looks up the account by email and compares the password hash.
func (s *authService) VerifyCredentials(ctx context.Context, email, password string) (auth.Identity, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !repository.IsNotFound(err) {
			return auth.Identity{}, apperrors.Upstream("find account", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return auth.Identity{}, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return auth.Identity{}, apperrors.ErrInvalidCredentials
	}

	identity := auth.IdentityFromUser(user)
	if err := identity.Validate(); err != nil {
		// A stored account that cannot form a valid identity must not log in.
		return auth.Identity{}, apperrors.ErrInvalidCredentials
	}
	return identity, nil
}

// Login authenticates and returns a signed session token.
func (s *authService) Login(ctx context.Context, email, password string, userType model.Role) (auth.Identity, auth.Token, error) {
	identity, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return auth.Identity{}, auth.Token{}, err
	}
	if userType != "" && userType != identity.Role {
		return auth.Identity{}, auth.Token{}, apperrors.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(identity)
	if err != nil {
		return auth.Identity{}, auth.Token{}, apperrors.Upstream("issue session", err)
	}
	return identity, token, nil
}

// SignupStudent creates a student account.
func (s *authService) SignupStudent(ctx context.Context, req StudentSignup) (*model.User, error) {
	matric := strings.TrimSpace(req.MatricNumber)
	if matric == "" {
		return nil, apperrors.Validation("matriculation number is required")
	}
	return s.createUser(ctx, req.Name, req.Email, req.Password, model.RoleStudent, &matric)
}

// SignupStaff creates an admin or advisor account gated by the shared registration code.
func (s *authService) SignupStaff(ctx context.Context, req StaffSignup) (*model.User, error) {
	if req.Role != model.RoleAdmin && req.Role != model.RoleAdvisor {
		return nil, apperrors.Validation("role must be admin or advisor")
	}
	if len(s.registrationCode) == 0 || subtle.ConstantTimeCompare([]byte(req.RegistrationCode), s.registrationCode) != 1 {
		return nil, apperrors.Validation("invalid registration code")
	}
	return s.createUser(ctx, req.Name, req.Email, req.Password, req.Role, nil)
}

func (s *authService) createUser(ctx context.Context, name, email, password string, role model.Role, matric *string) (*model.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" || password == "" {
		return nil, apperrors.Validation("name, email and password are required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.Duplicate("an account with this email already exists")
	}
	if err != nil && !repository.IsNotFound(err) {
		return nil, apperrors.Upstream("check account existence", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperrors.Validation("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		MatricNumber: matric,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.Duplicate("an account with this email or matriculation number already exists")
		}
		return nil, apperrors.Upstream("create account", err)
	}
	return user, nil
}
