package auth

import (
	"fmt"

	"advising/internal/model"
)

// Identity is the canonical user record carried inside a session token.
// It never holds credentials.
type Identity struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	Role                model.Role `json:"role"`
	MatriculationNumber string     `json:"matric_number,omitempty"`
}

// Validate checks the role and that a matriculation number is present if and
// only if the role is student.
func (i Identity) Validate() error {
	if i.ID == "" || i.Email == "" {
		return fmt.Errorf("identity requires id and email")
	}
	if !i.Role.Valid() {
		return fmt.Errorf("unknown role %q", i.Role)
	}
	hasMatric := i.MatriculationNumber != ""
	if i.Role == model.RoleStudent && !hasMatric {
		return fmt.Errorf("student identity requires a matriculation number")
	}
	if i.Role != model.RoleStudent && hasMatric {
		return fmt.Errorf("%s identity must not carry a matriculation number", i.Role)
	}
	return nil
}

// HasRole reports whether the identity holds one of roles.
func (i Identity) HasRole(roles ...model.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// IdentityFromUser projects a stored user onto an Identity, dropping the password hash.
func IdentityFromUser(u *model.User) Identity {
	identity := Identity{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
	if u.Role == model.RoleStudent && u.MatricNumber != nil {
		identity.MatriculationNumber = *u.MatricNumber
	}
	return identity
}
