package auth

import (
	"path"
	"sort"
	"strings"

	"advising/internal/model"
)

// Area is a protected path prefix. Requests under Prefix need one of Roles.
// Page areas set LoginPath and redirect there; API areas leave it empty.
type Area struct {
	Prefix    string
	Roles     []model.Role
	LoginPath string
}

func (a Area) covers(p string) bool {
	return p == a.Prefix || strings.HasPrefix(p, a.Prefix+"/")
}

// Decision is the outcome of one authorization.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow is the decision for permitted requests.
var Allow = Decision{Allowed: true}

// Authorizer gates request paths by role.
type Authorizer struct {
	areas []Area
}

// NewAuthorizer builds an Authorizer. The most specific prefix wins when
// areas overlap.
func NewAuthorizer(areas ...Area) *Authorizer {
	sorted := make([]Area, len(areas))
	copy(sorted, areas)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &Authorizer{areas: sorted}
}

// DefaultAreas returns the page and API areas of the platform.
// The admin page area admits admins only; advisors reach student data
// through /api/students.
func DefaultAreas() []Area {
	return []Area{
		{Prefix: "/student", Roles: []model.Role{model.RoleStudent}, LoginPath: "/auth/student/login"},
		{Prefix: "/admin", Roles: []model.Role{model.RoleAdmin}, LoginPath: "/auth/admin/login"},
		{Prefix: "/advisor", Roles: []model.Role{model.RoleAdvisor}, LoginPath: "/auth/advisor/login"},

		{Prefix: "/api/student", Roles: []model.Role{model.RoleStudent}},
		{Prefix: "/api/admin", Roles: []model.Role{model.RoleAdmin}},
		{Prefix: "/api/advisor", Roles: []model.Role{model.RoleAdvisor}},
		{Prefix: "/api/students", Roles: []model.Role{model.RoleAdmin, model.RoleAdvisor}},
		{Prefix: "/api/courses", Roles: []model.Role{model.RoleStudent, model.RoleAdmin, model.RoleAdvisor}},
		{Prefix: "/api/auth/session", Roles: []model.Role{model.RoleStudent, model.RoleAdmin, model.RoleAdvisor}},
	}
}

// Authorize decides whether identity may reach requestPath. A nil identity
// and a wrong role are treated alike and get the same redirect target.
func (a *Authorizer) Authorize(identity *Identity, requestPath string) Decision {
	area, ok := a.match(requestPath)
	if !ok {
		return Allow
	}
	if identity == nil || !identity.HasRole(area.Roles...) {
		return Decision{RedirectTo: area.LoginPath}
	}
	return Allow
}

func (a *Authorizer) match(requestPath string) (Area, bool) {
	if requestPath == "" {
		requestPath = "/"
	}
	cleaned := path.Clean("/" + requestPath)
	for _, area := range a.areas {
		if area.covers(cleaned) {
			return area, true
		}
	}
	return Area{}, false
}
