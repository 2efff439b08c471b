// Package rbac enforces the closed three-role model. The role hierarchy and
// permission table are fixed at build time; casbin evaluates them so route
// guards stay declarative.
package rbac

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles form a strict ladder: superadmin inherits admin, admin inherits user.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies is the full permission table. Inherited permissions are not
// repeated; the grouping rules below pull them in.
var policies = [][3]string{
	{RoleUser, "attendance", "read"},
	{RoleUser, "excuse", "create"},
	{RoleUser, "profile", "update"},

	{RoleAdmin, "attendance", "read_all"},
	{RoleAdmin, "attendance", "mark"},
	{RoleAdmin, "user", "read"},
	{RoleAdmin, "report", "export"},

	{RoleSuperAdmin, "excuse", "read"},
	{RoleSuperAdmin, "excuse", "decide"},
	{RoleSuperAdmin, "user", "write"},
	{RoleSuperAdmin, "user", "delete"},
	{RoleSuperAdmin, "rules", "write"},
}

var groupings = [][2]string{
	{RoleAdmin, RoleUser},
	{RoleSuperAdmin, RoleAdmin},
}

//go:generate mockgen -source=rbac.go -destination=mock/rbac_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// NewService builds an enforcer over the static policy table.
func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return &service{enforcer: e}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	if !ValidRole(role) {
		return false, fmt.Errorf("unknown role %q", role)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enforcer.Enforce(role, resource, action)
}
