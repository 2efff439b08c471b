package client

import "fmt"

// Role is a closed set; anything else fails to parse.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
	RoleSuperAdmin
)

func ParseRole(s string) (Role, error) {
	switch s {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	case "superadmin":
		return RoleSuperAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	case RoleSuperAdmin:
		return "superadmin"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

type View int

const (
	ViewDashboard View = iota
	ViewHistory
	ViewExcuse
	ViewProfile
	ViewRoster
	ViewAttendanceControl
	ViewReports
	ViewUserManagement
	ViewExcuseApprovals
	ViewRulesEditor
)

func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewHistory:
		return "history"
	case ViewExcuse:
		return "excuse"
	case ViewProfile:
		return "profile"
	case ViewRoster:
		return "roster"
	case ViewAttendanceControl:
		return "attendance-control"
	case ViewReports:
		return "reports"
	case ViewUserManagement:
		return "user-management"
	case ViewExcuseApprovals:
		return "excuse-approvals"
	case ViewRulesEditor:
		return "rules"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// navigation maps each role to the views it may open. Higher roles include
// everything below them.
var navigation = map[Role][]View{
	RoleUser: {
		ViewDashboard, ViewHistory, ViewExcuse, ViewProfile,
	},
	RoleAdmin: {
		ViewDashboard, ViewHistory, ViewExcuse, ViewProfile,
		ViewRoster, ViewAttendanceControl, ViewReports,
	},
	RoleSuperAdmin: {
		ViewDashboard, ViewHistory, ViewExcuse, ViewProfile,
		ViewRoster, ViewAttendanceControl, ViewReports,
		ViewUserManagement, ViewExcuseApprovals, ViewRulesEditor,
	},
}

func Views(r Role) []View {
	return navigation[r]
}

func CanAccess(r Role, v View) bool {
	for _, allowed := range navigation[r] {
		if allowed == v {
			return true
		}
	}
	return false
}

// DefaultView is where an unauthorized-but-signed-in user is sent.
func DefaultView(Role) View {
	return ViewDashboard
}

type GateDecision int

const (
	GateAllow GateDecision = iota
	GateRedirectLogin
	GateRedirectDefault
)

// Gate decides before any fetch fires whether a view may open. Missing token
// sends the caller to login; a bad or insufficient role sends them to the
// default view. Never an error, never a crash.
func Gate(store Store, view View) (Session, GateDecision) {
	sess, err := store.Load()
	if err != nil || !sess.Authenticated() {
		return Session{}, GateRedirectLogin
	}
	role, err := ParseRole(sess.User.Role)
	if err != nil {
		return sess, GateRedirectDefault
	}
	if !CanAccess(role, view) {
		return sess, GateRedirectDefault
	}
	return sess, GateAllow
}
