package entity

import "strings"

type UserRole string

const (
	RoleDriver    UserRole = "DRIVER"
	RolePassenger UserRole = "PASSENGER"
	RoleAdmin     UserRole = "ADMIN"
)

// ParseRole normalises a role string coming from the backend or a form.
func ParseRole(s string) (UserRole, bool) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleDriver:
		return RoleDriver, true
	case RolePassenger:
		return RolePassenger, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// LoginPath is the login route of the role's portal.
func (r UserRole) LoginPath() string {
	switch r {
	case RoleDriver:
		return "/driver/login"
	case RolePassenger:
		return "/passenger/login"
	case RoleAdmin:
		return "/admin/login"
	}
	return "/"
}

// DashboardPath is where a freshly logged in user of the role lands.
func (r UserRole) DashboardPath() string {
	switch r {
	case RoleDriver:
		return "/driver/dashboard"
	case RolePassenger:
		return "/passenger/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	}
	return "/"
}
