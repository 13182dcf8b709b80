package entity

// Role names as stored in roles.name.
const (
	// RoleStudent is the role every self-registered account receives.
	RoleStudent       = "student"
	RoleAdministrator = "administrator"
)
