package models

// User roles
const (
	RoleUser   = "user"
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Agreement statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// RoleHierarchy maps roles to privilege levels
var RoleHierarchy = map[string]int{
	RoleUser:   1,
	RoleMember: 2,
	RoleAdmin:  3,
}

// ValidRole reports whether the role exists in the hierarchy
func ValidRole(role string) bool {
	_, ok := RoleHierarchy[role]
	return ok
}

// ValidStatus reports whether the status is a known agreement status
func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusAccepted || status == StatusRejected
}

// IsRoleAtLeast checks if a role is at least at the specified level
func IsRoleAtLeast(userRole, requiredRole string) bool {
	userLevel, userExists := RoleHierarchy[userRole]
	requiredLevel, requiredExists := RoleHierarchy[requiredRole]

	// If the role doesn't exist in our hierarchy, default behavior
	if !userExists || !requiredExists {
		return userRole == requiredRole
	}

	return userLevel >= requiredLevel
}
