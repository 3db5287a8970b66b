package models

import "github.com/golang-jwt/jwt/v5"

// Back-office permissions.
const (
	PermissionClientRead  = "client:read"
	PermissionClientWrite = "client:write"
	PermissionStatsRead   = "stats:read"
)

// AdminClaims is the JWT payload for back-office sessions.
type AdminClaims struct {
	jwt.RegisteredClaims
	AdminID      uint     `json:"admin_id"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission.
func (c *AdminClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role.
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionClientRead,
			PermissionClientWrite,
			PermissionStatsRead,
		}
	default:
		return []string{PermissionClientRead}
	}
}
