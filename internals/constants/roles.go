package constants

import "fmt"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Error message templates for role checks
const ErrOnlyAdminsCanAccess = "❌ Only admins may access the %s feature."

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var AdminOnly = []string{
	RoleAdmin,
}
