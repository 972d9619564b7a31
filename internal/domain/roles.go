package domain

type Role string

const (
	// Vendors register themselves and submit events for moderation.
	RoleVendor Role = "vendor"
	// Admins moderate submitted events and verify vendor profiles.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleVendor) || r == string(RoleAdmin)
}
