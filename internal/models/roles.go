package models

const (
	NormalUser = "usuario"
	AdminUser  = "admin"
)

// ValidRole reports whether role is one the backend understands.
func ValidRole(role string) bool {
	return role == NormalUser || role == AdminUser
}
