package models

// User captures the profile fields the backend returns for an authenticated identity.
type User struct {
	ID           int64  `json:"id"`
	FullName     string `json:"nombre_completo"`
	Email        string `json:"correo"`
	NationalID   string `json:"cedula,omitempty"`
	Sex          string `json:"sexo,omitempty"`
	Phone        string `json:"telefono,omitempty"`
	Role         string `json:"rol"`
	PasswordHash string `json:"-"`
}

// DisplayName is what the header shows for this user; guests get "Invitado".
func (u *User) DisplayName() string {
	if u == nil {
		return "Invitado"
	}
	return u.FullName
}

// IsAdmin reports whether the user may use the admin panels.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == AdminUser
}
