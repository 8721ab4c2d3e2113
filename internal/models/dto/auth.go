package dto

import "github.com/hongminglow/storefront/internal/models"

type RegisterRequest struct {
	FullName        string `json:"nombre_completo"`
	Email           string `json:"correo"`
	NationalID      string `json:"cedula"`
	Sex             string `json:"sexo"`
	Phone           string `json:"telefono"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type RegisterResponse struct {
	User models.User `json:"usuario"`
}

type LoginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"usuario"`
}

// ProfileUpdate is the body of both the self-service and the admin user edit.
// Role is ignored by the self-service endpoint.
type ProfileUpdate struct {
	FullName   string `json:"nombre_completo"`
	Email      string `json:"correo"`
	NationalID string `json:"cedula"`
	Sex        string `json:"sexo"`
	Phone      string `json:"telefono"`
	Role       string `json:"rol,omitempty"`
}

type UserList struct {
	Users []models.User `json:"usuarios"`
}

type UserEnvelope struct {
	User models.User `json:"usuario"`
}

// Message is the {msg} body the backend uses for acknowledgements and errors.
type Message struct {
	Msg string `json:"msg"`
}
