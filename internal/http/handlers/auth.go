package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/storefront/internal/auth"
	"github.com/hongminglow/storefront/internal/http/respond"
	"github.com/hongminglow/storefront/internal/middleware"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/models/dto"
	"github.com/hongminglow/storefront/internal/storage"
)

// AuthHandler owns registration, login and user management.
type AuthHandler struct {
	store  storage.Shop
	tokens *auth.TokenManager
	log    *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.Shop, tokens *auth.TokenManager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, log: log}
}

// Register attaches auth and user routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users/register", h.handleRegister)
	mux.HandleFunc("POST /users/login", h.handleLogin)
	mux.HandleFunc("GET /users", middleware.RequireAdmin(h.tokens, h.handleListUsers))
	mux.HandleFunc("PUT /users/{id}", middleware.RequireAdmin(h.tokens, h.handleAdminUpdate))
	mux.HandleFunc("DELETE /users/{id}", middleware.RequireAdmin(h.tokens, h.handleDeleteUser))
	mux.HandleFunc("PUT /api/users/{id}", middleware.RequireAuth(h.tokens, h.handleSelfUpdate))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if msg := validateRegistration(req); msg != "" {
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}
	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "No se pudo procesar la contraseña")
		return
	}

	user := models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.TrimSpace(req.Email),
		NationalID:   strings.TrimSpace(req.NationalID),
		Sex:          strings.TrimSpace(req.Sex),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         models.NormalUser,
		PasswordHash: passwordHash,
	}
	created, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "El correo ya está registrado")
		default:
			h.log.Error("create user failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "No se pudo crear el usuario")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, struct {
		Msg  string      `json:"msg"`
		User models.User `json:"usuario"`
	}{"Usuario registrado", created})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		respond.Error(w, http.StatusBadRequest, "Correo y contraseña son obligatorios")
		return
	}
	user, err := h.store.FindUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		h.log.Error("find user failed", zap.String("correo", req.Email), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "No se pudo iniciar sesión")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	token, err := h.tokens.Generate(user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "No se pudo generar el token")
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Token: token, User: user})
}

func (h *AuthHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "No se pudieron cargar los usuarios")
		return
	}
	respond.JSON(w, http.StatusOK, dto.UserList{Users: users})
}

func (h *AuthHandler) handleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// handleSelfUpdate lets a user edit their own profile; admins may edit anyone.
func (h *AuthHandler) handleSelfUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *AuthHandler) update(w http.ResponseWriter, r *http.Request, allowRole bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	claims, _ := middleware.ClaimsFrom(r.Context())
	callerID, _ := claims.UserID()
	if !allowRole && callerID != id && claims.Role != models.AdminUser {
		respond.Error(w, http.StatusForbidden, "Solo puedes editar tu propio perfil")
		return
	}

	var req dto.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" {
		respond.Error(w, http.StatusBadRequest, "Nombre y correo son obligatorios")
		return
	}

	current, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, h.log, err, "usuario")
		return
	}
	current.FullName = strings.TrimSpace(req.FullName)
	current.Email = strings.TrimSpace(req.Email)
	current.NationalID = strings.TrimSpace(req.NationalID)
	current.Sex = strings.TrimSpace(req.Sex)
	current.Phone = strings.TrimSpace(req.Phone)
	if allowRole && req.Role != "" {
		if !models.ValidRole(req.Role) {
			respond.Error(w, http.StatusBadRequest, "Rol inválido")
			return
		}
		current.Role = req.Role
	}

	updated, err := h.store.UpdateUser(r.Context(), current)
	if err != nil {
		writeStoreError(w, h.log, err, "usuario")
		return
	}
	respond.JSON(w, http.StatusOK, struct {
		Msg  string      `json:"msg"`
		User models.User `json:"usuario"`
	}{"Usuario actualizado", updated})
}

func (h *AuthHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		writeStoreError(w, h.log, err, "usuario")
		return
	}
	respond.JSON(w, http.StatusOK, dto.Message{Msg: "Usuario eliminado"})
}

// validateRegistration returns the message to reject req with, or "".
func validateRegistration(req dto.RegisterRequest) string {
	switch {
	case strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "":
		return "Nombre completo y correo son obligatorios"
	case !strings.Contains(req.Email, "@"):
		return "Correo inválido"
	case len(strings.TrimSpace(req.Password)) < 8 || !utf8.ValidString(req.Password):
		return "La contraseña debe tener al menos 8 caracteres"
	case req.ConfirmPassword != "" && req.ConfirmPassword != req.Password:
		return "Las contraseñas no coinciden"
	}
	return ""
}

// HashPassword hashes a password with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	return hashPassword(password)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
