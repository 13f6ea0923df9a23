package dto

import "time"

// LoginRequest entrada para login (email + password).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT; el mismo token viaja como cookie HTTP-only.
type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// CreateUserRequest entrada para crear un usuario (solo admin; password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Role            string `json:"role" validate:"required,oneof=admin manager staff"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// UpdateUserRequest entrada para que un admin actualice a otro usuario (incluido el rol).
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,oneof=admin manager staff"`
}

// UpdateProfileRequest entrada para que un usuario actualice su propio perfil.
// La subida de imagen ocurre en el host de medios externo; aquí llega solo la URL.
type UpdateProfileRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=200"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// UserResponse salida de un usuario (sin password hash).
type UserResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	ProfileImageURL string    `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserListResponse lista de usuarios por rol.
type UserListResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
	Total   int            `json:"total"`
}
