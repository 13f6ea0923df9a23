package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/audit"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// AuthUseCase casos de uso de cuentas: login y gestión de usuarios (solo admin crea/elimina).
type AuthUseCase struct {
	userRepo repository.UserRepository
	recorder audit.Sink
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, recorder audit.Sink, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, recorder: recorder, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera el JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest, ip string) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "User Login",
		Description: fmt.Sprintf("Usuario %s inició sesión", user.Name),
		Entity:      "user",
		EntityID:    user.ID,
		UserID:      user.ID,
		IPAddress:   ip,
	})
	return &dto.LoginResponse{
		Success: true,
		Message: "login exitoso",
		Token:   token,
		User:    *toUserResponse(user),
	}, nil
}

// Logout registra el cierre de sesión; la limpieza de la cookie ocurre en el handler.
func (uc *AuthUseCase) Logout(actor *entity.User, ip string) {
	uc.recorder.Record(audit.Entry{
		Action:      "User Logout",
		Description: fmt.Sprintf("Usuario %s cerró sesión", actor.Name),
		Entity:      "user",
		EntityID:    actor.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
}

// CreateUser crea una cuenta nueva (el middleware ya garantizó que el actor es admin).
// Valida rol contra la enumeración cerrada y unicidad de email.
func (uc *AuthUseCase) CreateUser(actor *entity.User, in dto.CreateUserRequest, ip string) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Email:           in.Email,
		PasswordHash:    string(hash),
		Role:            in.Role,
		ProfileImageURL: in.ProfileImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "User Created",
		Description: fmt.Sprintf("Admin %s creó el usuario %s (%s)", actor.Name, user.Name, user.Role),
		Entity:      "user",
		EntityID:    user.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return toUserResponse(user), nil
}

// DeleteUser elimina una cuenta. Un admin no puede eliminarse a sí mismo.
func (uc *AuthUseCase) DeleteUser(actor *entity.User, targetID, ip string) error {
	if targetID == actor.ID {
		return domain.ErrSelfDelete
	}
	target, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.userRepo.Delete(targetID); err != nil {
		return err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "User Deleted",
		Description: fmt.Sprintf("Admin %s eliminó el usuario %s", actor.Name, target.Name),
		Entity:      "user",
		EntityID:    target.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return nil
}

// UpdateUser actualiza nombre/email/rol de otra cuenta (solo admin; única vía para cambiar rol).
func (uc *AuthUseCase) UpdateUser(actor *entity.User, targetID string, in dto.UpdateUserRequest, ip string) (*dto.UserResponse, error) {
	target, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidRole
		}
		target.Role = *in.Role
	}
	if in.Name != nil {
		target.Name = *in.Name
	}
	if in.Email != nil && *in.Email != target.Email {
		dup, err := uc.userRepo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		target.Email = *in.Email
	}
	target.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(target); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "User Updated",
		Description: fmt.Sprintf("Admin %s actualizó el usuario %s", actor.Name, target.Name),
		Entity:      "user",
		EntityID:    target.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return toUserResponse(target), nil
}

// UpdateProfile actualiza el perfil propio (nombre e imagen; nunca el rol).
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.ProfileImageURL != nil {
		user.ProfileImageURL = *in.ProfileImageURL
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListByRole lista cuentas de un rol dado (sin password hash en la salida).
func (uc *AuthUseCase) ListByRole(role string) (*dto.UserListResponse, error) {
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	users, err := uc.userRepo.ListByRole(role)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Success: true, Users: make([]dto.UserResponse, 0, len(users)), Total: len(users)}
	for _, u := range users {
		out.Users = append(out.Users, *toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
