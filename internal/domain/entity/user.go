package entity

import "time"

// Roles válidos para User. Enumeración cerrada: cualquier otro valor se rechaza en los use cases.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// ValidRole reporta si role pertenece a la enumeración.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// User representa una cuenta del sistema. Solo un admin (o el script de seed) crea usuarios;
// el rol solo cambia por actualización de un admin.
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string // bcrypt hash, nunca plano en dominio después de persistir
	Role            string // admin, manager, staff
	ProfileImageURL string // URL en el host de medios externo; aquí solo es una etiqueta
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
