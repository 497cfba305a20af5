package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RolePanolero   = "panolero"   // opera el pañol: entrega y rechaza vales
	RoleSupervisor = "supervisor" // solo consulta y aprueba
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, panolero, supervisor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
