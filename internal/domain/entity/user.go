package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
	RoleTaller   = "taller"
)

// Estados de un usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// ValidRole informa si el rol es uno de los definidos.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleVendedor || r == RoleTaller
}

// User representa un usuario de la consola administrativa.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string
	StoreID      string // obligatorio para vendedores
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
