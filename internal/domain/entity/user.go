package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// User representa un usuario del sistema.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"` // bcrypt hash, nunca plano
	Name         string    `json:"name"`
	Role         string    `json:"role"`   // admin, manager, cashier
	Status       string    `json:"status"` // active, inactive
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}
