package entity

import "time"

// Roles valid for User. Stored in JWT claims so middleware can make RBAC
// decisions without a DB round trip.
const (
	RoleAdmin      = "admin"
	RoleOffice     = "office"
	RoleTechnician = "technician"
)

// User represents a system user (belongs to a Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past the boundary
	Name         string
	Role         string // admin, office, technician
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
