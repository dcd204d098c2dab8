package domain

import "time"

// Role determines which complaint operations a user may perform.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// IsCitizen reports whether the role is citizen.
func (r Role) IsCitizen() bool {
	return r == RoleCitizen
}

// IsOfficerOrAdmin reports whether the role grants triage access.
func (r Role) IsOfficerOrAdmin() bool {
	return r == RoleStaff || r == RoleAdmin
}

// User is the domain model for all accounts. Registration always creates
// citizens; staff and admin accounts are provisioned out of band.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
