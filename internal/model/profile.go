package model

// Profile roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents a registered user of the platform.
// Email is nullable: profiles created through some auth providers
// arrive without one, and the notification flows must skip them.
type Profile struct {
	Base
	Email        *string `json:"email" db:"email"`
	Name         string  `json:"name" db:"name"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Role         string  `json:"role" db:"role"`
}

// IsAdmin reports whether the profile carries the admin role
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// EmailOrEmpty returns the profile email or "" when unset
func (p *Profile) EmailOrEmpty() string {
	if p.Email == nil {
		return ""
	}
	return *p.Email
}

// LoginRequest is the credential payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
