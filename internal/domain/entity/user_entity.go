package entity

import (
	"time"
)

// Roles a user can hold. Catalog-mutating operations require RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Avatar is an external image-host reference stored as JSONB.
type Avatar struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// User is the aggregate root for the auth domain.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
	Avatar   *Avatar

	// Reset token digest and expiry are either both present or both absent.
	ResetPasswordToken  *string
	ResetPasswordExpire *time.Time

	OTPCode   *string
	OTPExpire *time.Time

	IsVerified bool
	CreatedAt  time.Time
}
