package model

import "time"

type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleReceptionist UserRole = "receptionist"
	UserRoleDoctor       UserRole = "doctor"
	UserRolePatient      UserRole = "patient"
	UserRoleUser         UserRole = "user"
)

// StaffRoles are the roles allowed to operate on clinical data.
var StaffRoles = []UserRole{UserRoleAdmin, UserRoleReceptionist, UserRoleDoctor}

// User is an authenticated principal. Rows are keyed by the external
// identity (open id) issued by the identity provider and are never
// hard-deleted.
type User struct {
	ID           int64     `db:"id" json:"id"`
	OpenID       string    `db:"open_id" json:"open_id"`
	Name         *string   `db:"name" json:"name"`
	Email        *string   `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone"`
	LoginMethod  *string   `db:"login_method" json:"login_method"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	LastSignedIn time.Time `db:"last_signed_in" json:"last_signed_in"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UpsertUser carries the mutable fields written on every sign-in.
// Nil pointer fields are left untouched on conflict.
type UpsertUser struct {
	OpenID       string
	Name         *string
	Email        *string
	Phone        *string
	LoginMethod  *string
	Role         *UserRole
	LastSignedIn *time.Time
}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleReceptionist, UserRoleDoctor, UserRolePatient, UserRoleUser:
		return true
	}
	return false
}
