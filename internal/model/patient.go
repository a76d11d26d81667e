package model

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Patient is a clinic patient. Deactivation is a soft flag so historical
// appointments and records keep their references.
type Patient struct {
	ID                 int64      `db:"id" json:"id"`
	UserID             *int64     `db:"user_id" json:"user_id"`
	FirstName          string     `db:"first_name" json:"first_name"`
	LastName           string     `db:"last_name" json:"last_name"`
	Email              *string    `db:"email" json:"email"`
	Phone              string     `db:"phone" json:"phone"`
	DateOfBirth        *time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender             *Gender    `db:"gender" json:"gender"`
	Address            *string    `db:"address" json:"address"`
	City               *string    `db:"city" json:"city"`
	EmergencyContact   *string    `db:"emergency_contact" json:"emergency_contact"`
	EmergencyPhone     *string    `db:"emergency_phone" json:"emergency_phone"`
	MedicalHistory     *string    `db:"medical_history" json:"medical_history"`
	Allergies          *string    `db:"allergies" json:"allergies"`
	CurrentMedications *string    `db:"current_medications" json:"current_medications"`
	Notes              *string    `db:"notes" json:"notes"`
	IsActive           bool       `db:"is_active" json:"is_active"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

type CreatePatientRequest struct {
	FirstName          string     `json:"first_name" binding:"required,max=100"`
	LastName           string     `json:"last_name" binding:"required,max=100"`
	Email              *string    `json:"email" binding:"omitempty,email"`
	Phone              string     `json:"phone" binding:"required,max=20"`
	DateOfBirth        *time.Time `json:"date_of_birth"`
	Gender             *Gender    `json:"gender" binding:"omitempty,oneof=male female other"`
	Address            *string    `json:"address"`
	City               *string    `json:"city"`
	EmergencyContact   *string    `json:"emergency_contact"`
	EmergencyPhone     *string    `json:"emergency_phone"`
	MedicalHistory     []string   `json:"medical_history"`
	Allergies          []string   `json:"allergies"`
	CurrentMedications []string   `json:"current_medications"`
	Notes              *string    `json:"notes"`
}

type UpdatePatientRequest struct {
	FirstName          *string    `json:"first_name" binding:"omitempty,max=100"`
	LastName           *string    `json:"last_name" binding:"omitempty,max=100"`
	Email              *string    `json:"email" binding:"omitempty,email"`
	Phone              *string    `json:"phone" binding:"omitempty,max=20"`
	DateOfBirth        *time.Time `json:"date_of_birth"`
	Gender             *Gender    `json:"gender" binding:"omitempty,oneof=male female other"`
	Address            *string    `json:"address"`
	City               *string    `json:"city"`
	EmergencyContact   *string    `json:"emergency_contact"`
	EmergencyPhone     *string    `json:"emergency_phone"`
	MedicalHistory     []string   `json:"medical_history"`
	Allergies          []string   `json:"allergies"`
	CurrentMedications []string   `json:"current_medications"`
	Notes              *string    `json:"notes"`
}
