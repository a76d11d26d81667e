package model

import "time"

// Doctor is a practitioner. Work days are a serialized list of weekday
// names; the consultation fee is stored in the currency's minor unit.
type Doctor struct {
	ID               int64     `db:"id" json:"id"`
	UserID           *int64    `db:"user_id" json:"user_id"`
	FirstName        string    `db:"first_name" json:"first_name"`
	LastName         string    `db:"last_name" json:"last_name"`
	Email            *string   `db:"email" json:"email"`
	Phone            *string   `db:"phone" json:"phone"`
	Specialization   string    `db:"specialization" json:"specialization"`
	LicenseNumber    *string   `db:"license_number" json:"license_number"`
	Bio              *string   `db:"bio" json:"bio"`
	WorkDays         *string   `db:"work_days" json:"work_days"`
	WorkStartTime    *string   `db:"work_start_time" json:"work_start_time"`
	WorkEndTime      *string   `db:"work_end_time" json:"work_end_time"`
	ConsultationFee  int64     `db:"consultation_fee" json:"consultation_fee"`
	FollowUpFreeDays int       `db:"follow_up_free_days" json:"follow_up_free_days"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type CreateDoctorRequest struct {
	FirstName        string   `json:"first_name" binding:"required,max=100"`
	LastName         string   `json:"last_name" binding:"required,max=100"`
	Email            *string  `json:"email" binding:"omitempty,email"`
	Phone            *string  `json:"phone" binding:"omitempty,max=20"`
	Specialization   string   `json:"specialization" binding:"required,max=100"`
	LicenseNumber    *string  `json:"license_number"`
	Bio              *string  `json:"bio"`
	WorkDays         []string `json:"work_days"`
	WorkStartTime    *string  `json:"work_start_time" binding:"omitempty,len=5"`
	WorkEndTime      *string  `json:"work_end_time" binding:"omitempty,len=5"`
	ConsultationFee  int64    `json:"consultation_fee" binding:"required,min=0"`
	FollowUpFreeDays *int     `json:"follow_up_free_days" binding:"omitempty,min=0"`
}

type UpdateDoctorRequest struct {
	FirstName        *string  `json:"first_name" binding:"omitempty,max=100"`
	LastName         *string  `json:"last_name" binding:"omitempty,max=100"`
	Email            *string  `json:"email" binding:"omitempty,email"`
	Phone            *string  `json:"phone" binding:"omitempty,max=20"`
	Specialization   *string  `json:"specialization" binding:"omitempty,max=100"`
	LicenseNumber    *string  `json:"license_number"`
	Bio              *string  `json:"bio"`
	WorkDays         []string `json:"work_days"`
	WorkStartTime    *string  `json:"work_start_time" binding:"omitempty,len=5"`
	WorkEndTime      *string  `json:"work_end_time" binding:"omitempty,len=5"`
	ConsultationFee  *int64   `json:"consultation_fee" binding:"omitempty,min=0"`
	FollowUpFreeDays *int     `json:"follow_up_free_days" binding:"omitempty,min=0"`
}
