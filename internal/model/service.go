package model

import "time"

// Service is a billable offering tied to a doctor.
type Service struct {
	ID               int64     `db:"id" json:"id"`
	DoctorID         int64     `db:"doctor_id" json:"doctor_id"`
	Name             string    `db:"name" json:"name"`
	Description      *string   `db:"description" json:"description"`
	Fee              int64     `db:"fee" json:"fee"`
	DurationMinutes  int       `db:"duration_minutes" json:"duration_minutes"`
	FollowUpFreeDays int       `db:"follow_up_free_days" json:"follow_up_free_days"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type CreateServiceRequest struct {
	DoctorID         int64   `json:"doctor_id" binding:"required"`
	Name             string  `json:"name" binding:"required,max=200"`
	Description      *string `json:"description"`
	Fee              int64   `json:"fee" binding:"required,min=0"`
	DurationMinutes  *int    `json:"duration_minutes" binding:"omitempty,min=5"`
	FollowUpFreeDays *int    `json:"follow_up_free_days" binding:"omitempty,min=0"`
}

type UpdateServiceRequest struct {
	Name             *string `json:"name" binding:"omitempty,max=200"`
	Description      *string `json:"description"`
	Fee              *int64  `json:"fee" binding:"omitempty,min=0"`
	DurationMinutes  *int    `json:"duration_minutes" binding:"omitempty,min=5"`
	FollowUpFreeDays *int    `json:"follow_up_free_days" binding:"omitempty,min=0"`
}
