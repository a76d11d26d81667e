package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusWaiting   AppointmentStatus = "waiting"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
	AppointmentStatusFollowUp  AppointmentStatus = "follow_up"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

// Appointment is a scheduled encounter between one patient and one
// doctor, optionally for one service. Start and end times are HH:MM
// strings within the appointment date's local day.
type Appointment struct {
	ID              int64             `db:"id" json:"id"`
	PatientID       int64             `db:"patient_id" json:"patient_id"`
	DoctorID        int64             `db:"doctor_id" json:"doctor_id"`
	ServiceID       *int64            `db:"service_id" json:"service_id"`
	AppointmentDate time.Time         `db:"appointment_date" json:"appointment_date"`
	StartTime       string            `db:"start_time" json:"start_time"`
	EndTime         string            `db:"end_time" json:"end_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           *string           `db:"notes" json:"notes"`
	Fee             *int64            `db:"fee" json:"fee"`
	IsPaid          bool              `db:"is_paid" json:"is_paid"`
	PaymentMethod   *PaymentMethod    `db:"payment_method" json:"payment_method"`
	Diagnosis       *string           `db:"diagnosis" json:"diagnosis"`
	Prescription    *string           `db:"prescription" json:"prescription"`
	FollowUpDate    *time.Time        `db:"follow_up_date" json:"follow_up_date"`
	IsFollowUpFree  bool              `db:"is_follow_up_free" json:"is_follow_up_free"`
	CreatedBy       *int64            `db:"created_by" json:"created_by"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	PatientID       int64      `json:"patient_id" binding:"required"`
	DoctorID        int64      `json:"doctor_id" binding:"required"`
	ServiceID       *int64     `json:"service_id"`
	AppointmentDate time.Time  `json:"appointment_date" binding:"required"`
	StartTime       string     `json:"start_time" binding:"required,hhmm"`
	EndTime         string     `json:"end_time" binding:"required,hhmm"`
	Notes           *string    `json:"notes"`
	Fee             *int64     `json:"fee" binding:"omitempty,min=0"`
	FollowUpDate    *time.Time `json:"follow_up_date"`
	IsFollowUpFree  bool       `json:"is_follow_up_free"`
}

type UpdateAppointmentStatusRequest struct {
	Status       AppointmentStatus `json:"status" binding:"required,oneof=scheduled waiting completed cancelled no_show follow_up"`
	Diagnosis    *string           `json:"diagnosis"`
	Prescription *string           `json:"prescription"`
	FollowUpDate *time.Time        `json:"follow_up_date"`
}

type RecordPaymentRequest struct {
	Amount        int64         `json:"amount" binding:"required,min=1"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required,oneof=cash card transfer other"`
	Notes         *string       `json:"notes"`
}

// CanTransition reports whether moving an appointment from one status to
// another is legal: scheduled -> waiting -> completed, with cancelled,
// no_show and follow_up reachable from scheduled or waiting.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled:
		switch to {
		case AppointmentStatusWaiting, AppointmentStatusCancelled,
			AppointmentStatusNoShow, AppointmentStatusFollowUp:
			return true
		}
	case AppointmentStatusWaiting:
		switch to {
		case AppointmentStatusCompleted, AppointmentStatusCancelled,
			AppointmentStatusNoShow, AppointmentStatusFollowUp:
			return true
		}
	}
	return false
}
