package model

import "time"

type RecordType string

const (
	RecordTypeDiagnosis    RecordType = "diagnosis"
	RecordTypePrescription RecordType = "prescription"
	RecordTypeLabTest      RecordType = "lab_test"
	RecordTypeNote         RecordType = "note"
	RecordTypeOther        RecordType = "other"
)

// MedicalRecord is a clinical note tied to a patient, optionally to an
// appointment and a doctor. Records are append-only in intent.
type MedicalRecord struct {
	ID             int64      `db:"id" json:"id"`
	PatientID      int64      `db:"patient_id" json:"patient_id"`
	AppointmentID  *int64     `db:"appointment_id" json:"appointment_id"`
	DoctorID       int64      `db:"doctor_id" json:"doctor_id"`
	RecordType     RecordType `db:"record_type" json:"record_type"`
	Title          string     `db:"title" json:"title"`
	Content        string     `db:"content" json:"content"`
	Attachments    *string    `db:"attachments" json:"attachments"`
	IsConfidential bool       `db:"is_confidential" json:"is_confidential"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateMedicalRecordRequest struct {
	AppointmentID  *int64     `json:"appointment_id"`
	DoctorID       int64      `json:"doctor_id" binding:"required"`
	RecordType     RecordType `json:"record_type" binding:"required,oneof=diagnosis prescription lab_test note other"`
	Title          string     `json:"title" binding:"required,max=200"`
	Content        string     `json:"content" binding:"required"`
	Attachments    []string   `json:"attachments"`
	IsConfidential bool       `json:"is_confidential"`
}
