package model

import "time"

// SystemSetting is the singleton clinic configuration row.
type SystemSetting struct {
	ID                         int64     `db:"id" json:"id"`
	ClinicName                 string    `db:"clinic_name" json:"clinic_name"`
	ClinicEmail                *string   `db:"clinic_email" json:"clinic_email"`
	ClinicPhone                *string   `db:"clinic_phone" json:"clinic_phone"`
	ClinicAddress              *string   `db:"clinic_address" json:"clinic_address"`
	ClinicLogo                 *string   `db:"clinic_logo" json:"clinic_logo"`
	Currency                   string    `db:"currency" json:"currency"`
	Language                   string    `db:"language" json:"language"`
	TimeZone                   string    `db:"time_zone" json:"time_zone"`
	WorkingDays                *string   `db:"working_days" json:"working_days"`
	WorkingHours               *string   `db:"working_hours" json:"working_hours"`
	AppointmentDurationMinutes int       `db:"appointment_duration_minutes" json:"appointment_duration_minutes"`
	SMSEnabled                 bool      `db:"sms_enabled" json:"sms_enabled"`
	WhatsAppEnabled            bool      `db:"whatsapp_enabled" json:"whatsapp_enabled"`
	EmailEnabled               bool      `db:"email_enabled" json:"email_enabled"`
	ReminderHoursBefore        int       `db:"reminder_hours_before" json:"reminder_hours_before"`
	CreatedAt                  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                  time.Time `db:"updated_at" json:"updated_at"`
}

type UpdateSettingsRequest struct {
	ClinicName                 *string  `json:"clinic_name" binding:"omitempty,max=200"`
	ClinicEmail                *string  `json:"clinic_email" binding:"omitempty,email"`
	ClinicPhone                *string  `json:"clinic_phone" binding:"omitempty,max=20"`
	ClinicAddress              *string  `json:"clinic_address"`
	ClinicLogo                 *string  `json:"clinic_logo"`
	Currency                   *string  `json:"currency" binding:"omitempty,max=10"`
	Language                   *string  `json:"language" binding:"omitempty,oneof=ar en"`
	TimeZone                   *string  `json:"time_zone" binding:"omitempty,max=50"`
	WorkingDays                []string `json:"working_days"`
	WorkingHours               *string  `json:"working_hours"`
	AppointmentDurationMinutes *int     `json:"appointment_duration_minutes" binding:"omitempty,min=5"`
	SMSEnabled                 *bool    `json:"sms_enabled"`
	WhatsAppEnabled            *bool    `json:"whatsapp_enabled"`
	EmailEnabled               *bool    `json:"email_enabled"`
	ReminderHoursBefore        *int     `json:"reminder_hours_before" binding:"omitempty,min=1"`
}

type FormType string

const (
	FormTypePatient       FormType = "patient"
	FormTypeAppointment   FormType = "appointment"
	FormTypeMedicalRecord FormType = "medical_record"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeTextarea FieldType = "textarea"
)

// DynamicField is an admin-configurable form field rendered by the
// client for the given form type.
type DynamicField struct {
	ID          int64     `db:"id" json:"id"`
	FormType    FormType  `db:"form_type" json:"form_type"`
	FieldName   string    `db:"field_name" json:"field_name"`
	FieldLabel  string    `db:"field_label" json:"field_label"`
	FieldType   FieldType `db:"field_type" json:"field_type"`
	IsRequired  bool      `db:"is_required" json:"is_required"`
	Options     *string   `db:"options" json:"options"`
	Placeholder *string   `db:"placeholder" json:"placeholder"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreateDynamicFieldRequest struct {
	FormType    FormType  `json:"form_type" binding:"required,oneof=patient appointment medical_record"`
	FieldName   string    `json:"field_name" binding:"required,max=100"`
	FieldLabel  string    `json:"field_label" binding:"required,max=200"`
	FieldType   FieldType `json:"field_type" binding:"required,oneof=text number date select checkbox textarea"`
	IsRequired  bool      `json:"is_required"`
	Options     []string  `json:"options"`
	Placeholder *string   `json:"placeholder"`
	SortOrder   int       `json:"sort_order"`
}
