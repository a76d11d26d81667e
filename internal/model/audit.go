package model

import (
	"encoding/json"
	"time"
)

// AuditLog is an immutable record of a state-changing action. Rows are
// never updated or deleted through the API.
type AuditLog struct {
	ID         int64           `db:"id" json:"id"`
	UserID     int64           `db:"user_id" json:"user_id"`
	Action     string          `db:"action" json:"action"`
	EntityType string          `db:"entity_type" json:"entity_type"`
	EntityID   *int64          `db:"entity_id" json:"entity_id"`
	Changes    json.RawMessage `db:"changes" json:"changes"`
	IPAddress  *string         `db:"ip_address" json:"ip_address"`
	UserAgent  *string         `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

const (
	AuditActionCreate   = "create"
	AuditActionUpdate   = "update"
	AuditActionDelete   = "delete"
	AuditActionCheckIn  = "check_in"
	AuditActionPayment  = "payment"
	AuditActionSignIn   = "sign_in"
	AuditActionSignOut  = "sign_out"
	AuditActionSettings = "settings"

	AuditEntityUser          = "user"
	AuditEntityPatient       = "patient"
	AuditEntityDoctor        = "doctor"
	AuditEntityService       = "service"
	AuditEntityAppointment   = "appointment"
	AuditEntityMedicalRecord = "medical_record"
	AuditEntityQueueEntry    = "waiting_queue_entry"
	AuditEntityMessage       = "message"
	AuditEntitySettings      = "system_setting"
)

// AuditFilters narrows audit listings; zero values mean "no filter".
type AuditFilters struct {
	UserID     int64
	EntityType string
	Action     string
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}
