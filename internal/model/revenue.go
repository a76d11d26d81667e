package model

import "time"

// RevenueRecord is a financial ledger line. Amounts are always in the
// currency's minor unit.
type RevenueRecord struct {
	ID            int64         `db:"id" json:"id"`
	AppointmentID *int64        `db:"appointment_id" json:"appointment_id"`
	DoctorID      *int64        `db:"doctor_id" json:"doctor_id"`
	Amount        int64         `db:"amount" json:"amount"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"payment_method"`
	Notes         *string       `db:"notes" json:"notes"`
	RecordedBy    *int64        `db:"recorded_by" json:"recorded_by"`
	RecordedAt    time.Time     `db:"recorded_at" json:"recorded_at"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// DoctorRevenue is one row of the monthly revenue report.
type DoctorRevenue struct {
	DoctorID *int64 `db:"doctor_id" json:"doctor_id"`
	Total    int64  `db:"total" json:"total"`
}
