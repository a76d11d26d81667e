package model

// DailyStatistics aggregates one local calendar day. Fields are always
// present; a day with no rows yields zeros, never nulls.
type DailyStatistics struct {
	TotalAppointments     int64 `db:"total_appointments" json:"total_appointments"`
	CompletedAppointments int64 `db:"completed_appointments" json:"completed_appointments"`
	TotalRevenue          int64 `db:"total_revenue" json:"total_revenue"`
}
