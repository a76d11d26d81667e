package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

// dayBounds returns the inclusive window covering the local calendar
// day that contains t: 00:00:00 through 23:59:59.999999999.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) (*model.Appointment, error) {
	if !r.Available() {
		return nil, ErrStoreUnavailable
	}

	query := `
		INSERT INTO appointments (
			patient_id, doctor_id, service_id, appointment_date,
			start_time, end_time, status, notes, fee, is_paid,
			follow_up_date, is_follow_up_free, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, 'scheduled', $7, $8, FALSE, $9, $10, $11, NOW(), NOW())
		RETURNING *
	`
	var created model.Appointment
	err := r.db.GetContext(ctx, &created, query,
		apt.PatientID,
		apt.DoctorID,
		apt.ServiceID,
		apt.AppointmentDate,
		apt.StartTime,
		apt.EndTime,
		apt.Notes,
		apt.Fee,
		apt.FollowUpDate,
		apt.IsFollowUpFree,
		apt.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return &created, nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	if !r.Available() {
		return nil, nil
	}

	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, `SELECT * FROM appointments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) ListByDate(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
	if !r.Available() {
		return []*model.Appointment{}, nil
	}

	start, end := dayBounds(date)
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, `
		SELECT * FROM appointments
		WHERE appointment_date >= $1 AND appointment_date <= $2
		ORDER BY start_time ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments by date: %w", err)
	}
	if appointments == nil {
		appointments = []*model.Appointment{}
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID int64, from, to *time.Time) ([]*model.Appointment, error) {
	if !r.Available() {
		return []*model.Appointment{}, nil
	}

	query := `SELECT * FROM appointments WHERE doctor_id = $1`
	args := []interface{}{doctorID}
	if from != nil && to != nil {
		query += ` AND appointment_date >= $2 AND appointment_date <= $3`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY appointment_date ASC`

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments by doctor: %w", err)
	}
	if appointments == nil {
		appointments = []*model.Appointment{}
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	if !r.Available() {
		return []*model.Appointment{}, nil
	}

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, `
		SELECT * FROM appointments WHERE patient_id = $1
		ORDER BY appointment_date DESC
	`, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments by patient: %w", err)
	}
	if appointments == nil {
		appointments = []*model.Appointment{}
	}
	return appointments, nil
}

// ListUpcoming returns scheduled or waiting appointments between now
// and now+days inclusive; terminal statuses never appear even when
// their date falls in the window.
func (r *appointmentRepository) ListUpcoming(ctx context.Context, days int) ([]*model.Appointment, error) {
	if !r.Available() {
		return []*model.Appointment{}, nil
	}

	now := time.Now()
	until := now.Add(time.Duration(days) * 24 * time.Hour)

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, `
		SELECT * FROM appointments
		WHERE appointment_date >= $1 AND appointment_date <= $2
		  AND status IN ('scheduled', 'waiting')
		ORDER BY appointment_date ASC
	`, now, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	if appointments == nil {
		appointments = []*model.Appointment{}
	}
	return appointments, nil
}

// ListDueForReminder finds scheduled appointments starting inside the
// lead window that no reminder notification references yet, so the
// reminder job never double-fires.
func (r *appointmentRepository) ListDueForReminder(ctx context.Context, lead time.Duration) ([]*model.Appointment, error) {
	if !r.Available() {
		return []*model.Appointment{}, nil
	}

	now := time.Now()
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, `
		SELECT a.* FROM appointments a
		WHERE a.status = 'scheduled'
		  AND a.appointment_date >= $1 AND a.appointment_date <= $2
		  AND NOT EXISTS (
			SELECT 1 FROM notifications n
			WHERE n.type = 'appointment_reminder' AND n.related_id = a.id
		  )
		ORDER BY a.appointment_date ASC
	`, now, now.Add(lead))
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments due for reminder: %w", err)
	}
	if appointments == nil {
		appointments = []*model.Appointment{}
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus, clinical *model.UpdateAppointmentStatusRequest) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	query := `
		UPDATE appointments SET
			status = $1,
			diagnosis = COALESCE($2, diagnosis),
			prescription = COALESCE($3, prescription),
			follow_up_date = COALESCE($4, follow_up_date),
			updated_at = NOW()
		WHERE id = $5
	`
	var diagnosis, prescription *string
	var followUp *time.Time
	if clinical != nil {
		diagnosis = clinical.Diagnosis
		prescription = clinical.Prescription
		followUp = clinical.FollowUpDate
	}

	res, err := r.db.ExecContext(ctx, query, status, diagnosis, prescription, followUp, id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("appointment %d not found", id)
	}
	return nil
}

// RecordPayment marks the appointment paid and writes the revenue line
// in a single transaction so the ledger can never drift from the
// paid flag.
func (r *appointmentRepository) RecordPayment(ctx context.Context, apt *model.Appointment, rev *model.RevenueRecord) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE appointments SET
				is_paid = TRUE, payment_method = $1, fee = $2, updated_at = NOW()
			WHERE id = $3
		`, rev.PaymentMethod, rev.Amount, apt.ID)
		if err != nil {
			return fmt.Errorf("failed to mark appointment paid: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("appointment %d not found", apt.ID)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO revenue_records (
				appointment_id, doctor_id, amount, payment_method,
				notes, recorded_by, recorded_at, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`, apt.ID, apt.DoctorID, rev.Amount, rev.PaymentMethod, rev.Notes, rev.RecordedBy)
		if err != nil {
			return fmt.Errorf("failed to insert revenue record: %w", err)
		}
		return nil
	})
}
