package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type revenueRepository struct {
	BaseRepository
}

func NewRevenueRepository(db *sqlx.DB) repository.RevenueRepository {
	return &revenueRepository{NewBaseRepository(db)}
}

func (r *revenueRepository) Create(ctx context.Context, rec *model.RevenueRecord) (*model.RevenueRecord, error) {
	if !r.Available() {
		return nil, ErrStoreUnavailable
	}

	query := `
		INSERT INTO revenue_records (
			appointment_id, doctor_id, amount, payment_method,
			notes, recorded_by, recorded_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING *
	`
	var created model.RevenueRecord
	err := r.db.GetContext(ctx, &created, query,
		rec.AppointmentID,
		rec.DoctorID,
		rec.Amount,
		rec.PaymentMethod,
		rec.Notes,
		rec.RecordedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create revenue record: %w", err)
	}
	return &created, nil
}

func (r *revenueRepository) MonthlyByDoctor(ctx context.Context, year int, month time.Month) ([]*model.DoctorRevenue, error) {
	if !r.Available() {
		return []*model.DoctorRevenue{}, nil
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var rows []*model.DoctorRevenue
	err := r.db.SelectContext(ctx, &rows, `
		SELECT doctor_id, COALESCE(SUM(amount), 0) AS total
		FROM revenue_records
		WHERE recorded_at >= $1 AND recorded_at <= $2
		GROUP BY doctor_id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}
	if rows == nil {
		rows = []*model.DoctorRevenue{}
	}
	return rows, nil
}
