package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type statisticsRepository struct {
	BaseRepository
}

func NewStatisticsRepository(db *sqlx.DB) repository.StatisticsRepository {
	return &statisticsRepository{NewBaseRepository(db)}
}

// Daily aggregates the local calendar day containing date. A day with
// no rows yields a zero-valued struct, never nil fields.
func (r *statisticsRepository) Daily(ctx context.Context, date time.Time) (*model.DailyStatistics, error) {
	stats := &model.DailyStatistics{}
	if !r.Available() {
		return stats, nil
	}

	start, end := dayBounds(date)

	err := r.db.GetContext(ctx, stats, `
		SELECT
			(SELECT COUNT(*) FROM appointments
			 WHERE appointment_date >= $1 AND appointment_date <= $2) AS total_appointments,
			(SELECT COUNT(*) FROM appointments
			 WHERE appointment_date >= $1 AND appointment_date <= $2
			   AND status = 'completed') AS completed_appointments,
			(SELECT COALESCE(SUM(amount), 0) FROM revenue_records
			 WHERE recorded_at >= $1 AND recorded_at <= $2) AS total_revenue
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily statistics: %w", err)
	}
	return stats, nil
}
