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

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db)}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error) {
	if !r.Available() {
		return nil, ErrStoreUnavailable
	}

	query := `
		INSERT INTO doctors (
			user_id, first_name, last_name, email, phone, specialization,
			license_number, bio, work_days, work_start_time, work_end_time,
			consultation_fee, follow_up_free_days, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE, NOW(), NOW())
		RETURNING *
	`
	var created model.Doctor
	err := r.db.GetContext(ctx, &created, query,
		doctor.UserID,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.Phone,
		doctor.Specialization,
		doctor.LicenseNumber,
		doctor.Bio,
		doctor.WorkDays,
		doctor.WorkStartTime,
		doctor.WorkEndTime,
		doctor.ConsultationFee,
		doctor.FollowUpFreeDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return &created, nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id int64) (*model.Doctor, error) {
	if !r.Available() {
		return nil, nil
	}

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, `SELECT * FROM doctors WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

// ListActive is unbounded; the clinic's doctor count is assumed small.
func (r *doctorRepository) ListActive(ctx context.Context) ([]*model.Doctor, error) {
	if !r.Available() {
		return []*model.Doctor{}, nil
	}

	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, `SELECT * FROM doctors WHERE is_active = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	if doctors == nil {
		doctors = []*model.Doctor{}
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	query := `
		UPDATE doctors SET
			first_name = $1, last_name = $2, email = $3, phone = $4,
			specialization = $5, license_number = $6, bio = $7,
			work_days = $8, work_start_time = $9, work_end_time = $10,
			consultation_fee = $11, follow_up_free_days = $12, updated_at = $13
		WHERE id = $14
	`
	_, err := r.db.ExecContext(ctx, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.Phone,
		doctor.Specialization,
		doctor.LicenseNumber,
		doctor.Bio,
		doctor.WorkDays,
		doctor.WorkStartTime,
		doctor.WorkEndTime,
		doctor.ConsultationFee,
		doctor.FollowUpFreeDays,
		time.Now(),
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Deactivate(ctx context.Context, id int64) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE doctors SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate doctor: %w", err)
	}
	return nil
}
