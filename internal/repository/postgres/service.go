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

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{NewBaseRepository(db)}
}

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) (*model.Service, error) {
	if !r.Available() {
		return nil, ErrStoreUnavailable
	}

	query := `
		INSERT INTO services (
			doctor_id, name, description, fee, duration_minutes,
			follow_up_free_days, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
		RETURNING *
	`
	var created model.Service
	err := r.db.GetContext(ctx, &created, query,
		svc.DoctorID,
		svc.Name,
		svc.Description,
		svc.Fee,
		svc.DurationMinutes,
		svc.FollowUpFreeDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return &created, nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	if !r.Available() {
		return nil, nil
	}

	var svc model.Service
	err := r.db.GetContext(ctx, &svc, `SELECT * FROM services WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (r *serviceRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Service, error) {
	if !r.Available() {
		return []*model.Service{}, nil
	}

	var services []*model.Service
	err := r.db.SelectContext(ctx, &services,
		`SELECT * FROM services WHERE doctor_id = $1 AND is_active = TRUE`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if services == nil {
		services = []*model.Service{}
	}
	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	query := `
		UPDATE services SET
			name = $1, description = $2, fee = $3, duration_minutes = $4,
			follow_up_free_days = $5, updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		svc.Name,
		svc.Description,
		svc.Fee,
		svc.DurationMinutes,
		svc.FollowUpFreeDays,
		time.Now(),
		svc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Deactivate(ctx context.Context, id int64) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE services SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate service: %w", err)
	}
	return nil
}
