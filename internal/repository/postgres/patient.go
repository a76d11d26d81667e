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

const searchLimit = 10

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{NewBaseRepository(db)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	if !r.Available() {
		return nil, ErrStoreUnavailable
	}

	query := `
		INSERT INTO patients (
			user_id, first_name, last_name, email, phone, date_of_birth, gender,
			address, city, emergency_contact, emergency_phone,
			medical_history, allergies, current_medications, notes,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, TRUE, NOW(), NOW())
		RETURNING *
	`
	var created model.Patient
	err := r.db.GetContext(ctx, &created, query,
		patient.UserID,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.City,
		patient.EmergencyContact,
		patient.EmergencyPhone,
		patient.MedicalHistory,
		patient.Allergies,
		patient.CurrentMedications,
		patient.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return &created, nil
}

func (r *patientRepository) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	if !r.Available() {
		return nil, nil
	}

	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, `SELECT * FROM patients WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByPhone(ctx context.Context, phone string) (*model.Patient, error) {
	if !r.Available() {
		return nil, nil
	}

	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, `SELECT * FROM patients WHERE phone = $1 LIMIT 1`, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient by phone: %w", err)
	}
	return &patient, nil
}

// Search matches a case-insensitive substring of the full name or a
// partial phone number, capped at 10 rows. An empty query returns an
// empty result without touching the store.
func (r *patientRepository) Search(ctx context.Context, query string) ([]*model.Patient, error) {
	if query == "" || !r.Available() {
		return []*model.Patient{}, nil
	}

	term := "%" + query + "%"
	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, `
		SELECT * FROM patients
		WHERE (first_name || ' ' || last_name) ILIKE $1 OR phone LIKE $1
		LIMIT $2
	`, term, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	if patients == nil {
		patients = []*model.Patient{}
	}
	return patients, nil
}

func (r *patientRepository) List(ctx context.Context, limit, offset int) ([]*model.Patient, error) {
	if !r.Available() {
		return []*model.Patient{}, nil
	}

	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, `
		SELECT * FROM patients WHERE is_active = TRUE LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	if patients == nil {
		patients = []*model.Patient{}
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	query := `
		UPDATE patients SET
			first_name = $1, last_name = $2, email = $3, phone = $4,
			date_of_birth = $5, gender = $6, address = $7, city = $8,
			emergency_contact = $9, emergency_phone = $10,
			medical_history = $11, allergies = $12, current_medications = $13,
			notes = $14, updated_at = $15
		WHERE id = $16
	`
	_, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.City,
		patient.EmergencyContact,
		patient.EmergencyPhone,
		patient.MedicalHistory,
		patient.Allergies,
		patient.CurrentMedications,
		patient.Notes,
		time.Now(),
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Deactivate(ctx context.Context, id int64) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE patients SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate patient: %w", err)
	}
	return nil
}
