package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type medicalRecordRepository struct {
	BaseRepository
}

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{NewBaseRepository(db)}
}

func (r *medicalRecordRepository) Create(ctx context.Context, rec *model.MedicalRecord) (*model.MedicalRecord, error) {
	if !r.Available() {
		return nil, ErrStoreUnavailable
	}

	query := `
		INSERT INTO medical_records (
			patient_id, appointment_id, doctor_id, record_type, title,
			content, attachments, is_confidential, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING *
	`
	var created model.MedicalRecord
	err := r.db.GetContext(ctx, &created, query,
		rec.PatientID,
		rec.AppointmentID,
		rec.DoctorID,
		rec.RecordType,
		rec.Title,
		rec.Content,
		rec.Attachments,
		rec.IsConfidential,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}
	return &created, nil
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	if !r.Available() {
		return []*model.MedicalRecord{}, nil
	}

	var records []*model.MedicalRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT * FROM medical_records WHERE patient_id = $1
		ORDER BY created_at DESC
	`, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	if records == nil {
		records = []*model.MedicalRecord{}
	}
	return records, nil
}
