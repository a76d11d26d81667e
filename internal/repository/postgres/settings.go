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

type settingsRepository struct {
	BaseRepository
}

func NewSettingsRepository(db *sqlx.DB) repository.SettingsRepository {
	return &settingsRepository{NewBaseRepository(db)}
}

// Get returns the singleton settings row, or nil when setup has not run.
func (r *settingsRepository) Get(ctx context.Context) (*model.SystemSetting, error) {
	if !r.Available() {
		return nil, nil
	}

	var settings model.SystemSetting
	err := r.db.GetContext(ctx, &settings, `SELECT * FROM system_settings ORDER BY id LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get system settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *model.SystemSetting) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	query := `
		UPDATE system_settings SET
			clinic_name = $1, clinic_email = $2, clinic_phone = $3,
			clinic_address = $4, clinic_logo = $5, currency = $6,
			language = $7, time_zone = $8, working_days = $9,
			working_hours = $10, appointment_duration_minutes = $11,
			sms_enabled = $12, whatsapp_enabled = $13, email_enabled = $14,
			reminder_hours_before = $15, updated_at = $16
		WHERE id = $17
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ClinicName,
		s.ClinicEmail,
		s.ClinicPhone,
		s.ClinicAddress,
		s.ClinicLogo,
		s.Currency,
		s.Language,
		s.TimeZone,
		s.WorkingDays,
		s.WorkingHours,
		s.AppointmentDurationMinutes,
		s.SMSEnabled,
		s.WhatsAppEnabled,
		s.EmailEnabled,
		s.ReminderHoursBefore,
		time.Now(),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update system settings: %w", err)
	}
	return nil
}

func (r *settingsRepository) ListDynamicFields(ctx context.Context, formType model.FormType) ([]*model.DynamicField, error) {
	if !r.Available() {
		return []*model.DynamicField{}, nil
	}

	var fields []*model.DynamicField
	err := r.db.SelectContext(ctx, &fields, `
		SELECT * FROM dynamic_fields
		WHERE form_type = $1 AND is_active = TRUE
		ORDER BY sort_order ASC
	`, formType)
	if err != nil {
		return nil, fmt.Errorf("failed to list dynamic fields: %w", err)
	}
	if fields == nil {
		fields = []*model.DynamicField{}
	}
	return fields, nil
}

func (r *settingsRepository) CreateDynamicField(ctx context.Context, f *model.DynamicField) (*model.DynamicField, error) {
	if !r.Available() {
		return nil, ErrStoreUnavailable
	}

	query := `
		INSERT INTO dynamic_fields (
			form_type, field_name, field_label, field_type, is_required,
			options, placeholder, sort_order, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, NOW(), NOW())
		RETURNING *
	`
	var created model.DynamicField
	err := r.db.GetContext(ctx, &created, query,
		f.FormType,
		f.FieldName,
		f.FieldLabel,
		f.FieldType,
		f.IsRequired,
		f.Options,
		f.Placeholder,
		f.SortOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic field: %w", err)
	}
	return &created, nil
}
