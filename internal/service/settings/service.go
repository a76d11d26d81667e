package settings

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/internal/service/audit"
)

const (
	cacheKey = "system_settings"
	cacheTTL = 5 * time.Minute
)

// Service serves the settings singleton through a short-lived cache;
// nearly every page reads it and it rarely changes.
type Service struct {
	repo    repository.SettingsRepository
	cache   *gocache.Cache
	auditor *audit.Service
}

func NewService(repo repository.SettingsRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:    repo,
		cache:   gocache.New(cacheTTL, 10*time.Minute),
		auditor: auditor,
	}
}

func (s *Service) Get(ctx context.Context) (*model.SystemSetting, error) {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*model.SystemSetting), nil
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings != nil {
		s.cache.Set(cacheKey, settings, cacheTTL)
	}
	return settings, nil
}

func (s *Service) Update(ctx context.Context, actorID int64, req *model.UpdateSettingsRequest) (*model.SystemSetting, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		return nil, fmt.Errorf("system settings not initialized")
	}

	applySettingsUpdate(settings, req)

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	s.cache.Delete(cacheKey)

	s.auditor.Log(ctx, actorID, model.AuditActionSettings, model.AuditEntitySettings, &settings.ID, &audit.LogOptions{Changes: req})
	return settings, nil
}

func (s *Service) ListDynamicFields(ctx context.Context, formType model.FormType) ([]*model.DynamicField, error) {
	return s.repo.ListDynamicFields(ctx, formType)
}

func (s *Service) CreateDynamicField(ctx context.Context, actorID int64, req *model.CreateDynamicFieldRequest) (*model.DynamicField, error) {
	field := &model.DynamicField{
		FormType:    req.FormType,
		FieldName:   req.FieldName,
		FieldLabel:  req.FieldLabel,
		FieldType:   req.FieldType,
		IsRequired:  req.IsRequired,
		Options:     model.EncodeList(req.Options),
		Placeholder: req.Placeholder,
		SortOrder:   req.SortOrder,
	}

	created, err := s.repo.CreateDynamicField(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic field: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntitySettings, &created.ID, &audit.LogOptions{Changes: created})
	return created, nil
}

func applySettingsUpdate(s *model.SystemSetting, req *model.UpdateSettingsRequest) {
	if req.ClinicName != nil {
		s.ClinicName = *req.ClinicName
	}
	if req.ClinicEmail != nil {
		s.ClinicEmail = req.ClinicEmail
	}
	if req.ClinicPhone != nil {
		s.ClinicPhone = req.ClinicPhone
	}
	if req.ClinicAddress != nil {
		s.ClinicAddress = req.ClinicAddress
	}
	if req.ClinicLogo != nil {
		s.ClinicLogo = req.ClinicLogo
	}
	if req.Currency != nil {
		s.Currency = *req.Currency
	}
	if req.Language != nil {
		s.Language = *req.Language
	}
	if req.TimeZone != nil {
		s.TimeZone = *req.TimeZone
	}
	if req.WorkingDays != nil {
		s.WorkingDays = model.EncodeList(req.WorkingDays)
	}
	if req.WorkingHours != nil {
		s.WorkingHours = req.WorkingHours
	}
	if req.AppointmentDurationMinutes != nil {
		s.AppointmentDurationMinutes = *req.AppointmentDurationMinutes
	}
	if req.SMSEnabled != nil {
		s.SMSEnabled = *req.SMSEnabled
	}
	if req.WhatsAppEnabled != nil {
		s.WhatsAppEnabled = *req.WhatsAppEnabled
	}
	if req.EmailEnabled != nil {
		s.EmailEnabled = *req.EmailEnabled
	}
	if req.ReminderHoursBefore != nil {
		s.ReminderHoursBefore = *req.ReminderHoursBefore
	}
}
