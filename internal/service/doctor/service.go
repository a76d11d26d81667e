package doctor

import (
	"context"
	"fmt"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/internal/service/audit"
)

const defaultFollowUpFreeDays = 7

// Service manages doctors and the billable services attached to them.
type Service struct {
	repo        repository.DoctorRepository
	serviceRepo repository.ServiceRepository
	auditor     *audit.Service
}

func NewService(repo repository.DoctorRepository, serviceRepo repository.ServiceRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, serviceRepo: serviceRepo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actorID int64, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	followUp := defaultFollowUpFreeDays
	if req.FollowUpFreeDays != nil {
		followUp = *req.FollowUpFreeDays
	}

	doctor := &model.Doctor{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Specialization:   req.Specialization,
		LicenseNumber:    req.LicenseNumber,
		Bio:              req.Bio,
		WorkDays:         model.EncodeList(req.WorkDays),
		WorkStartTime:    req.WorkStartTime,
		WorkEndTime:      req.WorkEndTime,
		ConsultationFee:  req.ConsultationFee,
		FollowUpFreeDays: followUp,
	}

	created, err := s.repo.Create(ctx, doctor)
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityDoctor, &created.ID, &audit.LogOptions{Changes: created})
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListActive(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Update(ctx context.Context, actorID, id int64, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	if doctor == nil {
		return nil, nil
	}

	applyDoctorUpdate(doctor, req)

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityDoctor, &id, &audit.LogOptions{Changes: req})
	return doctor, nil
}

func (s *Service) Deactivate(ctx context.Context, actorID, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate doctor: %w", err)
	}
	s.auditor.Log(ctx, actorID, model.AuditActionDelete, model.AuditEntityDoctor, &id, nil)
	return nil
}

func (s *Service) ListServices(ctx context.Context, doctorID int64) ([]*model.Service, error) {
	return s.serviceRepo.ListByDoctor(ctx, doctorID)
}

func (s *Service) CreateService(ctx context.Context, actorID int64, req *model.CreateServiceRequest) (*model.Service, error) {
	duration := 30
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	followUp := defaultFollowUpFreeDays
	if req.FollowUpFreeDays != nil {
		followUp = *req.FollowUpFreeDays
	}

	doctor, err := s.repo.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	if doctor == nil {
		return nil, fmt.Errorf("doctor %d not found", req.DoctorID)
	}

	svc := &model.Service{
		DoctorID:         req.DoctorID,
		Name:             req.Name,
		Description:      req.Description,
		Fee:              req.Fee,
		DurationMinutes:  duration,
		FollowUpFreeDays: followUp,
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityService, &created.ID, &audit.LogOptions{Changes: created})
	return created, nil
}

func (s *Service) UpdateService(ctx context.Context, actorID, id int64, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if svc == nil {
		return nil, nil
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.Fee != nil {
		svc.Fee = *req.Fee
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.FollowUpFreeDays != nil {
		svc.FollowUpFreeDays = *req.FollowUpFreeDays
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityService, &id, &audit.LogOptions{Changes: req})
	return svc, nil
}

func (s *Service) DeactivateService(ctx context.Context, actorID, id int64) error {
	if err := s.serviceRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate service: %w", err)
	}
	s.auditor.Log(ctx, actorID, model.AuditActionDelete, model.AuditEntityService, &id, nil)
	return nil
}

func applyDoctorUpdate(d *model.Doctor, req *model.UpdateDoctorRequest) {
	if req.FirstName != nil {
		d.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		d.LastName = *req.LastName
	}
	if req.Email != nil {
		d.Email = req.Email
	}
	if req.Phone != nil {
		d.Phone = req.Phone
	}
	if req.Specialization != nil {
		d.Specialization = *req.Specialization
	}
	if req.LicenseNumber != nil {
		d.LicenseNumber = req.LicenseNumber
	}
	if req.Bio != nil {
		d.Bio = req.Bio
	}
	if req.WorkDays != nil {
		d.WorkDays = model.EncodeList(req.WorkDays)
	}
	if req.WorkStartTime != nil {
		d.WorkStartTime = req.WorkStartTime
	}
	if req.WorkEndTime != nil {
		d.WorkEndTime = req.WorkEndTime
	}
	if req.ConsultationFee != nil {
		d.ConsultationFee = *req.ConsultationFee
	}
	if req.FollowUpFreeDays != nil {
		d.FollowUpFreeDays = *req.FollowUpFreeDays
	}
}
