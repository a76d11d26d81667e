package patient

import (
	"context"
	"fmt"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/internal/service/audit"
)

const defaultListLimit = 100

type Service struct {
	repo        repository.PatientRepository
	medicalRepo repository.MedicalRecordRepository
	auditor     *audit.Service
}

func NewService(repo repository.PatientRepository, medicalRepo repository.MedicalRecordRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, medicalRepo: medicalRepo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actorID int64, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Phone:              req.Phone,
		DateOfBirth:        req.DateOfBirth,
		Gender:             req.Gender,
		Address:            req.Address,
		City:               req.City,
		EmergencyContact:   req.EmergencyContact,
		EmergencyPhone:     req.EmergencyPhone,
		MedicalHistory:     model.EncodeList(req.MedicalHistory),
		Allergies:          model.EncodeList(req.Allergies),
		CurrentMedications: model.EncodeList(req.CurrentMedications),
		Notes:              req.Notes,
	}

	created, err := s.repo.Create(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityPatient, &created.ID, &audit.LogOptions{Changes: created})
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByPhone(ctx context.Context, phone string) (*model.Patient, error) {
	return s.repo.GetByPhone(ctx, phone)
}

// Search gates the empty query before it reaches the store.
func (s *Service) Search(ctx context.Context, query string) ([]*model.Patient, error) {
	if query == "" {
		return []*model.Patient{}, nil
	}
	return s.repo.Search(ctx, query)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*model.Patient, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, actorID, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	if patient == nil {
		return nil, nil
	}

	applyPatientUpdate(patient, req)

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityPatient, &id, &audit.LogOptions{Changes: req})
	return patient, nil
}

func (s *Service) Deactivate(ctx context.Context, actorID, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate patient: %w", err)
	}
	s.auditor.Log(ctx, actorID, model.AuditActionDelete, model.AuditEntityPatient, &id, nil)
	return nil
}

func (s *Service) AddMedicalRecord(ctx context.Context, actorID, patientID int64, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	record := &model.MedicalRecord{
		PatientID:      patientID,
		AppointmentID:  req.AppointmentID,
		DoctorID:       req.DoctorID,
		RecordType:     req.RecordType,
		Title:          req.Title,
		Content:        req.Content,
		Attachments:    model.EncodeList(req.Attachments),
		IsConfidential: req.IsConfidential,
	}

	created, err := s.medicalRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to add medical record: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityMedicalRecord, &created.ID, &audit.LogOptions{Changes: created})
	return created, nil
}

func (s *Service) ListMedicalRecords(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	return s.medicalRepo.ListByPatient(ctx, patientID)
}

func applyPatientUpdate(p *model.Patient, req *model.UpdatePatientRequest) {
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		p.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		p.Gender = req.Gender
	}
	if req.Address != nil {
		p.Address = req.Address
	}
	if req.City != nil {
		p.City = req.City
	}
	if req.EmergencyContact != nil {
		p.EmergencyContact = req.EmergencyContact
	}
	if req.EmergencyPhone != nil {
		p.EmergencyPhone = req.EmergencyPhone
	}
	if req.MedicalHistory != nil {
		p.MedicalHistory = model.EncodeList(req.MedicalHistory)
	}
	if req.Allergies != nil {
		p.Allergies = model.EncodeList(req.Allergies)
	}
	if req.CurrentMedications != nil {
		p.CurrentMedications = model.EncodeList(req.CurrentMedications)
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}
}
