package appointment

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/internal/service/audit"
)

// ErrInvalidTransition marks a status change the appointment state
// machine does not allow.
var ErrInvalidTransition = errors.New("invalid appointment status transition")

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	auditor     *audit.Service
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository, doctorRepo repository.DoctorRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, patientRepo: patientRepo, doctorRepo: doctorRepo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actorID int64, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if !timeOfDay.MatchString(req.StartTime) || !timeOfDay.MatchString(req.EndTime) {
		return nil, fmt.Errorf("start and end time must be HH:MM")
	}
	if req.EndTime <= req.StartTime {
		return nil, fmt.Errorf("end time must be after start time")
	}

	patient, err := s.patientRepo.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	if patient == nil {
		return nil, fmt.Errorf("patient %d not found", req.PatientID)
	}

	doctor, err := s.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	if doctor == nil {
		return nil, fmt.Errorf("doctor %d not found", req.DoctorID)
	}

	fee := req.Fee
	if fee == nil && !req.IsFollowUpFree {
		fee = &doctor.ConsultationFee
	}

	apt := &model.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		ServiceID:       req.ServiceID,
		AppointmentDate: req.AppointmentDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Notes:           req.Notes,
		Fee:             fee,
		FollowUpDate:    req.FollowUpDate,
		IsFollowUpFree:  req.IsFollowUpFree,
		CreatedBy:       &actorID,
	}

	created, err := s.repo.Create(ctx, apt)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityAppointment, &created.ID, &audit.LogOptions{Changes: created})
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
	return s.repo.ListByDate(ctx, date)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64, from, to *time.Time) ([]*model.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID, from, to)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListUpcoming(ctx context.Context, days int) ([]*model.Appointment, error) {
	if days <= 0 {
		days = 7
	}
	return s.repo.ListUpcoming(ctx, days)
}

// UpdateStatus enforces the appointment state machine before writing:
// scheduled -> waiting -> completed, with cancelled, no_show and
// follow_up reachable from scheduled or waiting.
func (s *Service) UpdateStatus(ctx context.Context, actorID, id int64, req *model.UpdateAppointmentStatusRequest) (*model.Appointment, error) {
	apt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if apt == nil {
		return nil, nil
	}

	if !apt.Status.CanTransition(req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, apt.Status, req.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status, req); err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityAppointment, &id, &audit.LogOptions{
		Changes: map[string]interface{}{"status": map[string]interface{}{"from": apt.Status, "to": req.Status}},
	})

	return s.repo.GetByID(ctx, id)
}

// RecordPayment stores the payment on the appointment and the matching
// revenue ledger line in a single transaction.
func (s *Service) RecordPayment(ctx context.Context, actorID, id int64, req *model.RecordPaymentRequest) (*model.Appointment, error) {
	apt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if apt == nil {
		return nil, nil
	}
	if apt.IsPaid {
		return nil, fmt.Errorf("appointment %d is already paid", id)
	}

	rev := &model.RevenueRecord{
		AppointmentID: &apt.ID,
		DoctorID:      &apt.DoctorID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		RecordedBy:    &actorID,
	}

	if err := s.repo.RecordPayment(ctx, apt, rev); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionPayment, model.AuditEntityAppointment, &id, &audit.LogOptions{Changes: rev})
	return s.repo.GetByID(ctx, id)
}
