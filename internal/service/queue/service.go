package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/internal/service/audit"
)

// ErrInvalidTransition marks a status change the queue state machine
// does not allow.
var ErrInvalidTransition = errors.New("invalid queue status transition")

type Service struct {
	repo            repository.QueueRepository
	appointmentRepo repository.AppointmentRepository
	auditor         *audit.Service
}

func NewService(repo repository.QueueRepository, appointmentRepo repository.AppointmentRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, appointmentRepo: appointmentRepo, auditor: auditor}
}

// CheckIn pulls patient and doctor from the referenced appointment and
// appends the entry at the back of the doctor's queue.
func (s *Service) CheckIn(ctx context.Context, actorID int64, req *model.CheckInRequest) (*model.WaitingQueueEntry, error) {
	apt, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if apt == nil {
		return nil, fmt.Errorf("appointment %d not found", req.AppointmentID)
	}

	priority := req.Priority
	if priority == "" {
		priority = model.QueuePriorityNormal
	}

	entry := &model.WaitingQueueEntry{
		AppointmentID:     apt.ID,
		PatientID:         apt.PatientID,
		DoctorID:          apt.DoctorID,
		Priority:          priority,
		EstimatedWaitTime: req.EstimatedWaitTime,
	}

	created, err := s.repo.CheckIn(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to check in: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCheckIn, model.AuditEntityQueueEntry, &created.ID, &audit.LogOptions{Changes: created})
	return created, nil
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.WaitingQueueEntry, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// UpdateStatus enforces waiting -> called -> in_progress -> completed,
// with no_show reachable from waiting or called.
func (s *Service) UpdateStatus(ctx context.Context, actorID, id int64, status model.QueueStatus) (*model.WaitingQueueEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue entry: %w", err)
	}
	if entry == nil {
		return nil, nil
	}

	if !entry.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, entry.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update queue status: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityQueueEntry, &id, &audit.LogOptions{
		Changes: map[string]interface{}{"status": map[string]interface{}{"from": entry.Status, "to": status}},
	})

	return s.repo.GetByID(ctx, id)
}

// Remove takes the entry out of the queue and closes the position gap.
func (s *Service) Remove(ctx context.Context, actorID, id int64) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove queue entry: %w", err)
	}
	s.auditor.Log(ctx, actorID, model.AuditActionDelete, model.AuditEntityQueueEntry, &id, nil)
	return nil
}
