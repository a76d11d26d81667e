// Package worker holds the background jobs run by cmd/worker: the
// appointment reminder sweep and audit log retention cleanup.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

const defaultReminderLeadHours = 24

// ReminderProcessor sweeps for appointments starting within the lead
// window and writes one in-app reminder notification per appointment.
// Delivery over external channels is out of scope.
type ReminderProcessor struct {
	appointments  repository.AppointmentRepository
	notifications repository.NotificationRepository
	settings      repository.SettingsRepository
	interval      time.Duration
}

func NewReminderProcessor(
	appointments repository.AppointmentRepository,
	notifications repository.NotificationRepository,
	settings repository.SettingsRepository,
	interval time.Duration,
) *ReminderProcessor {
	return &ReminderProcessor{
		appointments:  appointments,
		notifications: notifications,
		settings:      settings,
		interval:      interval,
	}
}

func (p *ReminderProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", p.interval).Msg("reminder processor started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reminder processor stopped")
			return
		case <-ticker.C:
			if err := p.Sweep(ctx); err != nil {
				log.Error().Err(err).Msg("reminder sweep failed")
			}
		}
	}
}

// Sweep runs one pass. The due query excludes appointments that already
// have a reminder, so re-running after a partial failure is safe.
func (p *ReminderProcessor) Sweep(ctx context.Context) error {
	lead := p.leadWindow(ctx)

	due, err := p.appointments.ListDueForReminder(ctx, lead)
	if err != nil {
		return fmt.Errorf("failed to list due appointments: %w", err)
	}

	for _, apt := range due {
		if apt.CreatedBy == nil {
			continue
		}

		content := fmt.Sprintf("Appointment #%d on %s at %s",
			apt.ID, apt.AppointmentDate.Format("2006-01-02"), apt.StartTime)
		_, err := p.notifications.Create(ctx, &model.Notification{
			UserID:    *apt.CreatedBy,
			Title:     "Upcoming appointment",
			Content:   &content,
			Type:      model.NotificationTypeAppointmentReminder,
			RelatedID: &apt.ID,
			SentVia:   model.ChannelInApp,
		})
		if err != nil {
			log.Error().Err(err).Int64("appointment_id", apt.ID).Msg("failed to create reminder")
			continue
		}
		log.Debug().Int64("appointment_id", apt.ID).Msg("reminder created")
	}
	return nil
}

func (p *ReminderProcessor) leadWindow(ctx context.Context) time.Duration {
	hours := defaultReminderLeadHours
	if settings, err := p.settings.Get(ctx); err == nil && settings != nil && settings.ReminderHoursBefore > 0 {
		hours = settings.ReminderHoursBefore
	}
	return time.Duration(hours) * time.Hour
}
