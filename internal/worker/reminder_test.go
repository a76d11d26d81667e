package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type fakeAppointmentRepo struct {
	repository.AppointmentRepository
	due      []*model.Appointment
	lastLead time.Duration
}

func (f *fakeAppointmentRepo) ListDueForReminder(_ context.Context, lead time.Duration) ([]*model.Appointment, error) {
	f.lastLead = lead
	return f.due, nil
}

type fakeNotificationRepo struct {
	created   []*model.Notification
	failTitle string
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) (*model.Notification, error) {
	if f.failTitle != "" && n.RelatedID != nil && *n.RelatedID == 1 {
		return nil, errors.New("store down")
	}
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeNotificationRepo) ListUnread(context.Context, int64) ([]*model.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) MarkRead(context.Context, int64, int64) error { return nil }

type fakeSettingsRepo struct {
	repository.SettingsRepository
	settings *model.SystemSetting
}

func (f *fakeSettingsRepo) Get(context.Context) (*model.SystemSetting, error) {
	return f.settings, nil
}

func dueAppointment(id int64, createdBy *int64) *model.Appointment {
	return &model.Appointment{
		ID:              id,
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: time.Now().Add(2 * time.Hour),
		StartTime:       "10:00",
		Status:          model.AppointmentStatusScheduled,
		CreatedBy:       createdBy,
	}
}

func TestSweepCreatesReminders(t *testing.T) {
	staff := int64(7)
	apts := &fakeAppointmentRepo{due: []*model.Appointment{
		dueAppointment(1, &staff),
		dueAppointment(2, &staff),
	}}
	notifs := &fakeNotificationRepo{}
	p := NewReminderProcessor(apts, notifs, &fakeSettingsRepo{}, time.Minute)

	require.NoError(t, p.Sweep(context.Background()))
	require.Len(t, notifs.created, 2)

	n := notifs.created[0]
	assert.Equal(t, staff, n.UserID)
	assert.Equal(t, model.NotificationTypeAppointmentReminder, n.Type)
	assert.Equal(t, model.ChannelInApp, n.SentVia)
	require.NotNil(t, n.RelatedID)
	assert.Equal(t, int64(1), *n.RelatedID)
	require.NotNil(t, n.Content)
	assert.Contains(t, *n.Content, "10:00")
}

// Walk-in rows have no creating user and cannot be targeted.
func TestSweepSkipsAppointmentsWithoutCreator(t *testing.T) {
	apts := &fakeAppointmentRepo{due: []*model.Appointment{dueAppointment(1, nil)}}
	notifs := &fakeNotificationRepo{}
	p := NewReminderProcessor(apts, notifs, &fakeSettingsRepo{}, time.Minute)

	require.NoError(t, p.Sweep(context.Background()))
	assert.Empty(t, notifs.created)
}

func TestSweepContinuesAfterCreateFailure(t *testing.T) {
	staff := int64(7)
	apts := &fakeAppointmentRepo{due: []*model.Appointment{
		dueAppointment(1, &staff),
		dueAppointment(2, &staff),
	}}
	notifs := &fakeNotificationRepo{failTitle: "Upcoming appointment"}
	p := NewReminderProcessor(apts, notifs, &fakeSettingsRepo{}, time.Minute)

	require.NoError(t, p.Sweep(context.Background()))
	require.Len(t, notifs.created, 1)
	assert.Equal(t, int64(2), *notifs.created[0].RelatedID)
}

func TestLeadWindowFollowsSettings(t *testing.T) {
	apts := &fakeAppointmentRepo{}
	p := NewReminderProcessor(apts, &fakeNotificationRepo{},
		&fakeSettingsRepo{settings: &model.SystemSetting{ReminderHoursBefore: 48}}, time.Minute)

	require.NoError(t, p.Sweep(context.Background()))
	assert.Equal(t, 48*time.Hour, apts.lastLead)
}

func TestLeadWindowDefaultsWithoutSettings(t *testing.T) {
	apts := &fakeAppointmentRepo{}
	p := NewReminderProcessor(apts, &fakeNotificationRepo{}, &fakeSettingsRepo{}, time.Minute)

	require.NoError(t, p.Sweep(context.Background()))
	assert.Equal(t, 24*time.Hour, apts.lastLead)
}
