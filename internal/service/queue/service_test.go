package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/audit"
)

type fakeQueueRepo struct {
	entries map[int64]*model.WaitingQueueEntry
	nextID  int64
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{entries: map[int64]*model.WaitingQueueEntry{}, nextID: 1}
}

func (f *fakeQueueRepo) CheckIn(_ context.Context, e *model.WaitingQueueEntry) (*model.WaitingQueueEntry, error) {
	e.ID = f.nextID
	f.nextID++
	e.Status = model.QueueStatusWaiting
	pos := 0
	for _, other := range f.entries {
		if other.DoctorID == e.DoctorID && other.Position > pos {
			pos = other.Position
		}
	}
	e.Position = pos + 1
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeQueueRepo) GetByID(_ context.Context, id int64) (*model.WaitingQueueEntry, error) {
	return f.entries[id], nil
}

func (f *fakeQueueRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*model.WaitingQueueEntry, error) {
	var out []*model.WaitingQueueEntry
	for _, e := range f.entries {
		if e.DoctorID == doctorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeQueueRepo) UpdateStatus(_ context.Context, id int64, status model.QueueStatus, _ time.Time) error {
	f.entries[id].Status = status
	return nil
}

func (f *fakeQueueRepo) Remove(_ context.Context, id int64) error {
	delete(f.entries, id)
	return nil
}

type fakeAppointmentRepo struct {
	appointments map[int64]*model.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) (*model.Appointment, error) {
	return a, nil
}
func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*model.Appointment, error) {
	return f.appointments[id], nil
}
func (f *fakeAppointmentRepo) ListByDate(context.Context, time.Time) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListByDoctor(context.Context, int64, *time.Time, *time.Time) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListByPatient(context.Context, int64) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListUpcoming(context.Context, int) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListDueForReminder(context.Context, time.Duration) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) UpdateStatus(context.Context, int64, model.AppointmentStatus, *model.UpdateAppointmentStatusRequest) error {
	return nil
}
func (f *fakeAppointmentRepo) RecordPayment(context.Context, *model.Appointment, *model.RevenueRecord) error {
	return nil
}

type nopAuditRepo struct{}

func (nopAuditRepo) Create(context.Context, int64, string, string, *int64, json.RawMessage, *string, *string) error {
	return nil
}
func (nopAuditRepo) List(context.Context, *model.AuditFilters) ([]*model.AuditLog, error) {
	return nil, nil
}
func (nopAuditRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

func newTestService() (*Service, *fakeQueueRepo) {
	queueRepo := newFakeQueueRepo()
	aptRepo := &fakeAppointmentRepo{appointments: map[int64]*model.Appointment{
		10: {ID: 10, PatientID: 3, DoctorID: 5, Status: model.AppointmentStatusScheduled},
	}}
	return NewService(queueRepo, aptRepo, audit.NewService(nopAuditRepo{})), queueRepo
}

// Check-in derives patient and doctor from the appointment rather than
// trusting the request.
func TestCheckInDerivesFromAppointment(t *testing.T) {
	svc, _ := newTestService()

	entry, err := svc.CheckIn(context.Background(), 1, &model.CheckInRequest{AppointmentID: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(3), entry.PatientID)
	assert.Equal(t, int64(5), entry.DoctorID)
	assert.Equal(t, model.QueuePriorityNormal, entry.Priority)
	assert.Equal(t, 1, entry.Position)
	assert.Equal(t, model.QueueStatusWaiting, entry.Status)
}

func TestCheckInUnknownAppointment(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), 1, &model.CheckInRequest{AppointmentID: 99})
	assert.Error(t, err)
}

func TestUpdateStatusEnforcesStateMachine(t *testing.T) {
	svc, _ := newTestService()

	entry, err := svc.CheckIn(context.Background(), 1, &model.CheckInRequest{AppointmentID: 10})
	require.NoError(t, err)

	// waiting -> in_progress skips the called step.
	_, err = svc.UpdateStatus(context.Background(), 1, entry.ID, model.QueueStatusInProgress)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.UpdateStatus(context.Background(), 1, entry.ID, model.QueueStatusCalled)
	require.NoError(t, err)
	assert.Equal(t, model.QueueStatusCalled, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), 1, entry.ID, model.QueueStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.QueueStatusInProgress, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), 1, entry.ID, model.QueueStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.QueueStatusCompleted, updated.Status)
}

func TestUpdateStatusMissingEntry(t *testing.T) {
	svc, _ := newTestService()

	entry, err := svc.UpdateStatus(context.Background(), 1, 99, model.QueueStatusCalled)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestRemove(t *testing.T) {
	svc, repo := newTestService()

	entry, err := svc.CheckIn(context.Background(), 1, &model.CheckInRequest{AppointmentID: 10})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), 1, entry.ID))
	assert.Empty(t, repo.entries)
}
