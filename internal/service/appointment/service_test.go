package appointment

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

type fakeAppointmentRepo struct {
	appointments map[int64]*model.Appointment
	nextID       int64
	payments     []*model.RevenueRecord
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[int64]*model.Appointment{}, nextID: 1}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) (*model.Appointment, error) {
	apt.ID = f.nextID
	f.nextID++
	apt.Status = model.AppointmentStatusScheduled
	f.appointments[apt.ID] = apt
	return apt, nil
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

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status model.AppointmentStatus, clinical *model.UpdateAppointmentStatusRequest) error {
	apt := f.appointments[id]
	apt.Status = status
	if clinical != nil && clinical.Diagnosis != nil {
		apt.Diagnosis = clinical.Diagnosis
	}
	return nil
}

func (f *fakeAppointmentRepo) RecordPayment(_ context.Context, apt *model.Appointment, rev *model.RevenueRecord) error {
	stored := f.appointments[apt.ID]
	stored.IsPaid = true
	stored.PaymentMethod = &rev.PaymentMethod
	f.payments = append(f.payments, rev)
	return nil
}

type fakePatientRepo struct {
	patients map[int64]*model.Patient
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) (*model.Patient, error) {
	return p, nil
}
func (f *fakePatientRepo) GetByID(_ context.Context, id int64) (*model.Patient, error) {
	return f.patients[id], nil
}
func (f *fakePatientRepo) GetByPhone(context.Context, string) (*model.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) Search(context.Context, string) ([]*model.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) List(context.Context, int, int) ([]*model.Patient, error) { return nil, nil }
func (f *fakePatientRepo) Update(context.Context, *model.Patient) error             { return nil }
func (f *fakePatientRepo) Deactivate(context.Context, int64) error                  { return nil }

type fakeDoctorRepo struct {
	doctors map[int64]*model.Doctor
}

func (f *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) (*model.Doctor, error) {
	return d, nil
}
func (f *fakeDoctorRepo) GetByID(_ context.Context, id int64) (*model.Doctor, error) {
	return f.doctors[id], nil
}
func (f *fakeDoctorRepo) ListActive(context.Context) ([]*model.Doctor, error) { return nil, nil }
func (f *fakeDoctorRepo) Update(context.Context, *model.Doctor) error         { return nil }
func (f *fakeDoctorRepo) Deactivate(context.Context, int64) error             { return nil }

type nopAuditRepo struct{}

func (nopAuditRepo) Create(context.Context, int64, string, string, *int64, json.RawMessage, *string, *string) error {
	return nil
}
func (nopAuditRepo) List(context.Context, *model.AuditFilters) ([]*model.AuditLog, error) {
	return nil, nil
}
func (nopAuditRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

func newTestService() (*Service, *fakeAppointmentRepo) {
	repo := newFakeAppointmentRepo()
	patients := &fakePatientRepo{patients: map[int64]*model.Patient{
		1: {ID: 1, FirstName: "Pat", LastName: "One", Phone: "555"},
	}}
	doctors := &fakeDoctorRepo{doctors: map[int64]*model.Doctor{
		1: {ID: 1, FirstName: "Doc", LastName: "One", ConsultationFee: 5000},
	}}
	return NewService(repo, patients, doctors, audit.NewService(nopAuditRepo{})), repo
}

func validRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: time.Now().Add(24 * time.Hour),
		StartTime:       "09:00",
		EndTime:         "09:30",
	}
}

func TestCreateDefaultsFeeFromDoctor(t *testing.T) {
	svc, _ := newTestService()

	apt, err := svc.Create(context.Background(), 1, validRequest())
	require.NoError(t, err)

	require.NotNil(t, apt.Fee)
	assert.Equal(t, int64(5000), *apt.Fee)
	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)
}

func TestCreateFollowUpFreeSkipsFee(t *testing.T) {
	svc, _ := newTestService()

	req := validRequest()
	req.IsFollowUpFree = true

	apt, err := svc.Create(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Nil(t, apt.Fee)
}

func TestCreateRejectsBadTimes(t *testing.T) {
	svc, _ := newTestService()

	req := validRequest()
	req.StartTime = "25:00"
	_, err := svc.Create(context.Background(), 1, req)
	assert.Error(t, err)

	req = validRequest()
	req.StartTime = "9:00" // must be zero-padded
	_, err = svc.Create(context.Background(), 1, req)
	assert.Error(t, err)

	req = validRequest()
	req.EndTime = req.StartTime
	_, err = svc.Create(context.Background(), 1, req)
	assert.Error(t, err)
}

func TestCreateRejectsUnknownPatientOrDoctor(t *testing.T) {
	svc, _ := newTestService()

	req := validRequest()
	req.PatientID = 99
	_, err := svc.Create(context.Background(), 1, req)
	assert.Error(t, err)

	req = validRequest()
	req.DoctorID = 99
	_, err = svc.Create(context.Background(), 1, req)
	assert.Error(t, err)
}

func TestUpdateStatusEnforcesStateMachine(t *testing.T) {
	svc, _ := newTestService()

	apt, err := svc.Create(context.Background(), 1, validRequest())
	require.NoError(t, err)

	// scheduled -> completed skips the waiting step.
	_, err = svc.UpdateStatus(context.Background(), 1, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: model.AppointmentStatusCompleted,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.UpdateStatus(context.Background(), 1, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: model.AppointmentStatusWaiting,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusWaiting, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), 1, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: model.AppointmentStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)
}

func TestUpdateStatusMissingAppointment(t *testing.T) {
	svc, _ := newTestService()

	apt, err := svc.UpdateStatus(context.Background(), 1, 99, &model.UpdateAppointmentStatusRequest{
		Status: model.AppointmentStatusWaiting,
	})
	require.NoError(t, err)
	assert.Nil(t, apt)
}

func TestRecordPayment(t *testing.T) {
	svc, repo := newTestService()

	apt, err := svc.Create(context.Background(), 1, validRequest())
	require.NoError(t, err)

	paid, err := svc.RecordPayment(context.Background(), 7, apt.ID, &model.RecordPaymentRequest{
		Amount:        5000,
		PaymentMethod: model.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	require.Len(t, repo.payments, 1)
	rev := repo.payments[0]
	assert.Equal(t, int64(5000), rev.Amount)
	require.NotNil(t, rev.RecordedBy)
	assert.Equal(t, int64(7), *rev.RecordedBy)
	require.NotNil(t, rev.AppointmentID)
	assert.Equal(t, apt.ID, *rev.AppointmentID)

	// Double payment is rejected.
	_, err = svc.RecordPayment(context.Background(), 7, apt.ID, &model.RecordPaymentRequest{
		Amount:        5000,
		PaymentMethod: model.PaymentMethodCash,
	})
	assert.Error(t, err)
	assert.Len(t, repo.payments, 1)
}
