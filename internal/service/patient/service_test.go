package patient

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

type fakePatientRepo struct {
	patients      map[int64]*model.Patient
	nextID        int64
	searchQueries []string
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: map[int64]*model.Patient{}, nextID: 1}
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) (*model.Patient, error) {
	p.ID = f.nextID
	f.nextID++
	p.IsActive = true
	f.patients[p.ID] = p
	return p, nil
}

func (f *fakePatientRepo) GetByID(_ context.Context, id int64) (*model.Patient, error) {
	return f.patients[id], nil
}

func (f *fakePatientRepo) GetByPhone(_ context.Context, phone string) (*model.Patient, error) {
	for _, p := range f.patients {
		if p.Phone == phone {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepo) Search(_ context.Context, query string) ([]*model.Patient, error) {
	f.searchQueries = append(f.searchQueries, query)
	return []*model.Patient{}, nil
}

func (f *fakePatientRepo) List(context.Context, int, int) ([]*model.Patient, error) {
	return nil, nil
}

func (f *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Deactivate(_ context.Context, id int64) error {
	if p, ok := f.patients[id]; ok {
		p.IsActive = false
	}
	return nil
}

type fakeMedicalRecordRepo struct {
	records []*model.MedicalRecord
}

func (f *fakeMedicalRecordRepo) Create(_ context.Context, rec *model.MedicalRecord) (*model.MedicalRecord, error) {
	rec.ID = int64(len(f.records) + 1)
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeMedicalRecordRepo) ListByPatient(_ context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	var out []*model.MedicalRecord
	for _, r := range f.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

type nopAuditRepo struct{}

func (nopAuditRepo) Create(context.Context, int64, string, string, *int64, json.RawMessage, *string, *string) error {
	return nil
}
func (nopAuditRepo) List(context.Context, *model.AuditFilters) ([]*model.AuditLog, error) {
	return nil, nil
}
func (nopAuditRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

func newTestService() (*Service, *fakePatientRepo, *fakeMedicalRecordRepo) {
	repo := newFakePatientRepo()
	medical := &fakeMedicalRecordRepo{}
	return NewService(repo, medical, audit.NewService(nopAuditRepo{})), repo, medical
}

func TestCreateSerializesListFields(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.Create(context.Background(), 1, &model.CreatePatientRequest{
		FirstName: "Pat",
		LastName:  "One",
		Phone:     "555-0100",
		Allergies: []string{"penicillin"},
	})
	require.NoError(t, err)

	stored := repo.patients[created.ID]
	require.NotNil(t, stored.Allergies)
	assert.JSONEq(t, `["penicillin"]`, *stored.Allergies)
	assert.Nil(t, stored.MedicalHistory)
}

// An empty query never reaches the store.
func TestSearchShortCircuitsEmptyQuery(t *testing.T) {
	svc, repo, _ := newTestService()

	results, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Empty(t, repo.searchQueries)

	_, err = svc.Search(context.Background(), "smith")
	require.NoError(t, err)
	assert.Equal(t, []string{"smith"}, repo.searchQueries)
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), 1, &model.CreatePatientRequest{
		FirstName: "Pat", LastName: "One", Phone: "555-0100",
	})
	require.NoError(t, err)

	newPhone := "555-0199"
	updated, err := svc.Update(context.Background(), 1, created.ID, &model.UpdatePatientRequest{
		Phone: &newPhone,
	})
	require.NoError(t, err)

	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "Pat", updated.FirstName)
}

func TestUpdateMissingPatient(t *testing.T) {
	svc, _, _ := newTestService()

	updated, err := svc.Update(context.Background(), 1, 99, &model.UpdatePatientRequest{})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeactivate(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.Create(context.Background(), 1, &model.CreatePatientRequest{
		FirstName: "Pat", LastName: "One", Phone: "555-0100",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), 1, created.ID))
	assert.False(t, repo.patients[created.ID].IsActive)
}

func TestAddMedicalRecord(t *testing.T) {
	svc, _, medical := newTestService()

	created, err := svc.Create(context.Background(), 1, &model.CreatePatientRequest{
		FirstName: "Pat", LastName: "One", Phone: "555-0100",
	})
	require.NoError(t, err)

	rec, err := svc.AddMedicalRecord(context.Background(), 1, created.ID, &model.CreateMedicalRecordRequest{
		DoctorID:   2,
		RecordType: model.RecordTypeNote,
		Title:      "Visit",
		Content:    "All good",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, rec.PatientID)
	assert.Len(t, medical.records, 1)

	list, err := svc.ListMedicalRecords(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
