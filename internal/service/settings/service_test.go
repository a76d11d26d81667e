package settings

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

type fakeSettingsRepo struct {
	settings *model.SystemSetting
	getCalls int
	fields   []*model.DynamicField
}

func (f *fakeSettingsRepo) Get(context.Context) (*model.SystemSetting, error) {
	f.getCalls++
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s *model.SystemSetting) error {
	f.settings = s
	return nil
}

func (f *fakeSettingsRepo) ListDynamicFields(_ context.Context, formType model.FormType) ([]*model.DynamicField, error) {
	var out []*model.DynamicField
	for _, field := range f.fields {
		if field.FormType == formType {
			out = append(out, field)
		}
	}
	return out, nil
}

func (f *fakeSettingsRepo) CreateDynamicField(_ context.Context, field *model.DynamicField) (*model.DynamicField, error) {
	field.ID = int64(len(f.fields) + 1)
	f.fields = append(f.fields, field)
	return field, nil
}

type nopAuditRepo struct{}

func (nopAuditRepo) Create(context.Context, int64, string, string, *int64, json.RawMessage, *string, *string) error {
	return nil
}
func (nopAuditRepo) List(context.Context, *model.AuditFilters) ([]*model.AuditLog, error) {
	return nil, nil
}
func (nopAuditRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

func TestGetCachesSettings(t *testing.T) {
	repo := &fakeSettingsRepo{settings: &model.SystemSetting{ID: 1, ClinicName: "North Clinic"}}
	svc := NewService(repo, audit.NewService(nopAuditRepo{}))

	first, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "North Clinic", first.ClinicName)
	assert.Equal(t, 1, repo.getCalls)

	// Second read is served from cache.
	_, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls)
}

func TestGetDoesNotCacheMissingSettings(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, audit.NewService(nopAuditRepo{}))

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getCalls, "nil settings must not be cached")
}

func TestUpdateInvalidatesCache(t *testing.T) {
	repo := &fakeSettingsRepo{settings: &model.SystemSetting{ID: 1, ClinicName: "North Clinic"}}
	svc := NewService(repo, audit.NewService(nopAuditRepo{}))

	_, err := svc.Get(context.Background())
	require.NoError(t, err)

	newName := "South Clinic"
	_, err = svc.Update(context.Background(), 1, &model.UpdateSettingsRequest{ClinicName: &newName})
	require.NoError(t, err)

	updated, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "South Clinic", updated.ClinicName)
}

func TestUpdateWithoutInitializedSettings(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, audit.NewService(nopAuditRepo{}))

	newName := "South Clinic"
	_, err := svc.Update(context.Background(), 1, &model.UpdateSettingsRequest{ClinicName: &newName})
	assert.Error(t, err)
}

func TestDynamicFields(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, audit.NewService(nopAuditRepo{}))

	_, err := svc.CreateDynamicField(context.Background(), 1, &model.CreateDynamicFieldRequest{
		FormType:   model.FormTypePatient,
		FieldName:  "insurance_no",
		FieldLabel: "Insurance number",
		FieldType:  model.FieldTypeText,
		Options:    []string{"a", "b"},
	})
	require.NoError(t, err)

	fields, err := svc.ListDynamicFields(context.Background(), model.FormTypePatient)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.NotNil(t, fields[0].Options)
	assert.JSONEq(t, `["a","b"]`, *fields[0].Options)

	none, err := svc.ListDynamicFields(context.Background(), model.FormTypeAppointment)
	require.NoError(t, err)
	assert.Empty(t, none)
}
