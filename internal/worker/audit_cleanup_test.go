package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicore/clinic-api/internal/model"
)

type fakeAuditRepo struct {
	cutoff time.Time
}

func (f *fakeAuditRepo) Create(context.Context, int64, string, string, *int64, json.RawMessage, *string, *string) error {
	return nil
}
func (f *fakeAuditRepo) List(context.Context, *model.AuditFilters) ([]*model.AuditLog, error) {
	return nil, nil
}
func (f *fakeAuditRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 3, nil
}

func TestAuditCleanupCutoff(t *testing.T) {
	repo := &fakeAuditRepo{}
	c := NewAuditCleanup(repo, 365)

	c.Run(context.Background())

	want := time.Now().AddDate(0, 0, -365)
	assert.WithinDuration(t, want, repo.cutoff, time.Minute)
}
