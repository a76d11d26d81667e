package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
)

type fakeStatsRepo struct {
	daily *model.DailyStatistics
}

func (f *fakeStatsRepo) Daily(context.Context, time.Time) (*model.DailyStatistics, error) {
	return f.daily, nil
}

type fakeUserRepo struct {
	since time.Time
	count int64
}

func (f *fakeUserRepo) Upsert(context.Context, *model.UpsertUser) error { return nil }
func (f *fakeUserRepo) GetByOpenID(context.Context, string) (*model.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByID(context.Context, int64) (*model.User, error) { return nil, nil }
func (f *fakeUserRepo) CountActiveSince(_ context.Context, since time.Time) (int64, error) {
	f.since = since
	return f.count, nil
}

type fakeRevenueRepo struct{}

func (fakeRevenueRepo) Create(_ context.Context, r *model.RevenueRecord) (*model.RevenueRecord, error) {
	return r, nil
}
func (fakeRevenueRepo) MonthlyByDoctor(context.Context, int, time.Month) ([]*model.DoctorRevenue, error) {
	return []*model.DoctorRevenue{}, nil
}

// A day with no data yields a zero-valued struct, never nil.
func TestDailyNeverReturnsNil(t *testing.T) {
	svc := NewService(&fakeStatsRepo{daily: nil}, &fakeUserRepo{}, fakeRevenueRepo{})

	stats, err := svc.Daily(context.Background(), time.Now())
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, &model.DailyStatistics{}, stats)
}

func TestDailyPassesThroughData(t *testing.T) {
	svc := NewService(&fakeStatsRepo{daily: &model.DailyStatistics{TotalAppointments: 5}}, &fakeUserRepo{}, fakeRevenueRepo{})

	stats, err := svc.Daily(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalAppointments)
}

func TestActiveUsersWindow(t *testing.T) {
	users := &fakeUserRepo{count: 3}
	svc := NewService(&fakeStatsRepo{}, users, fakeRevenueRepo{})

	n, err := svc.ActiveUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// The window reaches back roughly 24 hours.
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), users.since, time.Minute)
}
