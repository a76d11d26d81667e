package statistics

import (
	"context"
	"time"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type Service struct {
	repo        repository.StatisticsRepository
	userRepo    repository.UserRepository
	revenueRepo repository.RevenueRepository
}

func NewService(repo repository.StatisticsRepository, userRepo repository.UserRepository, revenueRepo repository.RevenueRepository) *Service {
	return &Service{repo: repo, userRepo: userRepo, revenueRepo: revenueRepo}
}

// Daily never returns nil: a day without data is all zeros.
func (s *Service) Daily(ctx context.Context, date time.Time) (*model.DailyStatistics, error) {
	stats, err := s.repo.Daily(ctx, date)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &model.DailyStatistics{}
	}
	return stats, nil
}

func (s *Service) ActiveUsers(ctx context.Context) (int64, error) {
	return s.userRepo.CountActiveSince(ctx, time.Now().Add(-24*time.Hour))
}

func (s *Service) MonthlyRevenue(ctx context.Context, year int, month time.Month) ([]*model.DoctorRevenue, error) {
	return s.revenueRepo.MonthlyByDoctor(ctx, year, month)
}
