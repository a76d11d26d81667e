package notification

import (
	"context"
	"fmt"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

// Service reads and flags notifications. Rows are created by server
// side triggers (the reminder worker); delivery over external channels
// is out of scope and the channel is stored as data only.
type Service struct {
	repo repository.NotificationRepository
}

func NewService(repo repository.NotificationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if n.SentVia == "" {
		n.SentVia = model.ChannelInApp
	}
	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return created, nil
}

func (s *Service) ListUnread(ctx context.Context, userID int64) ([]*model.Notification, error) {
	return s.repo.ListUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}
