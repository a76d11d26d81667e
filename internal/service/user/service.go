package user

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/internal/service/audit"
)

const activeWindow = 24 * time.Hour

type Service struct {
	repo    repository.UserRepository
	auditor *audit.Service
}

func NewService(repo repository.UserRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

// SignIn upserts the user identified by the external identity and
// returns the stored row. Repeated sign-ins with the same identity keep
// a single row and advance last_signed_in.
func (s *Service) SignIn(ctx context.Context, upsert *model.UpsertUser) (*model.User, error) {
	now := time.Now()
	if upsert.LastSignedIn == nil {
		upsert.LastSignedIn = &now
	}

	if err := s.repo.Upsert(ctx, upsert); err != nil {
		return nil, fmt.Errorf("failed to sign in user: %w", err)
	}

	user, err := s.repo.GetByOpenID(ctx, upsert.OpenID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user after sign-in: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q not found after upsert", upsert.OpenID)
	}

	s.auditor.Log(ctx, user.ID, model.AuditActionSignIn, model.AuditEntityUser, &user.ID, nil)
	return user, nil
}

func (s *Service) GetByOpenID(ctx context.Context, openID string) (*model.User, error) {
	return s.repo.GetByOpenID(ctx, openID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// CountActive counts users signed in within the past 24 hours.
func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActiveSince(ctx, time.Now().Add(-activeWindow))
}
