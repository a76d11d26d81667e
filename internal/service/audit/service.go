package audit

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

// Service writes the audit trail. Logging is best-effort by contract:
// a failed audit write is reported to the logger and swallowed so it
// can never abort the mutation that triggered it.
type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// LogOptions carries optional request metadata for an audit entry.
type LogOptions struct {
	Changes   interface{}
	IPAddress string
	UserAgent string
}

// Log records one immutable audit entry, fire-and-forget.
func (s *Service) Log(ctx context.Context, userID int64, action, entityType string, entityID *int64, opts *LogOptions) {
	var changes json.RawMessage
	var ip, userAgent *string

	if opts != nil {
		if opts.Changes != nil {
			b, err := json.Marshal(opts.Changes)
			if err != nil {
				log.Warn().Err(err).Str("action", action).Msg("failed to serialize audit changes")
			} else {
				changes = b
			}
		}
		if opts.IPAddress != "" {
			ip = &opts.IPAddress
		}
		if opts.UserAgent != "" {
			userAgent = &opts.UserAgent
		}
	}

	if err := s.repo.Create(ctx, userID, action, entityType, entityID, changes, ip, userAgent); err != nil {
		log.Error().Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Msg("failed to write audit log")
	}
}

func (s *Service) List(ctx context.Context, filters *model.AuditFilters) ([]*model.AuditLog, error) {
	return s.repo.List(ctx, filters)
}
