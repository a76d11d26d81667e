package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-api/internal/repository"
)

// AuditCleanup deletes audit rows past the retention window once a day.
type AuditCleanup struct {
	audits        repository.AuditRepository
	retentionDays int
	interval      time.Duration
}

func NewAuditCleanup(audits repository.AuditRepository, retentionDays int) *AuditCleanup {
	return &AuditCleanup{
		audits:        audits,
		retentionDays: retentionDays,
		interval:      24 * time.Hour,
	}
}

func (c *AuditCleanup) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Info().Int("retention_days", c.retentionDays).Msg("audit cleanup started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("audit cleanup stopped")
			return
		case <-ticker.C:
			c.Run(ctx)
		}
	}
}

func (c *AuditCleanup) Run(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -c.retentionDays)
	deleted, err := c.audits.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("audit cleanup failed")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("audit rows purged")
	}
}
