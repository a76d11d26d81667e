package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type auditRepository struct {
	BaseRepository
}

func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &auditRepository{NewBaseRepository(db)}
}

// Create inserts one immutable row. A nil db is a silent no-op: audit
// logging is best-effort and must never block the primary mutation.
func (r *auditRepository) Create(ctx context.Context, userID int64, action, entityType string, entityID *int64, changes json.RawMessage, ip, userAgent *string) error {
	if !r.Available() {
		return nil
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (
			user_id, action, entity_type, entity_id, changes,
			ip_address, user_agent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`, userID, action, entityType, entityID, changes, ip, userAgent)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, filters *model.AuditFilters) ([]*model.AuditLog, error) {
	if !r.Available() {
		return []*model.AuditLog{}, nil
	}

	query := `SELECT * FROM audit_logs WHERE 1=1`
	args := []interface{}{}
	idx := 1

	add := func(cond string, v interface{}) {
		query += fmt.Sprintf(" AND %s = $%d", cond, idx)
		args = append(args, v)
		idx++
	}

	if filters != nil {
		if filters.UserID != 0 {
			add("user_id", filters.UserID)
		}
		if filters.EntityType != "" {
			add("entity_type", filters.EntityType)
		}
		if filters.Action != "" {
			add("action", filters.Action)
		}
		if !filters.From.IsZero() {
			query += fmt.Sprintf(" AND created_at >= $%d", idx)
			args = append(args, filters.From)
			idx++
		}
		if !filters.To.IsZero() {
			query += fmt.Sprintf(" AND created_at <= $%d", idx)
			args = append(args, filters.To)
			idx++
		}
	}

	query += " ORDER BY created_at DESC"

	limit := 100
	if filters != nil && filters.Limit > 0 {
		limit = filters.Limit
	}
	query += fmt.Sprintf(" LIMIT $%d", idx)
	args = append(args, limit)
	idx++

	if filters != nil && filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", idx)
		args = append(args, filters.Offset)
	}

	var logs []*model.AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	if logs == nil {
		logs = []*model.AuditLog{}
	}
	return logs, nil
}

func (r *auditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if !r.Available() {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old audit logs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
