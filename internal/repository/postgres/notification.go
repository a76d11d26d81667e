package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type notificationRepository struct {
	BaseRepository
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{NewBaseRepository(db)}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if !r.Available() {
		return nil, ErrStoreUnavailable
	}

	query := `
		INSERT INTO notifications (
			user_id, title, content, type, related_id, is_read, sent_via, created_at
		) VALUES ($1, $2, $3, $4, $5, FALSE, $6, NOW())
		RETURNING *
	`
	var created model.Notification
	err := r.db.GetContext(ctx, &created, query,
		n.UserID,
		n.Title,
		n.Content,
		n.Type,
		n.RelatedID,
		n.SentVia,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &created, nil
}

func (r *notificationRepository) ListUnread(ctx context.Context, userID int64) ([]*model.Notification, error) {
	if !r.Available() {
		return []*model.Notification{}, nil
	}

	var notifications []*model.Notification
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications
		WHERE user_id = $1 AND is_read = FALSE
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread notifications: %w", err)
	}
	if notifications == nil {
		notifications = []*model.Notification{}
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_read = FALSE
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
