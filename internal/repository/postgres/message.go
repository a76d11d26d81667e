package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type messageRepository struct {
	BaseRepository
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{NewBaseRepository(db)}
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if !r.Available() {
		return nil, ErrStoreUnavailable
	}

	query := `
		INSERT INTO messages (
			sender_id, recipient_id, group_id, content, message_type,
			is_read, created_at
		) VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
		RETURNING *
	`
	var created model.Message
	err := r.db.GetContext(ctx, &created, query,
		msg.SenderID,
		msg.RecipientID,
		msg.GroupID,
		msg.Content,
		msg.MessageType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &created, nil
}

func (r *messageRepository) ListConversation(ctx context.Context, userID, otherID int64, limit int) ([]*model.Message, error) {
	if !r.Available() {
		return []*model.Message{}, nil
	}

	var messages []*model.Message
	err := r.db.SelectContext(ctx, &messages, `
		SELECT * FROM messages
		WHERE group_id IS NULL
		  AND ((sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1))
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, otherID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	if messages == nil {
		messages = []*model.Message{}
	}
	return messages, nil
}

func (r *messageRepository) ListGroupMessages(ctx context.Context, groupID int64, limit int) ([]*model.Message, error) {
	if !r.Available() {
		return []*model.Message{}, nil
	}

	var messages []*model.Message
	err := r.db.SelectContext(ctx, &messages, `
		SELECT * FROM messages WHERE group_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list group messages: %w", err)
	}
	if messages == nil {
		messages = []*model.Message{}
	}
	return messages, nil
}

// MarkRead only flips messages addressed to the given recipient.
func (r *messageRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND recipient_id = $2 AND is_read = FALSE
	`, id, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

func (r *messageRepository) CreateGroup(ctx context.Context, group *model.MessageGroup, memberIDs []int64) (*model.MessageGroup, error) {
	var created model.MessageGroup
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &created, `
			INSERT INTO message_groups (name, description, created_by, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, TRUE, NOW(), NOW())
			RETURNING *
		`, group.Name, group.Description, group.CreatedBy)
		if err != nil {
			return fmt.Errorf("failed to create message group: %w", err)
		}

		members := append([]int64{group.CreatedBy}, memberIDs...)
		seen := make(map[int64]bool, len(members))
		for _, uid := range members {
			if seen[uid] {
				continue
			}
			seen[uid] = true
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO message_group_members (group_id, user_id, joined_at)
				VALUES ($1, $2, NOW())
			`, created.ID, uid); err != nil {
				return fmt.Errorf("failed to add group member: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *messageRepository) ListGroupsForUser(ctx context.Context, userID int64) ([]*model.MessageGroup, error) {
	if !r.Available() {
		return []*model.MessageGroup{}, nil
	}

	var groups []*model.MessageGroup
	err := r.db.SelectContext(ctx, &groups, `
		SELECT g.* FROM message_groups g
		JOIN message_group_members m ON m.group_id = g.id
		WHERE m.user_id = $1 AND g.is_active = TRUE
		ORDER BY g.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list message groups: %w", err)
	}
	if groups == nil {
		groups = []*model.MessageGroup{}
	}
	return groups, nil
}
