package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type queueRepository struct {
	BaseRepository
}

func NewQueueRepository(db *sqlx.DB) repository.QueueRepository {
	return &queueRepository{NewBaseRepository(db)}
}

// CheckIn inserts the entry at position max+1 of the doctor's open
// queue. Reading the max and inserting happen in one transaction so two
// concurrent check-ins cannot claim the same slot.
func (r *queueRepository) CheckIn(ctx context.Context, entry *model.WaitingQueueEntry) (*model.WaitingQueueEntry, error) {
	var created model.WaitingQueueEntry
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var position int
		err := tx.GetContext(ctx, &position, `
			SELECT COALESCE(MAX(position), 0) + 1 FROM waiting_queue
			WHERE doctor_id = $1 AND status IN ('waiting', 'called', 'in_progress')
		`, entry.DoctorID)
		if err != nil {
			return fmt.Errorf("failed to compute queue position: %w", err)
		}

		return tx.GetContext(ctx, &created, `
			INSERT INTO waiting_queue (
				appointment_id, patient_id, doctor_id, position, priority,
				estimated_wait_time, checked_in_at, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW(), 'waiting', NOW(), NOW())
			RETURNING *
		`,
			entry.AppointmentID,
			entry.PatientID,
			entry.DoctorID,
			position,
			entry.Priority,
			entry.EstimatedWaitTime,
		)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *queueRepository) GetByID(ctx context.Context, id int64) (*model.WaitingQueueEntry, error) {
	if !r.Available() {
		return nil, nil
	}

	var entry model.WaitingQueueEntry
	err := r.db.GetContext(ctx, &entry, `SELECT * FROM waiting_queue WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}
	return &entry, nil
}

func (r *queueRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.WaitingQueueEntry, error) {
	if !r.Available() {
		return []*model.WaitingQueueEntry{}, nil
	}

	var entries []*model.WaitingQueueEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM waiting_queue
		WHERE doctor_id = $1 AND status IN ('waiting', 'called')
		ORDER BY position ASC
	`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue entries: %w", err)
	}
	if entries == nil {
		entries = []*model.WaitingQueueEntry{}
	}
	return entries, nil
}

// UpdateStatus stamps called_at on call and seen_at when the encounter
// starts; the transition legality check lives in the service layer.
func (r *queueRepository) UpdateStatus(ctx context.Context, id int64, status model.QueueStatus, at time.Time) error {
	if !r.Available() {
		return ErrStoreUnavailable
	}

	query := `UPDATE waiting_queue SET status = $1, updated_at = $2`
	switch status {
	case model.QueueStatusCalled:
		query += `, called_at = $2`
	case model.QueueStatusInProgress:
		query += `, seen_at = $2`
	}
	query += ` WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, status, at, id)
	if err != nil {
		return fmt.Errorf("failed to update queue status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("queue entry %d not found", id)
	}
	return nil
}

// Remove deletes the entry and closes the gap by renumbering every open
// entry behind it, all inside one transaction.
func (r *queueRepository) Remove(ctx context.Context, id int64) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var entry model.WaitingQueueEntry
		err := tx.GetContext(ctx, &entry, `SELECT * FROM waiting_queue WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("queue entry %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("failed to load queue entry: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM waiting_queue WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete queue entry: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE waiting_queue SET position = position - 1, updated_at = NOW()
			WHERE doctor_id = $1 AND position > $2
			  AND status IN ('waiting', 'called', 'in_progress')
		`, entry.DoctorID, entry.Position)
		if err != nil {
			return fmt.Errorf("failed to renumber queue: %w", err)
		}
		return nil
	})
}
