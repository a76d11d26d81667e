package model

import "time"

type QueueStatus string

const (
	QueueStatusWaiting    QueueStatus = "waiting"
	QueueStatusCalled     QueueStatus = "called"
	QueueStatusInProgress QueueStatus = "in_progress"
	QueueStatusCompleted  QueueStatus = "completed"
	QueueStatusNoShow     QueueStatus = "no_show"
)

type QueuePriority string

const (
	QueuePriorityNormal  QueuePriority = "normal"
	QueuePriorityUrgent  QueuePriority = "urgent"
	QueuePriorityChild   QueuePriority = "child"
	QueuePriorityElderly QueuePriority = "elderly"
)

// WaitingQueueEntry is a patient's position in a doctor's same-day
// queue. Entries retire implicitly once status reaches completed or
// no_show.
type WaitingQueueEntry struct {
	ID                int64         `db:"id" json:"id"`
	AppointmentID     int64         `db:"appointment_id" json:"appointment_id"`
	PatientID         int64         `db:"patient_id" json:"patient_id"`
	DoctorID          int64         `db:"doctor_id" json:"doctor_id"`
	Position          int           `db:"position" json:"position"`
	Priority          QueuePriority `db:"priority" json:"priority"`
	EstimatedWaitTime *int          `db:"estimated_wait_time" json:"estimated_wait_time"`
	CheckedInAt       *time.Time    `db:"checked_in_at" json:"checked_in_at"`
	CalledAt          *time.Time    `db:"called_at" json:"called_at"`
	SeenAt            *time.Time    `db:"seen_at" json:"seen_at"`
	Status            QueueStatus   `db:"status" json:"status"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}

type CheckInRequest struct {
	AppointmentID     int64         `json:"appointment_id" binding:"required"`
	Priority          QueuePriority `json:"priority" binding:"omitempty,oneof=normal urgent child elderly"`
	EstimatedWaitTime *int          `json:"estimated_wait_time" binding:"omitempty,min=0"`
}

type UpdateQueueStatusRequest struct {
	Status QueueStatus `json:"status" binding:"required,oneof=waiting called in_progress completed no_show"`
}

// CanTransition reports whether a queue entry may move between the two
// statuses: waiting -> called -> in_progress -> completed, with no_show
// reachable from waiting or called.
func (s QueueStatus) CanTransition(to QueueStatus) bool {
	switch s {
	case QueueStatusWaiting:
		return to == QueueStatusCalled || to == QueueStatusNoShow
	case QueueStatusCalled:
		return to == QueueStatusInProgress || to == QueueStatusNoShow
	case QueueStatusInProgress:
		return to == QueueStatusCompleted
	}
	return false
}
