package model

import "time"

type NotificationType string

const (
	NotificationTypeAppointmentReminder NotificationType = "appointment_reminder"
	NotificationTypeFollowUp            NotificationType = "follow_up"
	NotificationTypeMessage             NotificationType = "message"
	NotificationTypeAlert               NotificationType = "alert"
	NotificationTypeSystem              NotificationType = "system"
)

type NotificationChannel string

const (
	ChannelInApp    NotificationChannel = "in_app"
	ChannelSMS      NotificationChannel = "sms"
	ChannelWhatsApp NotificationChannel = "whatsapp"
	ChannelEmail    NotificationChannel = "email"
)

// Notification is a user-facing alert. The channel is recorded as data
// only; delivery is handled outside this system.
type Notification struct {
	ID        int64               `db:"id" json:"id"`
	UserID    int64               `db:"user_id" json:"user_id"`
	Title     string              `db:"title" json:"title"`
	Content   *string             `db:"content" json:"content"`
	Type      NotificationType    `db:"type" json:"type"`
	RelatedID *int64              `db:"related_id" json:"related_id"`
	IsRead    bool                `db:"is_read" json:"is_read"`
	ReadAt    *time.Time          `db:"read_at" json:"read_at"`
	SentVia   NotificationChannel `db:"sent_via" json:"sent_via"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
}
