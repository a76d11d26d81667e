package model

import "time"

type MessageType string

const (
	MessageTypeText         MessageType = "text"
	MessageTypeAlert        MessageType = "alert"
	MessageTypeNotification MessageType = "notification"
)

// Message is an internal staff message, addressed to either a single
// recipient or a group.
type Message struct {
	ID          int64       `db:"id" json:"id"`
	SenderID    int64       `db:"sender_id" json:"sender_id"`
	RecipientID *int64      `db:"recipient_id" json:"recipient_id"`
	GroupID     *int64      `db:"group_id" json:"group_id"`
	Content     string      `db:"content" json:"content"`
	MessageType MessageType `db:"message_type" json:"message_type"`
	IsRead      bool        `db:"is_read" json:"is_read"`
	ReadAt      *time.Time  `db:"read_at" json:"read_at"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

type MessageGroup struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	CreatedBy   int64     `db:"created_by" json:"created_by"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type MessageGroupMember struct {
	ID       int64     `db:"id" json:"id"`
	GroupID  int64     `db:"group_id" json:"group_id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

type SendMessageRequest struct {
	RecipientID *int64      `json:"recipient_id"`
	GroupID     *int64      `json:"group_id"`
	Content     string      `json:"content" binding:"required"`
	MessageType MessageType `json:"message_type" binding:"omitempty,oneof=text alert notification"`
}

type CreateMessageGroupRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description"`
	MemberIDs   []int64 `json:"member_ids"`
}
