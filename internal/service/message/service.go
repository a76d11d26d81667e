package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

const defaultConversationLimit = 50

// ErrBadAddress rejects messages that name neither or both of a
// recipient and a group.
var ErrBadAddress = errors.New("message must address exactly one recipient or one group")

type Service struct {
	repo repository.MessageRepository
}

func NewService(repo repository.MessageRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Send(ctx context.Context, senderID int64, req *model.SendMessageRequest) (*model.Message, error) {
	if (req.RecipientID == nil) == (req.GroupID == nil) {
		return nil, ErrBadAddress
	}

	msgType := req.MessageType
	if msgType == "" {
		msgType = model.MessageTypeText
	}

	msg := &model.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		GroupID:     req.GroupID,
		Content:     req.Content,
		MessageType: msgType,
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return created, nil
}

func (s *Service) Conversation(ctx context.Context, userID, otherID int64, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		limit = defaultConversationLimit
	}
	return s.repo.ListConversation(ctx, userID, otherID, limit)
}

func (s *Service) GroupMessages(ctx context.Context, groupID int64, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		limit = defaultConversationLimit
	}
	return s.repo.ListGroupMessages(ctx, groupID, limit)
}

func (s *Service) MarkRead(ctx context.Context, id, recipientID int64) error {
	return s.repo.MarkRead(ctx, id, recipientID)
}

func (s *Service) CreateGroup(ctx context.Context, creatorID int64, req *model.CreateMessageGroupRequest) (*model.MessageGroup, error) {
	group := &model.MessageGroup{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   creatorID,
	}
	created, err := s.repo.CreateGroup(ctx, group, req.MemberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return created, nil
}

func (s *Service) ListGroups(ctx context.Context, userID int64) ([]*model.MessageGroup, error) {
	return s.repo.ListGroupsForUser(ctx, userID)
}
