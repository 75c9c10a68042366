package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"advising/internal/auth"
	apperrors "advising/internal/errors"
	"advising/internal/model"
	"advising/internal/repository"
)

const maxMessageLength = 2000

// MessageService exchanges messages between students and staff.
type MessageService interface {
	Send(ctx context.Context, sender auth.Identity, recipientID uuid.UUID, content string) (*model.Message, error)
	Conversation(ctx context.Context, userID uuid.UUID) ([]model.Message, error)
	Recent(ctx context.Context, limit int) ([]model.Message, error)
	// Contacts lists who identity may write to.
	Contacts(ctx context.Context, identity auth.Identity) ([]model.User, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

// NewMessageService creates a new message service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) MessageService {
	return &messageService{messages: messages, users: users}
}

// Send stores a message. Every message has exactly one student party.
func (s *messageService) Send(ctx context.Context, sender auth.Identity, recipientID uuid.UUID, content string) (*model.Message, error) {
	senderID, err := uuid.Parse(sender.ID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("message content is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, apperrors.Validation("message must be at most %d characters", maxMessageLength)
	}
	if recipientID == senderID {
		return nil, apperrors.Validation("cannot send a message to yourself")
	}

	recipient, err := s.users.FindByID(ctx, recipientID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.Validation("recipient not found")
		}
		return nil, apperrors.Upstream("find recipient", err)
	}
	if (sender.Role == model.RoleStudent) == (recipient.Role == model.RoleStudent) {
		return nil, apperrors.Validation("messages are exchanged between students and staff")
	}

	message := &model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, apperrors.Upstream("create message", err)
	}
	return message, nil
}

// Conversation returns every message the user sent or received, oldest first.
func (s *messageService) Conversation(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	messages, err := s.messages.Conversation(ctx, userID)
	if err != nil {
		return nil, apperrors.Upstream("list messages", err)
	}
	return messages, nil
}

// Recent returns the newest messages across the platform.
func (s *messageService) Recent(ctx context.Context, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	messages, err := s.messages.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.Upstream("list recent messages", err)
	}
	return messages, nil
}

// Contacts returns staff for students and students for staff.
func (s *messageService) Contacts(ctx context.Context, identity auth.Identity) ([]model.User, error) {
	roles := []model.Role{model.RoleStudent}
	if identity.Role == model.RoleStudent {
		roles = []model.Role{model.RoleAdvisor, model.RoleAdmin}
	}
	users, err := s.users.ListByRole(ctx, roles...)
	if err != nil {
		return nil, apperrors.Upstream("list contacts", err)
	}
	return users, nil
}
