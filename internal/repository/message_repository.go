package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"advising/internal/model"
)

// MessageRepository defines message persistence operations.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	// Conversation returns messages sent or received by userID, oldest first.
	Conversation(ctx context.Context, userID uuid.UUID) ([]model.Message, error)
	Recent(ctx context.Context, limit int) ([]model.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create stores the message and loads both parties.
func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(message).Error; err != nil {
		return err
	}
	return db.Preload("Sender").Preload("Recipient").First(message, "id = ?", message.ID).Error
}

func (r *messageRepository) Conversation(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Recent(ctx context.Context, limit int) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
