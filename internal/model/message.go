package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a note between a student and an advisor or admin.
type Message struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	SenderID    uuid.UUID `json:"sender_id" gorm:"type:char(36);not null;index"`
	RecipientID uuid.UUID `json:"recipient_id" gorm:"type:char(36);not null;index"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	// Relations
	Sender    User `json:"sender" gorm:"foreignKey:SenderID"`
	Recipient User `json:"recipient" gorm:"foreignKey:RecipientID"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
