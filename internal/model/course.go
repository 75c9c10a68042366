package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// MinCourseCredits and MaxCourseCredits bound Course.Credits.
	MinCourseCredits = 1
	MaxCourseCredits = 6
)

// Course is an entry of the catalog. Code is stored upper-cased.
type Course struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;size:32;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Credits   int       `json:"credits" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
