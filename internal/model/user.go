package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role decides which areas and actions a user may reach.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RoleAdvisor Role = "advisor"
)

// Valid reports whether r is one of the three fixed roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleAdvisor:
		return true
	}
	return false
}

// User represents an account of any role.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	MatricNumber *string   `json:"matric_number,omitempty" gorm:"uniqueIndex;size:64"` // students only
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Registrations []Registration `json:"registrations,omitempty" gorm:"foreignKey:StudentID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
