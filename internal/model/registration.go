package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registration links a student to one course.
type Registration struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	StudentID uuid.UUID `json:"student_id" gorm:"type:char(36);not null;uniqueIndex:idx_registration_student_course"`
	CourseID  uuid.UUID `json:"course_id" gorm:"type:char(36);not null;uniqueIndex:idx_registration_student_course"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
