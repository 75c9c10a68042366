package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "advising/internal/errors"
	"advising/internal/repository"
)

// CourseSummary is a registered course as shown to staff.
type CourseSummary struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Credits int    `json:"credits"`
}

// StudentSummary is a student with their registered courses.
type StudentSummary struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	MatricNumber string          `json:"matric_number"`
	CreatedAt    time.Time       `json:"created_at"`
	Courses      []CourseSummary `json:"courses"`
	TotalCredits int             `json:"total_credits"`
}

// StudentService exposes student listings to admins and advisors.
type StudentService interface {
	List(ctx context.Context) ([]StudentSummary, error)
}

type studentService struct {
	users repository.UserRepository
}

// NewStudentService builds a StudentService.
func NewStudentService(users repository.UserRepository) StudentService {
	return &studentService{users: users}
}

// List returns students newest first.
func (s *studentService) List(ctx context.Context) ([]StudentSummary, error) {
	users, err := s.users.ListStudentsWithCourses(ctx)
	if err != nil {
		return nil, apperrors.Upstream("list students", err)
	}

	summaries := make([]StudentSummary, 0, len(users))
	for _, u := range users {
		summary := StudentSummary{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
			Courses:   make([]CourseSummary, 0, len(u.Registrations)),
		}
		if u.MatricNumber != nil {
			summary.MatricNumber = *u.MatricNumber
		}
		for _, r := range u.Registrations {
			summary.Courses = append(summary.Courses, CourseSummary{
				Code:    r.Course.Code,
				Title:   r.Course.Title,
				Credits: r.Course.Credits,
			})
			summary.TotalCredits += r.Course.Credits
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
