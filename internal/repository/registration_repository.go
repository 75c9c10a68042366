package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"advising/internal/model"
)

// RegistrationRepository defines registration persistence operations.
type RegistrationRepository interface {
	CreateBatch(ctx context.Context, registrations []model.Registration) error
	// HeldCourses returns every course the student is registered for.
	HeldCourses(ctx context.Context, studentID uuid.UUID) ([]model.Course, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Registration, error)
	// WithTransaction runs fn against repositories bound to one transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx TxRepositories) error) error
}

// TxRepositories groups the repositories a registration transaction touches.
type TxRepositories struct {
	Users         UserRepository
	Courses       CourseRepository
	Registrations RegistrationRepository
}

type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository.
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// CreateBatch inserts registrations in one statement. Attached courses are
// never written.
func (r *registrationRepository) CreateBatch(ctx context.Context, registrations []model.Registration) error {
	if len(registrations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&registrations).Error
}

// HeldCourses joins the student's registrations onto the catalog.
func (r *registrationRepository) HeldCourses(ctx context.Context, studentID uuid.UUID) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).
		Joins("JOIN registrations ON registrations.course_id = courses.id").
		Where("registrations.student_id = ?", studentID).
		Order("courses.code").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// ListByStudent returns registrations with their course, oldest first.
func (r *registrationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Registration, error) {
	var registrations []model.Registration
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at").
		Find(&registrations).Error; err != nil {
		return nil, err
	}
	return registrations, nil
}

// WithTransaction executes a function within a database transaction.
func (r *registrationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx TxRepositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, TxRepositories{
			Users:         &userRepository{db: tx},
			Courses:       &courseRepository{db: tx},
			Registrations: &registrationRepository{db: tx},
		})
	})
}
