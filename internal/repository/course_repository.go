package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"advising/internal/model"
)

// CourseRepository defines catalog persistence operations.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	// Upsert inserts courses or updates title and credits of existing codes.
	Upsert(ctx context.Context, courses []model.Course) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// Create creates a new course.
func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// FindByIDs returns the courses matching ids; unknown ids are skipped.
func (r *courseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Course, error) {
	var courses []model.Course
	if len(ids) == 0 {
		return courses, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// List returns the catalog ordered by code.
func (r *courseRepository) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Order("code").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// Upsert inserts or updates courses keyed by code.
func (r *courseRepository) Upsert(ctx context.Context, courses []model.Course) error {
	if len(courses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "credits", "updated_at"}),
	}).Create(&courses).Error
}
