package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"advising/internal/cache"
	apperrors "advising/internal/errors"
	"advising/internal/model"
	"advising/internal/repository"
)

const (
	catalogCacheKey = "courses:all"
	catalogCacheTTL = 5 * time.Minute
)

// CourseService manages the course catalog.
type CourseService interface {
	Create(ctx context.Context, code, title string, credits int) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	// Import upserts courses by code and returns how many were written.
	Import(ctx context.Context, courses []model.Course) (int, error)
}

type courseService struct {
	repo  repository.CourseRepository
	cache *cache.Client
}

// NewCourseService creates a new course service.
func NewCourseService(repo repository.CourseRepository, cache *cache.Client) CourseService {
	return &courseService{
		repo:  repo,
		cache: cache,
	}
}

func normalizeCourse(code, title string, credits int) (model.Course, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	title = strings.TrimSpace(title)
	if code == "" || title == "" {
		return model.Course{}, apperrors.Validation("course code and title are required")
	}
	if credits < model.MinCourseCredits || credits > model.MaxCourseCredits {
		return model.Course{}, apperrors.Validation("credits must be between %d and %d", model.MinCourseCredits, model.MaxCourseCredits)
	}
	return model.Course{Code: code, Title: title, Credits: credits}, nil
}

// Create adds a course with an upper-cased, unique code.
func (s *courseService) Create(ctx context.Context, code, title string, credits int) (*model.Course, error) {
	course, err := normalizeCourse(code, title, credits)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &course); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.Duplicate("course code %s already exists", course.Code)
		}
		return nil, apperrors.Upstream("create course", err)
	}

	_ = s.cache.Delete(ctx, catalogCacheKey)
	return &course, nil
}

// List returns the catalog, served from cache when possible.
func (s *courseService) List(ctx context.Context) ([]model.Course, error) {
	var cached []model.Course
	if s.cache.GetJSON(ctx, catalogCacheKey, &cached) {
		return cached, nil
	}

	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Upstream("list courses", err)
	}

	_ = s.cache.SetJSON(ctx, catalogCacheKey, courses, catalogCacheTTL)
	return courses, nil
}

// Import validates every course first and writes nothing if one is invalid.
// Later entries win when a code repeats.
func (s *courseService) Import(ctx context.Context, courses []model.Course) (int, error) {
	byCode := make(map[string]int, len(courses))
	normalized := make([]model.Course, 0, len(courses))
	for i, c := range courses {
		n, err := normalizeCourse(c.Code, c.Title, c.Credits)
		if err != nil {
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
		if at, ok := byCode[n.Code]; ok {
			normalized[at] = n
			continue
		}
		byCode[n.Code] = len(normalized)
		normalized = append(normalized, n)
	}

	if err := s.repo.Upsert(ctx, normalized); err != nil {
		return 0, apperrors.Upstream("import courses", err)
	}

	_ = s.cache.Delete(ctx, catalogCacheKey)
	return len(normalized), nil
}
