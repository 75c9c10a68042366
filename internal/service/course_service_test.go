package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"advising/internal/cache"
	apperrors "advising/internal/errors"
	"advising/internal/model"
)

func newCourseCache(t *testing.T) (*miniredis.Miniredis, *cache.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, cache.NewFromClient(rdb)
}

func TestCourseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes code", func(t *testing.T) {
		repo := new(MockCourseRepository)
		svc := NewCourseService(repo, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(c *model.Course) bool {
			return c.Code == "CSC101" && c.Title == "Intro to Computing" && c.Credits == 3
		})).Return(nil)

		course, err := svc.Create(ctx, " csc101 ", "Intro to Computing", 3)

		require.NoError(t, err)
		assert.Equal(t, "CSC101", course.Code)
		repo.AssertExpectations(t)
	})

	tests := []struct {
		name    string
		code    string
		title   string
		credits int
	}{
		{name: "zero credits", code: "CSC101", title: "Intro", credits: 0},
		{name: "too many credits", code: "CSC101", title: "Intro", credits: model.MaxCourseCredits + 1},
		{name: "blank code", code: "  ", title: "Intro", credits: 3},
		{name: "blank title", code: "CSC101", title: "", credits: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCourseRepository)
			svc := NewCourseService(repo, nil)

			_, err := svc.Create(ctx, tt.code, tt.title, tt.credits)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(MockCourseRepository)
		svc := NewCourseService(repo, nil)
		repo.On("Create", ctx, mock.Anything).Return(gorm.ErrDuplicatedKey)

		_, err := svc.Create(ctx, "CSC101", "Intro", 3)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateResource)
		assert.Contains(t, err.Error(), "CSC101")
	})
}

func TestCourseService_List_UsesCache(t *testing.T) {
	ctx := context.Background()
	mr, c := newCourseCache(t)
	repo := new(MockCourseRepository)
	svc := NewCourseService(repo, c)

	catalog := []model.Course{course("CSC101", 3), course("MTH101", 4)}
	repo.On("List", ctx).Return(catalog, nil).Once()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(catalogCacheKey))

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[1].Code, second[1].Code)
	repo.AssertNumberOfCalls(t, "List", 1)

	repo.On("Create", ctx, mock.Anything).Return(nil)
	_, err = svc.Create(ctx, "PHY101", "Physics", 3)
	require.NoError(t, err)
	assert.False(t, mr.Exists(catalogCacheKey))
}

func TestCourseService_List_StoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCourseRepository)
	svc := NewCourseService(repo, nil)
	repo.On("List", ctx).Return(nil, errors.New("timeout"))

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestCourseService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("dedupes by code with the last entry winning", func(t *testing.T) {
		repo := new(MockCourseRepository)
		svc := NewCourseService(repo, nil)
		repo.On("Upsert", ctx, []model.Course{
			{Code: "CSC101", Title: "Computing II", Credits: 4},
			{Code: "MTH101", Title: "Algebra", Credits: 3},
		}).Return(nil)

		n, err := svc.Import(ctx, []model.Course{
			{Code: "csc101", Title: "Computing", Credits: 3},
			{Code: "MTH101", Title: "Algebra", Credits: 3},
			{Code: "CSC101", Title: "Computing II", Credits: 4},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		repo.AssertExpectations(t)
	})

	t.Run("one invalid entry writes nothing", func(t *testing.T) {
		repo := new(MockCourseRepository)
		svc := NewCourseService(repo, nil)

		_, err := svc.Import(ctx, []model.Course{
			{Code: "CSC101", Title: "Computing", Credits: 3},
			{Code: "BAD", Title: "Too Heavy", Credits: 12},
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "entry 1")
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
