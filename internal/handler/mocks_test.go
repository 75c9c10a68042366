package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"advising/internal/auth"
	"advising/internal/model"
	"advising/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) VerifyCredentials(ctx context.Context, email, password string) (auth.Identity, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.Identity), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, userType model.Role) (auth.Identity, auth.Token, error) {
	args := m.Called(ctx, email, password, userType)
	return args.Get(0).(auth.Identity), args.Get(1).(auth.Token), args.Error(2)
}

func (m *MockAuthService) SignupStudent(ctx context.Context, req service.StudentSignup) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) SignupStaff(ctx context.Context, req service.StaffSignup) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) Create(ctx context.Context, code, title string, credits int) (*model.Course, error) {
	args := m.Called(ctx, code, title, credits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockCourseService) List(ctx context.Context) ([]model.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseService) Import(ctx context.Context, courses []model.Course) (int, error) {
	args := m.Called(ctx, courses)
	return args.Int(0), args.Error(1)
}

type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Register(ctx context.Context, studentID uuid.UUID, courseIDs []uuid.UUID) ([]model.Registration, error) {
	args := m.Called(ctx, studentID, courseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Registration), args.Error(1)
}

func (m *MockRegistrationService) Enrollment(ctx context.Context, studentID uuid.UUID) (*service.Enrollment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Enrollment), args.Error(1)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, sender auth.Identity, recipientID uuid.UUID, content string) (*model.Message, error) {
	args := m.Called(ctx, sender, recipientID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) Conversation(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageService) Recent(ctx context.Context, limit int) ([]model.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageService) Contacts(ctx context.Context, identity auth.Identity) ([]model.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}
