package mocks

import (
	"context"
	"time"

	"applyapi/internal/model"
	"applyapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindDuplicate(ctx context.Context, jobID, applicantID string) (*model.Application, error) {
	args := m.Called(ctx, jobID, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	args := m.Called(ctx, app)
	if f, ok := args.Get(0).(func(context.Context, *model.Application) *model.Application); ok {
		return f(ctx, app), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByJob(ctx context.Context, jobID string, pq repository.PageQuery) ([]model.Application, error) {
	args := m.Called(ctx, jobID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByApplicant(ctx context.Context, applicantID string, pq repository.PageQuery) ([]model.Application, error) {
	args := m.Called(ctx, applicantID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationRepository) SetStatus(ctx context.Context, id string, status model.Status, notes *string, updatedAt time.Time) (*model.Application, error) {
	args := m.Called(ctx, id, status, notes, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

type MockJobProvider struct {
	mock.Mock
}

func (m *MockJobProvider) GetJob(ctx context.Context, id string) (*model.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserProvider) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
