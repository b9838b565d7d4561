package mocks

import (
	"context"

	"applyapi/internal/model"
	"applyapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Submit(ctx context.Context, actor model.Actor, in service.SubmitInput) (*model.Application, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, actor model.Actor, applicationID, status, notes string) (*model.Application, error) {
	args := m.Called(ctx, actor, applicationID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) ListForJob(ctx context.Context, actor model.Actor, jobID string, limit, offset int) ([]model.Application, error) {
	args := m.Called(ctx, actor, jobID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationService) ListOwn(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Application, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationService) ListByEmail(ctx context.Context, actor model.Actor, email string, limit, offset int) (*service.ApplicationsByEmail, error) {
	args := m.Called(ctx, actor, email, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationsByEmail), args.Error(1)
}

func (m *MockApplicationService) FetchResume(ctx context.Context, actor model.Actor, applicationID string) (*service.Resume, error) {
	args := m.Called(ctx, actor, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Resume), args.Error(1)
}
