package mocks

import (
	"context"

	"reviewapi/internal/model"
	"reviewapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockPaperService struct {
	mock.Mock
}

func (m *MockPaperService) Create(ctx context.Context, moderatorID, title, note string, files []service.Upload) (*model.Paper, error) {
	args := m.Called(ctx, moderatorID, title, note, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Paper), args.Error(1)
}

func (m *MockPaperService) Update(ctx context.Context, id string, note *string, files []service.Upload) (*model.Paper, error) {
	args := m.Called(ctx, id, note, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Paper), args.Error(1)
}

func (m *MockPaperService) RemoveAttachment(ctx context.Context, paperID, attachmentID string) (*model.Paper, error) {
	args := m.Called(ctx, paperID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Paper), args.Error(1)
}

func (m *MockPaperService) ListByModerator(ctx context.Context, moderatorID string) ([]model.Paper, error) {
	args := m.Called(ctx, moderatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Paper), args.Error(1)
}

func (m *MockPaperService) Delete(ctx context.Context, id string) (*service.CascadeResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CascadeResult), args.Error(1)
}

func (m *MockPaperService) DeleteByOwner(ctx context.Context, moderatorID string) (*service.CascadeResult, error) {
	args := m.Called(ctx, moderatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CascadeResult), args.Error(1)
}
