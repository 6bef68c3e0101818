package mocks

import (
	"context"

	"reviewapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockModeratorRepository struct {
	mock.Mock
}

func (m *MockModeratorRepository) Create(ctx context.Context, mod *model.Moderator) (*model.Moderator, error) {
	args := m.Called(ctx, mod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Moderator), args.Error(1)
}

func (m *MockModeratorRepository) FindByID(ctx context.Context, id string) (*model.Moderator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Moderator), args.Error(1)
}

func (m *MockModeratorRepository) FindByUsername(ctx context.Context, username string) (*model.Moderator, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Moderator), args.Error(1)
}

func (m *MockModeratorRepository) List(ctx context.Context) ([]model.Moderator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Moderator), args.Error(1)
}

func (m *MockModeratorRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
