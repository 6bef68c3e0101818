package mocks

import (
	"context"

	"reviewapi/internal/model"
	"reviewapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialService) ModeratorLogin(ctx context.Context, username, password string) (string, *model.Moderator, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.Moderator), args.Error(2)
}

func (m *MockCredentialService) Register(ctx context.Context, username, password string) (*model.Moderator, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Moderator), args.Error(1)
}

func (m *MockCredentialService) List(ctx context.Context) ([]model.Moderator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Moderator), args.Error(1)
}

func (m *MockCredentialService) Delete(ctx context.Context, id string) (*service.CascadeResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CascadeResult), args.Error(1)
}
