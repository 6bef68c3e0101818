package mocks

import (
	"context"
	"time"

	"reviewapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockPaperRepository struct {
	mock.Mock
}

func (m *MockPaperRepository) Create(ctx context.Context, p *model.Paper) (*model.Paper, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Paper), args.Error(1)
}

func (m *MockPaperRepository) FindByID(ctx context.Context, id string) (*model.Paper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Paper), args.Error(1)
}

func (m *MockPaperRepository) ListByModerator(ctx context.Context, moderatorID string) ([]model.Paper, error) {
	args := m.Called(ctx, moderatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Paper), args.Error(1)
}

func (m *MockPaperRepository) UpdateNote(ctx context.Context, id, note string, updatedAt time.Time) error {
	args := m.Called(ctx, id, note, updatedAt)
	return args.Error(0)
}

func (m *MockPaperRepository) AppendAttachment(ctx context.Context, paperID string, att *model.Attachment, updatedAt time.Time) error {
	args := m.Called(ctx, paperID, att, updatedAt)
	return args.Error(0)
}

func (m *MockPaperRepository) RemoveAttachment(ctx context.Context, paperID, attachmentID string, updatedAt time.Time) error {
	args := m.Called(ctx, paperID, attachmentID, updatedAt)
	return args.Error(0)
}

func (m *MockPaperRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
