package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/procura-ai/procura/pkg/models"
)

// MockStateRepository is a mock implementation of persistence.StateRepository interface.
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) GetByUser(ctx context.Context, userID string) (*models.UserWorkflowState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.UserWorkflowState), args.Error(1)
}

func (m *MockStateRepository) Save(ctx context.Context, state *models.UserWorkflowState) error {
	args := m.Called(ctx, state)

	return args.Error(0)
}

func (m *MockStateRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockStateRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}
