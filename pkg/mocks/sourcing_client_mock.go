package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/procura-ai/procura/pkg/models"
)

// MockSourcingClient is a mock implementation of protocol.SourcingClient interface.
type MockSourcingClient struct {
	mock.Mock
}

func (m *MockSourcingClient) CreateProject(ctx context.Context, engagementID string, details models.ProjectDetails) (string, string, error) {
	args := m.Called(ctx, engagementID, details)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockSourcingClient) UpsertMilestones(ctx context.Context, projectID string, milestones []models.ProjectMilestone) (string, error) {
	args := m.Called(ctx, projectID, milestones)

	return args.String(0), args.Error(1)
}

func (m *MockSourcingClient) FindSuppliers(ctx context.Context, projectID string) ([]models.SelectedSupplier, string, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}

	return args.Get(0).([]models.SelectedSupplier), args.String(1), args.Error(2)
}

func (m *MockSourcingClient) SelectSuppliers(ctx context.Context, projectID string, selected []models.SelectedSupplier) (string, error) {
	args := m.Called(ctx, projectID, selected)

	return args.String(0), args.Error(1)
}

func (m *MockSourcingClient) PublishProject(ctx context.Context, projectID string) (string, error) {
	args := m.Called(ctx, projectID)

	return args.String(0), args.Error(1)
}
