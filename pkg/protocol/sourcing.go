package protocol

import (
	"context"

	"github.com/procura-ai/procura/pkg/models"
)

// SourcingClient is the upstream GraphQL/REST sourcing backend boundary.
// Every method returns the raw backend response body alongside its typed
// result; actions cache it on the state as an opaque blob for diagnostics.
// Transport concerns (auth, retries, timeouts) live behind this interface.
type SourcingClient interface {
	// CreateProject creates a sourcing project. The engagement ID is
	// generated client-side and echoed back by the backend; the returned
	// project ID is backend-assigned.
	CreateProject(ctx context.Context, engagementID string, details models.ProjectDetails) (projectID string, raw string, err error)

	// UpsertMilestones replaces the project's milestones.
	UpsertMilestones(ctx context.Context, projectID string, milestones []models.ProjectMilestone) (raw string, err error)

	// FindSuppliers searches for candidate suppliers. Results carry the
	// 1-based order IDs users reference during selection.
	FindSuppliers(ctx context.Context, projectID string) (suppliers []models.SelectedSupplier, raw string, err error)

	// SelectSuppliers records the user's supplier choices.
	SelectSuppliers(ctx context.Context, projectID string, selected []models.SelectedSupplier) (raw string, err error)

	// PublishProject publishes the project to the selected suppliers.
	PublishProject(ctx context.Context, projectID string) (raw string, err error)
}
