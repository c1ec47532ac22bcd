package postgresql_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/persistence/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var postgresContainer *postgres.PostgresContainer

func setupTestDB(t *testing.T) (*postgresql.Persistence, context.Context) {
	t.Helper()

	if os.Getenv("TESTCONTAINERS_DISABLED") != "" {
		t.Skip("testcontainers disabled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	t.Cleanup(cancel)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		var err error

		postgresContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("procura_test"),
			postgres.WithUsername("procura"),
			postgres.WithPassword("procura"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	persistence, err := postgresql.NewPersistence(ctx, logger, databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = persistence.StateRepository().Delete(ctx, "user-1")
		_ = persistence.Close(ctx)
	})

	return persistence, ctx
}

func TestStateRepository_SaveAndGet(t *testing.T) {
	persistence, ctx := setupTestDB(t)
	repo := persistence.StateRepository()

	state := models.NewUserWorkflowState("user-1")
	state.CurrentStep = models.StepSuppliersFound
	state.ProjectID = "P-77"
	state.SuppliersJSON = `[{"order_id":1}]`

	require.NoError(t, repo.Save(ctx, state))

	loaded, err := repo.GetByUser(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, models.StepSuppliersFound, loaded.CurrentStep)
	assert.Equal(t, "P-77", loaded.ProjectID)
	assert.Equal(t, `[{"order_id":1}]`, loaded.SuppliersJSON)
}

func TestStateRepository_UpsertOverwrites(t *testing.T) {
	persistence, ctx := setupTestDB(t)
	repo := persistence.StateRepository()

	state := models.NewUserWorkflowState("user-1")
	require.NoError(t, repo.Save(ctx, state))

	state.CurrentStep = models.StepPublished
	require.NoError(t, repo.Save(ctx, state))

	loaded, err := repo.GetByUser(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, models.StepPublished, loaded.CurrentStep)
}

func TestStateRepository_GetMissingReturnsNil(t *testing.T) {
	persistence, ctx := setupTestDB(t)

	loaded, err := persistence.StateRepository().GetByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStateRepository_ListUserIDs(t *testing.T) {
	persistence, ctx := setupTestDB(t)
	repo := persistence.StateRepository()

	require.NoError(t, repo.Save(ctx, models.NewUserWorkflowState("user-1")))

	ids, err := repo.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "user-1")
}
