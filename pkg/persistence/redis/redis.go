// Package redis provides Redis-backed persistence for workflow states.
// Records are plain JSON values keyed per user, which matches the
// per-user partitioning of the turn model.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/persistence"
)

const stateKeyPrefix = "procura:state:"

// Persistence implements the persistence layer on Redis.
type Persistence struct {
	client    goredis.UniversalClient
	stateRepo *StateRepository
}

// NewPersistence creates a Redis persistence layer from a redis:// URL.
func NewPersistence(databaseURL string) (*Persistence, error) {
	opts, err := goredis.ParseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := goredis.NewClient(opts)

	return &Persistence{
		client:    client,
		stateRepo: NewStateRepository(client),
	}, nil
}

func (p *Persistence) StateRepository() persistence.StateRepository {
	return p.stateRepo
}

// HealthCheck verifies the Redis connection is alive.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

// Close closes the Redis client.
func (p *Persistence) Close(_ context.Context) error {
	return p.client.Close()
}

// StateRepository handles workflow-state operations on Redis.
type StateRepository struct {
	client goredis.UniversalClient
}

// NewStateRepository creates a new state repository on an existing client.
func NewStateRepository(client goredis.UniversalClient) *StateRepository {
	return &StateRepository{client: client}
}

func stateKey(userID string) string {
	return stateKeyPrefix + userID
}

// GetByUser retrieves a user's workflow state. Returns (nil, nil) when no
// record exists.
func (sr *StateRepository) GetByUser(ctx context.Context, userID string) (*models.UserWorkflowState, error) {
	if userID == "" {
		return nil, persistence.NewStateError("GetByUser", userID, persistence.ErrMissingUserID)
	}

	body, err := sr.client.Get(ctx, stateKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}

		return nil, persistence.NewStateError("GetByUser", userID, err)
	}

	var state models.UserWorkflowState

	err = json.Unmarshal(body, &state)
	if err != nil {
		return nil, persistence.NewStateError("GetByUser", userID,
			fmt.Errorf("%w: %w", persistence.ErrInvalidState, err))
	}

	return &state, nil
}

// Save writes a user's workflow state. States live indefinitely; no TTL.
func (sr *StateRepository) Save(ctx context.Context, state *models.UserWorkflowState) error {
	if state.UserID == "" {
		return persistence.NewStateError("Save", "", persistence.ErrMissingUserID)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return persistence.NewStateError("Save", state.UserID, err)
	}

	err = sr.client.Set(ctx, stateKey(state.UserID), data, 0).Err()
	if err != nil {
		return persistence.NewStateError("Save", state.UserID, err)
	}

	return nil
}

// Delete removes a user's workflow state. Deleting a missing state is not
// an error.
func (sr *StateRepository) Delete(ctx context.Context, userID string) error {
	err := sr.client.Del(ctx, stateKey(userID)).Err()
	if err != nil {
		return persistence.NewStateError("Delete", userID, err)
	}

	return nil
}

// ListUserIDs scans for every user with a persisted state.
func (sr *StateRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	userIDs := make([]string, 0)
	iter := sr.client.Scan(ctx, 0, stateKeyPrefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		userIDs = append(userIDs, strings.TrimPrefix(iter.Val(), stateKeyPrefix))
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan state keys: %w", err)
	}

	return userIDs, nil
}
