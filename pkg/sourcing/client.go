// Package sourcing implements the REST client for the upstream sourcing
// backend that owns projects, milestones, and suppliers.
package sourcing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/procura-ai/procura/pkg/models"
)

const defaultTimeoutSeconds = 30

var (
	// ErrBaseURLRequired is returned when the client is built without a backend URL.
	ErrBaseURLRequired = errors.New("sourcing backend URL is required")
	// ErrBackendStatus is returned when the backend answers with a non-2xx status.
	ErrBackendStatus = errors.New("sourcing backend returned an error status")
)

// Client talks to the sourcing backend over REST. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(logger *slog.Logger, baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeoutSeconds * time.Second},
		logger:     logger,
	}, nil
}

type createProjectRequest struct {
	EngagementID string     `json:"engagement_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Email        string     `json:"email"`
	Budget       float64    `json:"budget"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

type createProjectResponse struct {
	ProjectID string `json:"project_id"`
}

func (c *Client) CreateProject(ctx context.Context, engagementID string, details models.ProjectDetails) (string, string, error) {
	body := createProjectRequest{
		EngagementID: engagementID,
		Title:        details.Title,
		Description:  details.Description,
		Email:        details.Email,
		Budget:       details.Budget,
		StartDate:    details.StartDate,
		EndDate:      details.EndDate,
	}

	raw, err := c.do(ctx, http.MethodPost, "/projects", body)
	if err != nil {
		return "", "", err
	}

	var response createProjectResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return "", "", fmt.Errorf("failed to decode create-project response: %w", err)
	}

	if response.ProjectID == "" {
		return "", "", fmt.Errorf("create-project response missing project_id: %w", ErrBackendStatus)
	}

	return response.ProjectID, raw, nil
}

func (c *Client) UpsertMilestones(ctx context.Context, projectID string, milestones []models.ProjectMilestone) (string, error) {
	return c.do(ctx, http.MethodPut, "/projects/"+projectID+"/milestones", milestones)
}

func (c *Client) FindSuppliers(ctx context.Context, projectID string) ([]models.SelectedSupplier, string, error) {
	raw, err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/suppliers", nil)
	if err != nil {
		return nil, "", err
	}

	var suppliers []models.SelectedSupplier
	if err := json.Unmarshal([]byte(raw), &suppliers); err != nil {
		return nil, "", fmt.Errorf("failed to decode supplier search response: %w", err)
	}

	return suppliers, raw, nil
}

func (c *Client) SelectSuppliers(ctx context.Context, projectID string, selected []models.SelectedSupplier) (string, error) {
	return c.do(ctx, http.MethodPost, "/projects/"+projectID+"/suppliers", selected)
}

func (c *Client) PublishProject(ctx context.Context, projectID string) (string, error) {
	return c.do(ctx, http.MethodPost, "/projects/"+projectID+"/publish", nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (string, error) {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug("Calling sourcing backend", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sourcing backend request failed: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("Failed to close response body", "error", err)
		}
	}()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s %s returned %d", ErrBackendStatus, method, path, resp.StatusCode)
	}

	return string(payload), nil
}
