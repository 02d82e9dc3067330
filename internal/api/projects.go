package api

import (
	"context"
	"fmt"

	"github.com/audit-iq-labs/auditiq/internal/domain"
)

// CreateProjectInput holds the fields accepted when creating a project.
type CreateProjectInput struct {
	Name         string   `json:"name"`
	Regulation   string   `json:"regulation,omitempty"`
	RiskCategory string   `json:"risk_category,omitempty"`
	Jurisdiction []string `json:"jurisdiction,omitempty"`
}

// ListProjects fetches all projects visible to the current session.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.get(ctx, "/projects", &projects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateProject creates a new compliance project.
func (c *Client) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	var created domain.Project
	if err := c.post(ctx, "/projects", input, &created); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &created, nil
}

// GetProject fetches a single project by ID.
func (c *Client) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	var project domain.Project
	if err := c.get(ctx, "/projects/"+projectID, &project); err != nil {
		return nil, fmt.Errorf("fetch project: %w", err)
	}
	return &project, nil
}

// GetProjectActivity fetches the most recent audit-trail entries for a
// project, newest first.
func (c *Client) GetProjectActivity(ctx context.Context, projectID string, limit int) ([]domain.ActivityItem, error) {
	if limit <= 0 {
		limit = 50
	}
	var items []domain.ActivityItem
	path := fmt.Sprintf("/projects/%s/activity?limit=%d", projectID, limit)
	if err := c.get(ctx, path, &items); err != nil {
		return nil, fmt.Errorf("fetch project activity: %w", err)
	}
	return items, nil
}
