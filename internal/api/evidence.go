package api

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/audit-iq-labs/auditiq/internal/domain"
)

// ListEvidence fetches all evidence records for one obligation within one
// project.
func (c *Client) ListEvidence(ctx context.Context, projectID, obligationID string) ([]domain.EvidenceItem, error) {
	q := url.Values{}
	q.Set("project_id", projectID)
	q.Set("obligation_id", obligationID)

	var items []domain.EvidenceItem
	if err := c.get(ctx, "/evidence/?"+q.Encode(), &items); err != nil {
		return nil, fmt.Errorf("fetch evidence: %w", err)
	}
	return items, nil
}

// CreateEvidence creates a metadata-only evidence record (no file) and
// returns the confirmed server object.
func (c *Client) CreateEvidence(ctx context.Context, projectID, obligationID, title, description string) (*domain.EvidenceItem, error) {
	body := struct {
		Title       string      `json:"title"`
		Description interface{} `json:"description"`
	}{Title: title}
	if description != "" {
		body.Description = description
	}

	var created domain.EvidenceItem
	path := fmt.Sprintf("/evidence/projects/%s/obligations/%s", projectID, obligationID)
	if err := c.post(ctx, path, body, &created); err != nil {
		return nil, fmt.Errorf("create evidence: %w", err)
	}
	return &created, nil
}

// UploadEvidence creates an evidence record backed by a file, sent as a
// multipart submission to the dedicated upload endpoint.
func (c *Client) UploadEvidence(ctx context.Context, projectID, obligationID, title, description, filename string, file io.Reader) (*domain.EvidenceItem, error) {
	fields := map[string]string{
		"project_id":    projectID,
		"obligation_id": obligationID,
	}
	if title != "" {
		fields["title"] = title
	}
	if description != "" {
		fields["description"] = description
	}

	var created domain.EvidenceItem
	if err := c.postForm(ctx, "/evidence/upload", fields, "file", filename, file, &created); err != nil {
		return nil, fmt.Errorf("upload evidence: %w", err)
	}
	return &created, nil
}

// DeleteEvidence removes one evidence record by ID.
func (c *Client) DeleteEvidence(ctx context.Context, evidenceID string) error {
	if err := c.del(ctx, "/evidence/"+evidenceID); err != nil {
		return fmt.Errorf("delete evidence: %w", err)
	}
	return nil
}
