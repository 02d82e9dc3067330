package api

import (
	"context"
	"fmt"

	"github.com/audit-iq-labs/auditiq/internal/domain"
)

// ChecklistPatch is a partial update to one checklist item. Only non-nil
// fields are sent; a pointer to the empty string clears the field
// server-side.
type ChecklistPatch struct {
	Status        *domain.Status `json:"status,omitempty"`
	DueDate       *string        `json:"due_date"`
	Justification *string        `json:"justification"`
}

// patchBody shapes a ChecklistPatch for the wire, mapping cleared fields
// to explicit nulls the way the backend expects.
type patchBody struct {
	Status        *domain.Status `json:"status,omitempty"`
	DueDate       interface{}    `json:"due_date,omitempty"`
	Justification interface{}    `json:"justification,omitempty"`
}

func (p ChecklistPatch) wire() patchBody {
	body := patchBody{Status: p.Status}
	if p.DueDate != nil {
		if *p.DueDate == "" {
			body.DueDate = nullValue{}
		} else {
			body.DueDate = *p.DueDate
		}
	}
	if p.Justification != nil {
		if *p.Justification == "" {
			body.Justification = nullValue{}
		} else {
			body.Justification = *p.Justification
		}
	}
	return body
}

// nullValue marshals as JSON null.
type nullValue struct{}

func (nullValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// GetChecklist fetches all checklist items for a project, in server order.
func (c *Client) GetChecklist(ctx context.Context, projectID string) ([]domain.ChecklistItem, error) {
	var items []domain.ChecklistItem
	if err := c.get(ctx, fmt.Sprintf("/projects/%s/checklist", projectID), &items); err != nil {
		return nil, fmt.Errorf("fetch checklist: %w", err)
	}
	return items, nil
}

// GetChecklistSummary fetches the server-computed aggregate for a project.
func (c *Client) GetChecklistSummary(ctx context.Context, projectID string) (*domain.ChecklistSummary, error) {
	var summary domain.ChecklistSummary
	if err := c.get(ctx, fmt.Sprintf("/projects/%s/checklist/summary", projectID), &summary); err != nil {
		return nil, fmt.Errorf("fetch checklist summary: %w", err)
	}
	return &summary, nil
}

// UpdateChecklistItem applies a partial update to one item and returns the
// server's authoritative representation.
func (c *Client) UpdateChecklistItem(ctx context.Context, projectID, itemID string, patch ChecklistPatch) (*domain.ChecklistItem, error) {
	var updated domain.ChecklistItem
	path := fmt.Sprintf("/projects/%s/checklist/%s", projectID, itemID)
	if err := c.put(ctx, path, patch.wire(), &updated); err != nil {
		return nil, fmt.Errorf("update checklist item: %w", err)
	}
	return &updated, nil
}

// ImportStandardChecklist bulk-imports the standard obligation set into a
// project. The caller re-fetches the checklist afterwards.
func (c *Client) ImportStandardChecklist(ctx context.Context, projectID string) error {
	path := fmt.Sprintf("/projects/%s/ai-act/title-iv/ingest", projectID)
	if err := c.post(ctx, path, struct{}{}, nil); err != nil {
		return fmt.Errorf("import standard checklist: %w", err)
	}
	return nil
}
