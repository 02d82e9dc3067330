package api

import (
	"context"
	"fmt"

	"github.com/audit-iq-labs/auditiq/internal/domain"
)

// GetProjectQuality fetches the server-computed quality rollup for a
// project: completion, evidence coverage, overdue and high-risk counts,
// plus the obligations responsible for the gaps.
func (c *Client) GetProjectQuality(ctx context.Context, projectID string) (*domain.QualityDetail, error) {
	var detail domain.QualityDetail
	if err := c.get(ctx, fmt.Sprintf("/projects/%s/quality", projectID), &detail); err != nil {
		return nil, fmt.Errorf("fetch project quality: %w", err)
	}
	return &detail, nil
}
