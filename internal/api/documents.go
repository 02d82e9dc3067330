package api

import (
	"context"
	"fmt"
	"io"

	"github.com/audit-iq-labs/auditiq/internal/domain"
)

// UploadDocument submits a policy document for later analysis.
func (c *Client) UploadDocument(ctx context.Context, projectID, filename string, file io.Reader) (*domain.UploadedDocument, error) {
	fields := map[string]string{"project_id": projectID}

	var doc domain.UploadedDocument
	if err := c.postForm(ctx, "/api/documents/upload", fields, "file", filename, file, &doc); err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}
	return &doc, nil
}

// AnalyzeDocument triggers extraction and gap analysis for an uploaded
// document. The heavy lifting happens in the external backend; this call
// blocks until the backend responds with the result.
func (c *Client) AnalyzeDocument(ctx context.Context, documentID string) (*domain.AnalysisResult, error) {
	var result domain.AnalysisResult
	path := fmt.Sprintf("/api/documents/%s/analyze", documentID)
	if err := c.post(ctx, path, struct{}{}, &result); err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	return &result, nil
}

// GetGapSummary fetches the per-severity gap aggregate for a document.
func (c *Client) GetGapSummary(ctx context.Context, documentID string) (*domain.GapSummary, error) {
	var summary domain.GapSummary
	path := fmt.Sprintf("/api/documents/%s/gaps/summary", documentID)
	if err := c.get(ctx, path, &summary); err != nil {
		return nil, fmt.Errorf("fetch gap summary: %w", err)
	}
	return &summary, nil
}

// GetProjectDocuments lists the documents uploaded to a project.
func (c *Client) GetProjectDocuments(ctx context.Context, projectID string) ([]domain.UploadedDocument, error) {
	var docs []domain.UploadedDocument
	path := fmt.Sprintf("/api/documents/projects/%s/documents", projectID)
	if err := c.get(ctx, path, &docs); err != nil {
		return nil, fmt.Errorf("fetch project documents: %w", err)
	}
	return docs, nil
}
