// Package domain defines the normalized domain types for the AuditIQ
// compliance backend. These types represent the core concepts independent
// of the wire format returned by any particular backend version.
package domain

// Status is the tracking state of a checklist item.
type Status string

// The four valid checklist item statuses.
const (
	StatusTodo          Status = "todo"
	StatusInProgress    Status = "in_progress"
	StatusDone          Status = "done"
	StatusNotApplicable Status = "not_applicable"
)

// AllStatuses lists the valid statuses in display order.
var AllStatuses = []Status{StatusTodo, StatusInProgress, StatusDone, StatusNotApplicable}

// Valid reports whether s is one of the four enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusNotApplicable:
		return true
	}
	return false
}

// Label returns the human-readable form of a status.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To do"
	case StatusInProgress:
		return "In progress"
	case StatusDone:
		return "Done"
	case StatusNotApplicable:
		return "Not applicable"
	}
	return string(s)
}

// Next cycles to the following status in display order, wrapping around.
func (s Status) Next() Status {
	for i, v := range AllStatuses {
		if v == s {
			return AllStatuses[(i+1)%len(AllStatuses)]
		}
	}
	return StatusTodo
}

// Project is a compliance project owning a checklist and its evidence.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Regulation   string   `json:"regulation,omitempty"`
	RiskCategory string   `json:"risk_category,omitempty"`
	Jurisdiction []string `json:"jurisdiction,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"` // ISO8601 timestamp
}

// ChecklistItem is the per-project tracking record for one obligation.
// Its ID is distinct from ObligationID: the same obligation may be tracked
// by separate items across projects.
type ChecklistItem struct {
	ID            string `json:"id"`
	ObligationID  string `json:"obligation_id"`
	Status        Status `json:"status"`
	DueDate       string `json:"due_date,omitempty"` // Calendar date (YYYY-MM-DD), empty if unset
	Justification string `json:"justification,omitempty"`
	ShortLabel    string `json:"short_label,omitempty"` // Read-only, from the obligation catalog
	Summary       string `json:"summary,omitempty"`     // Read-only, from the obligation catalog
	Reference     string `json:"reference,omitempty"`   // Regulation clause reference
	EvidenceCount int    `json:"evidence_count"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// ChecklistSummary is the server-computed aggregate over a project's items.
// CompletionPercent is derived from done/total; the client never mutates
// it, only re-fetches.
type ChecklistSummary struct {
	ProjectID         string         `json:"project_id"`
	TotalItems        int            `json:"total_items"`
	ByStatus          map[Status]int `json:"by_status"`
	CompletionPercent float64        `json:"completion_percent"`
}

// EvidenceItem is a supporting record linked to exactly one
// (project, obligation) pair. Created and deleted by the client, never
// edited in place.
type EvidenceItem struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id"`
	ObligationID string `json:"obligation_id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	StorageURL   string `json:"storage_url,omitempty"`
	FileType     string `json:"file_type,omitempty"`
	UploadedAt   string `json:"uploaded_at,omitempty"` // ISO8601 timestamp
}

// ActivityItem is one entry of a project's audit trail.
type ActivityItem struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id"`
	ObligationID string `json:"obligation_id,omitempty"`
	EvidenceID   string `json:"evidence_id,omitempty"`
	Actor        string `json:"actor,omitempty"`
	Action       string `json:"action"`
	CreatedAt    string `json:"created_at"`
}

// UploadedDocument is a policy document accepted by the analysis backend.
type UploadedDocument struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	AnalyzedAt  string `json:"analyzed_at,omitempty"`
}

// Gap is one mismatch between a document and an expected obligation,
// produced by the external analysis backend.
type Gap struct {
	ID              string `json:"id"`
	RegObligationID string `json:"reg_obligation_id"`
	Severity        string `json:"severity"`
	GapReason       string `json:"gap_reason"`
	ObligationText  string `json:"reg_obligation_text"`
}

// ExtractedObligation is an obligation the backend found in a document.
type ExtractedObligation struct {
	ID             string `json:"id"`
	ObligationText string `json:"obligation_text"`
	ObligationType string `json:"obligation_type,omitempty"`
	Reference      string `json:"ai_act_reference,omitempty"`
}

// AnalysisResult is the outcome of analyzing one uploaded document.
type AnalysisResult struct {
	Document             UploadedDocument      `json:"document"`
	ExtractedObligations []ExtractedObligation `json:"extracted_obligations"`
	Gaps                 []Gap                 `json:"gaps"`
}

// GapSummary aggregates a document's gaps by severity.
type GapSummary struct {
	DocumentID string         `json:"document_id"`
	TotalGaps  int            `json:"total_gaps"`
	BySeverity map[string]int `json:"by_severity"`
}

// GapReason classifies why an obligation counts against a project's
// quality score.
type GapReason string

// The backend's gap reason values.
const (
	GapReasonOverdue         GapReason = "overdue"
	GapReasonMissingEvidence GapReason = "missing_evidence"
	GapReasonNotStarted      GapReason = "not_started"
	GapReasonUnknown         GapReason = "unknown"
)

// QualitySummary aggregates the health of one project's checklist.
type QualitySummary struct {
	ProjectID               string  `json:"project_id"`
	CompletionPercent       float64 `json:"completion_percent"`
	EvidenceCoveragePercent float64 `json:"evidence_coverage_percent"`
	OverdueCount            int     `json:"overdue_count"`
	HighRiskGaps            int     `json:"high_risk_gaps"`
	OverallRiskScore        float64 `json:"overall_risk_score"`
}

// QualityGap is one obligation dragging the quality score down.
type QualityGap struct {
	ObligationID string    `json:"obligation_id"`
	Reference    string    `json:"reference,omitempty"`
	ShortLabel   string    `json:"short_label,omitempty"`
	Status       Status    `json:"status"`
	DueDate      string    `json:"due_date,omitempty"`
	HasEvidence  bool      `json:"has_evidence"`
	Reason       GapReason `json:"reason"`
}

// QualityDetail pairs the quality summary with its contributing gaps.
type QualityDetail struct {
	Summary QualitySummary `json:"summary"`
	Gaps    []QualityGap   `json:"gaps"`
}

// QuotaEntry describes one metered feature of the current plan.
type QuotaEntry struct {
	Enabled   bool `json:"enabled"`
	Limit     *int `json:"limit"` // nil means unlimited
	Used      int  `json:"used"`
	Remaining *int `json:"remaining"`
	Allowed   bool `json:"allowed"`
}

// Entitlements is the billing backend's view of the current plan and its
// consumed quota.
type Entitlements struct {
	OrganizationID string                `json:"organization_id,omitempty"`
	PlanID         string                `json:"plan_id"`
	PlanName       string                `json:"plan_name"`
	PlanStatus     string                `json:"status"`
	Quota          map[string]QuotaEntry `json:"quota,omitempty"`
}
