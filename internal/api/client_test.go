package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/audit-iq-labs/auditiq/internal/domain"
)

func testTokens() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test_token"})
}

// newTestBackend returns a client wired to a mux-routed mock of the
// compliance API.
func newTestBackend(t *testing.T, register func(r *mux.Router)) *Client {
	t.Helper()
	r := mux.NewRouter()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(srv.URL, testTokens())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestGetChecklist(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/projects/{id}/checklist", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "Bearer test_token", req.Header.Get("Authorization"))
			assert.Equal(t, "proj_1", mux.Vars(req)["id"])
			writeJSON(w, http.StatusOK, []domain.ChecklistItem{
				{ID: "item_1", ObligationID: "obl_1", Status: domain.StatusTodo},
				{ID: "item_2", ObligationID: "obl_2", Status: domain.StatusDone, EvidenceCount: 3},
			})
		}).Methods(http.MethodGet)
	})

	items, err := client.GetChecklist(context.Background(), "proj_1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.StatusTodo, items[0].Status)
	assert.Equal(t, 3, items[1].EvidenceCount)
}

func TestUpdateChecklistItem_PartialBody(t *testing.T) {
	var captured map[string]json.RawMessage

	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/projects/{pid}/checklist/{id}", func(w http.ResponseWriter, req *http.Request) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&captured))
			assert.NotEmpty(t, req.Header.Get("X-Request-ID"), "mutations carry a request ID")
			writeJSON(w, http.StatusOK, domain.ChecklistItem{
				ID: mux.Vars(req)["id"], Status: domain.StatusInProgress,
			})
		}).Methods(http.MethodPut)
	})

	t.Run("status only", func(t *testing.T) {
		status := domain.StatusInProgress
		updated, err := client.UpdateChecklistItem(context.Background(), "proj_1", "item_1", ChecklistPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, updated.Status)

		assert.Contains(t, captured, "status")
		assert.NotContains(t, captured, "due_date", "untouched fields stay out of the body")
		assert.NotContains(t, captured, "justification")
	})

	t.Run("clearing sends explicit null", func(t *testing.T) {
		empty := ""
		_, err := client.UpdateChecklistItem(context.Background(), "proj_1", "item_1", ChecklistPatch{Justification: &empty})
		require.NoError(t, err)

		require.Contains(t, captured, "justification")
		assert.Equal(t, "null", string(captured["justification"]))
	})

	t.Run("due date value", func(t *testing.T) {
		due := "2026-12-31"
		_, err := client.UpdateChecklistItem(context.Background(), "proj_1", "item_1", ChecklistPatch{DueDate: &due})
		require.NoError(t, err)

		require.Contains(t, captured, "due_date")
		assert.Equal(t, `"2026-12-31"`, string(captured["due_date"]))
	})
}

func TestListEvidence_QueryParams(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/evidence/", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "proj_1", req.URL.Query().Get("project_id"))
			assert.Equal(t, "obl_9", req.URL.Query().Get("obligation_id"))
			writeJSON(w, http.StatusOK, []domain.EvidenceItem{{ID: "ev_1", Title: "Policy"}})
		}).Methods(http.MethodGet)
	})

	items, err := client.ListEvidence(context.Background(), "proj_1", "obl_9")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ev_1", items[0].ID)
}

func TestUploadEvidence_Multipart(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/evidence/upload", func(w http.ResponseWriter, req *http.Request) {
			require.NoError(t, req.ParseMultipartForm(1<<20))
			assert.Equal(t, "proj_1", req.FormValue("project_id"))
			assert.Equal(t, "obl_1", req.FormValue("obligation_id"))
			assert.Equal(t, "SOC2 report", req.FormValue("title"))

			file, header, err := req.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "soc2.pdf", header.Filename)
			payload, _ := io.ReadAll(file)
			assert.Equal(t, "pdf-bytes", string(payload))

			writeJSON(w, http.StatusCreated, domain.EvidenceItem{ID: "ev_new", Title: "SOC2 report"})
		}).Methods(http.MethodPost)
	})

	created, err := client.UploadEvidence(context.Background(), "proj_1", "obl_1",
		"SOC2 report", "", "soc2.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "ev_new", created.ID)
}

func TestCreateEvidence_JSONBranch(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/evidence/projects/{pid}/obligations/{oid}", func(w http.ResponseWriter, req *http.Request) {
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "Internal memo", body["title"])
			assert.Nil(t, body["description"], "empty description is sent as null")
			writeJSON(w, http.StatusCreated, domain.EvidenceItem{ID: "ev_2", Title: "Internal memo"})
		}).Methods(http.MethodPost)
	})

	created, err := client.CreateEvidence(context.Background(), "proj_1", "obl_1", "Internal memo", "")
	require.NoError(t, err)
	assert.Equal(t, "ev_2", created.ID)
}

func TestDeleteEvidence_NoContent(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/evidence/{id}", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}).Methods(http.MethodDelete)
	})

	assert.NoError(t, client.DeleteEvidence(context.Background(), "ev_1"))
}

func TestErrorNormalization(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/projects/quota/checklist", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Monthly document quota exceeded"})
		})
		r.HandleFunc("/projects/invalid/checklist", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"detail": []map[string]string{{"loc": "status", "msg": "value is not a valid enumeration member"}},
			})
		})
		r.HandleFunc("/projects/proxy/checklist", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>" + strings.Repeat("x", 500) + "</html>"))
		})
		r.HandleFunc("/projects/boom/checklist", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "stack trace here"})
		})
	})

	t.Run("string detail", func(t *testing.T) {
		_, err := client.GetChecklist(context.Background(), "quota")
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
		assert.Equal(t, "Monthly document quota exceeded", apiErr.Detail)
		assert.Equal(t, "Monthly document quota exceeded", UserMessage(err))
	})

	t.Run("validation array collapses", func(t *testing.T) {
		_, err := client.GetChecklist(context.Background(), "invalid")
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Request validation failed.", apiErr.Detail)
	})

	t.Run("non-JSON body truncated", func(t *testing.T) {
		_, err := client.GetChecklist(context.Background(), "proxy")
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.LessOrEqual(t, len(apiErr.Detail), maxDetailLen)
	})

	t.Run("server errors get generic message", func(t *testing.T) {
		_, err := client.GetChecklist(context.Background(), "boom")
		assert.Equal(t, "Server error, please retry in a moment", UserMessage(err))
	})

	t.Run("transport failure", func(t *testing.T) {
		dead := New("http://127.0.0.1:1", testTokens())
		_, err := dead.GetChecklist(context.Background(), "proj")
		require.Error(t, err)
		assert.Equal(t, "Cannot reach server", UserMessage(err))
	})
}

func TestImportStandardChecklist(t *testing.T) {
	var called bool
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/projects/{id}/ai-act/title-iv/ingest", func(w http.ResponseWriter, req *http.Request) {
			called = true
			w.WriteHeader(http.StatusNoContent)
		}).Methods(http.MethodPost)
	})

	require.NoError(t, client.ImportStandardChecklist(context.Background(), "proj_1"))
	assert.True(t, called)
}

func TestCreateProject(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/projects", func(w http.ResponseWriter, req *http.Request) {
			var body CreateProjectInput
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "Recruitment Screening AI", body.Name)
			assert.Equal(t, "EU AI Act", body.Regulation)
			writeJSON(w, http.StatusCreated, domain.Project{ID: "proj_new", Name: body.Name, Regulation: body.Regulation})
		}).Methods(http.MethodPost)
	})

	project, err := client.CreateProject(context.Background(), CreateProjectInput{
		Name:       "Recruitment Screening AI",
		Regulation: "EU AI Act",
	})
	require.NoError(t, err)
	assert.Equal(t, "proj_new", project.ID)
}

func TestGetProjectActivity(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/projects/{id}/activity", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "25", req.URL.Query().Get("limit"))
			writeJSON(w, http.StatusOK, []domain.ActivityItem{
				{ID: "act_1", Action: "evidence_added", CreatedAt: "2026-08-30T09:00:00Z"},
			})
		}).Methods(http.MethodGet)
	})

	activity, err := client.GetProjectActivity(context.Background(), "proj_1", 25)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, "evidence_added", activity[0].Action)
}

func TestDocumentAnalysisFlow(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/documents/upload", func(w http.ResponseWriter, req *http.Request) {
			require.NoError(t, req.ParseMultipartForm(1<<20))
			assert.Equal(t, "proj_1", req.FormValue("project_id"))
			_, header, err := req.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "policy.pdf", header.Filename)
			writeJSON(w, http.StatusCreated, domain.UploadedDocument{ID: "doc_1", Filename: "policy.pdf"})
		}).Methods(http.MethodPost)

		r.HandleFunc("/api/documents/{id}/analyze", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "doc_1", mux.Vars(req)["id"])
			writeJSON(w, http.StatusOK, domain.AnalysisResult{
				Document: domain.UploadedDocument{ID: "doc_1"},
				Gaps:     []domain.Gap{{ID: "gap_1", Severity: "high", RegObligationID: "obl_4"}},
			})
		}).Methods(http.MethodPost)

		r.HandleFunc("/api/documents/{id}/gaps/summary", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, domain.GapSummary{
				DocumentID: "doc_1", TotalGaps: 1, BySeverity: map[string]int{"high": 1},
			})
		}).Methods(http.MethodGet)
	})

	doc, err := client.UploadDocument(context.Background(), "proj_1", "policy.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	require.Equal(t, "doc_1", doc.ID)

	result, err := client.AnalyzeDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, result.Gaps, 1)
	assert.Equal(t, "high", result.Gaps[0].Severity)

	summary, err := client.GetGapSummary(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalGaps)
}

func TestGetProjectQuality(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/projects/{id}/quality", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "proj_1", mux.Vars(req)["id"])
			writeJSON(w, http.StatusOK, domain.QualityDetail{
				Summary: domain.QualitySummary{
					ProjectID:               "proj_1",
					CompletionPercent:       40,
					EvidenceCoveragePercent: 72.5,
					OverdueCount:            2,
					HighRiskGaps:            1,
					OverallRiskScore:        38,
				},
				Gaps: []domain.QualityGap{
					{ObligationID: "obl_4", Status: domain.StatusTodo, Reason: domain.GapReasonNotStarted},
					{ObligationID: "obl_5", Status: domain.StatusInProgress, HasEvidence: true, Reason: domain.GapReasonOverdue},
				},
			})
		}).Methods(http.MethodGet)
	})

	detail, err := client.GetProjectQuality(context.Background(), "proj_1")
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Summary.OverdueCount)
	require.Len(t, detail.Gaps, 2)
	assert.Equal(t, domain.GapReasonOverdue, detail.Gaps[1].Reason)
}

func TestBillingSessions(t *testing.T) {
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/billing/checkout", func(w http.ResponseWriter, req *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "pro", body["plan_id"])
			writeJSON(w, http.StatusOK, map[string]string{"checkout_url": "https://pay.example.com/c/123"})
		}).Methods(http.MethodPost)

		r.HandleFunc("/api/billing/portal", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"url": "https://pay.example.com/p/456"})
		}).Methods(http.MethodPost)
	})

	checkout, err := client.CreateCheckoutSession(context.Background(), "org_1", "pro")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/c/123", checkout)

	portal, err := client.CreatePortalSession(context.Background(), "org_1")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/p/456", portal)
}

func TestGetEntitlements(t *testing.T) {
	limit := 10
	client := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/billing/entitlements", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, domain.Entitlements{
				PlanID:   "pro",
				PlanName: "Pro",
				Quota: map[string]domain.QuotaEntry{
					"documents": {Enabled: true, Limit: &limit, Used: 4, Allowed: true},
				},
			})
		}).Methods(http.MethodGet)
	})

	ent, err := client.GetEntitlements(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pro", ent.PlanName)
	require.Contains(t, ent.Quota, "documents")
	assert.Equal(t, 4, ent.Quota["documents"].Used)
}
