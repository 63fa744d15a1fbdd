package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-outreach/internal/cache"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/jobs"
	"conference-outreach/internal/models"
	"conference-outreach/internal/stages/compose"
	"conference-outreach/internal/stages/intake"
	"conference-outreach/internal/stages/report"
	"conference-outreach/internal/stages/research"
	"conference-outreach/internal/stages/send"
	"conference-outreach/internal/store"
	"conference-outreach/internal/tracker"
	"conference-outreach/internal/workflow"
)

// ==========================
// Full Pipeline Stubs
// ==========================

type pipelineSearch struct{}

func (pipelineSearch) SearchPerson(ctx context.Context, name, company string) ([]models.SearchResult, error) {
	return []models.SearchResult{{Title: name, Snippet: name + " background"}}, nil
}

func (pipelineSearch) SearchCompany(ctx context.Context, company string) (*models.CompanyInfo, error) {
	return &models.CompanyInfo{KnowledgeDescription: company + " builds computing machinery"}, nil
}

func (pipelineSearch) FindSynergies(ctx context.Context, a, b string) ([]models.SearchResult, error) {
	return []models.SearchResult{{Title: "partnership", Snippet: a + " and " + b}}, nil
}

type pipelineProfiles struct{}

func (pipelineProfiles) Lookup(ctx context.Context, url string) (*models.Profile, error) {
	return &models.Profile{FullName: "from profile", Summary: "profile summary"}, nil
}

type pipelineGenAI struct{}

func (pipelineGenAI) ExtractSynergies(ctx context.Context, userCompany, targetCompany string, results []models.SearchResult) ([]string, error) {
	return []string{"Joint compiler research"}, nil
}

func (pipelineGenAI) DraftMessage(ctx context.Context, user models.UserProfile, summary models.ResearchSummary) (string, error) {
	return fmt.Sprintf("Hi %s, let's meet at the conference.", summary.Name), nil
}

func (pipelineGenAI) ReportNarrative(ctx context.Context, m models.ReportMetrics, samples []models.MessageSample) (*models.ReportNarrative, error) {
	return &models.ReportNarrative{
		ExecutiveSummary: fmt.Sprintf("%d reviewed, %d approved, %d sent.", m.TotalParticipants, m.ApprovedMessages, m.SentMessages),
	}, nil
}

func newPipelineEnv(t *testing.T) *testEnv {
	st := store.NewMemory()
	log := logger.NewNoOpLogger()
	tr := tracker.New(st, log)

	in := intake.NewHandler(intake.LoadConfig(), failingScraper{}, st, tr, log)
	researchHandler := research.NewHandler(pipelineSearch{}, pipelineProfiles{},
		cache.New(nil, time.Hour, log), log)
	composeHandler := compose.NewHandler(researchHandler, pipelineGenAI{}, st, tr, log)
	sendHandler := send.NewHandler(send.LoadConfig(), st, tr, nil, log)
	reportHandler := report.NewHandler(report.LoadConfig(), st, tr, pipelineGenAI{}, log)

	runner := workflow.NewRunner(in, researchHandler, composeHandler, nil, log)
	manager := jobs.NewManager(runner, nil, log)

	srv := New(in, manager, tr, sendHandler, reportHandler, nil, logger.NewTestLogger(t))
	return &testEnv{router: srv.Router(), tracker: tr}
}

func (e *testEnv) waitForJob(t *testing.T, jobID string) models.JobStatus {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		w := e.do(t, http.MethodGet, "/api/v1/workflow/"+jobID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var job models.JobStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
		if job.State == models.JobCompleted || job.State == models.JobFailed {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("workflow job never finished")
	return models.JobStatus{}
}

// ==========================
// Full Pipeline Scenario
// ==========================

func TestPipeline_TwoParticipantsOneApproval(t *testing.T) {
	env := newPipelineEnv(t)

	// Run the workflow with a manual two-person roster.
	w := env.do(t, http.MethodPost, "/api/v1/workflow", map[string]interface{}{
		"event_name": "TechSummit 2025",
		"participants": []map[string]string{
			{"name": "Ada Lovelace", "role": "Engineer", "company": "Analytical Engines", "country": "UK"},
			{"name": "Grace Hopper", "role": "Scientist", "company": "Eckert-Mauchly", "country": "USA"},
		},
		"user": map[string]string{
			"user_name":         "Charles Babbage",
			"user_role":         "Founder",
			"user_company_name": "Difference Engines",
		},
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var queued models.JobStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queued))

	job := env.waitForJob(t, queued.JobID)
	require.Equal(t, models.JobCompleted, job.State)
	require.NotNil(t, job.Result)
	assert.Equal(t, models.StageCounts{OK: 2, Total: 2}, job.Result.Researched)
	assert.Equal(t, models.StageCounts{OK: 2, Total: 2}, job.Result.Messaged)

	// Both drafts wait in Pending after the run.
	w = env.do(t, http.MethodGet, "/api/v1/approvals?event=TechSummit+2025", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var approvals struct {
		Entries []models.ApprovalEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approvals))
	require.Len(t, approvals.Entries, 2)
	for _, entry := range approvals.Entries {
		assert.Equal(t, models.StatusPending, entry.Status)
	}

	// Approve only Ada.
	w = env.do(t, http.MethodPost, "/api/v1/approvals", map[string]interface{}{
		"event_name":       "TechSummit 2025",
		"participant_name": "Ada Lovelace",
		"status":           "Approved",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/approvals?event=TechSummit+2025&status=Approved", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approvals))
	require.Len(t, approvals.Entries, 1)
	assert.Equal(t, "Ada Lovelace", approvals.Entries[0].ParticipantName)

	// Only the approved participant is sent to.
	w = env.do(t, http.MethodPost, "/api/v1/send", map[string]interface{}{
		"event_name": "TechSummit 2025",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var sent models.BatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	assert.Equal(t, 1, sent.Total)
	assert.Equal(t, 1, sent.Successful)

	// The report counts sends from the ledger.
	w = env.do(t, http.MethodPost, "/api/v1/report", map[string]interface{}{
		"event_name": "TechSummit 2025",
		"user": map[string]string{
			"user_name":         "Charles Babbage",
			"user_company_name": "Difference Engines",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var reportResult models.ReportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reportResult))
	assert.Equal(t, models.ReportMetrics{
		TotalParticipants: 2,
		ApprovedMessages:  1,
		SentMessages:      1,
	}, reportResult.Metrics)
}
