package research

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-outreach/internal/cache"
	"conference-outreach/internal/common/database"
	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type stubSearcher struct {
	personInfo  []models.SearchResult
	personErr   error
	companyInfo *models.CompanyInfo
	companyErr  error
	synergy     []models.SearchResult
	synergyErr  error

	personCalls  int
	companyCalls int
	synergyCalls int
}

func (s *stubSearcher) SearchPerson(ctx context.Context, name, company string) ([]models.SearchResult, error) {
	s.personCalls++
	return s.personInfo, s.personErr
}

func (s *stubSearcher) SearchCompany(ctx context.Context, company string) (*models.CompanyInfo, error) {
	s.companyCalls++
	return s.companyInfo, s.companyErr
}

func (s *stubSearcher) FindSynergies(ctx context.Context, a, b string) ([]models.SearchResult, error) {
	s.synergyCalls++
	return s.synergy, s.synergyErr
}

type stubProfiles struct {
	profile *models.Profile
	err     error
	calls   int
}

func (s *stubProfiles) Lookup(ctx context.Context, url string) (*models.Profile, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func newTestHandler(t *testing.T, searcher Searcher, profiles ProfileLookup) *Handler {
	return NewHandler(searcher, profiles,
		cache.New(nil, time.Hour, logger.NewNoOpLogger()), logger.NewTestLogger(t))
}

// ==========================
// Lookup Isolation
// ==========================

func TestHandler_Execute_AllLookupsSucceed(t *testing.T) {
	searcher := &stubSearcher{
		personInfo:  []models.SearchResult{{Snippet: "person"}},
		companyInfo: &models.CompanyInfo{KnowledgeDescription: "company"},
		synergy:     []models.SearchResult{{Snippet: "synergy"}},
	}
	profiles := &stubProfiles{profile: &models.Profile{Summary: "summary"}}
	h := newTestHandler(t, searcher, profiles)

	record := h.Execute(context.Background(), models.Participant{
		Name: "Ada Lovelace", Role: "Engineer", Company: "Analytical Engines",
		LinkedInURL: "https://linkedin.example/ada",
	}, "Compilers Inc")

	assert.True(t, record.Success)
	require.NotNil(t, record.Profile)
	assert.Equal(t, "summary", record.Profile.Summary)
	assert.Len(t, record.PersonInfo, 1)
	assert.Equal(t, "company", record.CompanyInfo.KnowledgeDescription)
	require.NotNil(t, record.SynergyInfo)
	assert.Len(t, record.SynergyInfo.Results, 1)
}

func TestHandler_Execute_OneFailureDoesNotAbortOthers(t *testing.T) {
	searcher := &stubSearcher{
		personErr:   errors.NewProviderUnavailableError("search", assert.AnError),
		companyInfo: &models.CompanyInfo{KnowledgeDescription: "still works"},
		synergy:     []models.SearchResult{{Snippet: "synergy"}},
	}
	profiles := &stubProfiles{err: errors.NewProviderError("profile", "boom")}
	h := newTestHandler(t, searcher, profiles)

	record := h.Execute(context.Background(), models.Participant{
		Name: "Ada Lovelace", Role: "Engineer", Company: "Analytical Engines",
		LinkedInURL: "https://linkedin.example/ada",
	}, "Compilers Inc")

	// Failed lookups leave their fields empty, the rest still ran.
	assert.Nil(t, record.Profile)
	assert.Empty(t, record.PersonInfo)
	assert.Equal(t, "still works", record.CompanyInfo.KnowledgeDescription)
	assert.NotNil(t, record.SynergyInfo)
	assert.Equal(t, 1, searcher.companyCalls)
	assert.Equal(t, 1, searcher.synergyCalls)
	assert.True(t, record.Success)
}

func TestHandler_Execute_SkipsProfileWithoutURL(t *testing.T) {
	profiles := &stubProfiles{profile: &models.Profile{Summary: "unused"}}
	h := newTestHandler(t, &stubSearcher{}, profiles)

	record := h.Execute(context.Background(), models.Participant{
		Name: "Grace Hopper", Role: "Scientist", Company: "Compilers Inc",
	}, "Compilers Inc")

	assert.Equal(t, 0, profiles.calls)
	assert.Nil(t, record.Profile)
}

func TestHandler_Execute_SkipsSynergyWithoutUserCompany(t *testing.T) {
	searcher := &stubSearcher{}
	h := newTestHandler(t, searcher, &stubProfiles{})

	record := h.Execute(context.Background(), models.Participant{
		Name: "Grace Hopper", Role: "Scientist", Company: "Compilers Inc",
	}, "")

	assert.Equal(t, 0, searcher.synergyCalls)
	assert.Nil(t, record.SynergyInfo)
}

// ==========================
// Summarize
// ==========================

func TestHandler_Research_SecondCallHitsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := &database.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	searcher := &stubSearcher{
		companyInfo: &models.CompanyInfo{KnowledgeDescription: "Maker of engines"},
	}
	h := NewHandler(searcher, &stubProfiles{},
		cache.New(redisClient, time.Hour, logger.NewNoOpLogger()), logger.NewTestLogger(t))

	participant := models.Participant{Name: "Ada Lovelace", Role: "Engineer", Company: "Analytical Engines"}

	first := h.Research(context.Background(), "TechSummit 2025", participant, "Compilers Inc")
	second := h.Research(context.Background(), "TechSummit 2025", participant, "Compilers Inc")

	assert.Equal(t, 1, searcher.companyCalls)
	require.NotNil(t, second.Summary)
	assert.Equal(t, first.Summary.CompanyDescription, second.Summary.CompanyDescription)
}

func TestHandler_Summarize_ReducesRecord(t *testing.T) {
	searcher := &stubSearcher{
		companyInfo: &models.CompanyInfo{KnowledgeDescription: "Maker of engines"},
	}
	h := newTestHandler(t, searcher, &stubProfiles{})

	summary := h.Summarize(context.Background(), "TechSummit 2025", models.Participant{
		Name: "Ada Lovelace", Role: "Engineer", Company: "Analytical Engines",
	}, "Compilers Inc")

	assert.Equal(t, "Ada Lovelace", summary.Name)
	assert.Equal(t, "Maker of engines", summary.CompanyDescription)
	assert.Equal(t, FallbackNoBackground, summary.Background)
}
