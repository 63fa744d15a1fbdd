package intake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/models"
	"conference-outreach/internal/store"
	"conference-outreach/internal/tracker"
)

const testEvent = "TechSummit 2025"

// ==========================
// Test Helper Functions
// ==========================

type stubScraper struct {
	participants []models.Participant
	err          error
}

func (s *stubScraper) ScrapeParticipants(ctx context.Context, url string) ([]models.Participant, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.participants, nil
}

func newTestHandler(t *testing.T, cfg *Config, scraper Scraper) (*Handler, store.Store, *tracker.Tracker) {
	st := store.NewMemory()
	tr := tracker.New(st, logger.NewTestLogger(t))
	if cfg == nil {
		cfg = &Config{AllowPlaceholderFallback: true, PlaceholderCount: 3}
	}
	return NewHandler(cfg, scraper, st, tr, logger.NewTestLogger(t)), st, tr
}

// ==========================
// Manual Intake
// ==========================

func TestHandler_Execute_ManualList(t *testing.T) {
	ctx := context.Background()
	h, _, tr := newTestHandler(t, nil, &stubScraper{})

	out, err := h.Execute(ctx, &Input{
		Event: testEvent,
		Participants: []models.Participant{
			{Name: "Ada Lovelace", Company: "Analytical Engines"},
			{Name: "Grace Hopper", Company: "Compilers Inc"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, out.Participants, 2)
	assert.False(t, out.FromFallback)

	// Both registered as Pending in the approval sheet.
	all, err := tr.GetAll(ctx, testEvent)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, entry := range all {
		assert.Equal(t, models.StatusPending, entry.Status)
	}
}

func TestHandler_Execute_ManualList_SkipsNamelessRecords(t *testing.T) {
	h, _, _ := newTestHandler(t, nil, &stubScraper{})

	out, err := h.Execute(context.Background(), &Input{
		Event: testEvent,
		Participants: []models.Participant{
			{Name: "Ada Lovelace"},
			{Company: "Nameless Co"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, out.Participants, 1)
}

func TestHandler_Execute_Idempotent(t *testing.T) {
	ctx := context.Background()
	h, st, tr := newTestHandler(t, nil, &stubScraper{})

	input := &Input{
		Event:        testEvent,
		Participants: []models.Participant{{Name: "Ada Lovelace", Company: "Analytical Engines"}},
	}
	_, err := h.Execute(ctx, input)
	require.NoError(t, err)
	_, err = h.Execute(ctx, input)
	require.NoError(t, err)

	rows, err := st.ReadAll(ctx, ParticipantsTable(testEvent))
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	all, err := tr.GetAll(ctx, testEvent)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHandler_Execute_RerunKeepsApprovalStatus(t *testing.T) {
	ctx := context.Background()
	h, _, tr := newTestHandler(t, nil, &stubScraper{})

	input := &Input{
		Event:        testEvent,
		Participants: []models.Participant{{Name: "Ada Lovelace", Company: "Analytical Engines"}},
	}
	_, err := h.Execute(ctx, input)
	require.NoError(t, err)

	ok, err := tr.UpdateStatus(ctx, testEvent, "Ada Lovelace", models.StatusApproved, "")
	require.NoError(t, err)
	require.True(t, ok)

	// Registering the same roster again leaves the approval alone.
	_, err = h.Execute(ctx, input)
	require.NoError(t, err)

	entry, found, err := tr.GetStatus(ctx, testEvent, "Ada Lovelace")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.StatusApproved, entry.Status)
	assert.NotEmpty(t, entry.DateApproved)
}

// ==========================
// Scrape Path
// ==========================

func TestHandler_Execute_ScrapeSuccess(t *testing.T) {
	h, _, _ := newTestHandler(t, nil, &stubScraper{
		participants: []models.Participant{{Name: "Alan Turing", Company: "Enigma Ltd"}},
	})

	out, err := h.Execute(context.Background(), &Input{Event: testEvent, ScrapeURL: "https://event.example/roster"})
	require.NoError(t, err)
	require.Len(t, out.Participants, 1)
	assert.Equal(t, "Alan Turing", out.Participants[0].Name)
	assert.False(t, out.FromFallback)
}

func TestHandler_Execute_ScrapeFailureFallsBackToPlaceholders(t *testing.T) {
	scrapeErr := errors.NewScrapeFailedError("https://event.example", assert.AnError)
	h, _, tr := newTestHandler(t, &Config{AllowPlaceholderFallback: true, PlaceholderCount: 3}, &stubScraper{err: scrapeErr})

	out, err := h.Execute(context.Background(), &Input{Event: testEvent, ScrapeURL: "https://event.example"})
	require.NoError(t, err)
	assert.True(t, out.FromFallback)
	require.Len(t, out.Participants, 3)
	assert.Equal(t, "Speaker 1", out.Participants[0].Name)
	assert.Equal(t, "Company 3", out.Participants[2].Company)

	all, err := tr.GetAll(context.Background(), testEvent)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHandler_Execute_ScrapeFailureWithFallbackDisabled(t *testing.T) {
	scrapeErr := errors.NewScrapeFailedError("https://event.example", assert.AnError)
	h, _, _ := newTestHandler(t, &Config{AllowPlaceholderFallback: false}, &stubScraper{err: scrapeErr})

	_, err := h.Execute(context.Background(), &Input{Event: testEvent, ScrapeURL: "https://event.example"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeScrapeFailed, errors.CodeOf(err))
}

// ==========================
// Listing
// ==========================

func TestHandler_List(t *testing.T) {
	ctx := context.Background()
	h, _, _ := newTestHandler(t, nil, &stubScraper{})

	_, err := h.Execute(ctx, &Input{
		Event: testEvent,
		Participants: []models.Participant{
			{Name: "Ada Lovelace", Role: "Engineer", Company: "Analytical Engines"},
		},
	})
	require.NoError(t, err)

	participants, err := h.List(ctx, testEvent)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "Engineer", participants[0].Role)
}
