package services

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/votervision/backend/internal/models"
)

func newEngagementHarness() (*EngagementService, *fakeCandidateRepo, *fakeEngagementRepo, *time.Time) {
	repo := newFakeCandidateRepo(models.Candidate{BaseModel: models.BaseModel{ID: 1}, Name: "Test", Party: "Test", IsActive: true})
	engage := &fakeEngagementRepo{}
	svc := NewEngagementService(repo, engage, logrus.New())

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo, engage, &now
}

func TestLogView_CounterAlwaysMoves(t *testing.T) {
	svc, repo, engage, _ := newEngagementHarness()

	svc.LogView(1)
	svc.LogView(1)

	assert.Equal(t, []uint{1, 1}, repo.viewBumps)
	// Two views inside the hour produce one history row.
	assert.Len(t, engage.events, 1)
	assert.Equal(t, 1, engage.events[0].Views)
}

func TestLogView_NewRowAfterWindow(t *testing.T) {
	svc, _, engage, now := newEngagementHarness()

	svc.LogView(1)
	engage.events[0].CreatedAt = now.Add(-2 * time.Hour)

	svc.LogView(1)
	assert.Len(t, engage.events, 2)
}

func TestLogSearch_Dedupes(t *testing.T) {
	svc, repo, engage, _ := newEngagementHarness()

	svc.LogSearch(1)
	svc.LogSearch(1)
	svc.LogSearch(1)

	assert.Equal(t, []uint{1, 1, 1}, repo.searchBumps)
	assert.Len(t, engage.events, 1)
	assert.Equal(t, 1, engage.events[0].Searches)
}

func TestTrendData_FallbackWhenSparse(t *testing.T) {
	svc, _, engage, now := newEngagementHarness()

	engage.events = []models.EngagementHistory{
		{CandidateID: 1, Views: 1, BaseModel: models.BaseModel{CreatedAt: now.Add(-24 * time.Hour)}},
		{CandidateID: 1, Views: 1, BaseModel: models.BaseModel{CreatedAt: now.Add(-48 * time.Hour)}},
	}

	assert.Equal(t, trendFallback, svc.TrendData(1))
}

func TestTrendData_BucketsByDay(t *testing.T) {
	svc, _, engage, now := newEngagementHarness()

	// Three events: two on the most recent day, one three days back.
	engage.events = []models.EngagementHistory{
		{CandidateID: 1, Views: 2, BaseModel: models.BaseModel{CreatedAt: now.Add(-1 * time.Hour)}},
		{CandidateID: 1, Searches: 3, BaseModel: models.BaseModel{CreatedAt: now.Add(-2 * time.Hour)}},
		{CandidateID: 1, Views: 4, BaseModel: models.BaseModel{CreatedAt: now.Add(-72 * time.Hour)}},
	}

	trend := svc.TrendData(1)
	assert.Len(t, trend, 7)
	assert.Equal(t, 5, trend[6])
	assert.Equal(t, 4, trend[4])

	var total int
	for _, v := range trend {
		total += v
	}
	assert.Equal(t, 9, total)
}
