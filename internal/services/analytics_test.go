package services

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/votervision/backend/internal/models"
)

func newAnalyticsHarness() (*AnalyticsService, *fakeQueryLogRepo, *fakeSearcher) {
	candidates := newFakeCandidateRepo(
		models.Candidate{BaseModel: models.BaseModel{ID: 1}, Name: "A", Party: "P", ViewCount: 10, IsActive: true},
		models.Candidate{BaseModel: models.BaseModel{ID: 2}, Name: "B", Party: "P", ViewCount: 5, IsActive: true},
	)
	logs := &fakeQueryLogRepo{}
	searcher := &fakeSearcher{digest: "No web results found."}
	svc := NewAnalyticsService(candidates, &fakeManifestoRepo{}, logs, &fakeResearchRepo{}, searcher, logrus.New())
	return svc, logs, searcher
}

func TestDashboardStats(t *testing.T) {
	svc, logs, _ := newAnalyticsHarness()
	logs.logs = []models.QueryLog{{Query: "q1"}, {Query: "q2"}, {Query: "q3"}}

	stats := svc.DashboardStats()

	assert.Equal(t, int64(2), stats.TotalCandidates)
	assert.Equal(t, int64(3), stats.QueriesHandled)
	assert.Equal(t, int64(15), stats.TotalViews)
	assert.Equal(t, "operational", stats.SystemStatus)
}

func TestTrendingTopics_FiltersStopwords(t *testing.T) {
	svc, logs, _ := newAnalyticsHarness()
	logs.logs = []models.QueryLog{
		{Query: "what about the manifesto"},
		{Query: "manifesto promises for roads"},
		{Query: "tell me about corruption"},
		{Query: "corruption in the government"},
		{Query: "manifesto details"},
	}

	topics := svc.TrendingTopics()

	assert.Equal(t, "manifesto", topics[0])
	assert.Contains(t, topics, "corruption")
	assert.NotContains(t, topics, "the")
	assert.NotContains(t, topics, "about")
	// Words seen once do not trend.
	assert.NotContains(t, topics, "roads")
}

func TestSentimentVelocity_FallbackOnThinLogs(t *testing.T) {
	svc, logs, _ := newAnalyticsHarness()
	for i := 0; i < 10; i++ {
		logs.logs = append(logs.logs, models.QueryLog{Query: "q", SentimentScore: 1})
	}

	assert.Equal(t, sentimentVelocityFallback, svc.SentimentVelocity())
}

func TestSentimentVelocity_ChunksRealLogs(t *testing.T) {
	svc, logs, _ := newAnalyticsHarness()
	// Twelve logs, sentiment drifting from -1 to +1 in halves.
	for i := 0; i < 6; i++ {
		logs.logs = append(logs.logs, models.QueryLog{Query: "q", SentimentScore: -1})
	}
	for i := 0; i < 6; i++ {
		logs.logs = append(logs.logs, models.QueryLog{Query: "q", SentimentScore: 1})
	}

	velocity := svc.SentimentVelocity()

	assert.Len(t, velocity, 6)
	assert.Equal(t, 0, velocity[0])
	assert.Equal(t, 100, velocity[5])
}

func TestPoliticalBriefing_ParsesDigest(t *testing.T) {
	svc, _, searcher := newAnalyticsHarness()
	searcher.digest = "Title: First headline\nSnippet: first snippet\nSource: https://a\n" +
		"Title: Second headline\nSnippet: second snippet\nSource: https://b\n" +
		"Title: Third headline\nSnippet: third snippet\nSource: https://c\n" +
		"Title: Fourth headline\nSnippet: fourth snippet\nSource: https://d"

	briefing := svc.PoliticalBriefing()

	assert.Len(t, briefing, 3)
	assert.Equal(t, "First headline", briefing[0].Title)
	assert.Equal(t, "first snippet", briefing[0].Snippet)
	assert.Equal(t, []string{"Nepal politics latest news"}, searcher.queries)
}

func TestPoliticalBriefing_EmptyOnSentinel(t *testing.T) {
	svc, _, _ := newAnalyticsHarness()
	assert.Empty(t, svc.PoliticalBriefing())
}

func TestSystemActivity_MergesSources(t *testing.T) {
	svc, logs, _ := newAnalyticsHarness()
	logs.logs = []models.QueryLog{{Query: "who is balen"}}

	activity := svc.SystemActivity()

	types := make(map[string]bool)
	for _, item := range activity {
		types[item.Type] = true
	}
	assert.True(t, types["query"])
	assert.True(t, types["candidate"])
}

func TestSentimentScore(t *testing.T) {
	assert.Equal(t, float64(0), SentimentScore("what is the weather"))
	assert.Greater(t, SentimentScore("great progress and strong development"), 0.5)
	assert.Less(t, SentimentScore("corruption scandal and fraud"), -0.5)
	assert.Equal(t, float64(0), SentimentScore("good but corrupt"))
}
