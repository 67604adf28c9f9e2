package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/models"
)

// nickname maps a colloquial alias to the candidate's registered name.
// Order matters: longer aliases are listed before their prefixes so
// "kp oli" is rewritten before a bare "oli" could match anything.
type nickname struct {
	alias    string
	fullName string
	pattern  *regexp.Regexp
}

func newNickname(alias, fullName string) nickname {
	return nickname{
		alias:    alias,
		fullName: fullName,
		pattern:  regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(alias) + `\b`),
	}
}

var nicknames = []nickname{
	newNickname("kp oli", "KP Sharma Oli"),
	newNickname("kpoli", "KP Sharma Oli"),
	newNickname("prachanda", "Pushpa Kamal Dahal"),
	newNickname("deuba", "Sher Bahadur Deuba"),
	newNickname("rabi", "Rabi Lamichhane"),
	newNickname("balen", "Balendra Shah"),
	newNickname("gyane", "Gyanendra Shahi"),
}

const (
	localRecordSeparator = "\n---\n"
	analysisExcerptChars = 500
)

// ContextService assembles the local-records and web context blocks that
// ground assistant answers, and resolves which candidates a query is
// about.
type ContextService struct {
	candidates models.CandidateRepository
	search     Searcher
	logger     *logrus.Logger
}

func NewContextService(candidates models.CandidateRepository, search Searcher, logger *logrus.Logger) *ContextService {
	return &ContextService{
		candidates: candidates,
		search:     search,
		logger:     logger,
	}
}

// NormalizeQuery rewrites known nicknames into registered candidate
// names so downstream matching and search see the canonical form.
func NormalizeQuery(query string) string {
	for _, n := range nicknames {
		query = n.pattern.ReplaceAllString(query, n.fullName)
	}
	return query
}

// searchQuery scopes a query to Nepali politics unless the user already
// mentioned Nepal themselves.
func searchQuery(normalized string) string {
	if strings.Contains(strings.ToLower(normalized), "nepal") {
		return normalized
	}
	return normalized + " Nepal politics"
}

// MatchCandidates returns the active candidates whose full registered
// name appears in the query as a case-insensitive whole-word match.
// Nicknames deliberately don't count: only the registered name links a
// query to a local record.
func (s *ContextService) MatchCandidates(query string) ([]models.Candidate, error) {
	candidates, err := s.candidates.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	var matched []models.Candidate
	for _, candidate := range candidates {
		if wholeWordMatch(query, candidate.Name) {
			matched = append(matched, candidate)
		}
	}
	return matched, nil
}

func wholeWordMatch(text, word string) bool {
	pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	return pattern.MatchString(text)
}

// RelevantContext gathers everything the assistant should see for a
// query: local candidate records, a web digest, and which candidates
// matched (so callers can record search engagement). Nickname rewriting
// applies to the web search only; the local scan uses the query as the
// user typed it.
func (s *ContextService) RelevantContext(query string) (local string, web string, matched []models.Candidate) {
	normalized := NormalizeQuery(query)

	matched, err := s.MatchCandidates(query)
	if err != nil {
		s.logger.WithError(err).Warn("Candidate matching failed, continuing without local records")
	}

	var records []string
	for _, candidate := range matched {
		records = append(records, localRecord(candidate))
	}
	local = strings.Join(records, localRecordSeparator)

	web = s.search.Search(searchQuery(normalized))
	return local, web, matched
}

func localRecord(candidate models.Candidate) string {
	analysis := candidate.AIWorkAnalysis
	if analysis == "" {
		analysis = candidate.Bio
	}

	return fmt.Sprintf("[LOCAL RECORD] Candidate: %s (%s)\nAnalysis: %s",
		candidate.Name, candidate.Party, truncateRunes(analysis, analysisExcerptChars))
}
