package search

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// NoResultsMessage is the sentinel returned whenever the provider fails
// or yields nothing. Search never returns an error to its callers.
const NoResultsMessage = "No web results found."

const (
	defaultEndpoint = "https://html.duckduckgo.com/html"
	maxResults      = 5
	requestTimeout  = 10 * time.Second

	// Long queries get one retry truncated to their leading words.
	retryWordThreshold = 5
	retryWordCount     = 4
)

// Service scrapes the DuckDuckGo HTML results page and flattens the hits
// into a plain-text digest of title/snippet/source triples.
type Service struct {
	endpoint string
	logger   *logrus.Logger
}

func NewService(logger *logrus.Logger) *Service {
	return &Service{
		endpoint: defaultEndpoint,
		logger:   logger,
	}
}

// Search runs the query against the provider, retrying once with a
// truncated query when the original is long. Returns NoResultsMessage on
// any failure.
func (s *Service) Search(query string) string {
	for _, attempt := range queryAttempts(query) {
		digest, err := s.fetch(attempt)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"query": attempt,
				"error": err.Error(),
			}).Warn("Web search attempt failed")
			continue
		}
		if digest != "" {
			return digest
		}
	}

	return NoResultsMessage
}

// queryAttempts returns the full query plus, for long queries, a
// truncated fallback of the first few words.
func queryAttempts(query string) []string {
	attempts := []string{query}

	words := strings.Fields(query)
	if len(words) > retryWordThreshold {
		attempts = append(attempts, strings.Join(words[:retryWordCount], " "))
	}

	return attempts
}

func (s *Service) fetch(query string) (string, error) {
	collector := colly.NewCollector(
		colly.UserAgent("VoterVision-Bot/1.0"),
	)
	collector.SetRequestTimeout(requestTimeout)

	var parts []string
	var fetchErr error

	collector.OnHTML("div.result", func(e *colly.HTMLElement) {
		if len(parts) >= maxResults {
			return
		}

		title := strings.TrimSpace(e.ChildText("a.result__a"))
		snippet := strings.TrimSpace(e.ChildText(".result__snippet"))
		source := strings.TrimSpace(e.ChildAttr("a.result__a", "href"))

		if title == "" {
			return
		}

		parts = append(parts, fmt.Sprintf("Title: %s\nSnippet: %s\nSource: %s", title, snippet, source))
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	visitURL := fmt.Sprintf("%s/?q=%s", s.endpoint, url.QueryEscape(query))
	if err := collector.Visit(visitURL); err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	if fetchErr != nil {
		return "", fmt.Errorf("search provider error: %w", fetchErr)
	}

	return strings.Join(parts, "\n"), nil
}
