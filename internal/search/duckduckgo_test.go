package search

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

const resultsPage = `<html><body>
<div class="result">
  <a class="result__a" href="https://example.com/oli">KP Sharma Oli - Profile</a>
  <div class="result__snippet">Former Prime Minister of Nepal and CPN-UML chairman.</div>
</div>
<div class="result">
  <a class="result__a" href="https://example.com/news">Nepal election news</a>
  <div class="result__snippet">Latest coverage of the upcoming polls.</div>
</div>
</body></html>`

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service := NewService(logrus.New())
	service.endpoint = server.URL
	return service, server
}

func TestSearch_ReturnsDigest(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KP Sharma Oli Nepal politics", r.URL.Query().Get("q"))
		fmt.Fprint(w, resultsPage)
	})

	digest := service.Search("KP Sharma Oli Nepal politics")
	assert.Contains(t, digest, "Title: KP Sharma Oli - Profile")
	assert.Contains(t, digest, "Snippet: Former Prime Minister of Nepal and CPN-UML chairman.")
	assert.Contains(t, digest, "Source: https://example.com/oli")
	assert.Contains(t, digest, "Title: Nepal election news")
}

func TestSearch_SentinelOnProviderError(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	assert.Equal(t, NoResultsMessage, service.Search("anything at all"))
}

func TestSearch_SentinelOnEmptyResults(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>no results markup</body></html>")
	})

	assert.Equal(t, NoResultsMessage, service.Search("obscure query"))
}

func TestSearch_LongQueryRetriesTruncated(t *testing.T) {
	var queries []string
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		if len(queries) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, resultsPage)
	})

	digest := service.Search("what are the key promises of Balendra Shah manifesto")
	assert.Contains(t, digest, "Title:")
	assert.Equal(t, []string{
		"what are the key promises of Balendra Shah manifesto",
		"what are the key",
	}, queries)
}

func TestQueryAttempts(t *testing.T) {
	assert.Equal(t, []string{"short query"}, queryAttempts("short query"))
	assert.Equal(t,
		[]string{"one two three four five six", "one two three four"},
		queryAttempts("one two three four five six"))
}
