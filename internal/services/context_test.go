package services

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/votervision/backend/internal/models"
)

func testCandidates() []models.Candidate {
	oli := models.Candidate{
		BaseModel:      models.BaseModel{ID: 1},
		Name:           "KP Sharma Oli",
		Party:          "CPN-UML",
		Province:       models.ProvinceKoshi,
		Bio:            "Former Prime Minister of Nepal.",
		AIWorkAnalysis: "Led two governments and oversaw the 2015 constitution rollout.",
		IsActive:       true,
	}
	balen := models.Candidate{
		BaseModel: models.BaseModel{ID: 2},
		Name:      "Balendra Shah",
		Party:     "Independent",
		Province:  models.ProvinceBagmati,
		Bio:       "Mayor of Kathmandu.",
		IsActive:  true,
	}
	inactive := models.Candidate{
		BaseModel: models.BaseModel{ID: 3},
		Name:      "Retired Person",
		Party:     "None",
		Province:  models.ProvinceBagmati,
		IsActive:  false,
	}
	return []models.Candidate{oli, balen, inactive}
}

func TestNormalizeQuery_RewritesNicknames(t *testing.T) {
	assert.Equal(t, "what did KP Sharma Oli do", NormalizeQuery("what did kpoli do"))
	assert.Equal(t, "what did KP Sharma Oli do", NormalizeQuery("what did KP OLI do"))
	assert.Equal(t, "is Pushpa Kamal Dahal running", NormalizeQuery("is prachanda running"))
	assert.Equal(t, "Balendra Shah in kathmandu", NormalizeQuery("balen in kathmandu"))
}

func TestNormalizeQuery_LeavesUnknownWordsAlone(t *testing.T) {
	assert.Equal(t, "kpolitics is not a nickname", NormalizeQuery("kpolitics is not a nickname"))
	assert.Equal(t, "balenciaga shoes", NormalizeQuery("balenciaga shoes"))
}

func TestSearchQuery_AppendsNepalScope(t *testing.T) {
	assert.Equal(t, "KP Sharma Oli Nepal politics", searchQuery("KP Sharma Oli"))
	assert.Equal(t, "elections in Nepal", searchQuery("elections in Nepal"))
	assert.Equal(t, "nepal budget 2026", searchQuery("nepal budget 2026"))
}

func TestMatchCandidates_WholeWordOnly(t *testing.T) {
	repo := newFakeCandidateRepo(testCandidates()...)
	svc := NewContextService(repo, &fakeSearcher{}, logrus.New())

	matched, err := svc.MatchCandidates("tell me about KP Sharma Oli")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "KP Sharma Oli", matched[0].Name)

	matched, err = svc.MatchCandidates("tell me about kp sharma oli please")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)

	// A lone family name is not the registered name.
	matched, err = svc.MatchCandidates("what has oli promised")
	assert.NoError(t, err)
	assert.Empty(t, matched)

	// Substring inside another word must not match.
	matched, err = svc.MatchCandidates("what is the kp sharma olive harvest")
	assert.NoError(t, err)
	assert.Empty(t, matched)
}

func TestMatchCandidates_SkipsInactive(t *testing.T) {
	repo := newFakeCandidateRepo(testCandidates()...)
	svc := NewContextService(repo, &fakeSearcher{}, logrus.New())

	matched, err := svc.MatchCandidates("Retired Person news")
	assert.NoError(t, err)
	assert.Empty(t, matched)
}

func TestRelevantContext_BuildsLocalRecordsAndSearches(t *testing.T) {
	repo := newFakeCandidateRepo(testCandidates()...)
	searcher := &fakeSearcher{digest: "Title: Oli news\nSnippet: something\nSource: https://example.com"}
	svc := NewContextService(repo, searcher, logrus.New())

	local, web, matched := svc.RelevantContext("what did KP Sharma Oli do")

	assert.Contains(t, local, "[LOCAL RECORD] Candidate: KP Sharma Oli (CPN-UML)")
	assert.Contains(t, local, "Led two governments")
	assert.Equal(t, searcher.digest, web)
	assert.Len(t, matched, 1)

	assert.Equal(t, []string{"what did KP Sharma Oli do Nepal politics"}, searcher.queries)
}

func TestRelevantContext_NicknameRewritesSearchNotLocalScan(t *testing.T) {
	repo := newFakeCandidateRepo(testCandidates()...)
	searcher := &fakeSearcher{digest: "No web results found."}
	svc := NewContextService(repo, searcher, logrus.New())

	local, _, matched := svc.RelevantContext("what did kpoli do")

	// The typed query never contains the registered name, so no local
	// record is attached and no engagement is attributed.
	assert.Empty(t, local)
	assert.Empty(t, matched)
	// The web search still sees the canonical name.
	assert.Equal(t, []string{"what did KP Sharma Oli do Nepal politics"}, searcher.queries)
}

func TestRelevantContext_BioFallbackWhenNoAnalysis(t *testing.T) {
	repo := newFakeCandidateRepo(testCandidates()...)
	svc := NewContextService(repo, &fakeSearcher{digest: "No web results found."}, logrus.New())

	local, _, _ := svc.RelevantContext("Balendra Shah plans for kathmandu")
	assert.Contains(t, local, "Analysis: Mayor of Kathmandu.")
}

func TestLocalRecord_TruncatesLongAnalysis(t *testing.T) {
	long := make([]rune, 800)
	for i := range long {
		long[i] = 'x'
	}
	candidate := models.Candidate{
		Name:           "Test Candidate",
		Party:          "Test Party",
		AIWorkAnalysis: string(long),
	}

	record := localRecord(candidate)
	assert.LessOrEqual(t, len(record), 600)
}
