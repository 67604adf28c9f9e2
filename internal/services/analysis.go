package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/llm"
	"github.com/votervision/backend/internal/models"
)

const (
	// MaxLabDocuments caps how many uploads one analysis considers.
	MaxLabDocuments = 2

	visionDocBudget    = 12000
	analysisDocBudget  = 12000
	summaryFallbackLen = 500
)

// Strategic matrix dimensions scored by the intelligence report.
var matrixKeys = []string{
	"economic_vision",
	"social_progress",
	"political_stability",
	"infrastructure_focus",
	"diplomatic_acumen",
}

const matrixBaseline = 70

// cachedMatrix is returned when a stored report is served without
// regeneration; the scores were not persisted with the report text.
var cachedMatrix = map[string]int{
	"economic_vision":      75,
	"social_progress":      82,
	"political_stability":  65,
	"infrastructure_focus": 70,
	"diplomatic_acumen":    60,
}

// Document is one uploaded file's extracted text.
type Document struct {
	Name string
	Text string
}

// AnalysisService runs the heavier AI workflows: manifesto vision
// analysis, lab document analysis, candidate work summaries, pairwise
// comparison and intelligence reports.
type AnalysisService struct {
	llm        Completer
	search     Searcher
	candidates models.CandidateRepository
	logger     *logrus.Logger
}

func NewAnalysisService(llmClient Completer, search Searcher, candidates models.CandidateRepository, logger *logrus.Logger) *AnalysisService {
	return &AnalysisService{
		llm:        llmClient,
		search:     search,
		candidates: candidates,
		logger:     logger,
	}
}

// AnalyzeDocuments produces the initial lab analysis. One document gets
// a deep single-document read; two get a comparative study. Anything
// past MaxLabDocuments is ignored.
func (s *AnalysisService) AnalyzeDocuments(ctx context.Context, docs []Document) (string, error) {
	if len(docs) == 0 {
		return "", fmt.Errorf("no documents provided")
	}
	if len(docs) > MaxLabDocuments {
		s.logger.WithField("count", len(docs)).Warn("Too many documents uploaded, analyzing the first two")
		docs = docs[:MaxLabDocuments]
	}

	// One document gets the vision breakdown with its machine-readable
	// tail stripped for display.
	if len(docs) == 1 {
		raw := s.AnalyzeVision(ctx, docs[0].Text)
		_, _, display := s.ProcessManifesto(raw)
		return display, nil
	}

	prompt := fmt.Sprintf(`Compare the following two political documents as a briefing for Nepali voters.
Cover each of these dimensions: economic policy, social policy, infrastructure, feasibility of promises, and citizen impact.
Use markdown tables for the side-by-side comparison, then a short prose verdict on where the documents genuinely differ.

DOCUMENT 1 (%s):
%s

DOCUMENT 2 (%s):
%s`,
		docs[0].Name, truncateRunes(docs[0].Text, analysisDocBudget/2),
		docs[1].Name, truncateRunes(docs[1].Text, analysisDocBudget/2))

	return s.llm.Complete(ctx, prompt, "You are a rigorous political document analyst. Answer in structured markdown."), nil
}

// AnalyzeVision asks the model for a manifesto breakdown with a
// machine-readable JSON block alongside the prose.
func (s *AnalysisService) AnalyzeVision(ctx context.Context, text string) string {
	prompt := fmt.Sprintf(`Analyze this election manifesto for Nepali voters.

Write a detailed analysis covering the candidate's vision, key policy promises, feasibility and target demographics.
Then append a JSON block in this exact shape:

`+"```json"+`
{
  "summary": "two to three sentence vision summary",
  "promises": ["promise one", "promise two"],
  "full_analysis": "the complete analysis as markdown"
}
`+"```"+`

MANIFESTO TEXT:
%s`, truncateRunes(text, visionDocBudget))

	return s.llm.Complete(ctx, prompt, "You are a manifesto analyst. Always include the requested JSON block.")
}

// ProcessManifesto splits a raw vision analysis into the stored summary
// and promise list plus the display text with the JSON block removed.
// When no JSON is recoverable, the leading text stands in for the
// summary and the raw response is displayed as-is.
func (s *AnalysisService) ProcessManifesto(raw string) (summary, promises, display string) {
	data, ok := llm.ExtractJSON(raw)
	if !ok {
		s.logger.Warn("Vision analysis contained no recoverable JSON, using text fallback")
		return truncateRunes(raw, summaryFallbackLen), "", raw
	}

	if v, ok := llm.StringField(data, "summary"); ok {
		summary = v
	} else {
		summary = truncateRunes(raw, summaryFallbackLen)
	}
	promises, _ = llm.StringField(data, "promises")

	if v, ok := llm.StringField(data, "full_analysis"); ok && v != "" {
		display = v
	} else {
		display = llm.StripJSONBlock(raw)
	}

	return summary, promises, display
}

// WorkAnalysis summarizes a candidate's track record for their profile.
func (s *AnalysisService) WorkAnalysis(ctx context.Context, candidate *models.Candidate) string {
	prompt := fmt.Sprintf(`Assess the political track record of %s (%s, %s).

BIOGRAPHY:
%s

PAST WORK:
%s

Write a balanced assessment in markdown: major accomplishments, known criticisms, and overall effectiveness. Stay neutral.`,
		candidate.Name, candidate.Party, models.ProvinceNames[candidate.Province],
		candidate.Bio, candidate.PastWork)

	return s.llm.Complete(ctx, prompt, "You are a neutral political analyst for Nepali voters.")
}

const compareAnalysisBudget = 4000

// CompareCandidates compares two candidates through their latest
// manifesto analyses. Without an analyzed manifesto on both sides there
// is nothing substantive to compare, so no AI comparison is produced.
func (s *AnalysisService) CompareCandidates(ctx context.Context, a, b *models.Candidate, manifestoA, manifestoB *models.Manifesto) string {
	if manifestoA == nil || manifestoA.AIVisionAnalysis == "" ||
		manifestoB == nil || manifestoB.AIVisionAnalysis == "" {
		s.logger.WithFields(logrus.Fields{
			"candidate_1": a.Name,
			"candidate_2": b.Name,
		}).Info("Skipping AI comparison, manifesto analysis missing")
		return ""
	}

	prompt := fmt.Sprintf(`Compare these two Nepali political candidates based on their manifesto analyses.

CANDIDATE 1: %s (%s, %s)
Manifesto analysis:
%s

CANDIDATE 2: %s (%s, %s)
Manifesto analysis:
%s

Cover: policy focus, feasibility of promises, and what kind of voter each manifesto speaks to. Present both fairly and do not declare a winner.`,
		a.Name, a.Party, models.ProvinceNames[a.Province],
		truncateRunes(manifestoA.AIVisionAnalysis, compareAnalysisBudget),
		b.Name, b.Party, models.ProvinceNames[b.Province],
		truncateRunes(manifestoB.AIVisionAnalysis, compareAnalysisBudget))

	return s.llm.Complete(ctx, prompt, "You are a neutral political analyst for Nepali voters.")
}

// IntelligenceReport builds (or serves the stored) deep-dive report for
// a candidate, with a five-dimension strategic score matrix.
//
// The report text is cached on the candidate record; the matrix is not,
// so cached reads return representative stored scores.
func (s *AnalysisService) IntelligenceReport(ctx context.Context, candidate *models.Candidate, manifesto *models.Manifesto, regenerate bool) (string, map[string]int) {
	if candidate.AIWorkAnalysis != "" && !regenerate {
		return candidate.AIWorkAnalysis, cachedMatrix
	}

	webDigest := s.search.Search(candidate.Name + " Nepal politics")

	manifestoSummary := "No manifesto on file."
	if manifesto != nil && manifesto.VisionSummary != "" {
		manifestoSummary = manifesto.VisionSummary
	}

	prompt := fmt.Sprintf(`Produce an intelligence report on Nepali politician %s (%s, %s).

PROFILE:
Bio: %s
Past work: %s

MANIFESTO SUMMARY:
%s

RECENT WEB COVERAGE:
%s

Write a thorough markdown report: background, political positioning, strengths, vulnerabilities and recent developments.
Then append a JSON block scoring the candidate 0-100 on each dimension:

`+"```json"+`
{
  "strategic_matrix": {
    "economic_vision": 0,
    "social_progress": 0,
    "political_stability": 0,
    "infrastructure_focus": 0,
    "diplomatic_acumen": 0
  }
}
`+"```", candidate.Name, candidate.Party, models.ProvinceNames[candidate.Province],
		candidate.Bio, candidate.PastWork, manifestoSummary,
		truncateRunes(webDigest, webContextBudget))

	raw := s.llm.Complete(ctx, prompt, "You are a political intelligence analyst. Always include the requested JSON block.")

	matrix := recoverMatrix(raw)
	report := llm.StripJSONBlock(raw)

	if err := s.candidates.UpdateWorkAnalysis(candidate.ID, report); err != nil {
		s.logger.WithError(err).Warn("Failed to cache intelligence report")
	}

	return report, matrix
}

// recoverMatrix pulls strategic_matrix out of the model response,
// filling any missing dimension with the baseline score.
func recoverMatrix(raw string) map[string]int {
	matrix := make(map[string]int, len(matrixKeys))
	for _, key := range matrixKeys {
		matrix[key] = matrixBaseline
	}

	data, ok := llm.ExtractJSON(raw)
	if !ok {
		return matrix
	}

	nested, ok := data["strategic_matrix"].(map[string]interface{})
	if !ok {
		return matrix
	}

	for key, value := range llm.IntMatrix(nested) {
		if _, known := matrix[key]; known {
			matrix[key] = value
		}
	}
	return matrix
}

// LabTitle derives a stored title for a lab analysis from its documents.
func LabTitle(docs []Document) string {
	if len(docs) == 0 {
		return "Document Analysis"
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	title := "Analysis: " + strings.Join(names, " vs ")
	return truncateRunes(title, 200)
}
