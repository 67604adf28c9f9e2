package services

import (
	"context"
	"fmt"
	"time"

	"github.com/votervision/backend/internal/models"
)

// fakeCompleter replays a canned response and records prompts.
type fakeCompleter struct {
	response string
	prompts  []string
	systems  []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt, system string) string {
	f.prompts = append(f.prompts, prompt)
	f.systems = append(f.systems, system)
	return f.response
}

// fakeSearcher replays a canned digest and records queries.
type fakeSearcher struct {
	digest  string
	queries []string
}

func (f *fakeSearcher) Search(query string) string {
	f.queries = append(f.queries, query)
	return f.digest
}

// fakeCandidateRepo is an in-memory models.CandidateRepository.
type fakeCandidateRepo struct {
	candidates   []models.Candidate
	workAnalyses map[uint]string
	viewBumps    []uint
	searchBumps  []uint
}

func newFakeCandidateRepo(candidates ...models.Candidate) *fakeCandidateRepo {
	return &fakeCandidateRepo{
		candidates:   candidates,
		workAnalyses: make(map[uint]string),
	}
}

func (f *fakeCandidateRepo) Create(candidate *models.Candidate) error {
	candidate.ID = uint(len(f.candidates) + 1)
	f.candidates = append(f.candidates, *candidate)
	return nil
}

func (f *fakeCandidateRepo) GetByID(id uint) (*models.Candidate, error) {
	for i := range f.candidates {
		if f.candidates[i].ID == id {
			return &f.candidates[i], nil
		}
	}
	return nil, fmt.Errorf("candidate not found")
}

func (f *fakeCandidateRepo) GetBySlug(slug string) (*models.Candidate, error) {
	for i := range f.candidates {
		if f.candidates[i].Slug == slug {
			return &f.candidates[i], nil
		}
	}
	return nil, fmt.Errorf("candidate not found")
}

func (f *fakeCandidateRepo) GetByIDs(ids []uint) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, id := range ids {
		if c, err := f.GetByID(id); err == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCandidateRepo) GetAll() ([]models.Candidate, error) {
	return f.candidates, nil
}

func (f *fakeCandidateRepo) GetActive() ([]models.Candidate, error) {
	var out []models.Candidate
	for _, c := range f.candidates {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCandidateRepo) GetRecent(limit int) ([]models.Candidate, error) {
	if len(f.candidates) > limit {
		return f.candidates[:limit], nil
	}
	return f.candidates, nil
}

func (f *fakeCandidateRepo) Search(term string) ([]models.Candidate, error) {
	return f.candidates, nil
}

func (f *fakeCandidateRepo) Update(candidate *models.Candidate) error {
	for i := range f.candidates {
		if f.candidates[i].ID == candidate.ID {
			f.candidates[i] = *candidate
			return nil
		}
	}
	return fmt.Errorf("candidate not found")
}

func (f *fakeCandidateRepo) UpdateWorkAnalysis(id uint, analysis string) error {
	f.workAnalyses[id] = analysis
	return nil
}

func (f *fakeCandidateRepo) IncrementViewCount(id uint) error {
	f.viewBumps = append(f.viewBumps, id)
	return nil
}

func (f *fakeCandidateRepo) IncrementSearchCount(id uint) error {
	f.searchBumps = append(f.searchBumps, id)
	return nil
}

func (f *fakeCandidateRepo) SlugExists(slug string) (bool, error) {
	_, err := f.GetBySlug(slug)
	return err == nil, nil
}

func (f *fakeCandidateRepo) Count() (int64, error) {
	return int64(len(f.candidates)), nil
}

func (f *fakeCandidateRepo) TotalViews() (int64, error) {
	var total int64
	for _, c := range f.candidates {
		total += int64(c.ViewCount)
	}
	return total, nil
}

func (f *fakeCandidateRepo) Delete(id uint) error {
	for i := range f.candidates {
		if f.candidates[i].ID == id {
			f.candidates = append(f.candidates[:i], f.candidates[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("candidate not found")
}

// fakeEngagementRepo is an in-memory models.EngagementRepository.
type fakeEngagementRepo struct {
	events []models.EngagementHistory
}

func (f *fakeEngagementRepo) Create(event *models.EngagementHistory) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEngagementRepo) HasRecent(candidateID uint, since time.Time) (bool, error) {
	for _, e := range f.events {
		if e.CandidateID == candidateID && !e.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEngagementRepo) GetSince(candidateID uint, since time.Time) ([]models.EngagementHistory, error) {
	var out []models.EngagementHistory
	for _, e := range f.events {
		if e.CandidateID == candidateID && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeQueryLogRepo is an in-memory models.QueryLogRepository.
type fakeQueryLogRepo struct {
	logs []models.QueryLog
}

func (f *fakeQueryLogRepo) Create(log *models.QueryLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeQueryLogRepo) GetRecent(limit int) ([]models.QueryLog, error) {
	if len(f.logs) > limit {
		return f.logs[len(f.logs)-limit:], nil
	}
	return f.logs, nil
}

func (f *fakeQueryLogRepo) GetAllOrdered() ([]models.QueryLog, error) {
	return f.logs, nil
}

func (f *fakeQueryLogRepo) Count() (int64, error) {
	return int64(len(f.logs)), nil
}

// fakeManifestoRepo is an in-memory models.ManifestoRepository.
type fakeManifestoRepo struct {
	manifestos []models.Manifesto
}

func (f *fakeManifestoRepo) Create(m *models.Manifesto) error {
	m.ID = uint(len(f.manifestos) + 1)
	f.manifestos = append(f.manifestos, *m)
	return nil
}

func (f *fakeManifestoRepo) GetByID(id uint) (*models.Manifesto, error) {
	for i := range f.manifestos {
		if f.manifestos[i].ID == id {
			return &f.manifestos[i], nil
		}
	}
	return nil, fmt.Errorf("manifesto not found")
}

func (f *fakeManifestoRepo) GetByCandidate(candidateID uint) ([]models.Manifesto, error) {
	var out []models.Manifesto
	for _, m := range f.manifestos {
		if m.CandidateID == candidateID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeManifestoRepo) GetLatestForCandidate(candidateID uint) (*models.Manifesto, error) {
	all, _ := f.GetByCandidate(candidateID)
	if len(all) == 0 {
		return nil, nil
	}
	return &all[len(all)-1], nil
}

func (f *fakeManifestoRepo) Update(m *models.Manifesto) error {
	for i := range f.manifestos {
		if f.manifestos[i].ID == m.ID {
			f.manifestos[i] = *m
			return nil
		}
	}
	return fmt.Errorf("manifesto not found")
}

func (f *fakeManifestoRepo) Count() (int64, error) {
	return int64(len(f.manifestos)), nil
}

// fakeResearchRepo is an in-memory models.ResearchAnalysisRepository.
type fakeResearchRepo struct {
	analyses []models.ResearchAnalysis
}

func (f *fakeResearchRepo) Create(a *models.ResearchAnalysis) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	f.analyses = append(f.analyses, *a)
	return nil
}

func (f *fakeResearchRepo) GetRecent(limit int) ([]models.ResearchAnalysis, error) {
	if len(f.analyses) > limit {
		return f.analyses[:limit], nil
	}
	return f.analyses, nil
}
