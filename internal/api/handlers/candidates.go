package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/models"
	"github.com/votervision/backend/internal/repository"
	"github.com/votervision/backend/internal/services"
	"github.com/votervision/backend/pkg/utils"
)

type CandidateHandler struct {
	repos      *repository.RepositoryManager
	analysis   *services.AnalysisService
	engagement *services.EngagementService
	logger     *logrus.Logger
}

func NewCandidateHandler(
	repos *repository.RepositoryManager,
	analysis *services.AnalysisService,
	engagement *services.EngagementService,
	logger *logrus.Logger,
) *CandidateHandler {
	return &CandidateHandler{
		repos:      repos,
		analysis:   analysis,
		engagement: engagement,
		logger:     logger,
	}
}

// ListCandidates returns active candidates, featured first.
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.repos.Candidate.GetActive()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list candidates")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load candidates", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Candidates retrieved", candidates)
}

// GetCandidate serves one profile by slug and records the view.
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	candidate, err := h.repos.Candidate.GetBySlug(c.Param("slug"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Candidate not found", err)
		return
	}

	h.engagement.LogView(candidate.ID)

	utils.SuccessResponse(c, http.StatusOK, "Candidate retrieved", models.CandidateDetailResponse{
		Candidate:    *candidate,
		ProvinceName: models.ProvinceNames[candidate.Province],
		Manifestos:   candidate.Manifestos,
	})
}

// CreateCandidate registers a candidate and generates the track-record
// analysis inline when profile text is available.
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req models.CandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	candidate := &models.Candidate{
		Name:     strings.TrimSpace(req.Name),
		Party:    strings.TrimSpace(req.Party),
		Province: req.Province,
		Bio:      req.Bio,
		PastWork: req.PastWork,
		IsActive: true,
	}
	if candidate.Province == "" {
		candidate.Province = models.ProvinceBagmati
	}

	if err := h.repos.Candidate.Create(candidate); err != nil {
		h.logger.WithError(err).Error("Failed to create candidate")
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to create candidate", err)
		return
	}

	if candidate.Bio != "" || candidate.PastWork != "" {
		analysis := h.analysis.WorkAnalysis(c.Request.Context(), candidate)
		if err := h.repos.Candidate.UpdateWorkAnalysis(candidate.ID, analysis); err != nil {
			h.logger.WithError(err).Warn("Failed to store work analysis")
		} else {
			candidate.AIWorkAnalysis = analysis
		}
	}

	utils.SuccessResponse(c, http.StatusCreated, "Candidate created", candidate)
}

// UpdateCandidate applies a partial update. Changing the past-work text
// regenerates the stored track-record analysis.
func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid candidate ID", err)
		return
	}

	candidate, err := h.repos.Candidate.GetByID(id)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Candidate not found", err)
		return
	}

	var req models.CandidateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	pastWorkChanged := false
	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Party != nil {
		candidate.Party = *req.Party
	}
	if req.Province != nil {
		candidate.Province = *req.Province
	}
	if req.Bio != nil {
		candidate.Bio = *req.Bio
	}
	if req.PastWork != nil && *req.PastWork != candidate.PastWork {
		candidate.PastWork = *req.PastWork
		pastWorkChanged = true
	}
	if req.IsActive != nil {
		candidate.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		candidate.IsFeatured = *req.IsFeatured
	}

	if err := h.repos.Candidate.Update(candidate); err != nil {
		h.logger.WithError(err).Error("Failed to update candidate")
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to update candidate", err)
		return
	}

	if pastWorkChanged {
		analysis := h.analysis.WorkAnalysis(c.Request.Context(), candidate)
		if err := h.repos.Candidate.UpdateWorkAnalysis(candidate.ID, analysis); err != nil {
			h.logger.WithError(err).Warn("Failed to refresh work analysis")
		} else {
			candidate.AIWorkAnalysis = analysis
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "Candidate updated", candidate)
}

func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid candidate ID", err)
		return
	}

	if err := h.repos.Candidate.Delete(id); err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Candidate not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Candidate deleted", nil)
}

// SearchCandidates looks up candidates by name, party or bio and bumps
// each hit's search counter.
func (h *CandidateHandler) SearchCandidates(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Search term is required", nil)
		return
	}

	candidates, err := h.repos.Candidate.Search(services.NormalizeQuery(term))
	if err != nil {
		h.logger.WithError(err).Error("Candidate search failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Search failed", err)
		return
	}

	for _, candidate := range candidates {
		h.engagement.LogSearch(candidate.ID)
	}

	utils.SuccessResponse(c, http.StatusOK, "Search completed", candidates)
}

// CompareCandidates produces an AI comparison of exactly two profiles.
func (h *CandidateHandler) CompareCandidates(c *gin.Context) {
	ids, err := parseIDList(c.Query("ids"))
	if err != nil || len(ids) != 2 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Exactly two candidate IDs are required, e.g. ?ids=1,2", err)
		return
	}

	candidates, err := h.repos.Candidate.GetByIDs(ids)
	if err != nil || len(candidates) != 2 {
		utils.ErrorResponse(c, http.StatusNotFound, "One or both candidates not found", err)
		return
	}

	manifestoA, err := h.repos.Manifesto.GetLatestForCandidate(candidates[0].ID)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load manifesto for comparison")
	}
	manifestoB, err := h.repos.Manifesto.GetLatestForCandidate(candidates[1].ID)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load manifesto for comparison")
	}

	comparison := h.analysis.CompareCandidates(c.Request.Context(),
		&candidates[0], &candidates[1], manifestoA, manifestoB)

	utils.SuccessResponse(c, http.StatusOK, "Comparison generated", models.CompareResponse{
		Candidates:   candidates,
		AIComparison: comparison,
	})
}

// GetReport serves the candidate's intelligence report, regenerating it
// when ?regenerate=true.
func (h *CandidateHandler) GetReport(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid candidate ID", err)
		return
	}

	candidate, err := h.repos.Candidate.GetByID(id)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Candidate not found", err)
		return
	}

	manifesto, err := h.repos.Manifesto.GetLatestForCandidate(id)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load manifesto for report")
	}

	regenerate := c.Query("regenerate") == "true"
	report, matrix := h.analysis.IntelligenceReport(c.Request.Context(), candidate, manifesto, regenerate)

	utils.SuccessResponse(c, http.StatusOK, "Report generated", models.ReportResponse{
		Candidate: candidate.Name,
		Report:    report,
		Matrix:    matrix,
	})
}

// GetTrend serves the seven-day engagement chart for a candidate.
func (h *CandidateHandler) GetTrend(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid candidate ID", err)
		return
	}

	if _, err := h.repos.Candidate.GetByID(id); err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Candidate not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trend retrieved", gin.H{
		"trend": h.engagement.TrendData(id),
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}

func parseIDList(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := parseID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
