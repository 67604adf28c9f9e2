package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/document"
	"github.com/votervision/backend/internal/models"
	"github.com/votervision/backend/internal/repository"
	"github.com/votervision/backend/internal/services"
	"github.com/votervision/backend/pkg/utils"
)

const maxManifestoSize = 20 << 20 // 20 MB

type ManifestoHandler struct {
	repos     *repository.RepositoryManager
	analysis  *services.AnalysisService
	uploadDir string
	logger    *logrus.Logger
}

func NewManifestoHandler(
	repos *repository.RepositoryManager,
	analysis *services.AnalysisService,
	uploadDir string,
	logger *logrus.Logger,
) *ManifestoHandler {
	return &ManifestoHandler{
		repos:     repos,
		analysis:  analysis,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// UploadManifesto accepts a PDF, extracts its text and runs the vision
// analysis pipeline before storing the manifesto record.
func (h *ManifestoHandler) UploadManifesto(c *gin.Context) {
	candidateID, err := parseID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid candidate ID", err)
		return
	}

	candidate, err := h.repos.Candidate.GetByID(candidateID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Candidate not found", err)
		return
	}

	file, err := c.FormFile("pdf_file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "A pdf_file upload is required", err)
		return
	}
	if file.Size > maxManifestoSize {
		utils.ErrorResponse(c, http.StatusBadRequest, "File too large (max 20MB)", nil)
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		utils.ErrorResponse(c, http.StatusBadRequest, "Only PDF files are accepted", nil)
		return
	}

	storedName := fmt.Sprintf("manifesto_%d_%d.pdf", candidateID, time.Now().UnixNano())
	storedPath := filepath.Join(h.uploadDir, storedName)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		h.logger.WithError(err).Error("Failed to store manifesto upload")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to store file", err)
		return
	}

	text, err := document.ExtractText(storedPath, document.DefaultMaxChars)
	if err != nil {
		h.logger.WithError(err).Error("Manifesto text extraction failed")
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "Could not extract text from PDF", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"candidate": candidate.Name,
		"file":      storedName,
		"chars":     len(text),
	}).Info("Analyzing manifesto")

	raw := h.analysis.AnalyzeVision(c.Request.Context(), text)
	summary, promises, display := h.analysis.ProcessManifesto(raw)

	manifesto := &models.Manifesto{
		CandidateID:      candidateID,
		FilePath:         storedPath,
		VisionSummary:    summary,
		KeyPromises:      promises,
		AIVisionAnalysis: display,
	}
	if err := h.repos.Manifesto.Create(manifesto); err != nil {
		h.logger.WithError(err).Error("Failed to save manifesto")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to save manifesto", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Manifesto analyzed", manifesto)
}

// GetManifestos lists a candidate's manifestos, newest first.
func (h *ManifestoHandler) GetManifestos(c *gin.Context) {
	candidateID, err := parseID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid candidate ID", err)
		return
	}

	manifestos, err := h.repos.Manifesto.GetByCandidate(candidateID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load manifestos")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load manifestos", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Manifestos retrieved", manifestos)
}
