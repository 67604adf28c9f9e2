package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/document"
	"github.com/votervision/backend/internal/models"
	"github.com/votervision/backend/internal/services"
	"github.com/votervision/backend/pkg/utils"
)

const (
	// Per-document extraction budget for the lab; two documents must fit
	// in one prompt alongside the conversation.
	labDocChars = 15000

	noLabContextMessage = "No document context found."
)

type LabHandler struct {
	chatService *services.ChatService
	analysis    *services.AnalysisService
	store       models.ConversationStore
	research    models.ResearchAnalysisRepository
	queryLogs   models.QueryLogRepository
	uploadDir   string
	logger      *logrus.Logger
}

func NewLabHandler(
	chatService *services.ChatService,
	analysis *services.AnalysisService,
	store models.ConversationStore,
	research models.ResearchAnalysisRepository,
	queryLogs models.QueryLogRepository,
	uploadDir string,
	logger *logrus.Logger,
) *LabHandler {
	return &LabHandler{
		chatService: chatService,
		analysis:    analysis,
		store:       store,
		research:    research,
		queryLogs:   queryLogs,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

// UploadDocuments accepts up to two PDFs, replaces the session's
// document context and runs the initial analysis.
func (h *LabHandler) UploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid upload", err)
		return
	}

	files := form.File["documents"]
	if len(files) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "At least one document is required", nil)
		return
	}
	if len(files) > services.MaxLabDocuments {
		h.logger.WithField("count", len(files)).Warn("Lab upload over the document cap, keeping the first two")
		files = files[:services.MaxLabDocuments]
	}

	session := resolveSession(c)
	ctx := c.Request.Context()

	var docs []services.Document
	for _, file := range files {
		if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
			utils.ErrorResponse(c, http.StatusBadRequest, "Only PDF files are accepted", nil)
			return
		}

		storedPath := filepath.Join(h.uploadDir, fmt.Sprintf("lab_%s_%d.pdf", session, time.Now().UnixNano()))
		if err := c.SaveUploadedFile(file, storedPath); err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to store file", err)
			return
		}

		text, err := document.ExtractText(storedPath, labDocChars)
		os.Remove(storedPath)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnprocessableEntity,
				fmt.Sprintf("Could not extract text from %s", file.Filename), err)
			return
		}

		docs = append(docs, services.Document{Name: file.Filename, Text: text})
	}

	analysis, err := h.analysis.AnalyzeDocuments(ctx, docs)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Analysis failed", err)
		return
	}

	var contextParts []string
	for _, doc := range docs {
		contextParts = append(contextParts, fmt.Sprintf("Document: %s\n%s", doc.Name, doc.Text))
	}
	documentContext := strings.Join(contextParts, "\n\n")

	// New documents reset the lab conversation for this session.
	if err := h.store.SetLabContext(ctx, session, documentContext); err != nil {
		h.logger.WithError(err).Warn("Failed to store lab context")
	}
	if err := h.store.SetLabResult(ctx, session, analysis); err != nil {
		h.logger.WithError(err).Warn("Failed to store lab result")
	}

	record := &models.ResearchAnalysis{
		Title:           services.LabTitle(docs),
		DocumentsCount:  len(docs),
		AnalysisContent: analysis,
		ContextUsed:     documentContext,
	}
	if err := h.research.Create(record); err != nil {
		h.logger.WithError(err).Warn("Failed to persist research analysis")
	}

	c.JSON(http.StatusOK, models.LabUploadResponse{
		Status:    "success",
		Documents: len(docs),
		Analysis:  analysis,
	})
}

// HandleLabChat answers a follow-up question against the session's
// uploaded documents only.
func (h *LabHandler) HandleLabChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query cannot be empty", nil)
		return
	}
	if len(query) > maxQueryLength {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query too long (max 2000 characters)", nil)
		return
	}

	session := resolveSession(c)
	ctx := c.Request.Context()

	documentContext, err := h.store.LabContext(ctx, session)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load lab context")
	}
	if documentContext == "" {
		documentContext = noLabContextMessage
	}

	history, err := h.store.History(ctx, models.NamespaceLab, session)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load lab history")
	}

	response := h.chatService.LabAnswer(ctx, query, documentContext, history)

	if err := h.store.AppendExchange(ctx, models.NamespaceLab, session, query, response); err != nil {
		h.logger.WithError(err).Warn("Failed to persist lab history")
	}

	logEntry := &models.QueryLog{
		Query:          query,
		Response:       response,
		Source:         models.QuerySourceLab,
		SentimentScore: services.SentimentScore(query),
	}
	if err := h.queryLogs.Create(logEntry); err != nil {
		h.logger.WithError(err).Warn("Failed to log lab query")
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		Status:   "success",
		Response: response,
	})
}

// GetLabResult returns the session's most recent document analysis.
func (h *LabHandler) GetLabResult(c *gin.Context) {
	session := resolveSession(c)

	result, err := h.store.LabResult(c.Request.Context(), session)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load lab result")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load analysis", err)
		return
	}
	if result == "" {
		utils.ErrorResponse(c, http.StatusNotFound, "No analysis for this session yet", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Analysis retrieved", gin.H{"analysis": result})
}
