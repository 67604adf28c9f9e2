package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/models"
	"github.com/votervision/backend/internal/services"
	"github.com/votervision/backend/pkg/utils"
)

const maxQueryLength = 2000

type ChatHandler struct {
	chatService    *services.ChatService
	contextService *services.ContextService
	engagement     *services.EngagementService
	store          models.ConversationStore
	queryLogs      models.QueryLogRepository
	logger         *logrus.Logger
}

func NewChatHandler(
	chatService *services.ChatService,
	contextService *services.ContextService,
	engagement *services.EngagementService,
	store models.ConversationStore,
	queryLogs models.QueryLogRepository,
	logger *logrus.Logger,
) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		contextService: contextService,
		engagement:     engagement,
		store:          store,
		queryLogs:      queryLogs,
		logger:         logger,
	}
}

// HandleChat answers one main-assistant turn: gather context, complete,
// persist the exchange.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid chat request")
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

	h.logger.WithFields(logrus.Fields{
		"query":   query,
		"session": session,
	}).Info("Processing chat query")

	local, web, matched := h.contextService.RelevantContext(query)
	for _, candidate := range matched {
		h.engagement.LogSearch(candidate.ID)
	}

	history, err := h.store.History(ctx, models.NamespaceChat, session)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load chat history, answering without it")
	}

	response := h.chatService.Answer(ctx, query, local, web, history)

	if err := h.store.AppendExchange(ctx, models.NamespaceChat, session, query, response); err != nil {
		h.logger.WithError(err).Warn("Failed to persist chat history")
	}

	logEntry := &models.QueryLog{
		Query:          query,
		Response:       response,
		Source:         models.QuerySourceChat,
		SentimentScore: services.SentimentScore(query),
	}
	if err := h.queryLogs.Create(logEntry); err != nil {
		h.logger.WithError(err).Warn("Failed to log query")
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		Status:   "success",
		Response: response,
	})
}
