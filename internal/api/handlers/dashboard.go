package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/models"
	"github.com/votervision/backend/internal/services"
	"github.com/votervision/backend/pkg/utils"
)

type DashboardHandler struct {
	analytics *services.AnalyticsService
	logger    *logrus.Logger
}

func NewDashboardHandler(analytics *services.AnalyticsService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		analytics: analytics,
		logger:    logger,
	}
}

// GetDashboard assembles the full dashboard payload in one response.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	response := models.DashboardResponse{
		Stats:             h.analytics.DashboardStats(),
		TrendingTopics:    h.analytics.TrendingTopics(),
		SentimentVelocity: h.analytics.SentimentVelocity(),
		Briefing:          h.analytics.PoliticalBriefing(),
		Activity:          h.analytics.SystemActivity(),
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard retrieved", response)
}

// GetStats serves just the headline numbers for lightweight polling.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Stats retrieved", h.analytics.DashboardStats())
}
