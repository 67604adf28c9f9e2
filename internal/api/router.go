package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/api/handlers"
	"github.com/votervision/backend/internal/health"
	"github.com/votervision/backend/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Chat      *handlers.ChatHandler
	Candidate *handlers.CandidateHandler
	Manifesto *handlers.ManifestoHandler
	Lab       *handlers.LabHandler
	Dashboard *handlers.DashboardHandler
	Health    *health.Checker
}

// NewRouter wires middleware and routes. Rate limiting applies to the
// whole API surface; AI-heavy routes get a tighter limit.
func NewRouter(h Handlers, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.NewRateLimiter(120).RateLimit())

	router.GET("/health", h.Health.Handler())

	api := router.Group("/api")
	{
		aiLimiter := middleware.NewRateLimiter(20)

		api.POST("/chat", aiLimiter.RateLimit(), h.Chat.HandleChat)

		candidates := api.Group("/candidates")
		{
			candidates.GET("", h.Candidate.ListCandidates)
			candidates.POST("", h.Candidate.CreateCandidate)
			candidates.GET("/search", h.Candidate.SearchCandidates)
			candidates.GET("/compare", aiLimiter.RateLimit(), h.Candidate.CompareCandidates)
			candidates.GET("/:slug", h.Candidate.GetCandidate)
			candidates.PATCH("/id/:id", h.Candidate.UpdateCandidate)
			candidates.DELETE("/id/:id", h.Candidate.DeleteCandidate)
			candidates.GET("/id/:id/report", aiLimiter.RateLimit(), h.Candidate.GetReport)
			candidates.GET("/id/:id/trend", h.Candidate.GetTrend)
			candidates.GET("/id/:id/manifestos", h.Manifesto.GetManifestos)
			candidates.POST("/id/:id/manifesto", aiLimiter.RateLimit(), h.Manifesto.UploadManifesto)
		}

		lab := api.Group("/lab")
		{
			lab.POST("/upload", aiLimiter.RateLimit(), h.Lab.UploadDocuments)
			lab.POST("/chat", aiLimiter.RateLimit(), h.Lab.HandleLabChat)
			lab.GET("/result", h.Lab.GetLabResult)
		}

		api.GET("/dashboard", h.Dashboard.GetDashboard)
		api.GET("/dashboard/stats", h.Dashboard.GetStats)
	}

	return router
}
