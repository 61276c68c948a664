package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/chainlance-backend/internal/config"
	"github.com/ignatzorin/chainlance-backend/internal/http/handlers"
	"github.com/ignatzorin/chainlance-backend/internal/http/middleware"
	"github.com/ignatzorin/chainlance-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	sessionHandler *handlers.SessionHandler,
	projectHandler *handlers.ProjectHandler,
	proposalHandler *handlers.ProposalHandler,
	advisorHandler *handlers.AdvisorHandler,
	ledgerHandler *handlers.LedgerHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	sessions *service.SessionTokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/escrow/explainer", advisorHandler.EscrowExplainer)

	sessionGroup := api.Group("/session")
	sessionRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	sessionGroup.Use(sessionRateLimit)
	{
		sessionGroup.POST("/connect", sessionHandler.Connect)
		sessionGroup.POST("/disconnect", sessionHandler.Disconnect)
	}

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.SessionMiddleware(sessions))
	{
		protected.PUT("/session/role", sessionHandler.SwitchRole)

		protected.GET("/projects", projectHandler.ListProjects)
		protected.POST("/projects", projectHandler.CreateProject)
		protected.POST("/projects/:id/fund", projectHandler.FundProject)
		protected.POST("/projects/:id/submission", projectHandler.SubmitWork)
		protected.POST("/projects/:id/release", projectHandler.ReleaseFunds)

		protected.POST("/projects/:id/proposals", proposalHandler.SubmitProposal)
		protected.GET("/projects/:id/proposals", proposalHandler.ListProposals)
		protected.POST("/projects/:id/proposals/:proposalID/accept", proposalHandler.AcceptProposal)

		protected.GET("/ledger", ledgerHandler.ListTransactions)

		// Советник ходит во внешний API, поэтому режем частоту отдельно
		advisory := protected.Group("/ai")
		advisory.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
		{
			advisory.POST("/description", advisorHandler.GenerateDescription)
		}
	}

	return r
}
