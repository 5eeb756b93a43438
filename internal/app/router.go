// internal/app/router.go
package app

import (
	agencyHandler "insuremate-service/internal/handlers/agency"
	agentHandler "insuremate-service/internal/handlers/agent"
	claimHandler "insuremate-service/internal/handlers/claim"
	customerHandler "insuremate-service/internal/handlers/customer"
	dashboardHandler "insuremate-service/internal/handlers/dashboard"
	policyHandler "insuremate-service/internal/handlers/policy"
	"insuremate-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AgencyHandler    *agencyHandler.AgencyHandler
	AgentHandler     *agentHandler.AgentHandler
	CustomerHandler  *customerHandler.CustomerHandler
	PolicyHandler    *policyHandler.PolicyHandler
	ClaimHandler     *claimHandler.ClaimHandler
	DashboardHandler *dashboardHandler.DashboardHandler
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Dashboard ====================
	api.GET("/dashboard", h.DashboardHandler.Summary)

	// ==================== Agencies ====================
	agencies := api.Group("/agencies")
	{
		agencies.GET("", h.AgencyHandler.List)
		agencies.POST("", h.AgencyHandler.Create)
		agencies.GET("/:id", h.AgencyHandler.Get)
		agencies.PUT("/:id", h.AgencyHandler.Update)
		agencies.DELETE("/:id", h.AgencyHandler.Delete)
		agencies.GET("/:id/agents", h.AgencyHandler.Agents)
	}

	// ==================== Agents ====================
	agents := api.Group("/agents")
	{
		agents.GET("", h.AgentHandler.List)
		agents.POST("", h.AgentHandler.Create)
		agents.GET("/:id", h.AgentHandler.Get)
		agents.PUT("/:id", h.AgentHandler.Update)
		agents.DELETE("/:id", h.AgentHandler.Delete)
		agents.GET("/:id/policies", h.AgentHandler.Policies)
	}

	// ==================== Customers ====================
	customers := api.Group("/customers")
	{
		customers.GET("", h.CustomerHandler.List)
		customers.POST("", h.CustomerHandler.Create)
		customers.GET("/:id", h.CustomerHandler.Get)
		customers.PUT("/:id", h.CustomerHandler.Update)
		customers.DELETE("/:id", h.CustomerHandler.Delete)
		customers.GET("/:id/policies", h.CustomerHandler.Policies)
	}

	// ==================== Policies ====================
	policies := api.Group("/policies")
	{
		policies.GET("", h.PolicyHandler.List)
		policies.POST("", h.PolicyHandler.Create)
		policies.GET("/:id", h.PolicyHandler.Get)
		policies.PUT("/:id", h.PolicyHandler.Update)
		policies.DELETE("/:id", h.PolicyHandler.Delete)
		policies.GET("/:id/claims", h.PolicyHandler.Claims)
	}

	// ==================== Claims ====================
	claims := api.Group("/claims")
	{
		claims.GET("", h.ClaimHandler.List)
		claims.POST("", h.ClaimHandler.Create)
		claims.GET("/:id", h.ClaimHandler.Get)
		claims.PUT("/:id", h.ClaimHandler.Update)
		claims.DELETE("/:id", h.ClaimHandler.Delete)
	}
}
