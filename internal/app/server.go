// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"insuremate-service/internal/config"
	"insuremate-service/internal/db"
	agencyHandler "insuremate-service/internal/handlers/agency"
	agentHandler "insuremate-service/internal/handlers/agent"
	claimHandler "insuremate-service/internal/handlers/claim"
	customerHandler "insuremate-service/internal/handlers/customer"
	dashboardHandler "insuremate-service/internal/handlers/dashboard"
	policyHandler "insuremate-service/internal/handlers/policy"
	"insuremate-service/internal/repository/postgres"
	agencyService "insuremate-service/internal/service/agency"
	agentService "insuremate-service/internal/service/agent"
	claimService "insuremate-service/internal/service/claim"
	customerService "insuremate-service/internal/service/customer"
	dashboardService "insuremate-service/internal/service/dashboard"
	policyService "insuremate-service/internal/service/policy"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	pool  *pgxpool.Pool
	cache *redis.Client
	http  *http.Server
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// ----- Redis (optional, dashboard cache only) -----
	var cache *redis.Client
	if s.cfg.RedisAddr != "" {
		cache, err = db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       0,
			PoolSize: 10,
		})
		if err != nil {
			logger.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
			cache = nil
		}
	}
	s.cache = cache

	// ----- Repositories -----
	agencyRepo := postgres.NewAgencyRepository(pool)
	agentRepo := postgres.NewAgentRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	policyRepo := postgres.NewPolicyRepository(pool)
	claimRepo := postgres.NewClaimRepository(pool)

	// ----- Services -----
	agencySvc := agencyService.NewAgencyService(agencyRepo, agentRepo, logger)
	agentSvc := agentService.NewAgentService(agentRepo, policyRepo, logger)
	customerSvc := customerService.NewCustomerService(customerRepo, policyRepo, logger)
	policySvc := policyService.NewPolicyService(policyRepo, claimRepo, logger)
	claimSvc := claimService.NewClaimService(claimRepo, logger)
	dashboardSvc := dashboardService.NewDashboardService(
		agencyRepo, agentRepo, customerRepo, policyRepo, claimRepo,
		cache, s.cfg.DashboardCacheTTL, logger,
	)

	// ----- Handlers -----
	handlers := &Handlers{
		AgencyHandler:    agencyHandler.NewAgencyHandler(agencySvc, s.cfg.ItemsPerPage),
		AgentHandler:     agentHandler.NewAgentHandler(agentSvc, s.cfg.ItemsPerPage),
		CustomerHandler:  customerHandler.NewCustomerHandler(customerSvc, s.cfg.ItemsPerPage),
		PolicyHandler:    policyHandler.NewPolicyHandler(policySvc, s.cfg.ItemsPerPage),
		ClaimHandler:     claimHandler.NewClaimHandler(claimSvc, s.cfg.ItemsPerPage),
		DashboardHandler: dashboardHandler.NewDashboardHandler(dashboardSvc),
	}

	SetupRouter(s.engine, logger, handlers)

	s.http = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	logger.Info("http server starting", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and releases the database and
// cache connections.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if s.cache != nil {
		s.cache.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	if s.logger != nil {
		s.logger.Sync()
	}
	return err
}
