// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"insuremate-service/internal/domain/agency"
	"insuremate-service/internal/domain/agent"
	"insuremate-service/internal/domain/claim"
	"insuremate-service/internal/domain/customer"
	"insuremate-service/internal/domain/policy"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// timeNow is swapped in tests that pin derived fields to a fixed day.
var timeNow = time.Now

// highlightLimit caps the recent/upcoming lists on the dashboard.
const highlightLimit = 4

const cacheKey = "dashboard:summary"

// Summary aggregates the record counts and highlight lists shown on the
// landing page. Counts may lag concurrent writes by up to the cache TTL.
type Summary struct {
	AgencyCount   int64 `json:"agency_count"`
	AgentCount    int64 `json:"agent_count"`
	CustomerCount int64 `json:"customer_count"`
	PolicyCount   int64 `json:"policy_count"`
	ClaimCount    int64 `json:"claim_count"`

	RecentPolicies   []policy.Detail `json:"recent_policies"`
	UpcomingRenewals []policy.Detail `json:"upcoming_renewals"`
	RecentClaims     []claim.Detail  `json:"recent_claims"`
	OpenClaims       []claim.Detail  `json:"open_claims"`
}

type DashboardService struct {
	agencyRepo   agency.Repository
	agentRepo    agent.Repository
	customerRepo customer.Repository
	policyRepo   policy.Repository
	claimRepo    claim.Repository

	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService wires the five repositories plus an optional redis
// cache. A nil cache disables caching.
func NewDashboardService(
	agencyRepo agency.Repository,
	agentRepo agent.Repository,
	customerRepo customer.Repository,
	policyRepo policy.Repository,
	claimRepo claim.Repository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		agencyRepo:   agencyRepo,
		agentRepo:    agentRepo,
		customerRepo: customerRepo,
		policyRepo:   policyRepo,
		claimRepo:    claimRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Summary returns the dashboard aggregate, serving a cached copy when one is
// fresh enough.
func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, summary)
	return summary, nil
}

func (s *DashboardService) build(ctx context.Context) (*Summary, error) {
	var summary Summary
	var err error

	if summary.AgencyCount, err = s.agencyRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.AgentCount, err = s.agentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.CustomerCount, err = s.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.PolicyCount, err = s.policyRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.ClaimCount, err = s.claimRepo.Count(ctx); err != nil {
		return nil, err
	}

	today := timeNow()

	recentPolicies, err := s.policyRepo.Recent(ctx, highlightLimit)
	if err != nil {
		return nil, err
	}
	summary.RecentPolicies = policyDetails(recentPolicies, today)

	renewals, err := s.policyRepo.UpcomingRenewals(ctx, highlightLimit)
	if err != nil {
		return nil, err
	}
	summary.UpcomingRenewals = policyDetails(renewals, today)

	recentClaims, err := s.claimRepo.Recent(ctx, highlightLimit)
	if err != nil {
		return nil, err
	}
	summary.RecentClaims = claimDetails(recentClaims, today)

	openClaims, err := s.claimRepo.OldestOpen(ctx, highlightLimit)
	if err != nil {
		return nil, err
	}
	summary.OpenClaims = claimDetails(openClaims, today)

	return &summary, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *Summary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("dashboard cache read failed", zap.Error(err))
		}
		return nil
	}
	var summary Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		s.logger.Debug("dashboard cache payload invalid", zap.Error(err))
		return nil
	}
	return &summary
}

func (s *DashboardService) toCache(ctx context.Context, summary *Summary) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("dashboard cache write failed", zap.Error(err))
	}
}

func policyDetails(policies []policy.Policy, today time.Time) []policy.Detail {
	details := make([]policy.Detail, 0, len(policies))
	for i := range policies {
		details = append(details, policies[i].Detail(today))
	}
	return details
}

func claimDetails(claims []claim.Claim, today time.Time) []claim.Detail {
	details := make([]claim.Detail, 0, len(claims))
	for i := range claims {
		details = append(details, claims[i].Detail(today))
	}
	return details
}
