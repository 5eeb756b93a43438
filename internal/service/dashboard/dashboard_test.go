package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"insuremate-service/internal/domain/agency"
	"insuremate-service/internal/domain/agent"
	"insuremate-service/internal/domain/claim"
	"insuremate-service/internal/domain/customer"
	"insuremate-service/internal/domain/policy"
	"insuremate-service/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type DashboardSuite struct {
	suite.Suite
	store   *memory.Store
	service *DashboardService
	ctx     context.Context
}

func (s *DashboardSuite) SetupTest() {
	s.store = memory.NewStore()
	s.service = NewDashboardService(
		s.store.Agencies(), s.store.Agents(), s.store.Customers(),
		s.store.Policies(), s.store.Claims(),
		nil, 0, zap.NewNop(),
	)
	s.ctx = context.Background()

	timeNow = func() time.Time {
		return time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	}
}

func (s *DashboardSuite) TearDownTest() {
	timeNow = time.Now
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func (s *DashboardSuite) TestEmptySummary() {
	summary, err := s.service.Summary(s.ctx)
	s.Require().NoError(err)
	s.Zero(summary.AgencyCount)
	s.Zero(summary.ClaimCount)
	s.Empty(summary.RecentPolicies)
	s.Empty(summary.UpcomingRenewals)
	s.Empty(summary.RecentClaims)
	s.Empty(summary.OpenClaims)
}

func (s *DashboardSuite) TestSummaryCountsAndHighlights() {
	a := &agency.Agency{Name: "Acme"}
	s.Require().NoError(s.store.Agencies().Create(s.ctx, a))
	ag := &agent.Agent{AgencyID: a.ID, FirstName: "Jane", LastName: "Smith"}
	s.Require().NoError(s.store.Agents().Create(s.ctx, ag))
	cu := &customer.Customer{FirstName: "Bob", LastName: "Jones"}
	s.Require().NoError(s.store.Customers().Create(s.ctx, cu))

	seedPolicy := func(t *testing.T, n int, end string) *policy.Policy {
		p := &policy.Policy{
			AgentID: ag.ID, CustomerID: cu.ID,
			PolicyNumber: fmt.Sprintf("POL-%04d", n), PolicyType: "Auto",
			StartDate: day("2026-01-01").AddDate(0, 0, n),
			Status:    policy.StatusActive,
		}
		if end != "" {
			p.EndDate = sql.NullTime{Time: day(end), Valid: true}
		}
		require.NoError(t, s.store.Policies().Create(s.ctx, p))
		return p
	}

	var firstPolicy *policy.Policy
	for i := 1; i <= 6; i++ {
		p := seedPolicy(s.T(), i, fmt.Sprintf("2026-07-%02d", i))
		if firstPolicy == nil {
			firstPolicy = p
		}
	}

	for i := 1; i <= 5; i++ {
		status := claim.StatusOpen
		if i%2 == 0 {
			status = claim.StatusClosed
		}
		c := &claim.Claim{
			PolicyID:     firstPolicy.ID,
			ClaimNumber:  fmt.Sprintf("CLM-%08d", i),
			ClaimDate:    day("2026-05-01").AddDate(0, 0, i),
			IncidentDate: day("2026-05-01"),
			Status:       status,
		}
		s.Require().NoError(s.store.Claims().Create(s.ctx, c))
	}

	summary, err := s.service.Summary(s.ctx)
	s.Require().NoError(err)

	s.Equal(int64(1), summary.AgencyCount)
	s.Equal(int64(1), summary.AgentCount)
	s.Equal(int64(1), summary.CustomerCount)
	s.Equal(int64(6), summary.PolicyCount)
	s.Equal(int64(5), summary.ClaimCount)

	// Highlight lists are capped at four entries.
	s.Require().Len(summary.RecentPolicies, 4)
	s.Equal("POL-0006", summary.RecentPolicies[0].PolicyNumber)

	s.Require().Len(summary.UpcomingRenewals, 4)
	s.Equal("POL-0001", summary.UpcomingRenewals[0].PolicyNumber)

	s.Require().Len(summary.RecentClaims, 4)
	s.Equal("CLM-00000005", summary.RecentClaims[0].ClaimNumber)

	// Claims 1, 3, 5 are open; oldest first.
	s.Require().Len(summary.OpenClaims, 3)
	s.Equal("CLM-00000001", summary.OpenClaims[0].ClaimNumber)
	for _, c := range summary.OpenClaims {
		s.True(c.IsOpen)
	}
}
