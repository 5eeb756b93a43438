package claim

import (
	"context"
	"regexp"
	"testing"
	"time"

	"insuremate-service/internal/domain/agency"
	"insuremate-service/internal/domain/agent"
	"insuremate-service/internal/domain/claim"
	"insuremate-service/internal/domain/customer"
	"insuremate-service/internal/domain/policy"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/repository/memory"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type ClaimServiceSuite struct {
	suite.Suite
	store   *memory.Store
	service *ClaimService
	ctx     context.Context

	policyID int64
}

func (s *ClaimServiceSuite) SetupTest() {
	s.store = memory.NewStore()
	s.service = NewClaimService(s.store.Claims(), zap.NewNop())
	s.ctx = context.Background()

	timeNow = func() time.Time {
		return time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	}

	a := &agency.Agency{Name: "Acme"}
	s.Require().NoError(s.store.Agencies().Create(s.ctx, a))
	ag := &agent.Agent{AgencyID: a.ID, FirstName: "Jane", LastName: "Smith"}
	s.Require().NoError(s.store.Agents().Create(s.ctx, ag))
	cu := &customer.Customer{FirstName: "Bob", LastName: "Jones"}
	s.Require().NoError(s.store.Customers().Create(s.ctx, cu))
	p := &policy.Policy{
		AgentID: ag.ID, CustomerID: cu.ID,
		PolicyNumber: "POL-1001", PolicyType: "Auto",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    policy.StatusActive,
	}
	s.Require().NoError(s.store.Policies().Create(s.ctx, p))
	s.policyID = p.ID
}

func (s *ClaimServiceSuite) TearDownTest() {
	timeNow = time.Now
}

func TestClaimServiceSuite(t *testing.T) {
	suite.Run(t, new(ClaimServiceSuite))
}

func (s *ClaimServiceSuite) TestClaimNumberFormat() {
	seen := map[string]bool{}
	pattern := regexp.MustCompile(`^CLM-[0-9A-F]{8}$`)
	for i := 0; i < 50; i++ {
		n := NewClaimNumber()
		s.Regexp(pattern, n)
		s.False(seen[n], "numbers should not repeat in a small sample")
		seen[n] = true
	}
}

func (s *ClaimServiceSuite) TestCreateDefaults() {
	d, err := s.service.Create(s.ctx, &claim.CreateRequest{
		PolicyID:     s.policyID,
		IncidentDate: "2026-06-10",
		Description:  "hail damage",
	})
	s.Require().NoError(err)

	s.Regexp(`^CLM-[0-9A-F]{8}$`, d.ClaimNumber)
	s.Equal("2026-06-15", d.ClaimDate) // defaults to today
	s.Equal("Open", d.Status)
	s.True(d.IsOpen)
	s.Equal(0.0, d.SettlementAmount)
	s.Require().NotNil(d.PolicyNumber)
	s.Equal("POL-1001", *d.PolicyNumber)
	s.Require().NotNil(d.CustomerName)
	s.Equal("Bob Jones", *d.CustomerName)
}

func (s *ClaimServiceSuite) TestCreateValidation() {
	s.Run("missing policy", func() {
		_, err := s.service.Create(s.ctx, &claim.CreateRequest{IncidentDate: "2026-06-10"})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})

	s.Run("missing incident date", func() {
		_, err := s.service.Create(s.ctx, &claim.CreateRequest{PolicyID: s.policyID})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})

	s.Run("unknown policy", func() {
		_, err := s.service.Create(s.ctx, &claim.CreateRequest{PolicyID: 9999, IncidentDate: "2026-06-10"})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})

	s.Run("settled on create requires settlement amount", func() {
		_, err := s.service.Create(s.ctx, &claim.CreateRequest{
			PolicyID:     s.policyID,
			IncidentDate: "2026-06-10",
			Status:       "Settled",
		})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})
}

func (s *ClaimServiceSuite) TestCloseStampsResolutionDate() {
	created, err := s.service.Create(s.ctx, &claim.CreateRequest{
		PolicyID:     s.policyID,
		IncidentDate: "2026-06-01",
		ClaimDate:    "2026-06-05",
	})
	s.Require().NoError(err)
	s.Nil(created.ResolutionDate)

	status := "Denied"
	updated, err := s.service.Update(s.ctx, created.ClaimID, &claim.UpdateRequest{Status: &status})
	s.Require().NoError(err)
	s.Require().NotNil(updated.ResolutionDate)
	s.Equal("2026-06-15", *updated.ResolutionDate)
	s.True(updated.IsClosed)
}

func (s *ClaimServiceSuite) TestSettleRequiresAmount() {
	created, err := s.service.Create(s.ctx, &claim.CreateRequest{
		PolicyID:     s.policyID,
		IncidentDate: "2026-06-01",
		ClaimAmount:  5000,
	})
	s.Require().NoError(err)

	status := "Settled"
	_, err = s.service.Update(s.ctx, created.ClaimID, &claim.UpdateRequest{Status: &status})
	s.Require().ErrorIs(err, xerrors.ErrInvalidInput)

	// The claim is unchanged after the rejected transition.
	current, err := s.service.Get(s.ctx, created.ClaimID)
	s.Require().NoError(err)
	s.Equal("Open", current.Status)

	amount := 3200.0
	settled, err := s.service.Update(s.ctx, created.ClaimID, &claim.UpdateRequest{Status: &status, SettlementAmount: &amount})
	s.Require().NoError(err)
	s.Equal("Settled", settled.Status)
	s.Equal(3200.0, settled.SettlementAmount)
	s.Require().NotNil(settled.ResolutionDate)
}

func (s *ClaimServiceSuite) TestReopeningKeepsResolutionDate() {
	created, err := s.service.Create(s.ctx, &claim.CreateRequest{
		PolicyID:     s.policyID,
		IncidentDate: "2026-06-01",
	})
	s.Require().NoError(err)

	closed := "Closed"
	_, err = s.service.Update(s.ctx, created.ClaimID, &claim.UpdateRequest{Status: &closed})
	s.Require().NoError(err)

	reopened := "In Progress"
	d, err := s.service.Update(s.ctx, created.ClaimID, &claim.UpdateRequest{Status: &reopened})
	s.Require().NoError(err)
	s.True(d.IsOpen)
	// A previously stamped resolution date is left in place.
	s.Require().NotNil(d.ResolutionDate)
}

func (s *ClaimServiceSuite) TestListWithStatuses() {
	for _, st := range []string{"", "", "Denied"} {
		req := &claim.CreateRequest{PolicyID: s.policyID, IncidentDate: "2026-06-01"}
		if st != "" {
			req.Status = st
		}
		_, err := s.service.Create(s.ctx, req)
		s.Require().NoError(err)
	}

	resp, err := s.service.List(s.ctx, claim.ListFilter{PerPage: 10})
	s.Require().NoError(err)
	s.Len(resp.Claims, 3)
	s.Equal([]string{"Denied", "Open"}, resp.Statuses)
	s.Equal(int64(3), resp.Pages.Total)
}
