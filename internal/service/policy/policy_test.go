package policy

import (
	"context"
	"testing"
	"time"

	"insuremate-service/internal/domain/agency"
	"insuremate-service/internal/domain/agent"
	"insuremate-service/internal/domain/customer"
	"insuremate-service/internal/domain/policy"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/repository/memory"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type PolicyServiceSuite struct {
	suite.Suite
	store   *memory.Store
	service *PolicyService
	ctx     context.Context

	agentID    int64
	customerID int64
}

func (s *PolicyServiceSuite) SetupTest() {
	s.store = memory.NewStore()
	s.service = NewPolicyService(s.store.Policies(), s.store.Claims(), zap.NewNop())
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

	s.agentID = ag.ID
	s.customerID = cu.ID
}

func (s *PolicyServiceSuite) TearDownTest() {
	timeNow = time.Now
}

func TestPolicyServiceSuite(t *testing.T) {
	suite.Run(t, new(PolicyServiceSuite))
}

func (s *PolicyServiceSuite) create(number string) *policy.Detail {
	d, err := s.service.Create(s.ctx, &policy.CreateRequest{
		AgentID:      s.agentID,
		CustomerID:   s.customerID,
		PolicyNumber: number,
		PolicyType:   "Auto",
		Premium:      120,
		StartDate:    "2026-01-01",
		EndDate:      "2026-12-31",
	})
	s.Require().NoError(err)
	return d
}

func (s *PolicyServiceSuite) TestCreateDefaultsAndDerivedFields() {
	d := s.create("POL-1001")

	s.Equal("Active", d.PolicyStatus) // defaulted
	s.True(d.IsActive)
	s.Require().NotNil(d.DaysUntilRenewal)
	s.Equal(199, *d.DaysUntilRenewal)
	s.Require().NotNil(d.RenewalStatus)
	s.Equal("OK", *d.RenewalStatus)
	s.Require().NotNil(d.AgentName)
	s.Equal("Jane Smith", *d.AgentName)
	s.Require().NotNil(d.CustomerName)
	s.Equal("Bob Jones", *d.CustomerName)
}

func (s *PolicyServiceSuite) TestCreateValidation() {
	s.Run("missing agent", func() {
		_, err := s.service.Create(s.ctx, &policy.CreateRequest{
			CustomerID: s.customerID, PolicyNumber: "POL-X", PolicyType: "Auto", StartDate: "2026-01-01",
		})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})

	s.Run("missing policy number", func() {
		_, err := s.service.Create(s.ctx, &policy.CreateRequest{
			AgentID: s.agentID, CustomerID: s.customerID, PolicyType: "Auto", StartDate: "2026-01-01",
		})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})

	s.Run("malformed start date", func() {
		_, err := s.service.Create(s.ctx, &policy.CreateRequest{
			AgentID: s.agentID, CustomerID: s.customerID,
			PolicyNumber: "POL-X", PolicyType: "Auto", StartDate: "01/01/2026",
		})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})

	s.Run("negative premium", func() {
		_, err := s.service.Create(s.ctx, &policy.CreateRequest{
			AgentID: s.agentID, CustomerID: s.customerID,
			PolicyNumber: "POL-X", PolicyType: "Auto", StartDate: "2026-01-01", Premium: -1,
		})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})

	s.Run("duplicate policy number", func() {
		s.create("POL-1001")
		_, err := s.service.Create(s.ctx, &policy.CreateRequest{
			AgentID: s.agentID, CustomerID: s.customerID,
			PolicyNumber: "POL-1001", PolicyType: "Home", StartDate: "2026-02-01",
		})
		s.Require().ErrorIs(err, xerrors.ErrDuplicateEntry)
	})
}

func (s *PolicyServiceSuite) TestUpdateEndDateRules() {
	d := s.create("POL-1001")

	s.Run("absent end date leaves it unchanged", func() {
		newType := "Home"
		updated, err := s.service.Update(s.ctx, d.PolicyID, &policy.UpdateRequest{PolicyType: &newType})
		s.Require().NoError(err)
		s.Equal("Home", updated.PolicyType)
		s.Require().NotNil(updated.EndDate)
		s.Equal("2026-12-31", *updated.EndDate)
	})

	s.Run("empty string clears the end date", func() {
		empty := ""
		updated, err := s.service.Update(s.ctx, d.PolicyID, &policy.UpdateRequest{EndDate: &empty})
		s.Require().NoError(err)
		s.Nil(updated.EndDate)
		s.Nil(updated.DaysUntilRenewal)
		s.Nil(updated.RenewalStatus)
	})

	s.Run("new value sets it again", func() {
		end := "2026-06-20"
		updated, err := s.service.Update(s.ctx, d.PolicyID, &policy.UpdateRequest{EndDate: &end})
		s.Require().NoError(err)
		s.Require().NotNil(updated.EndDate)
		s.Equal("2026-06-20", *updated.EndDate)
		s.Require().NotNil(updated.RenewalStatus)
		s.Equal("Critical", *updated.RenewalStatus)
	})
}

func (s *PolicyServiceSuite) TestUpdateNotFound() {
	newType := "Home"
	_, err := s.service.Update(s.ctx, 9999, &policy.UpdateRequest{PolicyType: &newType})
	s.Require().ErrorIs(err, xerrors.ErrNotFound)
}

func (s *PolicyServiceSuite) TestListIncludesDistinctStatuses() {
	s.create("POL-1001")

	expired := "Expired"
	d := s.create("POL-1002")
	_, err := s.service.Update(s.ctx, d.PolicyID, &policy.UpdateRequest{PolicyStatus: &expired})
	s.Require().NoError(err)

	resp, err := s.service.List(s.ctx, policy.ListFilter{PerPage: 10})
	s.Require().NoError(err)
	s.Len(resp.Policies, 2)
	s.Equal([]string{"Active", "Expired"}, resp.Statuses)
}

func (s *PolicyServiceSuite) TestClaimsChildListing() {
	d := s.create("POL-1001")

	s.Run("unknown policy reports not found", func() {
		_, err := s.service.Claims(s.ctx, 9999)
		s.Require().ErrorIs(err, xerrors.ErrNotFound)
	})

	s.Run("empty listing for a fresh policy", func() {
		claims, err := s.service.Claims(s.ctx, d.PolicyID)
		s.Require().NoError(err)
		s.Empty(claims)
	})
}
