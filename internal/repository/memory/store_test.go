package memory

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
	xerrors "insuremate-service/internal/pkg/errors"

	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	s.store = NewStore()
	s.ctx = context.Background()
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func (s *StoreSuite) seedAgency(name string) *agency.Agency {
	a := &agency.Agency{Name: name}
	s.Require().NoError(s.store.Agencies().Create(s.ctx, a))
	return a
}

func (s *StoreSuite) seedAgent(agencyID int64, first, last string) *agent.Agent {
	ag := &agent.Agent{AgencyID: agencyID, FirstName: first, LastName: last}
	s.Require().NoError(s.store.Agents().Create(s.ctx, ag))
	return ag
}

func (s *StoreSuite) seedCustomer(first, last string) *customer.Customer {
	c := &customer.Customer{FirstName: first, LastName: last}
	s.Require().NoError(s.store.Customers().Create(s.ctx, c))
	return c
}

func (s *StoreSuite) seedPolicy(agentID, customerID int64, number string, start time.Time) *policy.Policy {
	p := &policy.Policy{
		AgentID:      agentID,
		CustomerID:   customerID,
		PolicyNumber: number,
		PolicyType:   "Auto",
		StartDate:    start,
		Status:       policy.StatusActive,
	}
	s.Require().NoError(s.store.Policies().Create(s.ctx, p))
	return p
}

func (s *StoreSuite) seedClaim(policyID int64, number string, date time.Time, status claim.Status) *claim.Claim {
	c := &claim.Claim{
		PolicyID:     policyID,
		ClaimNumber:  number,
		ClaimDate:    date,
		IncidentDate: date,
		Status:       status,
	}
	s.Require().NoError(s.store.Claims().Create(s.ctx, c))
	return c
}

func (s *StoreSuite) TestAgencyCRUD() {
	s.Run("creates and finds agency", func() {
		a := s.seedAgency("Acme Insurance")
		s.NotZero(a.ID)

		found, err := s.store.Agencies().FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal("Acme Insurance", found.Name)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.Agencies().FindByID(s.ctx, 9999)
		s.Require().ErrorIs(err, xerrors.ErrNotFound)
	})

	s.Run("update replaces fields", func() {
		a := s.seedAgency("Old Name")
		a.Name = "New Name"
		a.City = sql.NullString{String: "Springfield", Valid: true}
		s.Require().NoError(s.store.Agencies().Update(s.ctx, a))

		found, err := s.store.Agencies().FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal("New Name", found.Name)
		s.Equal("Springfield", found.City.String)
	})

	s.Run("delete of missing agency reports not found", func() {
		s.Require().ErrorIs(s.store.Agencies().Delete(s.ctx, 9999), xerrors.ErrNotFound)
	})
}

func (s *StoreSuite) TestJoinedCounts() {
	a := s.seedAgency("Acme Insurance")
	ag := s.seedAgent(a.ID, "Jane", "Smith")
	cu := s.seedCustomer("Bob", "Jones")
	p := s.seedPolicy(ag.ID, cu.ID, "POL-1001", day("2026-01-01"))
	s.seedClaim(p.ID, "CLM-00000001", day("2026-02-01"), claim.StatusOpen)
	s.seedClaim(p.ID, "CLM-00000002", day("2026-02-02"), claim.StatusSettled)

	found, err := s.store.Agencies().FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), found.AgentCount)

	foundAgent, err := s.store.Agents().FindByID(s.ctx, ag.ID)
	s.Require().NoError(err)
	s.Equal("Acme Insurance", foundAgent.AgencyName.String)
	s.Equal(int64(1), foundAgent.PolicyCount)

	foundPolicy, err := s.store.Policies().FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Jane Smith", foundPolicy.AgentName.String)
	s.Equal("Bob Jones", foundPolicy.CustomerName.String)
	s.Equal(int64(2), foundPolicy.ClaimCount)

	foundCustomer, err := s.store.Customers().FindByID(s.ctx, cu.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), foundCustomer.PolicyCount)
}

func (s *StoreSuite) TestForeignKeyChecks() {
	s.Run("agent requires existing agency", func() {
		err := s.store.Agents().Create(s.ctx, &agent.Agent{AgencyID: 9999, FirstName: "J", LastName: "S"})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})

	s.Run("policy requires existing agent and customer", func() {
		a := s.seedAgency("Acme")
		ag := s.seedAgent(a.ID, "Jane", "Smith")

		err := s.store.Policies().Create(s.ctx, &policy.Policy{
			AgentID: ag.ID, CustomerID: 9999, PolicyNumber: "POL-2001",
			StartDate: day("2026-01-01"), Status: policy.StatusActive,
		})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})

	s.Run("claim requires existing policy", func() {
		err := s.store.Claims().Create(s.ctx, &claim.Claim{PolicyID: 9999, ClaimNumber: "CLM-FFFFFFFF", ClaimDate: day("2026-01-01")})
		s.Require().ErrorIs(err, xerrors.ErrInvalidInput)
	})
}

func (s *StoreSuite) TestPolicyNumberUniqueness() {
	a := s.seedAgency("Acme")
	ag := s.seedAgent(a.ID, "Jane", "Smith")
	cu := s.seedCustomer("Bob", "Jones")
	first := s.seedPolicy(ag.ID, cu.ID, "POL-1001", day("2026-01-01"))

	s.Run("second create with same number fails", func() {
		err := s.store.Policies().Create(s.ctx, &policy.Policy{
			AgentID: ag.ID, CustomerID: cu.ID, PolicyNumber: "POL-1001",
			StartDate: day("2026-02-01"), Status: policy.StatusActive,
		})
		s.Require().ErrorIs(err, xerrors.ErrDuplicateEntry)

		// The original row is untouched.
		found, err := s.store.Policies().FindByID(s.ctx, first.ID)
		s.Require().NoError(err)
		s.Equal(day("2026-01-01"), found.StartDate)
	})

	s.Run("update cannot take another policy's number", func() {
		other := s.seedPolicy(ag.ID, cu.ID, "POL-1002", day("2026-03-01"))
		other.PolicyNumber = "POL-1001"
		err := s.store.Policies().Update(s.ctx, other)
		s.Require().ErrorIs(err, xerrors.ErrDuplicateEntry)
	})
}

func (s *StoreSuite) TestCascadeDelete() {
	a := s.seedAgency("Acme")
	ag1 := s.seedAgent(a.ID, "Jane", "Smith")
	ag2 := s.seedAgent(a.ID, "Tom", "Brown")
	cu := s.seedCustomer("Bob", "Jones")
	p1 := s.seedPolicy(ag1.ID, cu.ID, "POL-1001", day("2026-01-01"))
	p2 := s.seedPolicy(ag2.ID, cu.ID, "POL-1002", day("2026-01-02"))
	s.seedClaim(p1.ID, "CLM-00000001", day("2026-02-01"), claim.StatusOpen)
	s.seedClaim(p2.ID, "CLM-00000002", day("2026-02-02"), claim.StatusOpen)

	// An unrelated subtree that must survive every cascade below.
	otherAgency := s.seedAgency("Other")
	otherAgent := s.seedAgent(otherAgency.ID, "Sue", "White")
	otherPolicy := s.seedPolicy(otherAgent.ID, cu.ID, "POL-9001", day("2026-01-03"))
	s.seedClaim(otherPolicy.ID, "CLM-00000009", day("2026-02-03"), claim.StatusOpen)

	s.Run("deleting a policy removes its claims", func() {
		s.Require().NoError(s.store.Policies().Delete(s.ctx, p1.ID))
		_, err := s.store.Policies().FindByID(s.ctx, p1.ID)
		s.Require().ErrorIs(err, xerrors.ErrNotFound)

		claims, err := s.store.Claims().ListByPolicy(s.ctx, p1.ID)
		s.Require().NoError(err)
		s.Empty(claims)
	})

	s.Run("deleting an agency removes agents, policies and claims", func() {
		s.Require().NoError(s.store.Agencies().Delete(s.ctx, a.ID))

		_, err := s.store.Agents().FindByID(s.ctx, ag1.ID)
		s.Require().ErrorIs(err, xerrors.ErrNotFound)
		_, err = s.store.Agents().FindByID(s.ctx, ag2.ID)
		s.Require().ErrorIs(err, xerrors.ErrNotFound)
		_, err = s.store.Policies().FindByID(s.ctx, p2.ID)
		s.Require().ErrorIs(err, xerrors.ErrNotFound)

		count, err := s.store.Claims().Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(int64(1), count) // only the unrelated claim survives
	})

	s.Run("unrelated records survive", func() {
		found, err := s.store.Policies().FindByID(s.ctx, otherPolicy.ID)
		s.Require().NoError(err)
		s.Equal("POL-9001", found.PolicyNumber)

		_, err = s.store.Customers().FindByID(s.ctx, cu.ID)
		s.Require().NoError(err)
	})

	s.Run("deleting a customer removes their policies", func() {
		s.Require().NoError(s.store.Customers().Delete(s.ctx, cu.ID))
		_, err := s.store.Policies().FindByID(s.ctx, otherPolicy.ID)
		s.Require().ErrorIs(err, xerrors.ErrNotFound)

		// The agent on the other side of the join is untouched.
		_, err = s.store.Agents().FindByID(s.ctx, otherAgent.ID)
		s.Require().NoError(err)
	})
}

func (s *StoreSuite) TestSearchAndFilters() {
	a := s.seedAgency("Acme")
	ag := s.seedAgent(a.ID, "Jane", "Smith")
	cu1 := s.seedCustomer("Bob", "Jones")
	cu2 := s.seedCustomer("Alice", "Baker")
	p1 := s.seedPolicy(ag.ID, cu1.ID, "POL-1001", day("2026-01-01"))
	p2 := s.seedPolicy(ag.ID, cu2.ID, "POL-1002", day("2026-01-02"))
	s.seedClaim(p1.ID, "CLM-AAAA1111", day("2026-02-01"), claim.StatusOpen)
	s.seedClaim(p2.ID, "CLM-BBBB2222", day("2026-02-02"), claim.StatusSettled)

	s.Run("policy search matches joined customer name", func() {
		got, _, err := s.store.Policies().List(s.ctx, policy.ListFilter{Search: "baker"})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("POL-1002", got[0].PolicyNumber)
	})

	s.Run("policy filter by customer", func() {
		got, _, err := s.store.Policies().List(s.ctx, policy.ListFilter{CustomerID: cu1.ID})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("POL-1001", got[0].PolicyNumber)
	})

	s.Run("claim search matches joined policy number", func() {
		got, _, err := s.store.Claims().List(s.ctx, claim.ListFilter{Search: "pol-1002"})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("CLM-BBBB2222", got[0].ClaimNumber)
	})

	s.Run("claim filter by status", func() {
		got, _, err := s.store.Claims().List(s.ctx, claim.ListFilter{Status: "Settled"})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("CLM-BBBB2222", got[0].ClaimNumber)
	})

	s.Run("distinct statuses are sorted", func() {
		statuses, err := s.store.Claims().DistinctStatuses(s.ctx)
		s.Require().NoError(err)
		s.Equal([]string{"Open", "Settled"}, statuses)
	})
}

func (s *StoreSuite) TestListOrderingAndPagination() {
	a := s.seedAgency("Acme")
	ag := s.seedAgent(a.ID, "Jane", "Smith")
	cu := s.seedCustomer("Bob", "Jones")

	for i := 0; i < 25; i++ {
		s.seedPolicy(ag.ID, cu.ID,
			fmt.Sprintf("POL-%04d", i+1),
			day("2026-01-01").AddDate(0, 0, i))
	}

	s.Run("newest start date first", func() {
		got, pages, err := s.store.Policies().List(s.ctx, policy.ListFilter{Page: 1, PerPage: 10})
		s.Require().NoError(err)
		s.Require().Len(got, 10)
		s.Equal("POL-0025", got[0].PolicyNumber)
		s.Equal(int64(25), pages.Total)
		s.Equal(3, pages.TotalPages)
		s.Equal(1, pages.StartIndex)
		s.Equal(10, pages.EndIndex)
	})

	s.Run("last page is partial", func() {
		got, pages, err := s.store.Policies().List(s.ctx, policy.ListFilter{Page: 3, PerPage: 10})
		s.Require().NoError(err)
		s.Require().Len(got, 5)
		s.Equal(21, pages.StartIndex)
		s.Equal(25, pages.EndIndex)
	})

	s.Run("out of range page clamps to last", func() {
		got, pages, err := s.store.Policies().List(s.ctx, policy.ListFilter{Page: 9, PerPage: 10})
		s.Require().NoError(err)
		s.Require().Len(got, 5)
		s.Equal(3, pages.Page)
	})
}

func (s *StoreSuite) TestDashboardFeeds() {
	a := s.seedAgency("Acme")
	ag := s.seedAgent(a.ID, "Jane", "Smith")
	cu := s.seedCustomer("Bob", "Jones")

	p1 := s.seedPolicy(ag.ID, cu.ID, "POL-1001", day("2026-01-01"))
	p2 := s.seedPolicy(ag.ID, cu.ID, "POL-1002", day("2026-01-10"))
	p2.EndDate = sql.NullTime{Time: day("2026-07-01"), Valid: true}
	s.Require().NoError(s.store.Policies().Update(s.ctx, p2))

	s.seedClaim(p1.ID, "CLM-00000001", day("2026-03-01"), claim.StatusOpen)
	s.seedClaim(p1.ID, "CLM-00000002", day("2026-02-01"), claim.StatusInProgress)
	s.seedClaim(p2.ID, "CLM-00000003", day("2026-04-01"), claim.StatusSettled)

	s.Run("recent policies newest first", func() {
		got, err := s.store.Policies().Recent(s.ctx, 4)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("POL-1002", got[0].PolicyNumber)
	})

	s.Run("upcoming renewals only include dated policies", func() {
		got, err := s.store.Policies().UpcomingRenewals(s.ctx, 4)
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("POL-1002", got[0].PolicyNumber)
	})

	s.Run("oldest open claims exclude settled ones", func() {
		got, err := s.store.Claims().OldestOpen(s.ctx, 4)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("CLM-00000002", got[0].ClaimNumber)
	})

	s.Run("recent claims limited", func() {
		got, err := s.store.Claims().Recent(s.ctx, 2)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("CLM-00000003", got[0].ClaimNumber)
	})
}
