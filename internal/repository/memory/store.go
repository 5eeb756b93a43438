// Package memory implements the domain repositories over in-process maps.
// All five tables share one Store and one lock, so cascading deletes are
// observed atomically, the same guarantee the SQL schema gives through
// ON DELETE CASCADE inside a single statement.
package memory

import (
	"strings"
	"sync"

	"insuremate-service/internal/domain/agency"
	"insuremate-service/internal/domain/agent"
	"insuremate-service/internal/domain/claim"
	"insuremate-service/internal/domain/customer"
	"insuremate-service/internal/domain/policy"
)

type Store struct {
	mu sync.RWMutex

	agencies  map[int64]agency.Agency
	agents    map[int64]agent.Agent
	customers map[int64]customer.Customer
	policies  map[int64]policy.Policy
	claims    map[int64]claim.Claim

	nextAgencyID  int64
	nextAgentID   int64
	nextCustomerID int64
	nextPolicyID  int64
	nextClaimID   int64
}

func NewStore() *Store {
	return &Store{
		agencies:  map[int64]agency.Agency{},
		agents:    map[int64]agent.Agent{},
		customers: map[int64]customer.Customer{},
		policies:  map[int64]policy.Policy{},
		claims:    map[int64]claim.Claim{},
	}
}

func (s *Store) Agencies() *AgencyStore   { return &AgencyStore{s} }
func (s *Store) Agents() *AgentStore     { return &AgentStore{s} }
func (s *Store) Customers() *CustomerStore { return &CustomerStore{s} }
func (s *Store) Policies() *PolicyStore  { return &PolicyStore{s} }
func (s *Store) Claims() *ClaimStore     { return &ClaimStore{s} }

// containsFold is the memory equivalent of ILIKE '%term%'.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// deleteAgencyLocked removes an agency and its whole subtree. Caller holds mu.
func (s *Store) deleteAgencyLocked(id int64) {
	for agentID, ag := range s.agents {
		if ag.AgencyID == id {
			s.deleteAgentLocked(agentID)
		}
	}
	delete(s.agencies, id)
}

// deleteAgentLocked removes an agent, their policies and those policies'
// claims. Caller holds mu.
func (s *Store) deleteAgentLocked(id int64) {
	for policyID, p := range s.policies {
		if p.AgentID == id {
			s.deletePolicyLocked(policyID)
		}
	}
	delete(s.agents, id)
}

// deleteCustomerLocked removes a customer, their policies and those policies'
// claims. Caller holds mu.
func (s *Store) deleteCustomerLocked(id int64) {
	for policyID, p := range s.policies {
		if p.CustomerID == id {
			s.deletePolicyLocked(policyID)
		}
	}
	delete(s.customers, id)
}

// deletePolicyLocked removes a policy and its claims. Caller holds mu.
func (s *Store) deletePolicyLocked(id int64) {
	for claimID, c := range s.claims {
		if c.PolicyID == id {
			delete(s.claims, claimID)
		}
	}
	delete(s.policies, id)
}

// Decorated reads mirror the joined columns the SQL store returns.

func (s *Store) agencyViewLocked(a agency.Agency) agency.Agency {
	a.AgentCount = 0
	for _, ag := range s.agents {
		if ag.AgencyID == a.ID {
			a.AgentCount++
		}
	}
	return a
}

func (s *Store) agentViewLocked(ag agent.Agent) agent.Agent {
	if a, ok := s.agencies[ag.AgencyID]; ok {
		ag.AgencyName.String = a.Name
		ag.AgencyName.Valid = true
	}
	ag.PolicyCount = 0
	for _, p := range s.policies {
		if p.AgentID == ag.ID {
			ag.PolicyCount++
		}
	}
	return ag
}

func (s *Store) customerViewLocked(c customer.Customer) customer.Customer {
	c.PolicyCount = 0
	for _, p := range s.policies {
		if p.CustomerID == c.ID {
			c.PolicyCount++
		}
	}
	return c
}

func (s *Store) policyViewLocked(p policy.Policy) policy.Policy {
	if ag, ok := s.agents[p.AgentID]; ok {
		p.AgentName.String = ag.FullName()
		p.AgentName.Valid = true
	}
	if c, ok := s.customers[p.CustomerID]; ok {
		p.CustomerName.String = c.FullName()
		p.CustomerName.Valid = true
	}
	p.ClaimCount = 0
	for _, cl := range s.claims {
		if cl.PolicyID == p.ID {
			p.ClaimCount++
		}
	}
	return p
}

func (s *Store) claimViewLocked(c claim.Claim) claim.Claim {
	if p, ok := s.policies[c.PolicyID]; ok {
		c.PolicyNumber.String = p.PolicyNumber
		c.PolicyNumber.Valid = true
		if cust, ok := s.customers[p.CustomerID]; ok {
			c.CustomerName.String = cust.FullName()
			c.CustomerName.Valid = true
		}
	}
	return c
}
