// internal/repository/memory/policy_store.go
package memory

import (
	"context"
	"sort"

	"insuremate-service/internal/domain/policy"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/pagination"
)

type PolicyStore struct {
	s *Store
}

var _ policy.Repository = (*PolicyStore)(nil)

func (r *PolicyStore) Create(ctx context.Context, p *policy.Policy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.agents[p.AgentID]; !ok {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "referenced record does not exist")
	}
	if _, ok := r.s.customers[p.CustomerID]; !ok {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "referenced record does not exist")
	}
	for _, existing := range r.s.policies {
		if existing.PolicyNumber == p.PolicyNumber {
			return xerrors.Wrap(xerrors.ErrDuplicateEntry, "policies_policy_number_key")
		}
	}

	r.s.nextPolicyID++
	p.ID = r.s.nextPolicyID
	r.s.policies[p.ID] = *p
	return nil
}

func (r *PolicyStore) FindByID(ctx context.Context, id int64) (*policy.Policy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.policies[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	view := r.s.policyViewLocked(p)
	return &view, nil
}

func (r *PolicyStore) Update(ctx context.Context, p *policy.Policy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.policies[p.ID]; !ok {
		return xerrors.ErrNotFound
	}
	if _, ok := r.s.agents[p.AgentID]; !ok {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "referenced record does not exist")
	}
	if _, ok := r.s.customers[p.CustomerID]; !ok {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "referenced record does not exist")
	}
	for _, existing := range r.s.policies {
		if existing.ID != p.ID && existing.PolicyNumber == p.PolicyNumber {
			return xerrors.Wrap(xerrors.ErrDuplicateEntry, "policies_policy_number_key")
		}
	}
	r.s.policies[p.ID] = *p
	return nil
}

func (r *PolicyStore) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.policies[id]; !ok {
		return xerrors.ErrNotFound
	}
	r.s.deletePolicyLocked(id)
	return nil
}

func (r *PolicyStore) List(ctx context.Context, f policy.ListFilter) ([]policy.Policy, pagination.Pages, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []policy.Policy{}
	for _, p := range r.s.policies {
		if f.AgentID != 0 && p.AgentID != f.AgentID {
			continue
		}
		if f.CustomerID != 0 && p.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.Search != "" && !r.matchesSearchLocked(p, f.Search) {
			continue
		}
		matched = append(matched, r.s.policyViewLocked(p))
	}

	sortPoliciesByStartDesc(matched)

	pages := pagination.Resolve(pagination.Params{Page: f.Page, PerPage: f.PerPage}, int64(len(matched)))
	lo, hi := pages.Slice(len(matched))
	return matched[lo:hi], pages, nil
}

// matchesSearchLocked mirrors the SQL search: policy number, type, and the
// joined customer and agent names.
func (r *PolicyStore) matchesSearchLocked(p policy.Policy, term string) bool {
	if containsFold(p.PolicyNumber, term) || containsFold(p.PolicyType, term) {
		return true
	}
	if c, ok := r.s.customers[p.CustomerID]; ok {
		if containsFold(c.FirstName, term) || containsFold(c.LastName, term) {
			return true
		}
	}
	if ag, ok := r.s.agents[p.AgentID]; ok {
		if containsFold(ag.FirstName, term) || containsFold(ag.LastName, term) {
			return true
		}
	}
	return false
}

func (r *PolicyStore) ListByAgent(ctx context.Context, agentID int64) ([]policy.Policy, error) {
	return r.listMatching(func(p policy.Policy) bool { return p.AgentID == agentID }, 0, false)
}

func (r *PolicyStore) ListByCustomer(ctx context.Context, customerID int64) ([]policy.Policy, error) {
	return r.listMatching(func(p policy.Policy) bool { return p.CustomerID == customerID }, 0, false)
}

func (r *PolicyStore) Recent(ctx context.Context, limit int) ([]policy.Policy, error) {
	return r.listMatching(func(policy.Policy) bool { return true }, limit, false)
}

func (r *PolicyStore) UpcomingRenewals(ctx context.Context, limit int) ([]policy.Policy, error) {
	return r.listMatching(func(p policy.Policy) bool { return p.EndDate.Valid }, limit, true)
}

func (r *PolicyStore) listMatching(keep func(policy.Policy) bool, limit int, byEndAsc bool) ([]policy.Policy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []policy.Policy{}
	for _, p := range r.s.policies {
		if keep(p) {
			matched = append(matched, r.s.policyViewLocked(p))
		}
	}

	if byEndAsc {
		sort.Slice(matched, func(i, j int) bool {
			if !matched[i].EndDate.Time.Equal(matched[j].EndDate.Time) {
				return matched[i].EndDate.Time.Before(matched[j].EndDate.Time)
			}
			return matched[i].ID < matched[j].ID
		})
	} else {
		sortPoliciesByStartDesc(matched)
	}

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *PolicyStore) DistinctStatuses(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := map[string]bool{}
	statuses := []string{}
	for _, p := range r.s.policies {
		if !seen[string(p.Status)] {
			seen[string(p.Status)] = true
			statuses = append(statuses, string(p.Status))
		}
	}
	sort.Strings(statuses)
	return statuses, nil
}

func (r *PolicyStore) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.policies)), nil
}

func sortPoliciesByStartDesc(policies []policy.Policy) {
	sort.Slice(policies, func(i, j int) bool {
		if !policies[i].StartDate.Equal(policies[j].StartDate) {
			return policies[i].StartDate.After(policies[j].StartDate)
		}
		return policies[i].ID > policies[j].ID
	})
}
