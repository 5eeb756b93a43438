// internal/repository/memory/claim_store.go
package memory

import (
	"context"
	"sort"
	"time"

	"insuremate-service/internal/domain/claim"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/pagination"
)

type ClaimStore struct {
	s *Store
}

var _ claim.Repository = (*ClaimStore)(nil)

func (r *ClaimStore) Create(ctx context.Context, c *claim.Claim) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.policies[c.PolicyID]; !ok {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "referenced record does not exist")
	}
	for _, existing := range r.s.claims {
		if existing.ClaimNumber == c.ClaimNumber {
			return xerrors.Wrap(xerrors.ErrDuplicateEntry, "claims_claim_number_key")
		}
	}

	r.s.nextClaimID++
	c.ID = r.s.nextClaimID
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.s.claims[c.ID] = *c
	return nil
}

func (r *ClaimStore) FindByID(ctx context.Context, id int64) (*claim.Claim, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.claims[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	view := r.s.claimViewLocked(c)
	return &view, nil
}

func (r *ClaimStore) Update(ctx context.Context, c *claim.Claim) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.claims[c.ID]; !ok {
		return xerrors.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	r.s.claims[c.ID] = *c
	return nil
}

func (r *ClaimStore) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.claims[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.s.claims, id)
	return nil
}

func (r *ClaimStore) List(ctx context.Context, f claim.ListFilter) ([]claim.Claim, pagination.Pages, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []claim.Claim{}
	for _, c := range r.s.claims {
		if f.PolicyID != 0 && c.PolicyID != f.PolicyID {
			continue
		}
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		if f.Search != "" && !r.matchesSearchLocked(c, f.Search) {
			continue
		}
		matched = append(matched, r.s.claimViewLocked(c))
	}

	sortClaimsByDateDesc(matched)

	pages := pagination.Resolve(pagination.Params{Page: f.Page, PerPage: f.PerPage}, int64(len(matched)))
	lo, hi := pages.Slice(len(matched))
	return matched[lo:hi], pages, nil
}

// matchesSearchLocked mirrors the SQL search: claim number and the joined
// policy number.
func (r *ClaimStore) matchesSearchLocked(c claim.Claim, term string) bool {
	if containsFold(c.ClaimNumber, term) {
		return true
	}
	if p, ok := r.s.policies[c.PolicyID]; ok && containsFold(p.PolicyNumber, term) {
		return true
	}
	return false
}

func (r *ClaimStore) ListByPolicy(ctx context.Context, policyID int64) ([]claim.Claim, error) {
	return r.listMatching(func(c claim.Claim) bool { return c.PolicyID == policyID }, 0, false)
}

func (r *ClaimStore) Recent(ctx context.Context, limit int) ([]claim.Claim, error) {
	return r.listMatching(func(claim.Claim) bool { return true }, limit, false)
}

func (r *ClaimStore) OldestOpen(ctx context.Context, limit int) ([]claim.Claim, error) {
	return r.listMatching(func(c claim.Claim) bool { return c.Status.IsOpen() }, limit, true)
}

func (r *ClaimStore) listMatching(keep func(claim.Claim) bool, limit int, byDateAsc bool) ([]claim.Claim, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []claim.Claim{}
	for _, c := range r.s.claims {
		if keep(c) {
			matched = append(matched, r.s.claimViewLocked(c))
		}
	}

	if byDateAsc {
		sort.Slice(matched, func(i, j int) bool {
			if !matched[i].ClaimDate.Equal(matched[j].ClaimDate) {
				return matched[i].ClaimDate.Before(matched[j].ClaimDate)
			}
			return matched[i].ID < matched[j].ID
		})
	} else {
		sortClaimsByDateDesc(matched)
	}

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *ClaimStore) DistinctStatuses(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := map[string]bool{}
	statuses := []string{}
	for _, c := range r.s.claims {
		if !seen[string(c.Status)] {
			seen[string(c.Status)] = true
			statuses = append(statuses, string(c.Status))
		}
	}
	sort.Strings(statuses)
	return statuses, nil
}

func (r *ClaimStore) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.claims)), nil
}

func sortClaimsByDateDesc(claims []claim.Claim) {
	sort.Slice(claims, func(i, j int) bool {
		if !claims[i].ClaimDate.Equal(claims[j].ClaimDate) {
			return claims[i].ClaimDate.After(claims[j].ClaimDate)
		}
		return claims[i].ID > claims[j].ID
	})
}
