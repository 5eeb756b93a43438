// internal/repository/memory/agency_store.go
package memory

import (
	"context"
	"sort"

	"insuremate-service/internal/domain/agency"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/pagination"
)

type AgencyStore struct {
	s *Store
}

var _ agency.Repository = (*AgencyStore)(nil)

func (r *AgencyStore) Create(ctx context.Context, a *agency.Agency) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextAgencyID++
	a.ID = r.s.nextAgencyID
	r.s.agencies[a.ID] = *a
	return nil
}

func (r *AgencyStore) FindByID(ctx context.Context, id int64) (*agency.Agency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.agencies[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	view := r.s.agencyViewLocked(a)
	return &view, nil
}

func (r *AgencyStore) Update(ctx context.Context, a *agency.Agency) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.agencies[a.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.s.agencies[a.ID] = *a
	return nil
}

func (r *AgencyStore) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.agencies[id]; !ok {
		return xerrors.ErrNotFound
	}
	r.s.deleteAgencyLocked(id)
	return nil
}

func (r *AgencyStore) List(ctx context.Context, f agency.ListFilter) ([]agency.Agency, pagination.Pages, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []agency.Agency{}
	for _, a := range r.s.agencies {
		if f.Search != "" &&
			!containsFold(a.Name, f.Search) &&
			!containsFold(a.Address.String, f.Search) &&
			!containsFold(a.City.String, f.Search) &&
			!containsFold(a.State.String, f.Search) &&
			!containsFold(a.Phone.String, f.Search) {
			continue
		}
		matched = append(matched, r.s.agencyViewLocked(a))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	pages := pagination.Resolve(pagination.Params{Page: f.Page, PerPage: f.PerPage}, int64(len(matched)))
	lo, hi := pages.Slice(len(matched))
	return matched[lo:hi], pages, nil
}

func (r *AgencyStore) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.agencies)), nil
}
