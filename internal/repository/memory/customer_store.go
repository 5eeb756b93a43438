// internal/repository/memory/customer_store.go
package memory

import (
	"context"
	"sort"

	"insuremate-service/internal/domain/customer"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/pagination"
)

type CustomerStore struct {
	s *Store
}

var _ customer.Repository = (*CustomerStore)(nil)

func (r *CustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextCustomerID++
	c.ID = r.s.nextCustomerID
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerStore) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	view := r.s.customerViewLocked(c)
	return &view, nil
}

func (r *CustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[c.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerStore) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[id]; !ok {
		return xerrors.ErrNotFound
	}
	r.s.deleteCustomerLocked(id)
	return nil
}

func (r *CustomerStore) List(ctx context.Context, f customer.ListFilter) ([]customer.Customer, pagination.Pages, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []customer.Customer{}
	for _, c := range r.s.customers {
		if f.Search != "" &&
			!containsFold(c.FirstName, f.Search) &&
			!containsFold(c.LastName, f.Search) &&
			!containsFold(c.Email.String, f.Search) &&
			!containsFold(c.Phone.String, f.Search) {
			continue
		}
		matched = append(matched, r.s.customerViewLocked(c))
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].LastName != matched[j].LastName {
			return matched[i].LastName < matched[j].LastName
		}
		if matched[i].FirstName != matched[j].FirstName {
			return matched[i].FirstName < matched[j].FirstName
		}
		return matched[i].ID < matched[j].ID
	})

	pages := pagination.Resolve(pagination.Params{Page: f.Page, PerPage: f.PerPage}, int64(len(matched)))
	lo, hi := pages.Slice(len(matched))
	return matched[lo:hi], pages, nil
}

func (r *CustomerStore) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.customers)), nil
}
