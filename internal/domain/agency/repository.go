// internal/domain/agency/repository.go
package agency

import (
	"context"

	"insuremate-service/internal/pkg/pagination"
)

// Repository is the storage contract for agency rows. Deleting an agency
// removes its whole subtree (agents, their policies, their claims) atomically.
type Repository interface {
	Create(ctx context.Context, a *Agency) error
	FindByID(ctx context.Context, id int64) (*Agency, error)
	Update(ctx context.Context, a *Agency) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]Agency, pagination.Pages, error)
	Count(ctx context.Context) (int64, error)
}
