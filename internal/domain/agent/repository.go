// internal/domain/agent/repository.go
package agent

import (
	"context"

	"insuremate-service/internal/pkg/pagination"
)

// Repository is the storage contract for agent rows. Deleting an agent
// removes its policies and their claims atomically.
type Repository interface {
	Create(ctx context.Context, a *Agent) error
	FindByID(ctx context.Context, id int64) (*Agent, error)
	Update(ctx context.Context, a *Agent) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]Agent, pagination.Pages, error)
	ListByAgency(ctx context.Context, agencyID int64) ([]Agent, error)
	Count(ctx context.Context) (int64, error)
}
