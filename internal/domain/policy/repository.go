// internal/domain/policy/repository.go
package policy

import (
	"context"

	"insuremate-service/internal/pkg/pagination"
)

// Repository is the storage contract for policy rows. policy_number is unique
// across all policies; a violation surfaces as a duplicate-entry error and
// leaves the first row untouched. Deleting a policy removes its claims
// atomically.
type Repository interface {
	Create(ctx context.Context, p *Policy) error
	FindByID(ctx context.Context, id int64) (*Policy, error)
	Update(ctx context.Context, p *Policy) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]Policy, pagination.Pages, error)
	ListByAgent(ctx context.Context, agentID int64) ([]Policy, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Policy, error)
	Recent(ctx context.Context, limit int) ([]Policy, error)
	UpcomingRenewals(ctx context.Context, limit int) ([]Policy, error)
	DistinctStatuses(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
