// internal/domain/claim/repository.go
package claim

import (
	"context"

	"insuremate-service/internal/pkg/pagination"
)

// Repository is the storage contract for claim rows. claim_number is unique
// across all claims; a violation surfaces as a duplicate-entry error so the
// caller can regenerate and retry.
type Repository interface {
	Create(ctx context.Context, c *Claim) error
	FindByID(ctx context.Context, id int64) (*Claim, error)
	Update(ctx context.Context, c *Claim) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]Claim, pagination.Pages, error)
	ListByPolicy(ctx context.Context, policyID int64) ([]Claim, error)
	Recent(ctx context.Context, limit int) ([]Claim, error)
	OldestOpen(ctx context.Context, limit int) ([]Claim, error)
	DistinctStatuses(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
