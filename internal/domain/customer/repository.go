// internal/domain/customer/repository.go
package customer

import (
	"context"

	"insuremate-service/internal/pkg/pagination"
)

// Repository is the storage contract for customer rows. Deleting a customer
// removes their policies and the policies' claims atomically.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id int64) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]Customer, pagination.Pages, error)
	Count(ctx context.Context) (int64, error)
}
