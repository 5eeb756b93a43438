// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"insuremate-service/internal/domain/customer"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/pagination"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `
	c.id, c.first_name, c.last_name, c.date_of_birth, c.email, c.phone,
	c.address, c.city, c.state, c.zip_code,
	(SELECT COUNT(*) FROM policies p WHERE p.customer_id = c.id) AS policy_count
`

var customerSortColumns = map[string]bool{
	"id": true, "first_name": true, "last_name": true, "email": true, "city": true,
}

func (r *CustomerRepository) scanCustomer(row interface{ Scan(...interface{}) error }) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.DateOfBirth, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.State, &c.ZipCode, &c.PolicyCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new customer row.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, date_of_birth, email, phone,
		                       address, city, state, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		c.FirstName, c.LastName, c.DateOfBirth, c.Email, c.Phone,
		c.Address, c.City, c.State, c.ZipCode,
	).Scan(&c.ID)

	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to create customer")
	}

	return nil
}

// FindByID retrieves a customer with their policy count.
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers c WHERE c.id = $1`, customerColumns)

	c, err := r.scanCustomer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}

	return c, nil
}

// Update replaces the mutable columns of a customer row.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, date_of_birth = $3, email = $4,
		    phone = $5, address = $6, city = $7, state = $8, zip_code = $9
		WHERE id = $10
	`

	result, err := r.db.Exec(
		ctx, query,
		c.FirstName, c.LastName, c.DateOfBirth, c.Email, c.Phone,
		c.Address, c.City, c.State, c.ZipCode, c.ID,
	)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to update customer")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a customer; their policies and the policies' claims cascade.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to delete customer")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves customers matching the filter ordered by last then first name.
func (r *CustomerRepository) List(ctx context.Context, f customer.ListFilter) ([]customer.Customer, pagination.Pages, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(c.first_name ILIKE $%d OR c.last_name ILIKE $%d OR c.email ILIKE $%d OR c.phone ILIKE $%d)",
			argPos, argPos, argPos, argPos,
		))
		args = append(args, "%"+f.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM customers c WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to count customers")
	}

	pages := pagination.Resolve(pagination.Params{Page: f.Page, PerPage: f.PerPage}, total)

	orderBy := sortClause("c", f.SortBy, f.SortOrder, "c.last_name ASC, c.first_name ASC", customerSortColumns)

	query := fmt.Sprintf(`
		SELECT %s FROM customers c
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, customerColumns, whereClause, orderBy, argPos, argPos+1)
	args = append(args, pages.PerPage, pages.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to list customers")
	}
	defer rows.Close()

	customers := []customer.Customer{}
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to scan customer")
		}
		customers = append(customers, *c)
	}

	return customers, pages, rows.Err()
}

// Count returns the total number of customers.
func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&total)
	return total, err
}
