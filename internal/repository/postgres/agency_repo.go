// internal/repository/postgres/agency_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"insuremate-service/internal/domain/agency"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/pagination"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AgencyRepository struct {
	db *pgxpool.Pool
}

func NewAgencyRepository(db *pgxpool.Pool) *AgencyRepository {
	return &AgencyRepository{db: db}
}

const agencyColumns = `
	a.id, a.name, a.address, a.city, a.state, a.zip_code, a.phone, a.website,
	(SELECT COUNT(*) FROM agents ag WHERE ag.agency_id = a.id) AS agent_count
`

var agencySortColumns = map[string]bool{
	"id": true, "name": true, "city": true, "state": true,
}

// Create inserts a new agency row.
func (r *AgencyRepository) Create(ctx context.Context, a *agency.Agency) error {
	query := `
		INSERT INTO agencies (name, address, city, state, zip_code, phone, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		a.Name, a.Address, a.City, a.State, a.ZipCode, a.Phone, a.Website,
	).Scan(&a.ID)

	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to create agency")
	}

	return nil
}

// FindByID retrieves an agency with its agent count.
func (r *AgencyRepository) FindByID(ctx context.Context, id int64) (*agency.Agency, error) {
	query := fmt.Sprintf(`SELECT %s FROM agencies a WHERE a.id = $1`, agencyColumns)

	var a agency.Agency
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Address, &a.City, &a.State, &a.ZipCode, &a.Phone, &a.Website,
		&a.AgentCount,
	)
	if err != nil {
		return nil, translateErr(err)
	}

	return &a, nil
}

// Update replaces the mutable columns of an agency row.
func (r *AgencyRepository) Update(ctx context.Context, a *agency.Agency) error {
	query := `
		UPDATE agencies
		SET name = $1, address = $2, city = $3, state = $4, zip_code = $5,
		    phone = $6, website = $7
		WHERE id = $8
	`

	result, err := r.db.Exec(
		ctx, query,
		a.Name, a.Address, a.City, a.State, a.ZipCode, a.Phone, a.Website, a.ID,
	)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to update agency")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes an agency. The agents -> policies -> claims subtree goes with
// it through ON DELETE CASCADE, so the whole removal is one atomic statement.
func (r *AgencyRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM agencies WHERE id = $1`, id)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to delete agency")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves agencies matching the filter, newest-first count first so
// out-of-range pages clamp to the last page.
func (r *AgencyRepository) List(ctx context.Context, f agency.ListFilter) ([]agency.Agency, pagination.Pages, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(a.name ILIKE $%d OR a.address ILIKE $%d OR a.city ILIKE $%d OR a.state ILIKE $%d OR a.phone ILIKE $%d)",
			argPos, argPos, argPos, argPos, argPos,
		))
		args = append(args, "%"+f.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM agencies a WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to count agencies")
	}

	pages := pagination.Resolve(pagination.Params{Page: f.Page, PerPage: f.PerPage}, total)

	orderBy := sortClause("a", f.SortBy, f.SortOrder, "a.id ASC", agencySortColumns)

	query := fmt.Sprintf(`
		SELECT %s FROM agencies a
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, agencyColumns, whereClause, orderBy, argPos, argPos+1)
	args = append(args, pages.PerPage, pages.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to list agencies")
	}
	defer rows.Close()

	agencies := []agency.Agency{}
	for rows.Next() {
		var a agency.Agency
		err := rows.Scan(
			&a.ID, &a.Name, &a.Address, &a.City, &a.State, &a.ZipCode, &a.Phone, &a.Website,
			&a.AgentCount,
		)
		if err != nil {
			return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to scan agency")
		}
		agencies = append(agencies, a)
	}

	return agencies, pages, rows.Err()
}

// Count returns the total number of agencies.
func (r *AgencyRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM agencies`).Scan(&total)
	return total, err
}
