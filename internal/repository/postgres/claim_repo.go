// internal/repository/postgres/claim_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"insuremate-service/internal/domain/claim"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/pagination"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ClaimRepository struct {
	db *pgxpool.Pool
}

func NewClaimRepository(db *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{db: db}
}

const claimColumns = `
	cl.id, cl.policy_id, cl.claim_number, cl.claim_date, cl.incident_date,
	cl.description, cl.claim_amount, cl.status, cl.resolution_date,
	cl.settlement_amount, cl.created_at, cl.updated_at,
	p.policy_number,
	c.first_name || ' ' || c.last_name AS customer_name
`

const claimFrom = `
	FROM claims cl
	JOIN policies p ON p.id = cl.policy_id
	JOIN customers c ON c.id = p.customer_id
`

var claimSortColumns = map[string]bool{
	"id": true, "claim_number": true, "claim_date": true,
	"incident_date": true, "status": true, "claim_amount": true,
}

func (r *ClaimRepository) scanClaim(row interface{ Scan(...interface{}) error }) (*claim.Claim, error) {
	var c claim.Claim
	err := row.Scan(
		&c.ID, &c.PolicyID, &c.ClaimNumber, &c.ClaimDate, &c.IncidentDate,
		&c.Description, &c.ClaimAmount, &c.Status, &c.ResolutionDate,
		&c.SettlementAmount, &c.CreatedAt, &c.UpdatedAt,
		&c.PolicyNumber, &c.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new claim row. A concurrent writer claiming the same
// generated number loses to the unique constraint and surfaces as a
// duplicate-entry error, letting the caller regenerate and retry.
func (r *ClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	query := `
		INSERT INTO claims (policy_id, claim_number, claim_date, incident_date,
		                    description, claim_amount, status, resolution_date,
		                    settlement_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.PolicyID, c.ClaimNumber, c.ClaimDate, c.IncidentDate,
		c.Description, c.ClaimAmount, c.Status, c.ResolutionDate, c.SettlementAmount,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to create claim")
	}

	return nil
}

// FindByID retrieves a claim with its joined policy number and customer name.
func (r *ClaimRepository) FindByID(ctx context.Context, id int64) (*claim.Claim, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE cl.id = $1`, claimColumns, claimFrom)

	c, err := r.scanClaim(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}

	return c, nil
}

// Update replaces the mutable columns of a claim row.
func (r *ClaimRepository) Update(ctx context.Context, c *claim.Claim) error {
	query := `
		UPDATE claims
		SET incident_date = $1, description = $2, claim_amount = $3, status = $4,
		    resolution_date = $5, settlement_amount = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.db.Exec(
		ctx, query,
		c.IncidentDate, c.Description, c.ClaimAmount, c.Status,
		c.ResolutionDate, c.SettlementAmount, time.Now(), c.ID,
	)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to update claim")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a claim.
func (r *ClaimRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM claims WHERE id = $1`, id)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to delete claim")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves claims matching the filter, newest claim date first. Search
// also matches the joined policy number.
func (r *ClaimRepository) List(ctx context.Context, f claim.ListFilter) ([]claim.Claim, pagination.Pages, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if f.PolicyID != 0 {
		conditions = append(conditions, fmt.Sprintf("cl.policy_id = $%d", argPos))
		args = append(args, f.PolicyID)
		argPos++
	}

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(cl.claim_number ILIKE $%d OR p.policy_number ILIKE $%d)",
			argPos, argPos,
		))
		args = append(args, "%"+f.Search+"%")
		argPos++
	}

	if f.Status != "" {
		conditions = append(conditions, fmt.Sprintf("cl.status = $%d", argPos))
		args = append(args, f.Status)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", claimFrom, whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to count claims")
	}

	pages := pagination.Resolve(pagination.Params{Page: f.Page, PerPage: f.PerPage}, total)

	orderBy := sortClause("cl", f.SortBy, f.SortOrder, "cl.claim_date DESC", claimSortColumns)

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, claimColumns, claimFrom, whereClause, orderBy, argPos, argPos+1)
	args = append(args, pages.PerPage, pages.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to list claims")
	}
	defer rows.Close()

	claims := []claim.Claim{}
	for rows.Next() {
		c, err := r.scanClaim(rows)
		if err != nil {
			return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to scan claim")
		}
		claims = append(claims, *c)
	}

	return claims, pages, rows.Err()
}

// ListByPolicy retrieves every claim filed against one policy.
func (r *ClaimRepository) ListByPolicy(ctx context.Context, policyID int64) ([]claim.Claim, error) {
	return r.listWhere(ctx, "cl.policy_id = $1", "cl.claim_date DESC", 0, policyID)
}

// Recent retrieves the most recently filed claims.
func (r *ClaimRepository) Recent(ctx context.Context, limit int) ([]claim.Claim, error) {
	return r.listWhere(ctx, "TRUE", "cl.claim_date DESC", limit)
}

// OldestOpen retrieves the longest-outstanding open claims.
func (r *ClaimRepository) OldestOpen(ctx context.Context, limit int) ([]claim.Claim, error) {
	openSet := make([]string, len(claim.OpenStatuses))
	for i, s := range claim.OpenStatuses {
		openSet[i] = string(s)
	}
	return r.listWhere(ctx, "cl.status = ANY($1)", "cl.claim_date ASC", limit, openSet)
}

func (r *ClaimRepository) listWhere(ctx context.Context, where, order string, limit int, args ...interface{}) ([]claim.Claim, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY %s
	`, claimColumns, claimFrom, where, order)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to list claims")
	}
	defer rows.Close()

	claims := []claim.Claim{}
	for rows.Next() {
		c, err := r.scanClaim(rows)
		if err != nil {
			return nil, xerrors.Wrap(err, "failed to scan claim")
		}
		claims = append(claims, *c)
	}

	return claims, rows.Err()
}

// DistinctStatuses returns the status values currently in use, for filter
// dropdowns.
func (r *ClaimRepository) DistinctStatuses(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT status FROM claims ORDER BY status`)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to load claim statuses")
	}
	defer rows.Close()

	statuses := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}

	return statuses, rows.Err()
}

// Count returns the total number of claims.
func (r *ClaimRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM claims`).Scan(&total)
	return total, err
}
