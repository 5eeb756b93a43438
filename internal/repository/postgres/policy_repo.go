// internal/repository/postgres/policy_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"insuremate-service/internal/domain/policy"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/pagination"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PolicyRepository struct {
	db *pgxpool.Pool
}

func NewPolicyRepository(db *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{db: db}
}

const policyColumns = `
	p.id, p.agent_id, p.customer_id, p.policy_number, p.policy_type,
	p.coverage_amount, p.premium, p.start_date, p.end_date, p.policy_status,
	ag.first_name || ' ' || ag.last_name AS agent_name,
	c.first_name || ' ' || c.last_name AS customer_name,
	(SELECT COUNT(*) FROM claims cl WHERE cl.policy_id = p.id) AS claim_count
`

const policyFrom = `
	FROM policies p
	JOIN agents ag ON ag.id = p.agent_id
	JOIN customers c ON c.id = p.customer_id
`

var policySortColumns = map[string]bool{
	"id": true, "policy_number": true, "policy_type": true,
	"start_date": true, "end_date": true, "premium": true,
}

func (r *PolicyRepository) scanPolicy(row interface{ Scan(...interface{}) error }) (*policy.Policy, error) {
	var p policy.Policy
	err := row.Scan(
		&p.ID, &p.AgentID, &p.CustomerID, &p.PolicyNumber, &p.PolicyType,
		&p.CoverageAmount, &p.Premium, &p.StartDate, &p.EndDate, &p.Status,
		&p.AgentName, &p.CustomerName, &p.ClaimCount,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new policy row. A duplicate policy_number, including one
// written by a concurrent request, surfaces as a duplicate-entry error from
// the unique constraint; the earlier row is untouched.
func (r *PolicyRepository) Create(ctx context.Context, p *policy.Policy) error {
	query := `
		INSERT INTO policies (agent_id, customer_id, policy_number, policy_type,
		                      coverage_amount, premium, start_date, end_date, policy_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		p.AgentID, p.CustomerID, p.PolicyNumber, p.PolicyType,
		p.CoverageAmount, p.Premium, p.StartDate, p.EndDate, p.Status,
	).Scan(&p.ID)

	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to create policy")
	}

	return nil
}

// FindByID retrieves a policy with its joined names and claim count.
func (r *PolicyRepository) FindByID(ctx context.Context, id int64) (*policy.Policy, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.id = $1`, policyColumns, policyFrom)

	p, err := r.scanPolicy(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}

	return p, nil
}

// Update replaces the mutable columns of a policy row.
func (r *PolicyRepository) Update(ctx context.Context, p *policy.Policy) error {
	query := `
		UPDATE policies
		SET agent_id = $1, customer_id = $2, policy_number = $3, policy_type = $4,
		    coverage_amount = $5, premium = $6, start_date = $7, end_date = $8,
		    policy_status = $9
		WHERE id = $10
	`

	result, err := r.db.Exec(
		ctx, query,
		p.AgentID, p.CustomerID, p.PolicyNumber, p.PolicyType,
		p.CoverageAmount, p.Premium, p.StartDate, p.EndDate, p.Status, p.ID,
	)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to update policy")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a policy; its claims cascade with it.
func (r *PolicyRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to delete policy")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves policies matching the filter, newest start date first.
// Search also matches the joined customer and agent names.
func (r *PolicyRepository) List(ctx context.Context, f policy.ListFilter) ([]policy.Policy, pagination.Pages, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if f.AgentID != 0 {
		conditions = append(conditions, fmt.Sprintf("p.agent_id = $%d", argPos))
		args = append(args, f.AgentID)
		argPos++
	}

	if f.CustomerID != 0 {
		conditions = append(conditions, fmt.Sprintf("p.customer_id = $%d", argPos))
		args = append(args, f.CustomerID)
		argPos++
	}

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(p.policy_number ILIKE $%d OR p.policy_type ILIKE $%d OR "+
				"c.first_name ILIKE $%d OR c.last_name ILIKE $%d OR "+
				"ag.first_name ILIKE $%d OR ag.last_name ILIKE $%d)",
			argPos, argPos, argPos, argPos, argPos, argPos,
		))
		args = append(args, "%"+f.Search+"%")
		argPos++
	}

	if f.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.policy_status = $%d", argPos))
		args = append(args, f.Status)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", policyFrom, whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to count policies")
	}

	pages := pagination.Resolve(pagination.Params{Page: f.Page, PerPage: f.PerPage}, total)

	orderBy := sortClause("p", f.SortBy, f.SortOrder, "p.start_date DESC", policySortColumns)

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, policyColumns, policyFrom, whereClause, orderBy, argPos, argPos+1)
	args = append(args, pages.PerPage, pages.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to list policies")
	}
	defer rows.Close()

	policies := []policy.Policy{}
	for rows.Next() {
		p, err := r.scanPolicy(rows)
		if err != nil {
			return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to scan policy")
		}
		policies = append(policies, *p)
	}

	return policies, pages, rows.Err()
}

// ListByAgent retrieves every policy written by one agent.
func (r *PolicyRepository) ListByAgent(ctx context.Context, agentID int64) ([]policy.Policy, error) {
	return r.listWhere(ctx, "p.agent_id = $1", "p.start_date DESC", 0, agentID)
}

// ListByCustomer retrieves every policy held by one customer.
func (r *PolicyRepository) ListByCustomer(ctx context.Context, customerID int64) ([]policy.Policy, error) {
	return r.listWhere(ctx, "p.customer_id = $1", "p.start_date DESC", 0, customerID)
}

// Recent retrieves the most recently started policies.
func (r *PolicyRepository) Recent(ctx context.Context, limit int) ([]policy.Policy, error) {
	return r.listWhere(ctx, "TRUE", "p.start_date DESC", limit)
}

// UpcomingRenewals retrieves policies with the soonest end dates.
func (r *PolicyRepository) UpcomingRenewals(ctx context.Context, limit int) ([]policy.Policy, error) {
	return r.listWhere(ctx, "p.end_date IS NOT NULL", "p.end_date ASC", limit)
}

func (r *PolicyRepository) listWhere(ctx context.Context, where, order string, limit int, args ...interface{}) ([]policy.Policy, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY %s
	`, policyColumns, policyFrom, where, order)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to list policies")
	}
	defer rows.Close()

	policies := []policy.Policy{}
	for rows.Next() {
		p, err := r.scanPolicy(rows)
		if err != nil {
			return nil, xerrors.Wrap(err, "failed to scan policy")
		}
		policies = append(policies, *p)
	}

	return policies, rows.Err()
}

// DistinctStatuses returns the status values currently in use, for filter
// dropdowns.
func (r *PolicyRepository) DistinctStatuses(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT policy_status FROM policies ORDER BY policy_status`)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to load policy statuses")
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

// Count returns the total number of policies.
func (r *PolicyRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM policies`).Scan(&total)
	return total, err
}
