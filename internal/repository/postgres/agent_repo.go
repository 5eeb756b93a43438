// internal/repository/postgres/agent_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"insuremate-service/internal/domain/agent"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/pagination"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AgentRepository struct {
	db *pgxpool.Pool
}

func NewAgentRepository(db *pgxpool.Pool) *AgentRepository {
	return &AgentRepository{db: db}
}

const agentColumns = `
	ag.id, ag.agency_id, ag.first_name, ag.last_name, ag.email, ag.phone,
	a.name AS agency_name,
	(SELECT COUNT(*) FROM policies p WHERE p.agent_id = ag.id) AS policy_count
`

const agentFrom = `FROM agents ag JOIN agencies a ON a.id = ag.agency_id`

var agentSortColumns = map[string]bool{
	"id": true, "first_name": true, "last_name": true, "email": true,
}

func (r *AgentRepository) scanAgent(row interface{ Scan(...interface{}) error }) (*agent.Agent, error) {
	var ag agent.Agent
	err := row.Scan(
		&ag.ID, &ag.AgencyID, &ag.FirstName, &ag.LastName, &ag.Email, &ag.Phone,
		&ag.AgencyName, &ag.PolicyCount,
	)
	if err != nil {
		return nil, err
	}
	return &ag, nil
}

// Create inserts a new agent row. A missing agency surfaces as invalid input
// via the foreign-key constraint.
func (r *AgentRepository) Create(ctx context.Context, ag *agent.Agent) error {
	query := `
		INSERT INTO agents (agency_id, first_name, last_name, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		ag.AgencyID, ag.FirstName, ag.LastName, ag.Email, ag.Phone,
	).Scan(&ag.ID)

	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to create agent")
	}

	return nil
}

// FindByID retrieves an agent with its agency name and policy count.
func (r *AgentRepository) FindByID(ctx context.Context, id int64) (*agent.Agent, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE ag.id = $1`, agentColumns, agentFrom)

	ag, err := r.scanAgent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}

	return ag, nil
}

// Update replaces the mutable columns of an agent row.
func (r *AgentRepository) Update(ctx context.Context, ag *agent.Agent) error {
	query := `
		UPDATE agents
		SET agency_id = $1, first_name = $2, last_name = $3, email = $4, phone = $5
		WHERE id = $6
	`

	result, err := r.db.Exec(
		ctx, query,
		ag.AgencyID, ag.FirstName, ag.LastName, ag.Email, ag.Phone, ag.ID,
	)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to update agent")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes an agent; its policies and their claims cascade with it.
func (r *AgentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to delete agent")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves agents matching the filter ordered by last then first name.
func (r *AgentRepository) List(ctx context.Context, f agent.ListFilter) ([]agent.Agent, pagination.Pages, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if f.AgencyID != 0 {
		conditions = append(conditions, fmt.Sprintf("ag.agency_id = $%d", argPos))
		args = append(args, f.AgencyID)
		argPos++
	}

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(ag.first_name ILIKE $%d OR ag.last_name ILIKE $%d OR ag.email ILIKE $%d OR ag.phone ILIKE $%d)",
			argPos, argPos, argPos, argPos,
		))
		args = append(args, "%"+f.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM agents ag WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to count agents")
	}

	pages := pagination.Resolve(pagination.Params{Page: f.Page, PerPage: f.PerPage}, total)

	orderBy := sortClause("ag", f.SortBy, f.SortOrder, "ag.last_name ASC, ag.first_name ASC", agentSortColumns)

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, agentColumns, agentFrom, whereClause, orderBy, argPos, argPos+1)
	args = append(args, pages.PerPage, pages.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to list agents")
	}
	defer rows.Close()

	agents := []agent.Agent{}
	for rows.Next() {
		ag, err := r.scanAgent(rows)
		if err != nil {
			return nil, pagination.Pages{}, xerrors.Wrap(err, "failed to scan agent")
		}
		agents = append(agents, *ag)
	}

	return agents, pages, rows.Err()
}

// ListByAgency retrieves every agent of one agency ordered by name.
func (r *AgentRepository) ListByAgency(ctx context.Context, agencyID int64) ([]agent.Agent, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE ag.agency_id = $1
		ORDER BY ag.last_name ASC, ag.first_name ASC
	`, agentColumns, agentFrom)

	rows, err := r.db.Query(ctx, query, agencyID)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to list agency agents")
	}
	defer rows.Close()

	agents := []agent.Agent{}
	for rows.Next() {
		ag, err := r.scanAgent(rows)
		if err != nil {
			return nil, xerrors.Wrap(err, "failed to scan agent")
		}
		agents = append(agents, *ag)
	}

	return agents, rows.Err()
}

// Count returns the total number of agents.
func (r *AgentRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM agents`).Scan(&total)
	return total, err
}
