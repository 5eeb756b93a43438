// internal/repository/memory/agent_store.go
package memory

import (
	"context"
	"sort"

	"insuremate-service/internal/domain/agent"
	xerrors "insuremate-service/internal/pkg/errors"
	"insuremate-service/internal/pkg/pagination"
)

type AgentStore struct {
	s *Store
}

var _ agent.Repository = (*AgentStore)(nil)

func (r *AgentStore) Create(ctx context.Context, ag *agent.Agent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.agencies[ag.AgencyID]; !ok {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "referenced record does not exist")
	}

	r.s.nextAgentID++
	ag.ID = r.s.nextAgentID
	r.s.agents[ag.ID] = *ag
	return nil
}

func (r *AgentStore) FindByID(ctx context.Context, id int64) (*agent.Agent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ag, ok := r.s.agents[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	view := r.s.agentViewLocked(ag)
	return &view, nil
}

func (r *AgentStore) Update(ctx context.Context, ag *agent.Agent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.agents[ag.ID]; !ok {
		return xerrors.ErrNotFound
	}
	if _, ok := r.s.agencies[ag.AgencyID]; !ok {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "referenced record does not exist")
	}
	r.s.agents[ag.ID] = *ag
	return nil
}

func (r *AgentStore) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.agents[id]; !ok {
		return xerrors.ErrNotFound
	}
	r.s.deleteAgentLocked(id)
	return nil
}

func (r *AgentStore) List(ctx context.Context, f agent.ListFilter) ([]agent.Agent, pagination.Pages, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []agent.Agent{}
	for _, ag := range r.s.agents {
		if f.AgencyID != 0 && ag.AgencyID != f.AgencyID {
			continue
		}
		if f.Search != "" &&
			!containsFold(ag.FirstName, f.Search) &&
			!containsFold(ag.LastName, f.Search) &&
			!containsFold(ag.Email.String, f.Search) &&
			!containsFold(ag.Phone.String, f.Search) {
			continue
		}
		matched = append(matched, r.s.agentViewLocked(ag))
	}

	sortAgents(matched)

	pages := pagination.Resolve(pagination.Params{Page: f.Page, PerPage: f.PerPage}, int64(len(matched)))
	lo, hi := pages.Slice(len(matched))
	return matched[lo:hi], pages, nil
}

func (r *AgentStore) ListByAgency(ctx context.Context, agencyID int64) ([]agent.Agent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []agent.Agent{}
	for _, ag := range r.s.agents {
		if ag.AgencyID == agencyID {
			matched = append(matched, r.s.agentViewLocked(ag))
		}
	}
	sortAgents(matched)
	return matched, nil
}

func (r *AgentStore) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.agents)), nil
}

func sortAgents(agents []agent.Agent) {
	sort.Slice(agents, func(i, j int) bool {
		if agents[i].LastName != agents[j].LastName {
			return agents[i].LastName < agents[j].LastName
		}
		if agents[i].FirstName != agents[j].FirstName {
			return agents[i].FirstName < agents[j].FirstName
		}
		return agents[i].ID < agents[j].ID
	})
}
