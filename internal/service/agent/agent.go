// internal/service/agent/agent.go
package agent

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"insuremate-service/internal/domain/agent"
	"insuremate-service/internal/domain/policy"
	xerrors "insuremate-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// timeNow is swapped in tests that pin derived fields to a fixed day.
var timeNow = time.Now

type AgentService struct {
	agentRepo  agent.Repository
	policyRepo policy.Repository
	logger     *zap.Logger
}

func NewAgentService(agentRepo agent.Repository, policyRepo policy.Repository, logger *zap.Logger) *AgentService {
	return &AgentService{
		agentRepo:  agentRepo,
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Create validates and stores a new agent under its agency.
func (s *AgentService) Create(ctx context.Context, req *agent.CreateRequest) (*agent.Detail, error) {
	if req.AgencyID == 0 {
		return nil, xerrors.Invalid("agency is required")
	}
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return nil, xerrors.Invalid("first name is required")
	}
	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		return nil, xerrors.Invalid("last name is required")
	}

	ag := &agent.Agent{
		AgencyID:  req.AgencyID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     optional(req.Email),
		Phone:     optional(req.Phone),
	}

	if err := s.agentRepo.Create(ctx, ag); err != nil {
		s.logger.Error("failed to create agent", zap.Error(err))
		return nil, err
	}

	s.logger.Info("agent created",
		zap.Int64("agent_id", ag.ID),
		zap.Int64("agency_id", ag.AgencyID),
	)

	return s.Get(ctx, ag.ID)
}

// Get retrieves one agent with its agency name and policy count.
func (s *AgentService) Get(ctx context.Context, id int64) (*agent.Detail, error) {
	ag, err := s.agentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := ag.Detail()
	return &d, nil
}

// Update applies only the supplied fields to an agent.
func (s *AgentService) Update(ctx context.Context, id int64, req *agent.UpdateRequest) (*agent.Detail, error) {
	ag, err := s.agentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AgencyID != nil {
		if *req.AgencyID == 0 {
			return nil, xerrors.Invalid("agency is required")
		}
		ag.AgencyID = *req.AgencyID
	}
	if req.FirstName != nil {
		firstName := strings.TrimSpace(*req.FirstName)
		if firstName == "" {
			return nil, xerrors.Invalid("first name is required")
		}
		ag.FirstName = firstName
	}
	if req.LastName != nil {
		lastName := strings.TrimSpace(*req.LastName)
		if lastName == "" {
			return nil, xerrors.Invalid("last name is required")
		}
		ag.LastName = lastName
	}
	applyOptional(&ag.Email, req.Email)
	applyOptional(&ag.Phone, req.Phone)

	if err := s.agentRepo.Update(ctx, ag); err != nil {
		s.logger.Error("failed to update agent", zap.Int64("agent_id", id), zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes an agent together with their policies and those policies'
// claims.
func (s *AgentService) Delete(ctx context.Context, id int64) error {
	if err := s.agentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("agent deleted", zap.Int64("agent_id", id))
	return nil
}

// List retrieves a page of agents matching the filter.
func (s *AgentService) List(ctx context.Context, f agent.ListFilter) (*agent.ListResponse, error) {
	agents, pages, err := s.agentRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	details := make([]agent.Detail, 0, len(agents))
	for i := range agents {
		details = append(details, agents[i].Detail())
	}

	return &agent.ListResponse{Agents: details, Pages: pages}, nil
}

// Policies retrieves the policies written by one agent.
func (s *AgentService) Policies(ctx context.Context, agentID int64) ([]policy.Detail, error) {
	if _, err := s.agentRepo.FindByID(ctx, agentID); err != nil {
		return nil, err
	}

	policies, err := s.policyRepo.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	today := timeNow()
	details := make([]policy.Detail, 0, len(policies))
	for i := range policies {
		details = append(details, policies[i].Detail(today))
	}
	return details, nil
}

func optional(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}

func applyOptional(dst *sql.NullString, v *string) {
	if v != nil {
		*dst = optional(*v)
	}
}
