// internal/service/agency/agency.go
package agency

import (
	"context"
	"database/sql"
	"strings"

	"insuremate-service/internal/domain/agency"
	"insuremate-service/internal/domain/agent"
	xerrors "insuremate-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type AgencyService struct {
	agencyRepo agency.Repository
	agentRepo  agent.Repository
	logger     *zap.Logger
}

func NewAgencyService(agencyRepo agency.Repository, agentRepo agent.Repository, logger *zap.Logger) *AgencyService {
	return &AgencyService{
		agencyRepo: agencyRepo,
		agentRepo:  agentRepo,
		logger:     logger,
	}
}

// Create validates and stores a new agency.
func (s *AgencyService) Create(ctx context.Context, req *agency.CreateRequest) (*agency.Detail, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, xerrors.Invalid("agency name is required")
	}

	a := &agency.Agency{
		Name:    name,
		Address: optional(req.Address),
		City:    optional(req.City),
		State:   optional(req.State),
		ZipCode: optional(req.ZipCode),
		Phone:   optional(req.Phone),
		Website: optional(req.Website),
	}

	if err := s.agencyRepo.Create(ctx, a); err != nil {
		s.logger.Error("failed to create agency", zap.Error(err))
		return nil, err
	}

	s.logger.Info("agency created", zap.Int64("agency_id", a.ID), zap.String("name", a.Name))

	d := a.Detail()
	return &d, nil
}

// Get retrieves one agency.
func (s *AgencyService) Get(ctx context.Context, id int64) (*agency.Detail, error) {
	a, err := s.agencyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := a.Detail()
	return &d, nil
}

// Update applies only the supplied fields to an agency.
func (s *AgencyService) Update(ctx context.Context, id int64, req *agency.UpdateRequest) (*agency.Detail, error) {
	a, err := s.agencyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, xerrors.Invalid("agency name is required")
		}
		a.Name = name
	}
	applyOptional(&a.Address, req.Address)
	applyOptional(&a.City, req.City)
	applyOptional(&a.State, req.State)
	applyOptional(&a.ZipCode, req.ZipCode)
	applyOptional(&a.Phone, req.Phone)
	applyOptional(&a.Website, req.Website)

	if err := s.agencyRepo.Update(ctx, a); err != nil {
		s.logger.Error("failed to update agency", zap.Int64("agency_id", id), zap.Error(err))
		return nil, err
	}

	d := a.Detail()
	return &d, nil
}

// Delete removes an agency and its whole subtree of agents, policies and
// claims.
func (s *AgencyService) Delete(ctx context.Context, id int64) error {
	if err := s.agencyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("agency deleted", zap.Int64("agency_id", id))
	return nil
}

// List retrieves a page of agencies matching the filter.
func (s *AgencyService) List(ctx context.Context, f agency.ListFilter) (*agency.ListResponse, error) {
	agencies, pages, err := s.agencyRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	details := make([]agency.Detail, 0, len(agencies))
	for i := range agencies {
		details = append(details, agencies[i].Detail())
	}

	return &agency.ListResponse{Agencies: details, Pages: pages}, nil
}

// Agents retrieves the agents belonging to one agency.
func (s *AgencyService) Agents(ctx context.Context, agencyID int64) ([]agent.Detail, error) {
	if _, err := s.agencyRepo.FindByID(ctx, agencyID); err != nil {
		return nil, err
	}

	agents, err := s.agentRepo.ListByAgency(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	details := make([]agent.Detail, 0, len(agents))
	for i := range agents {
		details = append(details, agents[i].Detail())
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
