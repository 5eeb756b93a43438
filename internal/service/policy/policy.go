// internal/service/policy/policy.go
package policy

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"insuremate-service/internal/domain/claim"
	"insuremate-service/internal/domain/policy"
	"insuremate-service/internal/pkg/dateutil"
	xerrors "insuremate-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// timeNow is swapped in tests that pin derived fields to a fixed day.
var timeNow = time.Now

type PolicyService struct {
	policyRepo policy.Repository
	claimRepo  claim.Repository
	logger     *zap.Logger
}

func NewPolicyService(policyRepo policy.Repository, claimRepo claim.Repository, logger *zap.Logger) *PolicyService {
	return &PolicyService{
		policyRepo: policyRepo,
		claimRepo:  claimRepo,
		logger:     logger,
	}
}

// Create validates and stores a new policy. The caller supplies the policy
// number; a duplicate is rejected and the existing policy is left untouched.
func (s *PolicyService) Create(ctx context.Context, req *policy.CreateRequest) (*policy.Detail, error) {
	if req.AgentID == 0 {
		return nil, xerrors.Invalid("agent is required")
	}
	if req.CustomerID == 0 {
		return nil, xerrors.Invalid("customer is required")
	}
	policyNumber := strings.TrimSpace(req.PolicyNumber)
	if policyNumber == "" {
		return nil, xerrors.Invalid("policy number is required")
	}
	policyType := strings.TrimSpace(req.PolicyType)
	if policyType == "" {
		return nil, xerrors.Invalid("policy type is required")
	}
	if req.StartDate == "" {
		return nil, xerrors.Invalid("start date is required")
	}
	startDate, err := dateutil.ParseDate(req.StartDate)
	if err != nil {
		return nil, xerrors.Invalid("start date must be YYYY-MM-DD")
	}
	if req.CoverageAmount < 0 {
		return nil, xerrors.Invalid("coverage amount cannot be negative")
	}
	if req.Premium < 0 {
		return nil, xerrors.Invalid("premium cannot be negative")
	}

	p := &policy.Policy{
		AgentID:        req.AgentID,
		CustomerID:     req.CustomerID,
		PolicyNumber:   policyNumber,
		PolicyType:     policyType,
		CoverageAmount: req.CoverageAmount,
		Premium:        req.Premium,
		StartDate:      startDate,
		Status:         policy.StatusActive,
	}

	if req.EndDate != "" {
		endDate, err := dateutil.ParseDate(req.EndDate)
		if err != nil {
			return nil, xerrors.Invalid("end date must be YYYY-MM-DD")
		}
		p.EndDate = sql.NullTime{Time: endDate, Valid: true}
	}
	if status := strings.TrimSpace(req.PolicyStatus); status != "" {
		p.Status = policy.Status(status)
	}

	if err := s.policyRepo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create policy", zap.String("policy_number", policyNumber), zap.Error(err))
		return nil, err
	}

	s.logger.Info("policy created",
		zap.Int64("policy_id", p.ID),
		zap.String("policy_number", p.PolicyNumber),
	)

	return s.Get(ctx, p.ID)
}

// Get retrieves one policy with its joined names and claim count.
func (s *PolicyService) Get(ctx context.Context, id int64) (*policy.Detail, error) {
	p, err := s.policyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := p.Detail(timeNow())
	return &d, nil
}

// Update applies only the supplied fields to a policy. An end_date supplied
// as an empty string clears the stored end date; an absent end_date leaves it
// unchanged. No other field has that clearing rule.
func (s *PolicyService) Update(ctx context.Context, id int64, req *policy.UpdateRequest) (*policy.Detail, error) {
	p, err := s.policyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AgentID != nil {
		if *req.AgentID == 0 {
			return nil, xerrors.Invalid("agent is required")
		}
		p.AgentID = *req.AgentID
	}
	if req.CustomerID != nil {
		if *req.CustomerID == 0 {
			return nil, xerrors.Invalid("customer is required")
		}
		p.CustomerID = *req.CustomerID
	}
	if req.PolicyNumber != nil {
		policyNumber := strings.TrimSpace(*req.PolicyNumber)
		if policyNumber == "" {
			return nil, xerrors.Invalid("policy number is required")
		}
		p.PolicyNumber = policyNumber
	}
	if req.PolicyType != nil {
		policyType := strings.TrimSpace(*req.PolicyType)
		if policyType == "" {
			return nil, xerrors.Invalid("policy type is required")
		}
		p.PolicyType = policyType
	}
	if req.CoverageAmount != nil {
		if *req.CoverageAmount < 0 {
			return nil, xerrors.Invalid("coverage amount cannot be negative")
		}
		p.CoverageAmount = *req.CoverageAmount
	}
	if req.Premium != nil {
		if *req.Premium < 0 {
			return nil, xerrors.Invalid("premium cannot be negative")
		}
		p.Premium = *req.Premium
	}
	if req.StartDate != nil {
		if *req.StartDate == "" {
			return nil, xerrors.Invalid("start date is required")
		}
		startDate, err := dateutil.ParseDate(*req.StartDate)
		if err != nil {
			return nil, xerrors.Invalid("start date must be YYYY-MM-DD")
		}
		p.StartDate = startDate
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			p.EndDate = sql.NullTime{}
		} else {
			endDate, err := dateutil.ParseDate(*req.EndDate)
			if err != nil {
				return nil, xerrors.Invalid("end date must be YYYY-MM-DD")
			}
			p.EndDate = sql.NullTime{Time: endDate, Valid: true}
		}
	}
	if req.PolicyStatus != nil {
		status := strings.TrimSpace(*req.PolicyStatus)
		if status == "" {
			return nil, xerrors.Invalid("policy status is required")
		}
		p.Status = policy.Status(status)
	}

	if err := s.policyRepo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update policy", zap.Int64("policy_id", id), zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes a policy together with its claims.
func (s *PolicyService) Delete(ctx context.Context, id int64) error {
	if err := s.policyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("policy deleted", zap.Int64("policy_id", id))
	return nil
}

// List retrieves a page of policies matching the filter, plus the status
// values in use for the filter dropdown.
func (s *PolicyService) List(ctx context.Context, f policy.ListFilter) (*policy.ListResponse, error) {
	policies, pages, err := s.policyRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	statuses, err := s.policyRepo.DistinctStatuses(ctx)
	if err != nil {
		return nil, err
	}

	today := timeNow()
	details := make([]policy.Detail, 0, len(policies))
	for i := range policies {
		details = append(details, policies[i].Detail(today))
	}

	return &policy.ListResponse{Policies: details, Statuses: statuses, Pages: pages}, nil
}

// Claims retrieves the claims filed against one policy.
func (s *PolicyService) Claims(ctx context.Context, policyID int64) ([]claim.Detail, error) {
	if _, err := s.policyRepo.FindByID(ctx, policyID); err != nil {
		return nil, err
	}

	claims, err := s.claimRepo.ListByPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	today := timeNow()
	details := make([]claim.Detail, 0, len(claims))
	for i := range claims {
		details = append(details, claims[i].Detail(today))
	}
	return details, nil
}
