// internal/service/claim/claim.go
package claim

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"insuremate-service/internal/domain/claim"
	"insuremate-service/internal/pkg/dateutil"
	xerrors "insuremate-service/internal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// timeNow is swapped in tests that pin derived fields to a fixed day.
var timeNow = time.Now

// claimNumberAttempts bounds the regenerate-and-retry loop when a generated
// number collides with a concurrently created claim.
const claimNumberAttempts = 5

type ClaimService struct {
	claimRepo claim.Repository
	logger    *zap.Logger
}

func NewClaimService(claimRepo claim.Repository, logger *zap.Logger) *ClaimService {
	return &ClaimService{
		claimRepo: claimRepo,
		logger:    logger,
	}
}

// NewClaimNumber returns an opaque CLM-XXXXXXXX identifier. Uniqueness is
// enforced by the storage constraint; Create retries on collision.
func NewClaimNumber() string {
	u := uuid.New()
	return "CLM-" + strings.ToUpper(hex.EncodeToString(u[:4]))
}

// Create validates and stores a new claim with a generated claim number.
// claim_date defaults to today; a claim filed directly in a closed status is
// subject to the same transition rules as an update.
func (s *ClaimService) Create(ctx context.Context, req *claim.CreateRequest) (*claim.Detail, error) {
	if req.PolicyID == 0 {
		return nil, xerrors.Invalid("policy is required")
	}
	if req.IncidentDate == "" {
		return nil, xerrors.Invalid("incident date is required")
	}
	incidentDate, err := dateutil.ParseDate(req.IncidentDate)
	if err != nil {
		return nil, xerrors.Invalid("incident date must be YYYY-MM-DD")
	}
	if req.ClaimAmount < 0 {
		return nil, xerrors.Invalid("claim amount cannot be negative")
	}

	today := dateutil.Midnight(timeNow())

	c := &claim.Claim{
		PolicyID:     req.PolicyID,
		ClaimDate:    today,
		IncidentDate: incidentDate,
		Description:  optional(req.Description),
		ClaimAmount:  req.ClaimAmount,
		Status:       claim.StatusOpen,
	}

	if req.ClaimDate != "" {
		claimDate, err := dateutil.ParseDate(req.ClaimDate)
		if err != nil {
			return nil, xerrors.Invalid("claim date must be YYYY-MM-DD")
		}
		c.ClaimDate = claimDate
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		c.Status = claim.Status(status)
	}
	if req.SettlementAmount != nil {
		if *req.SettlementAmount < 0 {
			return nil, xerrors.Invalid("settlement amount cannot be negative")
		}
		c.SettlementAmount = sql.NullFloat64{Float64: *req.SettlementAmount, Valid: true}
	}

	if err := s.applyStatusRules(c, today); err != nil {
		return nil, err
	}

	// Regenerate on a number collision; any other failure surfaces as-is.
	for attempt := 0; ; attempt++ {
		c.ClaimNumber = NewClaimNumber()
		err := s.claimRepo.Create(ctx, c)
		if err == nil {
			break
		}
		if xerrors.Is(err, xerrors.ErrDuplicateEntry) && attempt < claimNumberAttempts-1 {
			continue
		}
		s.logger.Error("failed to create claim", zap.Error(err))
		return nil, err
	}

	s.logger.Info("claim created",
		zap.Int64("claim_id", c.ID),
		zap.String("claim_number", c.ClaimNumber),
	)

	return s.Get(ctx, c.ID)
}

// Get retrieves one claim with its joined policy number and customer name.
func (s *ClaimService) Get(ctx context.Context, id int64) (*claim.Detail, error) {
	c, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := c.Detail(timeNow())
	return &d, nil
}

// Update applies only the supplied fields to a claim. Setting the status to a
// closed value stamps resolution_date as part of the same operation, and
// "Settled" requires a settlement amount.
func (s *ClaimService) Update(ctx context.Context, id int64, req *claim.UpdateRequest) (*claim.Detail, error) {
	c, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		c.Description = optional(*req.Description)
	}
	if req.ClaimAmount != nil {
		if *req.ClaimAmount < 0 {
			return nil, xerrors.Invalid("claim amount cannot be negative")
		}
		c.ClaimAmount = *req.ClaimAmount
	}
	if req.IncidentDate != nil {
		if *req.IncidentDate == "" {
			return nil, xerrors.Invalid("incident date is required")
		}
		incidentDate, err := dateutil.ParseDate(*req.IncidentDate)
		if err != nil {
			return nil, xerrors.Invalid("incident date must be YYYY-MM-DD")
		}
		c.IncidentDate = incidentDate
	}
	if req.SettlementAmount != nil {
		if *req.SettlementAmount < 0 {
			return nil, xerrors.Invalid("settlement amount cannot be negative")
		}
		c.SettlementAmount = sql.NullFloat64{Float64: *req.SettlementAmount, Valid: true}
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status == "" {
			return nil, xerrors.Invalid("status is required")
		}
		c.Status = claim.Status(status)
	}

	if err := s.applyStatusRules(c, dateutil.Midnight(timeNow())); err != nil {
		return nil, err
	}

	if err := s.claimRepo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update claim", zap.Int64("claim_id", id), zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, id)
}

// applyStatusRules enforces the closed-status side effects: resolution_date
// is stamped with today when the claim reaches a closed status (unless this
// same operation already set one), and "Settled" must carry a settlement
// amount.
func (s *ClaimService) applyStatusRules(c *claim.Claim, today time.Time) error {
	if !c.Status.IsClosed() {
		return nil
	}
	if !c.ResolutionDate.Valid {
		c.ResolutionDate = sql.NullTime{Time: today, Valid: true}
	}
	if c.Status == claim.StatusSettled && !c.SettlementAmount.Valid {
		return xerrors.Invalid("settlement amount is required to settle a claim")
	}
	return nil
}

// Delete removes a claim.
func (s *ClaimService) Delete(ctx context.Context, id int64) error {
	if err := s.claimRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("claim deleted", zap.Int64("claim_id", id))
	return nil
}

// List retrieves a page of claims matching the filter, plus the status values
// in use for the filter dropdown.
func (s *ClaimService) List(ctx context.Context, f claim.ListFilter) (*claim.ListResponse, error) {
	claims, pages, err := s.claimRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	statuses, err := s.claimRepo.DistinctStatuses(ctx)
	if err != nil {
		return nil, err
	}

	today := timeNow()
	details := make([]claim.Detail, 0, len(claims))
	for i := range claims {
		details = append(details, claims[i].Detail(today))
	}

	return &claim.ListResponse{Claims: details, Statuses: statuses, Pages: pages}, nil
}

func optional(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}
