// internal/domain/policy/dto.go
package policy

import (
	"database/sql"
	"time"

	"insuremate-service/internal/pkg/dateutil"
	"insuremate-service/internal/pkg/pagination"
)

type CreateRequest struct {
	AgentID        int64   `json:"agent_id"`
	CustomerID     int64   `json:"customer_id"`
	PolicyNumber   string  `json:"policy_number" binding:"max=50"`
	PolicyType     string  `json:"policy_type" binding:"max=100"`
	CoverageAmount float64 `json:"coverage_amount" binding:"omitempty,min=0"`
	Premium        float64 `json:"premium" binding:"omitempty,min=0"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	PolicyStatus   string  `json:"policy_status" binding:"max=50"`
}

// UpdateRequest only touches fields the caller supplies. EndDate keeps the
// form-input rule: an explicit empty string clears the stored end date, while
// an absent field leaves it unchanged.
type UpdateRequest struct {
	AgentID        *int64   `json:"agent_id"`
	CustomerID     *int64   `json:"customer_id"`
	PolicyNumber   *string  `json:"policy_number" binding:"omitempty,max=50"`
	PolicyType     *string  `json:"policy_type" binding:"omitempty,max=100"`
	CoverageAmount *float64 `json:"coverage_amount" binding:"omitempty,min=0"`
	Premium        *float64 `json:"premium" binding:"omitempty,min=0"`
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	PolicyStatus   *string  `json:"policy_status" binding:"omitempty,max=50"`
}

type ListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	AgentID    int64  `form:"agent_id"`
	CustomerID int64  `form:"customer_id"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PerPage    int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type ListResponse struct {
	Policies []Detail         `json:"policies"`
	Statuses []string         `json:"statuses"`
	Pages    pagination.Pages `json:"pagination"`
}

// Detail is the transport projection of a policy row.
type Detail struct {
	PolicyID         int64    `json:"policy_id"`
	AgentID          int64    `json:"agent_id"`
	CustomerID       int64    `json:"customer_id"`
	PolicyNumber     string   `json:"policy_number"`
	PolicyType       string   `json:"policy_type"`
	CoverageAmount   float64  `json:"coverage_amount"`
	Premium          float64  `json:"premium"`
	StartDate        string   `json:"start_date"`
	EndDate          *string  `json:"end_date"`
	PolicyStatus     string   `json:"policy_status"`
	IsActive         bool     `json:"is_active"`
	DaysUntilRenewal *int     `json:"days_until_renewal"`
	RenewalStatus    *string  `json:"renewal_status"`
	AgentName        *string  `json:"agent_name"`
	CustomerName     *string  `json:"customer_name"`
	ClaimCount       int64    `json:"claim_count"`
}

// Detail projects the row, deriving activity and renewal urgency against
// today.
func (p *Policy) Detail(today time.Time) Detail {
	d := Detail{
		PolicyID:       p.ID,
		AgentID:        p.AgentID,
		CustomerID:     p.CustomerID,
		PolicyNumber:   p.PolicyNumber,
		PolicyType:     p.PolicyType,
		CoverageAmount: p.CoverageAmount,
		Premium:        p.Premium,
		StartDate:      dateutil.FormatDate(p.StartDate),
		EndDate:        dateutil.NullDateString(p.EndDate),
		PolicyStatus:   string(p.Status),
		IsActive:       p.IsActive(today),
		AgentName:      nullString(p.AgentName),
		CustomerName:   nullString(p.CustomerName),
		ClaimCount:     p.ClaimCount,
	}
	if days, ok := p.DaysUntilRenewal(today); ok {
		d.DaysUntilRenewal = &days
	}
	if status, ok := p.RenewalStatus(today); ok {
		d.RenewalStatus = &status
	}
	return d
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
