// internal/domain/claim/dto.go
package claim

import (
	"database/sql"
	"time"

	"insuremate-service/internal/pkg/dateutil"
	"insuremate-service/internal/pkg/pagination"
)

type CreateRequest struct {
	PolicyID         int64    `json:"policy_id"`
	IncidentDate     string   `json:"incident_date"`
	ClaimDate        string   `json:"claim_date"`
	Description      string   `json:"description"`
	ClaimAmount      float64  `json:"claim_amount" binding:"omitempty,min=0"`
	Status           string   `json:"status" binding:"omitempty,max=50"`
	SettlementAmount *float64 `json:"settlement_amount" binding:"omitempty,min=0"`
}

// UpdateRequest only touches fields the caller supplies. Moving the status to
// a closed value stamps resolution_date in the same operation; "Settled"
// additionally requires a settlement amount.
type UpdateRequest struct {
	Description      *string  `json:"description"`
	ClaimAmount      *float64 `json:"claim_amount" binding:"omitempty,min=0"`
	Status           *string  `json:"status" binding:"omitempty,max=50"`
	IncidentDate     *string  `json:"incident_date"`
	SettlementAmount *float64 `json:"settlement_amount" binding:"omitempty,min=0"`
}

type ListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	PolicyID  int64  `form:"policy_id"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PerPage   int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type ListResponse struct {
	Claims   []Detail         `json:"claims"`
	Statuses []string         `json:"statuses"`
	Pages    pagination.Pages `json:"pagination"`
}

// Detail is the transport projection of a claim row.
type Detail struct {
	ClaimID          int64   `json:"claim_id"`
	PolicyID         int64   `json:"policy_id"`
	ClaimNumber      string  `json:"claim_number"`
	ClaimDate        string  `json:"claim_date"`
	IncidentDate     string  `json:"incident_date"`
	Description      *string `json:"description"`
	ClaimAmount      float64 `json:"claim_amount"`
	Status           string  `json:"status"`
	ResolutionDate   *string `json:"resolution_date"`
	SettlementAmount float64 `json:"settlement_amount"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
	DaysSinceFiled   int     `json:"days_since_filed"`
	IsOpen           bool    `json:"is_open"`
	IsClosed         bool    `json:"is_closed"`
	PolicyNumber     *string `json:"policy_number"`
	CustomerName     *string `json:"customer_name"`
}

// Detail projects the row, deriving the open/closed classification and filing
// age against today. Absent settlement amounts project as 0.
func (c *Claim) Detail(today time.Time) Detail {
	d := Detail{
		ClaimID:        c.ID,
		PolicyID:       c.PolicyID,
		ClaimNumber:    c.ClaimNumber,
		ClaimDate:      dateutil.FormatDate(c.ClaimDate),
		IncidentDate:   dateutil.FormatDate(c.IncidentDate),
		Description:    nullString(c.Description),
		ClaimAmount:    c.ClaimAmount,
		Status:         string(c.Status),
		ResolutionDate: dateutil.NullDateString(c.ResolutionDate),
		CreatedAt:      dateutil.FormatDateTime(c.CreatedAt),
		UpdatedAt:      dateutil.FormatDateTime(c.UpdatedAt),
		DaysSinceFiled: c.DaysSinceFiled(today),
		IsOpen:         c.IsOpen(),
		IsClosed:       c.IsClosed(),
		PolicyNumber:   nullString(c.PolicyNumber),
		CustomerName:   nullString(c.CustomerName),
	}
	if c.SettlementAmount.Valid {
		d.SettlementAmount = c.SettlementAmount.Float64
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
