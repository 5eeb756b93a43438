// internal/domain/claim/entity.go
package claim

import (
	"database/sql"
	"time"

	"insuremate-service/internal/pkg/dateutil"
)

// Status classifies a claim's lifecycle stage. The open and closed sets are
// closed enumerations; a row value outside both is neither open nor closed.
type Status string

const (
	StatusOpen        Status = "Open"
	StatusInProgress  Status = "In Progress"
	StatusUnderReview Status = "Under Review"
	StatusSettled     Status = "Settled"
	StatusDenied      Status = "Denied"
	StatusClosed      Status = "Closed"
	StatusWithdrawn   Status = "Withdrawn"
)

// OpenStatuses lists the stages during which a claim is still being worked.
var OpenStatuses = []Status{StatusOpen, StatusInProgress, StatusUnderReview}

// ClosedStatuses lists the terminal stages.
var ClosedStatuses = []Status{StatusSettled, StatusDenied, StatusClosed, StatusWithdrawn}

// IsOpen reports whether s is one of the open stages.
func (s Status) IsOpen() bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusUnderReview
}

// IsClosed reports whether s is one of the terminal stages.
func (s Status) IsClosed() bool {
	return s == StatusSettled || s == StatusDenied || s == StatusClosed || s == StatusWithdrawn
}

type Claim struct {
	ID               int64           `json:"id" db:"id"`
	PolicyID         int64           `json:"policy_id" db:"policy_id"`
	ClaimNumber      string          `json:"claim_number" db:"claim_number"`
	ClaimDate        time.Time       `json:"claim_date" db:"claim_date"`
	IncidentDate     time.Time       `json:"incident_date" db:"incident_date"`
	Description      sql.NullString  `json:"description,omitempty" db:"description"`
	ClaimAmount      float64         `json:"claim_amount" db:"claim_amount"`
	Status           Status          `json:"status" db:"status"`
	ResolutionDate   sql.NullTime    `json:"resolution_date,omitempty" db:"resolution_date"`
	SettlementAmount sql.NullFloat64 `json:"settlement_amount,omitempty" db:"settlement_amount"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`

	// Populated by joined reads
	PolicyNumber sql.NullString `json:"policy_number,omitempty" db:"policy_number"`
	CustomerName sql.NullString `json:"customer_name,omitempty" db:"customer_name"`
}

// IsOpen reports whether the claim is still being worked.
func (c *Claim) IsOpen() bool {
	return c.Status.IsOpen()
}

// IsClosed reports whether the claim has reached a terminal stage.
func (c *Claim) IsClosed() bool {
	return c.Status.IsClosed()
}

// DaysSinceFiled returns the calendar days from claim_date to today.
func (c *Claim) DaysSinceFiled(today time.Time) int {
	return dateutil.DaysBetween(c.ClaimDate, today)
}
