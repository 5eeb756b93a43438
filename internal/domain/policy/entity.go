// internal/domain/policy/entity.go
package policy

import (
	"database/sql"
	"time"

	"insuremate-service/internal/pkg/dateutil"
)

// Status classifies a policy. Row values outside the known set are preserved
// verbatim; only "Active" participates in derived rules.
type Status string

const StatusActive Status = "Active"

// Renewal urgency buckets derived from the days remaining until end_date.
const (
	RenewalExpired  = "Expired"
	RenewalCritical = "Critical"
	RenewalWarning  = "Warning"
	RenewalOK       = "OK"
)

type Policy struct {
	ID             int64        `json:"id" db:"id"`
	AgentID        int64        `json:"agent_id" db:"agent_id"`
	CustomerID     int64        `json:"customer_id" db:"customer_id"`
	PolicyNumber   string       `json:"policy_number" db:"policy_number"`
	PolicyType     string       `json:"policy_type" db:"policy_type"`
	CoverageAmount float64      `json:"coverage_amount" db:"coverage_amount"`
	Premium        float64      `json:"premium" db:"premium"`
	StartDate      time.Time    `json:"start_date" db:"start_date"`
	EndDate        sql.NullTime `json:"end_date,omitempty" db:"end_date"`
	Status         Status       `json:"policy_status" db:"policy_status"`

	// Populated by joined reads
	AgentName    sql.NullString `json:"agent_name,omitempty" db:"agent_name"`
	CustomerName sql.NullString `json:"customer_name,omitempty" db:"customer_name"`
	ClaimCount   int64          `json:"claim_count" db:"claim_count"`
}

// IsActive reports whether the policy is in force on the given day: status
// "Active", started, and not yet past its end date.
func (p *Policy) IsActive(today time.Time) bool {
	if p.Status != StatusActive {
		return false
	}
	today = dateutil.Midnight(today)
	if dateutil.Midnight(p.StartDate).After(today) {
		return false
	}
	if p.EndDate.Valid && dateutil.Midnight(p.EndDate.Time).Before(today) {
		return false
	}
	return true
}

// DaysUntilRenewal returns the calendar days from today to end_date, negative
// once the date has passed. The second return is false when the policy has no
// end date.
func (p *Policy) DaysUntilRenewal(today time.Time) (int, bool) {
	if !p.EndDate.Valid {
		return 0, false
	}
	return dateutil.DaysBetween(today, p.EndDate.Time), true
}

// RenewalStatus buckets the remaining days: negative is Expired, up to 7 is
// Critical, up to 30 is Warning, beyond that OK. The second return is false
// when the policy has no end date.
func (p *Policy) RenewalStatus(today time.Time) (string, bool) {
	days, ok := p.DaysUntilRenewal(today)
	if !ok {
		return "", false
	}
	switch {
	case days < 0:
		return RenewalExpired, true
	case days <= 7:
		return RenewalCritical, true
	case days <= 30:
		return RenewalWarning, true
	default:
		return RenewalOK, true
	}
}
