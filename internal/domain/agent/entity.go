// internal/domain/agent/entity.go
package agent

import "database/sql"

type Agent struct {
	ID        int64          `json:"id" db:"id"`
	AgencyID  int64          `json:"agency_id" db:"agency_id"`
	FirstName string         `json:"first_name" db:"first_name"`
	LastName  string         `json:"last_name" db:"last_name"`
	Email     sql.NullString `json:"email,omitempty" db:"email"`
	Phone     sql.NullString `json:"phone,omitempty" db:"phone"`

	// Populated by joined reads
	AgencyName  sql.NullString `json:"agency_name,omitempty" db:"agency_name"`
	PolicyCount int64          `json:"policy_count" db:"policy_count"`
}

// FullName renders "first last" for display and search joins.
func (a *Agent) FullName() string {
	return a.FirstName + " " + a.LastName
}
