// internal/domain/customer/entity.go
package customer

import (
	"database/sql"
	"strings"
	"time"

	"insuremate-service/internal/pkg/dateutil"
)

type Customer struct {
	ID          int64          `json:"id" db:"id"`
	FirstName   string         `json:"first_name" db:"first_name"`
	LastName    string         `json:"last_name" db:"last_name"`
	DateOfBirth sql.NullTime   `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Email       sql.NullString `json:"email,omitempty" db:"email"`
	Phone       sql.NullString `json:"phone,omitempty" db:"phone"`
	Address     sql.NullString `json:"address,omitempty" db:"address"`
	City        sql.NullString `json:"city,omitempty" db:"city"`
	State       sql.NullString `json:"state,omitempty" db:"state"`
	ZipCode     sql.NullString `json:"zip_code,omitempty" db:"zip_code"`

	// Populated by joined reads
	PolicyCount int64 `json:"policy_count" db:"policy_count"`
}

// FullName renders "first last" for display and search joins.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// FullAddress joins the non-empty address components with commas.
func (c *Customer) FullAddress() string {
	var parts []string
	for _, ns := range []sql.NullString{c.Address, c.City, c.State, c.ZipCode} {
		if ns.Valid && ns.String != "" {
			parts = append(parts, ns.String)
		}
	}
	return strings.Join(parts, ", ")
}

// Age returns whole years since date_of_birth as of today, counting the
// current year only once the birthday has passed. The second return is false
// when no date of birth is recorded.
func (c *Customer) Age(today time.Time) (int, bool) {
	if !c.DateOfBirth.Valid {
		return 0, false
	}
	return dateutil.YearsBetween(c.DateOfBirth.Time, today), true
}
