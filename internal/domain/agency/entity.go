// internal/domain/agency/entity.go
package agency

import "database/sql"

type Agency struct {
	ID      int64          `json:"id" db:"id"`
	Name    string         `json:"name" db:"name"`
	Address sql.NullString `json:"address,omitempty" db:"address"`
	City    sql.NullString `json:"city,omitempty" db:"city"`
	State   sql.NullString `json:"state,omitempty" db:"state"`
	ZipCode sql.NullString `json:"zip_code,omitempty" db:"zip_code"`
	Phone   sql.NullString `json:"phone,omitempty" db:"phone"`
	Website sql.NullString `json:"website,omitempty" db:"website"`

	// Populated by joined reads
	AgentCount int64 `json:"agent_count" db:"agent_count"`
}
