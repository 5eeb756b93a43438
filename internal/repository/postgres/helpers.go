// internal/repository/postgres/helpers.go
package postgres

import (
	"strings"

	"github.com/lib/pq"
)

// sortClause resolves a caller-supplied sort column against a whitelist and
// quotes the identifier. Falls back to def for unknown columns.
func sortClause(alias, sortBy, sortOrder, def string, allowed map[string]bool) string {
	if sortBy == "" || !allowed[sortBy] {
		return def
	}
	col := pq.QuoteIdentifier(sortBy)
	if alias != "" {
		col = alias + "." + col
	}
	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}
	return col + " " + dir
}
