// internal/domain/agent/dto.go
package agent

import (
	"database/sql"

	"insuremate-service/internal/pkg/pagination"
)

type CreateRequest struct {
	AgencyID  int64  `json:"agency_id"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Email     string `json:"email" binding:"omitempty,email,max=150"`
	Phone     string `json:"phone" binding:"max=20"`
}

type UpdateRequest struct {
	AgencyID  *int64  `json:"agency_id"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,max=150"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
}

type ListFilter struct {
	Search    string `form:"search"`
	AgencyID  int64  `form:"agency_id"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PerPage   int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type ListResponse struct {
	Agents []Detail         `json:"agents"`
	Pages  pagination.Pages `json:"pagination"`
}

// Detail is the transport projection of an agent row.
type Detail struct {
	AgentID     int64   `json:"agent_id"`
	AgencyID    int64   `json:"agency_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	FullName    string  `json:"full_name"`
	AgencyName  *string `json:"agency_name"`
	PolicyCount int64   `json:"policy_count"`
}

// Detail projects the row into its transport shape.
func (a *Agent) Detail() Detail {
	return Detail{
		AgentID:     a.ID,
		AgencyID:    a.AgencyID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       nullString(a.Email),
		Phone:       nullString(a.Phone),
		FullName:    a.FullName(),
		AgencyName:  nullString(a.AgencyName),
		PolicyCount: a.PolicyCount,
	}
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
