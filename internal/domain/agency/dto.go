// internal/domain/agency/dto.go
package agency

import (
	"database/sql"

	"insuremate-service/internal/pkg/pagination"
)

type CreateRequest struct {
	Name    string `json:"name" binding:"max=100"`
	Address string `json:"address" binding:"max=200"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"max=100"`
	ZipCode string `json:"zip_code" binding:"max=20"`
	Phone   string `json:"phone" binding:"max=20"`
	Website string `json:"website" binding:"max=200"`
}

type UpdateRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Address *string `json:"address" binding:"omitempty,max=200"`
	City    *string `json:"city" binding:"omitempty,max=100"`
	State   *string `json:"state" binding:"omitempty,max=100"`
	ZipCode *string `json:"zip_code" binding:"omitempty,max=20"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Website *string `json:"website" binding:"omitempty,max=200"`
}

type ListFilter struct {
	Search    string `form:"search"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PerPage   int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type ListResponse struct {
	Agencies []Detail         `json:"agencies"`
	Pages    pagination.Pages `json:"pagination"`
}

// Detail is the transport projection of an agency row.
type Detail struct {
	AgencyID   int64   `json:"agency_id"`
	Name       string  `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	ZipCode    *string `json:"zip_code"`
	Phone      *string `json:"phone"`
	Website    *string `json:"website"`
	AgentCount int64   `json:"agent_count"`
}

// Detail projects the row into its transport shape.
func (a *Agency) Detail() Detail {
	return Detail{
		AgencyID:   a.ID,
		Name:       a.Name,
		Address:    nullString(a.Address),
		City:       nullString(a.City),
		State:      nullString(a.State),
		ZipCode:    nullString(a.ZipCode),
		Phone:      nullString(a.Phone),
		Website:    nullString(a.Website),
		AgentCount: a.AgentCount,
	}
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
