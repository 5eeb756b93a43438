// internal/domain/customer/dto.go
package customer

import (
	"database/sql"
	"time"

	"insuremate-service/internal/pkg/dateutil"
	"insuremate-service/internal/pkg/pagination"
)

type CreateRequest struct {
	FirstName   string `json:"first_name" binding:"max=100"`
	LastName    string `json:"last_name" binding:"max=100"`
	DateOfBirth string `json:"date_of_birth"`
	Email       string `json:"email" binding:"omitempty,email,max=150"`
	Phone       string `json:"phone" binding:"max=20"`
	Address     string `json:"address" binding:"max=200"`
	City        string `json:"city" binding:"max=100"`
	State       string `json:"state" binding:"max=100"`
	ZipCode     string `json:"zip_code" binding:"max=20"`
}

type UpdateRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,max=100"`
	DateOfBirth *string `json:"date_of_birth"`
	Email       *string `json:"email" binding:"omitempty,max=150"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Address     *string `json:"address" binding:"omitempty,max=200"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	State       *string `json:"state" binding:"omitempty,max=100"`
	ZipCode     *string `json:"zip_code" binding:"omitempty,max=20"`
}

type ListFilter struct {
	Search    string `form:"search"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PerPage   int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type ListResponse struct {
	Customers []Detail         `json:"customers"`
	Pages     pagination.Pages `json:"pagination"`
}

// Detail is the transport projection of a customer row.
type Detail struct {
	CustomerID  int64   `json:"customer_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zip_code"`
	FullName    string  `json:"full_name"`
	FullAddress string  `json:"full_address"`
	Age         *int    `json:"age"`
	PolicyCount int64   `json:"policy_count"`
}

// Detail projects the row, deriving age against today.
func (c *Customer) Detail(today time.Time) Detail {
	d := Detail{
		CustomerID:  c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DateOfBirth: dateutil.NullDateString(c.DateOfBirth),
		Email:       nullString(c.Email),
		Phone:       nullString(c.Phone),
		Address:     nullString(c.Address),
		City:        nullString(c.City),
		State:       nullString(c.State),
		ZipCode:     nullString(c.ZipCode),
		FullName:    c.FullName(),
		FullAddress: c.FullAddress(),
		PolicyCount: c.PolicyCount,
	}
	if age, ok := c.Age(today); ok {
		d.Age = &age
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
