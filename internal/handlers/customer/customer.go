// internal/handlers/customer/customer_handler.go
package customer

import (
	"net/http"
	"strconv"

	"insuremate-service/internal/domain/customer"
	"insuremate-service/internal/pkg/response"
	service "insuremate-service/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	perPage         int
}

func NewCustomerHandler(customerService *service.CustomerService, perPage int) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		perPage:         perPage,
	}
}

// List retrieves a page of customers, optionally filtered by a search term.
func (h *CustomerHandler) List(c *gin.Context) {
	var filter customer.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, "invalid list filter", err)
		return
	}
	if filter.PerPage == 0 {
		filter.PerPage = h.perPage
	}

	result, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", result)
}

// Create stores a new customer.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customer.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.customerService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "customer created successfully", result)
}

// Get retrieves a customer by ID.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	result, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "customer not found", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// Update applies the supplied fields to a customer.
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	var req customer.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.customerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated successfully", result)
}

// Delete removes a customer together with its policies and claims.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer deleted successfully", nil)
}

// Policies retrieves the policies held by one customer.
func (h *CustomerHandler) Policies(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	result, err := h.customerService.Policies(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list customer policies", err)
		return
	}

	response.Success(c, http.StatusOK, "customer policies retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
