// internal/handlers/agency/agency_handler.go
package agency

import (
	"net/http"
	"strconv"

	"insuremate-service/internal/domain/agency"
	"insuremate-service/internal/pkg/response"
	service "insuremate-service/internal/service/agency"

	"github.com/gin-gonic/gin"
)

type AgencyHandler struct {
	agencyService *service.AgencyService
	perPage       int
}

func NewAgencyHandler(agencyService *service.AgencyService, perPage int) *AgencyHandler {
	return &AgencyHandler{
		agencyService: agencyService,
		perPage:       perPage,
	}
}

// List retrieves a page of agencies, optionally filtered by a search term.
func (h *AgencyHandler) List(c *gin.Context) {
	var filter agency.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, "invalid list filter", err)
		return
	}
	if filter.PerPage == 0 {
		filter.PerPage = h.perPage
	}

	result, err := h.agencyService.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, "failed to list agencies", err)
		return
	}

	response.Success(c, http.StatusOK, "agencies retrieved", result)
}

// Create stores a new agency.
func (h *AgencyHandler) Create(c *gin.Context) {
	var req agency.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.agencyService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create agency", err)
		return
	}

	response.Success(c, http.StatusCreated, "agency created successfully", result)
}

// Get retrieves an agency by ID.
func (h *AgencyHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid agency ID", err)
		return
	}

	result, err := h.agencyService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "agency not found", err)
		return
	}

	response.Success(c, http.StatusOK, "agency retrieved", result)
}

// Update applies the supplied fields to an agency.
func (h *AgencyHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid agency ID", err)
		return
	}

	var req agency.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.agencyService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update agency", err)
		return
	}

	response.Success(c, http.StatusOK, "agency updated successfully", result)
}

// Delete removes an agency and everything it owns.
func (h *AgencyHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid agency ID", err)
		return
	}

	if err := h.agencyService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete agency", err)
		return
	}

	response.Success(c, http.StatusOK, "agency deleted successfully", nil)
}

// Agents retrieves the agents of one agency.
func (h *AgencyHandler) Agents(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid agency ID", err)
		return
	}

	result, err := h.agencyService.Agents(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list agency agents", err)
		return
	}

	response.Success(c, http.StatusOK, "agency agents retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
