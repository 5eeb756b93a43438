// internal/handlers/claim/claim_handler.go
package claim

import (
	"net/http"
	"strconv"

	"insuremate-service/internal/domain/claim"
	"insuremate-service/internal/pkg/response"
	service "insuremate-service/internal/service/claim"

	"github.com/gin-gonic/gin"
)

type ClaimHandler struct {
	claimService *service.ClaimService
	perPage      int
}

func NewClaimHandler(claimService *service.ClaimService, perPage int) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
		perPage:      perPage,
	}
}

// List retrieves a page of claims. Supports search, an exact status
// filter, and policy scoping.
func (h *ClaimHandler) List(c *gin.Context) {
	var filter claim.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, "invalid list filter", err)
		return
	}
	if filter.PerPage == 0 {
		filter.PerPage = h.perPage
	}

	result, err := h.claimService.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, "failed to list claims", err)
		return
	}

	response.Success(c, http.StatusOK, "claims retrieved", result)
}

// Create files a new claim against an existing policy. The claim number
// is generated server side.
func (h *ClaimHandler) Create(c *gin.Context) {
	var req claim.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.claimService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create claim", err)
		return
	}

	response.Success(c, http.StatusCreated, "claim created successfully", result)
}

// Get retrieves a claim by ID.
func (h *ClaimHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid claim ID", err)
		return
	}

	result, err := h.claimService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "claim not found", err)
		return
	}

	response.Success(c, http.StatusOK, "claim retrieved", result)
}

// Update applies the supplied fields to a claim.
func (h *ClaimHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid claim ID", err)
		return
	}

	var req claim.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.claimService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update claim", err)
		return
	}

	response.Success(c, http.StatusOK, "claim updated successfully", result)
}

// Delete removes a claim.
func (h *ClaimHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid claim ID", err)
		return
	}

	if err := h.claimService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete claim", err)
		return
	}

	response.Success(c, http.StatusOK, "claim deleted successfully", nil)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
