// internal/handlers/policy/policy_handler.go
package policy

import (
	"net/http"
	"strconv"

	"insuremate-service/internal/domain/policy"
	"insuremate-service/internal/pkg/response"
	service "insuremate-service/internal/service/policy"

	"github.com/gin-gonic/gin"
)

type PolicyHandler struct {
	policyService *service.PolicyService
	perPage       int
}

func NewPolicyHandler(policyService *service.PolicyService, perPage int) *PolicyHandler {
	return &PolicyHandler{
		policyService: policyService,
		perPage:       perPage,
	}
}

// List retrieves a page of policies. Supports search, an exact status
// filter, and agent or customer scoping.
func (h *PolicyHandler) List(c *gin.Context) {
	var filter policy.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, "invalid list filter", err)
		return
	}
	if filter.PerPage == 0 {
		filter.PerPage = h.perPage
	}

	result, err := h.policyService.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, "failed to list policies", err)
		return
	}

	response.Success(c, http.StatusOK, "policies retrieved", result)
}

// Create stores a new policy linking an agent and a customer.
func (h *PolicyHandler) Create(c *gin.Context) {
	var req policy.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.policyService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create policy", err)
		return
	}

	response.Success(c, http.StatusCreated, "policy created successfully", result)
}

// Get retrieves a policy by ID.
func (h *PolicyHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid policy ID", err)
		return
	}

	result, err := h.policyService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "policy not found", err)
		return
	}

	response.Success(c, http.StatusOK, "policy retrieved", result)
}

// Update applies the supplied fields to a policy.
func (h *PolicyHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid policy ID", err)
		return
	}

	var req policy.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.policyService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update policy", err)
		return
	}

	response.Success(c, http.StatusOK, "policy updated successfully", result)
}

// Delete removes a policy together with its claims.
func (h *PolicyHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid policy ID", err)
		return
	}

	if err := h.policyService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete policy", err)
		return
	}

	response.Success(c, http.StatusOK, "policy deleted successfully", nil)
}

// Claims retrieves the claims filed against one policy.
func (h *PolicyHandler) Claims(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid policy ID", err)
		return
	}

	result, err := h.policyService.Claims(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list policy claims", err)
		return
	}

	response.Success(c, http.StatusOK, "policy claims retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
