// internal/handlers/agent/agent_handler.go
package agent

import (
	"net/http"
	"strconv"

	"insuremate-service/internal/domain/agent"
	"insuremate-service/internal/pkg/response"
	service "insuremate-service/internal/service/agent"

	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	agentService *service.AgentService
	perPage      int
}

func NewAgentHandler(agentService *service.AgentService, perPage int) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		perPage:      perPage,
	}
}

// List retrieves a page of agents, optionally filtered by search term or agency.
func (h *AgentHandler) List(c *gin.Context) {
	var filter agent.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, "invalid list filter", err)
		return
	}
	if filter.PerPage == 0 {
		filter.PerPage = h.perPage
	}

	result, err := h.agentService.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, "failed to list agents", err)
		return
	}

	response.Success(c, http.StatusOK, "agents retrieved", result)
}

// Create stores a new agent under an existing agency.
func (h *AgentHandler) Create(c *gin.Context) {
	var req agent.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.agentService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create agent", err)
		return
	}

	response.Success(c, http.StatusCreated, "agent created successfully", result)
}

// Get retrieves an agent by ID.
func (h *AgentHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid agent ID", err)
		return
	}

	result, err := h.agentService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "agent not found", err)
		return
	}

	response.Success(c, http.StatusOK, "agent retrieved", result)
}

// Update applies the supplied fields to an agent.
func (h *AgentHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid agent ID", err)
		return
	}

	var req agent.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.agentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update agent", err)
		return
	}

	response.Success(c, http.StatusOK, "agent updated successfully", result)
}

// Delete removes an agent together with its policies and claims.
func (h *AgentHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid agent ID", err)
		return
	}

	if err := h.agentService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete agent", err)
		return
	}

	response.Success(c, http.StatusOK, "agent deleted successfully", nil)
}

// Policies retrieves the policies managed by one agent.
func (h *AgentHandler) Policies(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ValidationError(c, "invalid agent ID", err)
		return
	}

	result, err := h.agentService.Policies(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list agent policies", err)
		return
	}

	response.Success(c, http.StatusOK, "agent policies retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
