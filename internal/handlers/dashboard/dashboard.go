// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"net/http"

	"insuremate-service/internal/pkg/response"
	service "insuremate-service/internal/service/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary retrieves the agency-wide dashboard: entity counts plus the
// recent and attention-worthy policy and claim highlights.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to build dashboard summary", err)
		return
	}

	response.Success(c, http.StatusOK, "dashboard summary retrieved", summary)
}
