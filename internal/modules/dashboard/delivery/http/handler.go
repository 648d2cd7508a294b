package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashboard "github.com/atulpawar07/sp-cricket-hub/internal/modules/dashboard/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/response"
)

type DashboardHandler struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	sess, err := session.Require(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.dashboardService.GetDashboard(c.Request.Context(), sess))
}
