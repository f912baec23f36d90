package handler

import (
	"hospital-management/internal/middleware"
	"hospital-management/internal/service"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard returns the dashboard for the session role
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	dashboard, err := h.dashboardService.ForIdentity(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "Failed to load dashboard")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"role":      identity.Role,
		"dashboard": dashboard,
	})
}
