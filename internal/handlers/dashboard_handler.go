package handlers

import (
	"net/http"

	"order_portal/internal/middleware"
	"order_portal/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.dashboardService.AdminStats()})
}

func (h *DashboardHandler) Salesman(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.dashboardService.SalesmanStats(c.GetString(middleware.CtxUserID))})
}

func (h *DashboardHandler) Retailer(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.dashboardService.RetailerStats(c.GetString(middleware.CtxUserID))})
}
