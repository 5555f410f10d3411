package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
)

// dashboardHandler exposes the fixed dashboard rollups.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/stats", h.getStats)
		dashboard.GET("/teacher-stats", h.getTeacherStats)
	}
}

// getStats godoc
// @Summary Admin dashboard stats
// @Description Today, this-week and this-month rollups plus the active student count
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.Envelope{data=domain.DashboardStats}
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *dashboardHandler) getStats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, stats)
}

// getTeacherStats godoc
// @Summary Teacher dashboard stats
// @Description Per-teacher earnings rollups; admins must pass teacherId
// @Tags dashboard
// @Produce json
// @Param teacherId query string false "Teacher to report on (required for admins)"
// @Success 200 {object} dto.Envelope{data=domain.TeacherDashboardStats}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /dashboard/teacher-stats [get]
func (h *dashboardHandler) getTeacherStats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var teacherID *string
	if v := c.Query("teacherId"); v != "" {
		teacherID = &v
	}

	stats, err := h.dashboardService.TeacherStats(c.Request.Context(), actor, teacherID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, stats)
}
