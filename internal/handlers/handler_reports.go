package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
)

// reportHandler exposes persisted aggregation snapshots.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs}
}

func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	reports := rg.Group("/accounting/reports")
	{
		reports.POST("", h.generateReport)
		reports.GET("", h.listReports)
		reports.GET("/:report_id", h.getReport)
		reports.PATCH("/:report_id/archive", h.archiveReport)
	}
}

// generateReport godoc
// @Summary Generate a report snapshot
// @Description Runs the selected aggregation and persists its payload. Both dates are required.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.GenerateReportRequest true "Report parameters"
// @Success 201 {object} dto.Envelope{data=domain.FinancialReport}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounting/reports [post]
func (h *reportHandler) generateReport(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.reportService.GenerateReport(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusCreated, report)
}

// listReports godoc
// @Summary List report snapshots
// @Description Cursor-paginated listing, newest first
// @Tags reports
// @Produce json
// @Param reportType query string false "Filter by report type"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.Envelope{data=dto.ListReportsResponse}
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounting/reports [get]
func (h *reportHandler) listReports(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var reportType *domain.ReportType
	if v := c.Query("reportType"); v != "" {
		t := domain.ReportType(v)
		reportType = &t
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if v := c.Query("nextToken"); v != "" {
		nextToken = &v
	}

	reports, token, err := h.reportService.ListReports(c.Request.Context(), actor, reportType, limit, nextToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, dto.ListReportsResponse{Reports: reports, NextToken: token})
}

// getReport godoc
// @Summary Get a report snapshot
// @Tags reports
// @Produce json
// @Param report_id path string true "Report ID"
// @Success 200 {object} dto.Envelope{data=domain.FinancialReport}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounting/reports/{report_id} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReportByID(c.Request.Context(), actor, c.Param("report_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, report)
}

// archiveReport godoc
// @Summary Archive or unarchive a report snapshot
// @Description The only mutation a generated report supports
// @Tags reports
// @Accept json
// @Produce json
// @Param report_id path string true "Report ID"
// @Param archive body dto.ArchiveReportRequest true "Archive flag"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounting/reports/{report_id}/archive [patch]
func (h *reportHandler) archiveReport(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ArchiveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.reportService.SetArchived(c.Request.Context(), actor, c.Param("report_id"), req.Archived); err != nil {
		respondServiceError(c, err)
		return
	}
	dto.RespondMessage(c, http.StatusOK, "Report updated")
}
