package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
	"github.com/hammamsawalma/edusystem/internal/middleware"
)

// accountingHandler exposes the financial aggregation endpoints.
type accountingHandler struct {
	accountingService portssvc.AccountingSvcFacade
}

func newAccountingHandler(as portssvc.AccountingSvcFacade) *accountingHandler {
	return &accountingHandler{accountingService: as}
}

// RegisterAccountingRoutes registers the aggregation report routes.
func RegisterAccountingRoutes(rg *gin.RouterGroup, accountingService portssvc.AccountingSvcFacade) {
	h := newAccountingHandler(accountingService)

	accounting := rg.Group("/accounting")
	{
		accounting.GET("/students", h.getStudentRevenue)
		accounting.GET("/teachers", h.getTeacherReconciliation)
		accounting.GET("/expenses", h.getExpenseSummary)
		accounting.GET("/profit-loss", h.getProfitLoss)
		accounting.GET("/cashflow", h.getCashFlow)
		accounting.GET("/comparison", h.getComparison)
	}
}

// getStudentRevenue godoc
// @Summary Student revenue report
// @Description Per-student revenue partitioned into completed, pending and overdue amounts
// @Tags accounting
// @Produce json
// @Param startDate query string false "Period start (YYYY-MM-DD)" default(Jan 1 of current year)
// @Param endDate query string false "Period end (YYYY-MM-DD)" default(now)
// @Param teacherId query string false "Restrict to one teacher (admin only)"
// @Success 200 {object} dto.Envelope{data=domain.StudentRevenueReport}
// @Failure 400 {object} dto.Envelope
// @Failure 401 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounting/students [get]
func (h *accountingHandler) getStudentRevenue(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	var teacherID *string
	if v := c.Query("teacherId"); v != "" {
		teacherID = &v
	}

	report, err := h.accountingService.StudentRevenue(c.Request.Context(), actor, period, teacherID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, report)
}

// getTeacherReconciliation godoc
// @Summary Teacher reconciliation report
// @Description Per-teacher earnings versus paid and pending payouts
// @Tags accounting
// @Produce json
// @Param startDate query string false "Period start (YYYY-MM-DD)"
// @Param endDate query string false "Period end (YYYY-MM-DD)"
// @Param teacherId query string false "Restrict to one teacher (admin only)"
// @Success 200 {object} dto.Envelope{data=domain.TeacherReconciliationReport}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounting/teachers [get]
func (h *accountingHandler) getTeacherReconciliation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	var teacherID *string
	if v := c.Query("teacherId"); v != "" {
		teacherID = &v
	}

	report, err := h.accountingService.TeacherReconciliation(c.Request.Context(), actor, period, teacherID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, report)
}

// getExpenseSummary godoc
// @Summary Expense summary report
// @Description Expenses grouped by category and by month
// @Tags accounting
// @Produce json
// @Param startDate query string false "Period start (YYYY-MM-DD)"
// @Param endDate query string false "Period end (YYYY-MM-DD)"
// @Param category query string false "Restrict to one category"
// @Param status query string false "Expense status filter" default(approved)
// @Success 200 {object} dto.Envelope{data=domain.ExpenseReport}
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounting/expenses [get]
func (h *accountingHandler) getExpenseSummary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	var category *string
	if v := c.Query("category"); v != "" {
		category = &v
	}
	var status *domain.ExpenseStatus
	if v := c.Query("status"); v != "" {
		s := domain.ExpenseStatus(v)
		status = &s
	}

	report, err := h.accountingService.ExpenseSummary(c.Request.Context(), actor, period, category, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, report)
}

// getProfitLoss godoc
// @Summary Profit and loss summary
// @Description Revenue, expenses, net income, margin and status for a period
// @Tags accounting
// @Produce json
// @Param startDate query string false "Period start (YYYY-MM-DD)"
// @Param endDate query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.Envelope{data=domain.ProfitLossSummary}
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounting/profit-loss [get]
func (h *accountingHandler) getProfitLoss(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	summary, err := h.accountingService.ProfitLoss(c.Request.Context(), actor, period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, summary)
}

// getCashFlow godoc
// @Summary Cash flow report
// @Description Inflows and outflows bucketed by day, week, month or year with a running total
// @Tags accounting
// @Produce json
// @Param startDate query string false "Period start (YYYY-MM-DD)"
// @Param endDate query string false "Period end (YYYY-MM-DD)"
// @Param period query string false "Bucket size: daily, weekly, monthly or yearly" default(monthly)
// @Success 200 {object} dto.Envelope{data=domain.CashFlowReport}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounting/cashflow [get]
func (h *accountingHandler) getCashFlow(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	granularity, err := domain.ParseGranularity(c.Query("period"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	report, err := h.accountingService.CashFlow(c.Request.Context(), actor, period, granularity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, report)
}

// getComparison godoc
// @Summary Period comparison
// @Description Profit and loss for two periods with percentage deltas
// @Tags accounting
// @Produce json
// @Param currentStart query string true "Current period start (YYYY-MM-DD)"
// @Param currentEnd query string true "Current period end (YYYY-MM-DD)"
// @Param previousStart query string true "Previous period start (YYYY-MM-DD)"
// @Param previousEnd query string true "Previous period end (YYYY-MM-DD)"
// @Success 200 {object} dto.Envelope{data=domain.PeriodComparison}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounting/comparison [get]
func (h *accountingHandler) getComparison(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	currentStart := c.Query("currentStart")
	currentEnd := c.Query("currentEnd")
	previousStart := c.Query("previousStart")
	previousEnd := c.Query("previousEnd")
	if currentStart == "" || currentEnd == "" || previousStart == "" || previousEnd == "" {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Comparison called without all four period bounds")
		dto.RespondError(c, http.StatusBadRequest, apperrors.ErrMissingParameter.Error()+": currentStart, currentEnd, previousStart and previousEnd are all required")
		return
	}

	now := time.Now()
	current, err := domain.ResolvePeriod(currentStart, currentEnd, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	previous, err := domain.ResolvePeriod(previousStart, previousEnd, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	comparison, err := h.accountingService.Comparison(c.Request.Context(), actor, current, previous)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, comparison)
}
