package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
)

type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expense_id", h.getExpense)
		expenses.PUT("/:expense_id", h.updateExpense)
		expenses.PATCH("/:expense_id/review", h.reviewExpense)
		expenses.DELETE("/:expense_id", h.deleteExpense)
	}
}

// createExpense godoc
// @Summary Submit an expense
// @Description New expenses start in pending status awaiting admin review
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.Envelope{data=domain.Expense}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusCreated, expense)
}

// listExpenses godoc
// @Summary List expenses in a period
// @Description Non-admins only see their own submissions
// @Tags expenses
// @Produce json
// @Param startDate query string false "Period start (YYYY-MM-DD)"
// @Param endDate query string false "Period end (YYYY-MM-DD)"
// @Param category query string false "Category filter (exact, case-sensitive)"
// @Param status query string false "Status filter"
// @Success 200 {object} dto.Envelope{data=[]domain.Expense}
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
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

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), actor, period, category, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, expenses)
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Success 200 {object} dto.Envelope{data=domain.Expense}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /expenses/{expense_id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), actor, c.Param("expense_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, expense)
}

// updateExpense godoc
// @Summary Update a pending expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.Envelope{data=domain.Expense}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /expenses/{expense_id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), actor, c.Param("expense_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, expense)
}

// reviewExpense godoc
// @Summary Approve or reject an expense
// @Description Admin only
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Param review body dto.ReviewExpenseRequest true "Review decision"
// @Success 200 {object} dto.Envelope{data=domain.Expense}
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /expenses/{expense_id}/review [patch]
func (h *expenseHandler) reviewExpense(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ReviewExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	expense, err := h.expenseService.ReviewExpense(c.Request.Context(), actor, c.Param("expense_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, expense)
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /expenses/{expense_id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), actor, c.Param("expense_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	dto.RespondMessage(c, http.StatusOK, "Expense deleted")
}
