package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
)

type teacherPaymentHandler struct {
	paymentService portssvc.TeacherPaymentSvcFacade
}

func newTeacherPaymentHandler(ps portssvc.TeacherPaymentSvcFacade) *teacherPaymentHandler {
	return &teacherPaymentHandler{paymentService: ps}
}

func registerTeacherPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.TeacherPaymentSvcFacade) {
	h := newTeacherPaymentHandler(paymentService)

	payments := rg.Group("/teacher-payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:payment_id", h.getPayment)
		payments.PATCH("/:payment_id/status", h.updateStatus)
		payments.DELETE("/:payment_id", h.deletePayment)
	}
}

// createPayment godoc
// @Summary Queue a teacher payout
// @Description Admin only; the payout starts in pending status
// @Tags teacher-payments
// @Accept json
// @Produce json
// @Param payment body dto.CreateTeacherPaymentRequest true "Payout details"
// @Success 201 {object} dto.Envelope{data=domain.TeacherPayment}
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /teacher-payments [post]
func (h *teacherPaymentHandler) createPayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateTeacherPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusCreated, payment)
}

// listPayments godoc
// @Summary List teacher payouts in a period
// @Description Teachers only see their own payouts
// @Tags teacher-payments
// @Produce json
// @Param startDate query string false "Period start (YYYY-MM-DD)"
// @Param endDate query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.Envelope{data=[]domain.TeacherPayment}
// @Security BearerAuth
// @Router /teacher-payments [get]
func (h *teacherPaymentHandler) listPayments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), actor, period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, payments)
}

// getPayment godoc
// @Summary Get a teacher payout
// @Tags teacher-payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} dto.Envelope{data=domain.TeacherPayment}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /teacher-payments/{payment_id} [get]
func (h *teacherPaymentHandler) getPayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), actor, c.Param("payment_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, payment)
}

// updateStatus godoc
// @Summary Move a payout along its approval lifecycle
// @Description Admin only; transitions are monotonic (pending to approved or rejected, approved to paid)
// @Tags teacher-payments
// @Accept json
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Param status body dto.UpdateTeacherPaymentStatusRequest true "New status"
// @Success 200 {object} dto.Envelope{data=domain.TeacherPayment}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /teacher-payments/{payment_id}/status [patch]
func (h *teacherPaymentHandler) updateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateTeacherPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	payment, err := h.paymentService.UpdateStatus(c.Request.Context(), actor, c.Param("payment_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, payment)
}

// deletePayment godoc
// @Summary Delete a teacher payout
// @Description Admin only; paid payouts cannot be deleted
// @Tags teacher-payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /teacher-payments/{payment_id} [delete]
func (h *teacherPaymentHandler) deletePayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), actor, c.Param("payment_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	dto.RespondMessage(c, http.StatusOK, "Payment deleted")
}
