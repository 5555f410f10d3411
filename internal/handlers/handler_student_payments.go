package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
)

type studentPaymentHandler struct {
	paymentService portssvc.StudentPaymentSvcFacade
}

func newStudentPaymentHandler(ps portssvc.StudentPaymentSvcFacade) *studentPaymentHandler {
	return &studentPaymentHandler{paymentService: ps}
}

func registerStudentPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.StudentPaymentSvcFacade) {
	h := newStudentPaymentHandler(paymentService)

	payments := rg.Group("/student-payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:payment_id", h.getPayment)
		payments.PUT("/:payment_id", h.updatePayment)
		payments.DELETE("/:payment_id", h.deletePayment)
	}
}

// createPayment godoc
// @Summary Record a tuition payment
// @Description The owning student's payment summary is resynchronized after the write
// @Tags student-payments
// @Accept json
// @Produce json
// @Param payment body dto.CreateStudentPaymentRequest true "Payment details"
// @Success 201 {object} dto.Envelope{data=domain.StudentPayment}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /student-payments [post]
func (h *studentPaymentHandler) createPayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateStudentPaymentRequest
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
// @Summary List tuition payments in a period
// @Tags student-payments
// @Produce json
// @Param startDate query string false "Period start (YYYY-MM-DD)"
// @Param endDate query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.Envelope{data=[]domain.StudentPayment}
// @Security BearerAuth
// @Router /student-payments [get]
func (h *studentPaymentHandler) listPayments(c *gin.Context) {
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
// @Summary Get a tuition payment
// @Tags student-payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} dto.Envelope{data=domain.StudentPayment}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /student-payments/{payment_id} [get]
func (h *studentPaymentHandler) getPayment(c *gin.Context) {
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

// updatePayment godoc
// @Summary Update a tuition payment
// @Tags student-payments
// @Accept json
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Param payment body dto.UpdateStudentPaymentRequest true "Fields to update"
// @Success 200 {object} dto.Envelope{data=domain.StudentPayment}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /student-payments/{payment_id} [put]
func (h *studentPaymentHandler) updatePayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), actor, c.Param("payment_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, payment)
}

// deletePayment godoc
// @Summary Delete a tuition payment
// @Tags student-payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /student-payments/{payment_id} [delete]
func (h *studentPaymentHandler) deletePayment(c *gin.Context) {
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
