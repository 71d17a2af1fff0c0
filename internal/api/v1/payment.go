package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/digiserve/digiserve/internal/api/dto"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/logger"
	"github.com/digiserve/digiserve/internal/service"
	"github.com/digiserve/digiserve/internal/types"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, log: log}
}

// @Summary Create a new payment
// @Description Create a full or installment payment for a catalog service
// @Tags Payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Payment configuration"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePayment(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create payment", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a payment by ID
// @Description Get a payment by ID
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Payment ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get payment", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List payments
// @Description List payments with optional filtering
// @Tags Payments
// @Produce json
// @Param filter query types.PaymentFilter false "Filter"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var filter types.PaymentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListPayments(c.Request.Context(), &filter)
	if err != nil {
		h.log.Error("Failed to list payments", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Submit a tranche
// @Description Submit transaction evidence for a tranche
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param number path int true "Installment number"
// @Param submission body dto.SubmitTrancheRequest true "Submission"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /payments/{id}/tranches/{number}/submit [post]
func (h *PaymentHandler) SubmitTranche(c *gin.Context) {
	id, number, ok := h.tranchePath(c)
	if !ok {
		return
	}

	var req dto.SubmitTrancheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SubmitTranche(c.Request.Context(), id, number, req)
	if err != nil {
		h.log.Error("Failed to submit tranche", "error", err, "payment_id", id, "installment_number", number)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Adjudicate a tranche
// @Description Approve or reject a submitted tranche
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param number path int true "Installment number"
// @Param verdict body dto.AdjudicateTrancheRequest true "Verdict"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /payments/{id}/tranches/{number}/adjudicate [post]
func (h *PaymentHandler) AdjudicateTranche(c *gin.Context) {
	id, number, ok := h.tranchePath(c)
	if !ok {
		return
	}

	var req dto.AdjudicateTrancheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AdjudicateTranche(c.Request.Context(), id, number, req)
	if err != nil {
		h.log.Error("Failed to adjudicate tranche", "error", err, "payment_id", id, "installment_number", number)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Mark a tranche paid
// @Description Close the ledger on an approved tranche
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Param number path int true "Installment number"
// @Success 200 {object} dto.PaymentResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /payments/{id}/tranches/{number}/paid [post]
func (h *PaymentHandler) MarkTranchePaid(c *gin.Context) {
	id, number, ok := h.tranchePath(c)
	if !ok {
		return
	}

	resp, err := h.service.MarkTranchePaid(c.Request.Context(), id, number)
	if err != nil {
		h.log.Error("Failed to mark tranche paid", "error", err, "payment_id", id, "installment_number", number)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set the service window
// @Description Set or adjust the service start and end dates
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param window body dto.SetServiceWindowRequest true "Window"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /payments/{id}/window [patch]
func (h *PaymentHandler) SetServiceWindow(c *gin.Context) {
	id := c.Param("id")

	var req dto.SetServiceWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SetServiceWindow(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Failed to set service window", "error", err, "payment_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Mark a service completed
// @Description Apply the one-way completed override
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /payments/{id}/complete [post]
func (h *PaymentHandler) MarkServiceCompleted(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.MarkServiceCompleted(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to mark service completed", "error", err, "payment_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the entitlement phase
// @Description Derive the entitlement phase of a payment at the current instant
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.EntitlementResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /payments/{id}/entitlement [get]
func (h *PaymentHandler) GetEntitlement(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetEntitlementPhase(c.Request.Context(), id, time.Now().UTC())
	if err != nil {
		h.log.Error("Failed to get entitlement", "error", err, "payment_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) tranchePath(c *gin.Context) (string, int, bool) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Payment ID is required").
			Mark(ierr.ErrValidation))
		return "", 0, false
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		c.Error(ierr.NewError("invalid installment number").
			WithHint("Installment number must be a positive integer").
			Mark(ierr.ErrValidation))
		return "", 0, false
	}

	return id, number, true
}
