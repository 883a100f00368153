package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/dto"
	"github.com/SscSPs/property_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payments and occupant balances.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	balanceService portssvc.BalanceSvcFacade
	now            func() time.Time
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, bs portssvc.BalanceSvcFacade, now func() time.Time) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
		balanceService: bs,
		now:            now,
	}
}

// registerPaymentRoutes registers routes related to payments and occupants.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, balanceService portssvc.BalanceSvcFacade, now func() time.Time) {
	h := newPaymentHandler(paymentService, balanceService, now)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.PATCH("/:paymentID", h.updatePayment)
		payments.GET("/:paymentID/edits", h.listPaymentEdits)
	}

	occupants := rg.Group("/occupants/:occupantID")
	{
		occupants.GET("/payments", h.listOccupantPayments)
		occupants.POST("/balance/recalculate", h.recalculateBalance)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment received from an occupant
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Occupant not found"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("occupant_id", req.OccupantID))
	logger.Info("Received request to record payment", slog.String("payment_type", string(req.PaymentType)))

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded successfully", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// updatePayment godoc
// @Summary Correct a payment
// @Description Applies a correction to a payment and records who changed it and why
// @Tags payments
// @Accept json
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Param payment body dto.UpdatePaymentRequest true "Correction"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or missing reason"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment was modified concurrently"
// @Failure 500 {object} map[string]string "Failed to update payment"
// @Security BearerAuth
// @Router /payments/{paymentID} [patch]
func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	editorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Editor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("editor_user_id", editorUserID), slog.String("payment_id", paymentID))
	logger.Info("Received request to update payment")

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), paymentID, req, editorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to update payment")
		return
	}

	logger.Info("Payment updated", slog.Int64("version", payment.Version))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// listPaymentEdits godoc
// @Summary List the corrections of a payment
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {array} dto.PaymentEditResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to list edits"
// @Security BearerAuth
// @Router /payments/{paymentID}/edits [get]
func (h *paymentHandler) listPaymentEdits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	edits, err := h.paymentService.ListPaymentEdits(c.Request.Context(), paymentID)
	if err != nil {
		respondError(c, logger.With(slog.String("payment_id", paymentID)), err, "Failed to list payment edits")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentEditResponses(edits))
}

// listOccupantPayments godoc
// @Summary List an occupant's payments
// @Description Returns the payment history of an occupant, newest first, one page at a time
// @Tags occupants
// @Produce json
// @Param occupantID path string true "Occupant ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Occupant not found"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /occupants/{occupantID}/payments [get]
func (h *paymentHandler) listOccupantPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	occupantID := c.Param("occupantID")

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listOccupantPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("occupant_id", occupantID), slog.Int("limit", params.Limit))
	resp, err := h.paymentService.ListPaymentsByOccupant(c.Request.Context(), occupantID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// recalculateBalance godoc
// @Summary Recalculate an occupant's stored balance
// @Description Recomputes the ledger of an occupant and stores the amount due and status
// @Tags occupants
// @Produce json
// @Param occupantID path string true "Occupant ID"
// @Param asOf query string false "Reference date (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid input or archived occupant"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Occupant not found"
// @Failure 500 {object} map[string]string "Failed to recalculate balance"
// @Security BearerAuth
// @Router /occupants/{occupantID}/balance/recalculate [post]
func (h *paymentHandler) recalculateBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	occupantID := c.Param("occupantID")

	var q dto.LedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf, err := q.Resolve(h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("occupant_id", occupantID))
	occupant, err := h.balanceService.RecalculateOccupantBalance(c.Request.Context(), occupantID, asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to recalculate balance")
		return
	}

	resp := dto.BalanceResponse{
		OccupantID:    occupant.OccupantID,
		DueBalance:    occupant.DueBalance,
		PaymentStatus: occupant.Lease.PaymentStatus,
	}
	if occupant.BalanceRecomputedAt != nil {
		resp.BalanceRecomputedAt = occupant.BalanceRecomputedAt.Format(time.RFC3339)
	}
	logger.Info("Occupant balance recalculated", slog.String("due_balance", resp.DueBalance.String()))
	c.JSON(http.StatusOK, resp)
}
