package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/dto"
	"github.com/SscSPs/property_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type consolidatedPaymentHandler struct {
	service portssvc.ConsolidatedPaymentSvcFacade
}

func registerConsolidatedPaymentRoutes(rg *gin.RouterGroup, service portssvc.ConsolidatedPaymentSvcFacade) {
	h := &consolidatedPaymentHandler{service: service}
	rg.POST("/owners/:ownerKind/:ownerID/consolidated-payments", h.recordConsolidatedPayment)
}

// recordConsolidatedPayment godoc
// @Summary Record a consolidated owner payment
// @Description Records one payment covering the outstanding balance of all units held by an owner.
// @Description A billing account is opened for the owner on first use. When expectedTotalDue is
// @Description sent and the balance has changed since it was read, nothing is written and 409 is returned.
// @Tags owners
// @Accept json
// @Produce json
// @Param ownerKind path string true "Owner kind" Enums(landlord, entity)
// @Param ownerID path string true "Owner ID"
// @Param payment body dto.ConsolidatedPaymentRequest true "Payment details"
// @Success 201 {object} dto.ConsolidatedPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Owner not found"
// @Failure 409 {object} map[string]string "Balance changed since it was read"
// @Failure 422 {object} map[string]string "Nothing to pay"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /owners/{ownerKind}/{ownerID}/consolidated-payments [post]
func (h *consolidatedPaymentHandler) recordConsolidatedPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ref, ok := bindOwnerRef(c, logger)
	if !ok {
		return
	}

	var req dto.ConsolidatedPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordConsolidatedPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("owner", ref.String()), slog.String("creator_user_id", creatorUserID))
	logger.Info("Received consolidated payment", slog.String("transaction_ref", req.TransactionRef))

	resp, err := h.service.RecordConsolidatedPayment(c.Request.Context(), ref, req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to record consolidated payment")
		return
	}
	c.JSON(http.StatusCreated, resp)
}
