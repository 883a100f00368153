package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/dto"
	"github.com/SscSPs/property_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves unit and owner ledgers and statuses.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	currency      string
	now           func() time.Time
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, currency string, now func() time.Time) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
		currency:      currency,
		now:           now,
	}
}

// registerLedgerRoutes registers the unit and owner read routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, currency string, now func() time.Time) {
	h := newLedgerHandler(ledgerService, currency, now)

	units := rg.Group("/units/:unitID")
	{
		units.GET("/ledger", h.getUnitLedger)
		units.GET("/status", h.getUnitStatus)
	}

	owners := rg.Group("/owners/:ownerKind/:ownerID")
	{
		owners.GET("/ledger", h.getOwnerLedger)
		owners.GET("/status", h.getOwnerStatus)
	}
}

// getUnitLedger godoc
// @Summary Get the ledger of a unit
// @Description Computes the charge and payment ledger of a unit up to the given date
// @Tags ledgers
// @Produce json
// @Param unitID path string true "Unit ID"
// @Param asOf query string false "Reference date (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.UnitLedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Unit not found"
// @Failure 500 {object} map[string]string "Failed to compute ledger"
// @Security BearerAuth
// @Router /units/{unitID}/ledger [get]
func (h *ledgerHandler) getUnitLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	unitID := c.Param("unitID")

	var q dto.LedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query for getUnitLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf, err := q.Resolve(h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("unit_id", unitID), slog.String("asOf", asOf.Format(time.DateOnly)))
	logger.Info("Received request for unit ledger")

	ledger, err := h.ledgerService.GetUnitLedger(c.Request.Context(), unitID, asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to compute unit ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToUnitLedgerResponse(ledger, asOf, h.currency))
}

// getUnitStatus godoc
// @Summary Get the status of a unit
// @Description Classifies a unit as Paid, Pending or N/A for a reference month
// @Tags ledgers
// @Produce json
// @Param unitID path string true "Unit ID"
// @Param month query string false "Reference month (YYYY-MM)" default(month of asOf)
// @Param asOf query string false "Reference date (YYYY-MM-DD)" default(today)
// @Success 200 {object} domain.UnitStatus
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Unit not found"
// @Failure 500 {object} map[string]string "Failed to compute status"
// @Security BearerAuth
// @Router /units/{unitID}/status [get]
func (h *ledgerHandler) getUnitStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	unitID := c.Param("unitID")

	month, asOf, ok := h.bindStatusQuery(c, logger)
	if !ok {
		return
	}

	status, err := h.ledgerService.GetUnitStatus(c.Request.Context(), unitID, month, asOf)
	if err != nil {
		respondError(c, logger.With(slog.String("unit_id", unitID)), err, "Failed to compute unit status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// getOwnerLedger godoc
// @Summary Get the consolidated ledger of an owner
// @Description Merges the ledgers of every unit held by a landlord or property owner
// @Tags owners
// @Produce json
// @Param ownerKind path string true "Owner kind" Enums(landlord, entity)
// @Param ownerID path string true "Owner ID"
// @Param asOf query string false "Reference date (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.OwnerLedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Owner not found"
// @Failure 500 {object} map[string]string "Failed to compute ledger"
// @Security BearerAuth
// @Router /owners/{ownerKind}/{ownerID}/ledger [get]
func (h *ledgerHandler) getOwnerLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ref, ok := bindOwnerRef(c, logger)
	if !ok {
		return
	}

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

	logger = logger.With(slog.String("owner", ref.String()))
	logger.Info("Received request for owner ledger")

	portfolio, err := h.ledgerService.GetOwnerLedger(c.Request.Context(), ref, asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to compute owner ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToOwnerLedgerResponse(portfolio, h.currency))
}

// getOwnerStatus godoc
// @Summary Get the grouped status of an owner
// @Description Pending when any unit of the owner is Pending, Paid when every billable unit is Paid
// @Tags owners
// @Produce json
// @Param ownerKind path string true "Owner kind" Enums(landlord, entity)
// @Param ownerID path string true "Owner ID"
// @Param month query string false "Reference month (YYYY-MM)" default(month of asOf)
// @Param asOf query string false "Reference date (YYYY-MM-DD)" default(today)
// @Success 200 {object} billing.OwnerStatus
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Owner not found"
// @Failure 500 {object} map[string]string "Failed to compute status"
// @Security BearerAuth
// @Router /owners/{ownerKind}/{ownerID}/status [get]
func (h *ledgerHandler) getOwnerStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ref, ok := bindOwnerRef(c, logger)
	if !ok {
		return
	}
	month, asOf, ok := h.bindStatusQuery(c, logger)
	if !ok {
		return
	}

	status, err := h.ledgerService.GetOwnerStatus(c.Request.Context(), ref, month, asOf)
	if err != nil {
		respondError(c, logger.With(slog.String("owner", ref.String())), err, "Failed to compute owner status")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *ledgerHandler) bindStatusQuery(c *gin.Context, logger *slog.Logger) (domain.YearMonth, time.Time, bool) {
	var q dto.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind status query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return domain.YearMonth{}, time.Time{}, false
	}
	month, asOf, err := q.Resolve(h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month or date. Use YYYY-MM and YYYY-MM-DD"})
		return domain.YearMonth{}, time.Time{}, false
	}
	return month, asOf, true
}

// bindOwnerRef reads :ownerKind and :ownerID. The kind is case-insensitive.
func bindOwnerRef(c *gin.Context, logger *slog.Logger) (domain.OwnerRef, bool) {
	kind, err := domain.ParseOwnerKind(c.Param("ownerKind"))
	if err != nil {
		logger.Warn("Invalid owner kind in path", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrValidation.Error() + ": " + err.Error()})
		return domain.OwnerRef{}, false
	}
	ownerID := c.Param("ownerID")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Owner ID required in path"})
		return domain.OwnerRef{}, false
	}
	return domain.OwnerRef{Kind: kind, ID: ownerID}, true
}
