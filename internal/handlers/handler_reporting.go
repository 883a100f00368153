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

// reportingHandler handles portfolio-wide reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	now              func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvcFacade, now func() time.Time) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		now:              now,
	}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, now func() time.Time) {
	h := newReportingHandler(reportingService, now)

	rg.GET("/arrears/vacant", h.getVacantArrears)
	rg.GET("/reports/portfolio-summary", h.getPortfolioSummary)
}

// getVacantArrears godoc
// @Summary List vacant unit arrears
// @Description Lists owners whose vacant, handed-over units have unpaid service charge
// @Tags reports
// @Produce json
// @Param asOf query string false "Reference date (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.VacantArrearsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /arrears/vacant [get]
func (h *reportingHandler) getVacantArrears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var q dto.LedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf, err := q.Resolve(h.now())
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", q.AsOf))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	accounts, err := h.reportingService.GetVacantArrears(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to generate vacant arrears report")
		return
	}

	logger.Info("Vacant arrears report generated", slog.Int("account_count", len(accounts)))
	c.JSON(http.StatusOK, dto.ToVacantArrearsResponse(asOf.Format(time.DateOnly), accounts))
}

// getPortfolioSummary godoc
// @Summary Portfolio status summary
// @Description Counts Paid, Pending and N/A units for a reference month
// @Tags reports
// @Produce json
// @Param month query string false "Reference month (YYYY-MM)" default(month of asOf)
// @Param asOf query string false "Reference date (YYYY-MM-DD)" default(today)
// @Success 200 {object} domain.PortfolioSummary
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/portfolio-summary [get]
func (h *reportingHandler) getPortfolioSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var q dto.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	month, asOf, err := q.Resolve(h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month or date. Use YYYY-MM and YYYY-MM-DD"})
		return
	}

	summary, err := h.reportingService.GetPortfolioSummary(c.Request.Context(), month, asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to generate portfolio summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
