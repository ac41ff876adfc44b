package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mzigohq/accounting_backend/internal/apperrors"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	portssvc "github.com/mzigohq/accounting_backend/internal/core/ports/services"
	"github.com/mzigohq/accounting_backend/internal/dto"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// registerReportingRoutes registers routes for the reporting endpoints.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/aging", h.agingReport)
		reports.GET("/aging/export", h.exportAging)
		reports.GET("/balances", h.balanceListing)
		reports.GET("/balances/export", h.exportBalances)
	}
}

// parseAsOf interprets an optional YYYY-MM-DD query value as the end of
// that day, defaulting to now.
func parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("asOf must be YYYY-MM-DD")
	}
	return parsed.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// agingReport godoc
// @Summary Aging report for open receivables or payables
// @Description Buckets open items by days outstanding as of the cutoff date
// @Tags reports
// @Produce  json
// @Param   kind query string true "RECEIVABLE or PAYABLE"
// @Param   asOf query string false "Cutoff date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} dto.AgingReportResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /reports/aging [get]
func (h *reportingHandler) agingReport(c *gin.Context) {
	var params dto.AgingReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	asOf, err := parseAsOf(params.AsOf)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.reportingService.AgingReport(c.Request.Context(), domain.AgingKind(params.Kind), asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAgingReportResponse(domain.AgingKind(params.Kind), report))
}

// exportAging godoc
// @Summary Export an aging report's open items as CSV
// @Tags reports
// @Produce  text/csv
// @Param   kind query string true "RECEIVABLE or PAYABLE"
// @Param   asOf query string false "Cutoff date (YYYY-MM-DD, defaults to today)"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /reports/aging/export [get]
func (h *reportingHandler) exportAging(c *gin.Context) {
	var params dto.AgingReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	asOf, err := parseAsOf(params.AsOf)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("aging_%s_%s.csv", params.Kind, asOf.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := h.reportingService.ExportAgingCSV(c.Request.Context(), domain.AgingKind(params.Kind), asOf, c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// balanceListing godoc
// @Summary Balance listing for all active accounts
// @Description Balances are in base currency, rolled up through the account hierarchy
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Cutoff date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} dto.BalanceListingResponse
// @Router /reports/balances [get]
func (h *reportingHandler) balanceListing(c *gin.Context) {
	asOf, err := parseAsOf(c.Query("asOf"))
	if err != nil {
		respondError(c, err)
		return
	}

	listing, err := h.reportingService.BalanceListing(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// exportBalances godoc
// @Summary Export the balance listing as CSV
// @Tags reports
// @Produce  text/csv
// @Param   asOf query string false "Cutoff date (YYYY-MM-DD, defaults to today)"
// @Success 200 {string} string "CSV content"
// @Router /reports/balances/export [get]
func (h *reportingHandler) exportBalances(c *gin.Context) {
	asOf, err := parseAsOf(c.Query("asOf"))
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("balances_%s.csv", asOf.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := h.reportingService.ExportBalancesCSV(c.Request.Context(), asOf, c.Writer); err != nil {
		_ = c.Error(err)
	}
}
