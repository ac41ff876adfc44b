package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/mzigohq/accounting_backend/internal/core/ports/services"
	"github.com/mzigohq/accounting_backend/internal/dto"
)

type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := &exchangeRateHandler{rateService: rateService}

	rates := rg.Group("/exchange-rates")
	{
		rates.PUT("", h.upsertRate)
		rates.GET("", h.listRates)
		rates.GET("/:currencyCode", h.getRate)
	}
}

// upsertRate godoc
// @Summary Set the exchange rate for a currency
// @Description Creates or replaces the rate to base currency for the given effective date
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpsertExchangeRateRequest true "Rate details"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /exchange-rates [put]
func (h *exchangeRateHandler) upsertRate(c *gin.Context) {
	var req dto.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rate, err := h.rateService.UpsertRate(c.Request.Context(), req, actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listRates godoc
// @Summary List the latest rate for every currency
// @Tags exchange-rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	rates, err := h.rateService.ListLatestRates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponses(rates))
}

// getRate godoc
// @Summary Get the latest rate for a currency
// @Tags exchange-rates
// @Produce  json
// @Param   currencyCode path string true "ISO 4217 currency code"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "No rate recorded"
// @Router /exchange-rates/{currencyCode} [get]
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	rate, err := h.rateService.GetRateByCurrency(c.Request.Context(), c.Param("currencyCode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
