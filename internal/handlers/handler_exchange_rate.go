package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/dto"
	"github.com/SscSPs/currency_converter_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// RegisterExchangeRateRoutes registers routes related to exchange rates.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := &exchangeRateHandler{exchangeRateService: exchangeRateService}

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("", h.listExchangeRates)
		exchangeRates.PUT("", h.updateExchangeRate)
		exchangeRates.GET("/:from/:to", h.getExchangeRate)
	}
}

// listExchangeRates godoc
// @Summary List stored exchange rates
// @Description Lists every stored (from, to, rate) entry. Cross rates are not included.
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 500 {object} ErrorResponse "Failed to list exchange rates"
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// updateExchangeRate godoc
// @Summary Insert or overwrite an exchange rate
// @Description Stores the rate for the ordered pair only; the reverse pair is not touched
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpdateExchangeRateRequest true "Exchange Rate details"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 500 {object} ErrorResponse "Failed to update exchange rate"
// @Router /exchange-rates [put]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to update exchange rate",
		slog.String("from", req.FromCurrencyCode),
		slog.String("to", req.ToCurrencyCode),
		slog.Float64("rate", req.Rate),
	)

	rate, err := h.exchangeRateService.UpdateExchangeRate(c.Request.Context(), req)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to update exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Resolves the rate for a currency pair, directly or through USD
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code" MinLength(3)
// @Param   to   path string true "To Currency Code" MinLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Invalid currency code format"
// @Failure 404 {object} ErrorResponse "Exchange rate not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve exchange rate"
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	logger = logger.With(slog.String("from_code", fromCode), slog.String("to_code", toCode))

	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
