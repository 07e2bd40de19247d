package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/dto"
	"github.com/SscSPs/currency_converter_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	rateService portssvc.ExchangeRateReaderSvc
}

// RegisterCurrencyRoutes registers routes related to currencies.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateReaderSvc) {
	h := &currencyHandler{rateService: rateService}

	rg.GET("/currencies", h.listCurrencies)
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Lists every currency code that appears in the rate table, sorted
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.ListCurrenciesResponse
// @Failure 500 {object} ErrorResponse "Failed to list currencies"
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	codes, err := h.rateService.ListSupportedCurrencies(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to list currencies")
		return
	}

	c.JSON(http.StatusOK, dto.ListCurrenciesResponse{Currencies: codes})
}
