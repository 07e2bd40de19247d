package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/dto"
	"github.com/SscSPs/currency_converter_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles conversions and per-user history.
type conversionHandler struct {
	conversionService    portssvc.ConversionSvc
	defaultDecimalPlaces int
}

// RegisterConversionRoutes registers conversion and history routes. Conversions
// accept an optional bearer token; history routes require one.
func RegisterConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc, jwtSecret string, defaultDecimalPlaces int) {
	h := &conversionHandler{
		conversionService:    conversionService,
		defaultDecimalPlaces: defaultDecimalPlaces,
	}

	rg.POST("/conversions", middleware.OptionalAuthMiddleware(jwtSecret), h.convert)

	history := rg.Group("/me/history", middleware.AuthMiddleware(jwtSecret))
	{
		history.GET("", h.getHistory)
		history.DELETE("", h.clearHistory)
	}
}

// convert godoc
// @Summary Convert an amount
// @Description Converts an amount between currencies. With a bearer token the conversion is added to the caller's history.
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion details"
// @Success 201 {object} dto.ConversionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Invalid token"
// @Failure 404 {object} ErrorResponse "Exchange rate not found"
// @Failure 500 {object} ErrorResponse "Failed to convert amount"
// @Security BearerAuth
// @Router /conversions [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	record, err := h.conversionService.Convert(c.Request.Context(), req, userID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to convert amount")
		return
	}

	places := h.defaultDecimalPlaces
	if req.DecimalPlaces != nil {
		places = *req.DecimalPlaces
	}
	formatted := h.conversionService.FormatConversion(c.Request.Context(), *record, places)

	logger.Info("Conversion completed", slog.String("result", formatted))
	c.JSON(http.StatusCreated, dto.ToConversionResponse(*record, formatted))
}

// getHistory godoc
// @Summary Get conversion history
// @Description Lists the authenticated user's conversions, oldest first
// @Tags conversions
// @Produce  json
// @Success 200 {object} dto.HistoryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to get conversion history"
// @Security BearerAuth
// @Router /me/history [get]
func (h *conversionHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	records, err := h.conversionService.GetUserHistory(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to get conversion history")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryResponse(userID, records))
}

// clearHistory godoc
// @Summary Clear conversion history
// @Description Empties the authenticated user's conversion history
// @Tags conversions
// @Success 204 "History cleared"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "No history for user"
// @Failure 500 {object} ErrorResponse "Failed to clear conversion history"
// @Security BearerAuth
// @Router /me/history [delete]
func (h *conversionHandler) clearHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.conversionService.ClearUserHistory(c.Request.Context(), userID); err != nil {
		respondWithServiceError(c, logger, err, "Failed to clear conversion history")
		return
	}

	c.Status(http.StatusNoContent)
}
