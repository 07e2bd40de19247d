package dto

import "github.com/SscSPs/currency_converter_app/internal/core/domain"

// ConvertRequest defines the structure for a conversion request.
// DecimalPlaces only affects the formatted line in the response.
type ConvertRequest struct {
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	FromCurrencyCode string  `json:"fromCurrencyCode" binding:"required,currency_code"`
	ToCurrencyCode   string  `json:"toCurrencyCode" binding:"required,currency_code"`
	DecimalPlaces    *int    `json:"decimalPlaces,omitempty" binding:"omitempty,min=0,max=12"`
}

// ConversionResponse is a conversion record plus its display line.
type ConversionResponse struct {
	OriginalAmount  float64 `json:"originalAmount"`
	FromCurrency    string  `json:"fromCurrency"`
	ToCurrency      string  `json:"toCurrency"`
	ConvertedAmount float64 `json:"convertedAmount"`
	ExchangeRate    float64 `json:"exchangeRate"`
	Timestamp       string  `json:"timestamp"`
	Formatted       string  `json:"formatted,omitempty"`
}

// HistoryResponse lists a user's conversions, oldest first.
type HistoryResponse struct {
	UserID      string               `json:"userID"`
	Conversions []ConversionResponse `json:"conversions"`
}

// ToConversionResponse converts a domain.ConversionRecord to its response DTO.
func ToConversionResponse(record domain.ConversionRecord, formatted string) ConversionResponse {
	return ConversionResponse{
		OriginalAmount:  record.OriginalAmount,
		FromCurrency:    record.FromCurrency,
		ToCurrency:      record.ToCurrency,
		ConvertedAmount: record.ConvertedAmount,
		ExchangeRate:    record.ExchangeRate,
		Timestamp:       record.Timestamp,
		Formatted:       formatted,
	}
}

// ToHistoryResponse converts a user's records to the history response.
func ToHistoryResponse(userID string, records []domain.ConversionRecord) HistoryResponse {
	conversions := make([]ConversionResponse, len(records))
	for i, r := range records {
		conversions[i] = ToConversionResponse(r, "")
	}
	return HistoryResponse{UserID: userID, Conversions: conversions}
}
