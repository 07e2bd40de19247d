package dto

import (
	"github.com/SscSPs/currency_converter_app/internal/core/domain"
)

// UpdateExchangeRateRequest defines the structure for inserting or overwriting an exchange rate.
type UpdateExchangeRateRequest struct {
	FromCurrencyCode string  `json:"fromCurrencyCode" binding:"required,currency_code"`
	ToCurrencyCode   string  `json:"toCurrencyCode" binding:"required,currency_code"`
	Rate             float64 `json:"rate" binding:"required,gt=0"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	FromCurrencyCode string  `json:"fromCurrencyCode"`
	ToCurrencyCode   string  `json:"toCurrencyCode"`
	Rate             float64 `json:"rate"`
}

// ListExchangeRatesResponse wraps every stored rate.
type ListExchangeRatesResponse struct {
	ExchangeRates []ExchangeRateResponse `json:"exchangeRates"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		FromCurrencyCode: rate.From,
		ToCurrencyCode:   rate.To,
		Rate:             rate.Rate,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to the list response.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) ListExchangeRatesResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return ListExchangeRatesResponse{ExchangeRates: responses}
}
