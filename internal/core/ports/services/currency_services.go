package services

import (
	"context"

	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	"github.com/SscSPs/currency_converter_app/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate resolves the rate between two currencies, directly or through the pivot currency.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates returns every stored rate.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// ListSupportedCurrencies returns the sorted codes present in the rate table.
	ListSupportedCurrencies(ctx context.Context) ([]string, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// UpdateExchangeRate inserts or overwrites the rate for an ordered pair.
	UpdateExchangeRate(ctx context.Context, req dto.UpdateExchangeRateRequest) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// ConversionSvc defines conversion and per-user history operations.
type ConversionSvc interface {
	// Convert converts an amount, recording it for userID when userID is not empty.
	Convert(ctx context.Context, req dto.ConvertRequest, userID string) (*domain.ConversionRecord, error)

	// GetUserHistory returns the user's conversions oldest first.
	GetUserHistory(ctx context.Context, userID string) ([]domain.ConversionRecord, error)

	// ClearUserHistory empties the user's history.
	ClearUserHistory(ctx context.Context, userID string) error

	// FormatConversion renders a record for display.
	FormatConversion(ctx context.Context, record domain.ConversionRecord, decimalPlaces int) string
}
