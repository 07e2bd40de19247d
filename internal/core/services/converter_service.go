package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	"github.com/SscSPs/currency_converter_app/internal/core/ledger"
	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/dto"
	"github.com/SscSPs/currency_converter_app/internal/platform/metrics"
)

// ConverterService exposes the rate ledger to the HTTP layer. It upper-cases
// codes at the boundary and turns the ledger's boolean results into errors.
type ConverterService struct {
	BaseService
	ledger  *ledger.Ledger
	metrics *metrics.Metrics
}

// NewConverterService creates a new ConverterService. A nil m gets a private registry.
func NewConverterService(l *ledger.Ledger, m *metrics.Metrics) *ConverterService {
	if m == nil {
		m = metrics.New()
	}
	return &ConverterService{
		ledger:  l,
		metrics: m,
	}
}

var (
	_ portssvc.ExchangeRateSvcFacade = (*ConverterService)(nil)
	_ portssvc.ConversionSvc         = (*ConverterService)(nil)
)

func validateCodes(fromCode, toCode string) error {
	if len(fromCode) < domain.MinCurrencyCodeLength || len(toCode) < domain.MinCurrencyCodeLength {
		return fmt.Errorf("%w: currency codes must be at least %d characters", apperrors.ErrValidation, domain.MinCurrencyCodeLength)
	}
	return nil
}

// GetExchangeRate resolves the rate for a currency pair.
func (s *ConverterService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	pair := domain.NewCurrencyPair(fromCode, toCode)
	if err := validateCodes(pair.From, pair.To); err != nil {
		return nil, err
	}

	rate, err := s.ledger.ResolveRate(pair.From, pair.To)
	if err != nil {
		s.LogWarn(ctx, "Exchange rate could not be resolved", slog.String("pair", pair.String()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}

	return &domain.ExchangeRate{CurrencyPair: pair, Rate: rate}, nil
}

// ListExchangeRates returns all stored rates sorted by pair.
func (s *ConverterService) ListExchangeRates(_ context.Context) ([]domain.ExchangeRate, error) {
	return s.ledger.ExchangeRates(), nil
}

// ListSupportedCurrencies returns every code present in the rate table.
func (s *ConverterService) ListSupportedCurrencies(_ context.Context) ([]string, error) {
	return s.ledger.SupportedCurrencies(), nil
}

// UpdateExchangeRate stores the rate for the ordered pair in req.
func (s *ConverterService) UpdateExchangeRate(ctx context.Context, req dto.UpdateExchangeRateRequest) (*domain.ExchangeRate, error) {
	pair := domain.NewCurrencyPair(req.FromCurrencyCode, req.ToCurrencyCode)

	if !s.ledger.UpdateRate(pair.From, pair.To, req.Rate) {
		s.metrics.RateUpdates.WithLabelValues(metrics.ResultInvalid).Inc()
		s.LogWarn(ctx, "Rejected exchange rate update", slog.String("pair", pair.String()), slog.Float64("rate", req.Rate))
		return nil, fmt.Errorf("%w: rate for %s must be a positive number and codes at least %d characters",
			apperrors.ErrValidation, pair, domain.MinCurrencyCodeLength)
	}

	s.metrics.RateUpdates.WithLabelValues(metrics.ResultSuccess).Inc()
	s.LogInfo(ctx, "Exchange rate updated", slog.String("pair", pair.String()), slog.Float64("rate", req.Rate))
	return &domain.ExchangeRate{CurrencyPair: pair, Rate: req.Rate}, nil
}

// Convert converts req.Amount, recording the result for userID when set.
func (s *ConverterService) Convert(ctx context.Context, req dto.ConvertRequest, userID string) (*domain.ConversionRecord, error) {
	record, err := s.ledger.Convert(req.Amount, req.FromCurrencyCode, req.ToCurrencyCode, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			s.metrics.Conversions.WithLabelValues(metrics.ResultInvalid).Inc()
		case errors.Is(err, apperrors.ErrNotFound):
			s.metrics.Conversions.WithLabelValues(metrics.ResultNotFound).Inc()
		}
		s.LogWarn(ctx, "Conversion failed",
			slog.String("from", req.FromCurrencyCode),
			slog.String("to", req.ToCurrencyCode),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to convert amount in service: %w", err)
	}

	s.metrics.Conversions.WithLabelValues(metrics.ResultSuccess).Inc()
	s.LogDebug(ctx, "Conversion completed",
		slog.String("from", record.FromCurrency),
		slog.String("to", record.ToCurrency),
		slog.Float64("rate", record.ExchangeRate),
		slog.Bool("recorded", userID != ""),
	)
	return &record, nil
}

// GetUserHistory returns the user's recorded conversions.
func (s *ConverterService) GetUserHistory(_ context.Context, userID string) ([]domain.ConversionRecord, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user ID is required")
	}
	return s.ledger.UserHistory(userID), nil
}

// ClearUserHistory empties the user's history, failing with ErrNotFound if there is none.
func (s *ConverterService) ClearUserHistory(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.NewValidationError("user ID is required")
	}
	if !s.ledger.ClearUserHistory(userID) {
		s.metrics.HistoryClears.WithLabelValues(metrics.ResultNotFound).Inc()
		return apperrors.NewNotFoundError(fmt.Sprintf("no conversion history for user %s", userID))
	}

	s.metrics.HistoryClears.WithLabelValues(metrics.ResultSuccess).Inc()
	s.LogInfo(ctx, "Conversion history cleared", slog.String("user_id", userID))
	return nil
}

// FormatConversion renders record with the given number of decimal places.
func (s *ConverterService) FormatConversion(_ context.Context, record domain.ConversionRecord, decimalPlaces int) string {
	return ledger.FormatResult(record, decimalPlaces)
}
