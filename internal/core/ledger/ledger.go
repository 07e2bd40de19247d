// Package ledger holds the in-memory rate table and per-user conversion
// history, and implements rate resolution and conversion on top of them.
package ledger

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	"github.com/SscSPs/currency_converter_app/internal/utils"
)

// TimestampLayout is fixed width so that timestamps sort lexically in
// chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// DefaultDecimalPlaces is the precision FormatResult callers use when they have no preference.
const DefaultDecimalPlaces = 2

// Clock returns the current time.
type Clock func() time.Time

// DefaultRates returns the rate table a fresh ledger starts with.
func DefaultRates() []domain.ExchangeRate {
	return []domain.ExchangeRate{
		{CurrencyPair: domain.CurrencyPair{From: "USD", To: "EUR"}, Rate: 0.91},
		{CurrencyPair: domain.CurrencyPair{From: "USD", To: "GBP"}, Rate: 0.77},
		{CurrencyPair: domain.CurrencyPair{From: "EUR", To: "USD"}, Rate: 1.10},
		{CurrencyPair: domain.CurrencyPair{From: "GBP", To: "USD"}, Rate: 1.30},
	}
}

// Ledger owns the rate table and the conversion history. One lock guards
// both stores.
type Ledger struct {
	mu      sync.RWMutex
	rates   map[domain.CurrencyPair]float64
	history map[string][]domain.ConversionRecord
	clock   Clock
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the time source used for record timestamps.
func WithClock(clock Clock) Option {
	return func(l *Ledger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithRates replaces the default seed. Entries that UpdateRate would reject
// are skipped.
func WithRates(rates []domain.ExchangeRate) Option {
	return func(l *Ledger) {
		l.rates = make(map[domain.CurrencyPair]float64, len(rates))
		for _, r := range rates {
			l.setRate(r.From, r.To, r.Rate)
		}
	}
}

// New creates a Ledger seeded with DefaultRates unless WithRates is given.
func New(options ...Option) *Ledger {
	l := &Ledger{
		history: make(map[string][]domain.ConversionRecord),
		clock:   time.Now,
	}
	WithRates(DefaultRates())(l)
	for _, opt := range options {
		opt(l)
	}
	return l
}

// ResolveRate returns the multiplier that converts from into to.
//
// Codes are matched exactly as given; callers that accept user input should
// upper-case first. When no direct rate exists the rate is derived through
// PivotCurrency, inverting stored pivot rates where needed.
func (l *Ledger) ResolveRate(from, to string) (float64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.resolveRate(from, to)
}

func (l *Ledger) resolveRate(from, to string) (float64, error) {
	if from == to {
		return 1.0, nil
	}

	if rate, ok := l.rates[domain.CurrencyPair{From: from, To: to}]; ok {
		return rate, nil
	}

	pivot := domain.PivotCurrency
	if from == pivot || to == pivot {
		return 0, &apperrors.RateNotFoundError{From: from, To: to}
	}

	fromToPivot, ok := l.leg(from, pivot)
	if !ok {
		return 0, &apperrors.RateNotFoundError{From: from, To: pivot}
	}
	pivotToTo, ok := l.leg(pivot, to)
	if !ok {
		return 0, &apperrors.RateNotFoundError{From: pivot, To: to}
	}

	return fromToPivot * pivotToTo, nil
}

// leg looks up (from,to) directly, falling back to the reciprocal of (to,from).
func (l *Ledger) leg(from, to string) (float64, bool) {
	if rate, ok := l.rates[domain.CurrencyPair{From: from, To: to}]; ok {
		return rate, true
	}
	if rate, ok := l.rates[domain.CurrencyPair{From: to, To: from}]; ok {
		return 1.0 / rate, true
	}
	return 0, false
}

// Convert converts amount and, when userID is non-empty, appends the
// resulting record to that user's history.
func (l *Ledger) Convert(amount float64, from, to, userID string) (domain.ConversionRecord, error) {
	if !(amount > 0) {
		return domain.ConversionRecord{}, fmt.Errorf("%w: amount must be positive, got %v", apperrors.ErrValidation, amount)
	}

	pair := domain.NewCurrencyPair(from, to)

	l.mu.Lock()
	defer l.mu.Unlock()

	rate, err := l.resolveRate(pair.From, pair.To)
	if err != nil {
		return domain.ConversionRecord{}, err
	}

	record := domain.ConversionRecord{
		OriginalAmount:  amount,
		FromCurrency:    pair.From,
		ToCurrency:      pair.To,
		ConvertedAmount: amount * rate,
		ExchangeRate:    rate,
		Timestamp:       l.clock().UTC().Format(TimestampLayout),
	}

	if userID != "" {
		l.history[userID] = append(l.history[userID], record)
	}

	return record, nil
}

// UpdateRate stores rate for the ordered pair (from, to). It reports false
// instead of failing when a code is too short or the rate is not a positive
// finite number. The reverse pair is left untouched.
func (l *Ledger) UpdateRate(from, to string, rate float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.setRate(from, to, rate)
}

func (l *Ledger) setRate(from, to string, rate float64) bool {
	if len(from) < domain.MinCurrencyCodeLength || len(to) < domain.MinCurrencyCodeLength {
		return false
	}
	if !(rate > 0) || math.IsInf(rate, 1) {
		return false
	}
	l.rates[domain.NewCurrencyPair(from, to)] = rate
	return true
}

// UserHistory returns a copy of the user's conversions in the order they were
// made. Unknown users get an empty slice.
func (l *Ledger) UserHistory(userID string) []domain.ConversionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := l.history[userID]
	out := make([]domain.ConversionRecord, len(records))
	copy(out, records)
	return out
}

// ClearUserHistory empties an existing history and reports whether there was one.
func (l *Ledger) ClearUserHistory(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.history[userID]; !ok {
		return false
	}
	l.history[userID] = []domain.ConversionRecord{}
	return true
}

// SupportedCurrencies lists every code that appears in the rate table, sorted.
func (l *Ledger) SupportedCurrencies() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[string]struct{}, len(l.rates)*2)
	for pair := range l.rates {
		seen[pair.From] = struct{}{}
		seen[pair.To] = struct{}{}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ExchangeRates exports the rate table as triples sorted by pair.
func (l *Ledger) ExchangeRates() []domain.ExchangeRate {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rates := make([]domain.ExchangeRate, 0, len(l.rates))
	for pair, rate := range l.rates {
		rates = append(rates, domain.ExchangeRate{CurrencyPair: pair, Rate: rate})
	}
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].From != rates[j].From {
			return rates[i].From < rates[j].From
		}
		return rates[i].To < rates[j].To
	})
	return rates
}

// FormatResult renders a record as "100.00 USD = 91.00 EUR (rate: 0.91)".
// Rounding applies to the output only.
func FormatResult(record domain.ConversionRecord, decimalPlaces int) string {
	return fmt.Sprintf("%s %s = %s %s (rate: %s)",
		utils.FormatFloatWithPrecision(record.OriginalAmount, decimalPlaces),
		record.FromCurrency,
		utils.FormatFloatWithPrecision(record.ConvertedAmount, decimalPlaces),
		record.ToCurrency,
		utils.FormatFloatWithPrecision(record.ExchangeRate, decimalPlaces),
	)
}
