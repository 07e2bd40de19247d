package domain

import "strings"

// PivotCurrency is the intermediate currency used for cross rates when no
// direct rate is stored.
const PivotCurrency = "USD"

// MinCurrencyCodeLength is the shortest accepted currency code.
const MinCurrencyCodeLength = 3

// CurrencyPair is an ordered (from, to) pair of currency codes. It is
// comparable and used directly as a map key.
type CurrencyPair struct {
	From string `json:"fromCurrencyCode"`
	To   string `json:"toCurrencyCode"`
}

// NewCurrencyPair builds a pair with both codes upper-cased.
func NewCurrencyPair(from, to string) CurrencyPair {
	return CurrencyPair{From: NormalizeCode(from), To: NormalizeCode(to)}
}

// Reverse returns the (to, from) pair.
func (p CurrencyPair) Reverse() CurrencyPair {
	return CurrencyPair{From: p.To, To: p.From}
}

func (p CurrencyPair) String() string {
	return p.From + "/" + p.To
}

// NormalizeCode upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(code)
}

// ExchangeRate is a stored (from, to, rate) triple.
type ExchangeRate struct {
	CurrencyPair
	Rate float64 `json:"rate"`
}
