package domain

// ConversionRecord is a snapshot of a single conversion. It is handed out by
// value and never modified after creation.
type ConversionRecord struct {
	OriginalAmount  float64 `json:"originalAmount"`
	FromCurrency    string  `json:"fromCurrency"`
	ToCurrency      string  `json:"toCurrency"`
	ConvertedAmount float64 `json:"convertedAmount"`
	ExchangeRate    float64 `json:"exchangeRate"`
	Timestamp       string  `json:"timestamp"` // fixed-width UTC, sorts chronologically
}
