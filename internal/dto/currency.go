package dto

// ListCurrenciesResponse lists the currency codes known to the rate table.
type ListCurrenciesResponse struct {
	Currencies []string `json:"currencies"`
}
