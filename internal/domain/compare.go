package domain

// CompareRequest is the payload for the compare-prices endpoint.
type CompareRequest struct {
	ProductName  string  `json:"productName"`
	CurrentPrice float64 `json:"currentPrice"`
	CurrentStore string  `json:"currentStore"`
	ProductLink  string  `json:"productLink"`
}

// PriceComparisonResult is the outcome of a price comparison. When
// HasBetterPrice is true, BestStoreLink has been verified against the
// trusted domain registry.
type PriceComparisonResult struct {
	HasBetterPrice bool     `json:"hasBetterPrice"`
	BestPrice      *float64 `json:"bestPrice,omitempty"`
	BestStore      *string  `json:"bestStore,omitempty"`
	BestStoreLink  *string  `json:"bestStoreLink,omitempty"`
	Savings        *float64 `json:"savings,omitempty"`
	TrustScore     *int     `json:"trustScore,omitempty"`
	Note           string   `json:"note"`
}

// NeutralComparison is returned whenever the comparison cannot be completed.
// Price comparison is best-effort enrichment, so failures never surface as
// errors to the caller.
func NeutralComparison() *PriceComparisonResult {
	return &PriceComparisonResult{
		HasBetterPrice: false,
		Note:           "Unable to compare prices at this time. Please check manually.",
	}
}
