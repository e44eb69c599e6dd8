package domain

// SystemCatalog indexes system products by id for price lookups
type SystemCatalog map[string]*SystemProduct

// NewSystemCatalog builds a catalog from a product list
func NewSystemCatalog(systems []*SystemProduct) SystemCatalog {
	catalog := make(SystemCatalog, len(systems))
	for _, s := range systems {
		if s != nil {
			catalog[s.ID] = s
		}
	}
	return catalog
}

// PriceOf returns the price of the request's tier, 0 when the product no longer exists
func (c SystemCatalog) PriceOf(r *SalesRequest) int64 {
	if s, ok := c[r.SystemID]; ok {
		return s.Prices[r.SubscriptionType]
	}
	return 0
}

// CommissionOf returns the commission of the request's tier, 0 when the product no longer exists
func (c SystemCatalog) CommissionOf(r *SalesRequest) int64 {
	if s, ok := c[r.SystemID]; ok {
		return s.Commission[r.SubscriptionType]
	}
	return 0
}

// Accepted filters requests down to ACCEPTED ones
func Accepted(requests []*SalesRequest) []*SalesRequest {
	accepted := make([]*SalesRequest, 0, len(requests))
	for _, r := range requests {
		if r.Status == StatusAccepted {
			accepted = append(accepted, r)
		}
	}
	return accepted
}

// TotalRevenue sums the tier price of every accepted request
func TotalRevenue(requests []*SalesRequest, systems SystemCatalog) int64 {
	var total int64
	for _, r := range requests {
		if r.Status == StatusAccepted {
			total += systems.PriceOf(r)
		}
	}
	return total
}

// TotalCommission sums the tier commission of every accepted request
func TotalCommission(requests []*SalesRequest, systems SystemCatalog) int64 {
	var total int64
	for _, r := range requests {
		if r.Status == StatusAccepted {
			total += systems.CommissionOf(r)
		}
	}
	return total
}

// ConversionRate is the rounded percentage of accepted requests, 0 for an empty set
func ConversionRate(requests []*SalesRequest) int64 {
	if len(requests) == 0 {
		return 0
	}
	accepted := int64(len(Accepted(requests)))
	return roundDiv(100*accepted, int64(len(requests)))
}

// AverageContractValue is the rounded mean revenue per accepted request
func AverageContractValue(accepted []*SalesRequest, systems SystemCatalog) int64 {
	if len(accepted) == 0 {
		return 0
	}
	return roundDiv(TotalRevenue(accepted, systems), int64(len(accepted)))
}

// Percent is the rounded share of part in whole, 0 when whole is 0
func Percent(part, whole int) int64 {
	if whole <= 0 {
		return 0
	}
	return roundDiv(100*int64(part), int64(whole))
}

// roundDiv divides non-negative integers rounding half up
func roundDiv(num, den int64) int64 {
	return (2*num + den) / (2 * den)
}
