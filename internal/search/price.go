package search

// PriceRange is a named fee bucket. Min is inclusive, Max exclusive unless the bucket is unbounded.
type PriceRange struct {
	Token     string `json:"token"`
	Min       int    `json:"min"`
	Max       int    `json:"max,omitempty"`
	Unbounded bool   `json:"unbounded,omitempty"`
}

// PriceRanges is the fixed set of buckets accepted by the priceRange filter
var PriceRanges = []PriceRange{
	{Token: "0-5000", Min: 0, Max: 5000},
	{Token: "5000-10000", Min: 5000, Max: 10000},
	{Token: "10000-25000", Min: 10000, Max: 25000},
	{Token: "25000-50000", Min: 25000, Max: 50000},
	{Token: "50000-100000", Min: 50000, Max: 100000},
	{Token: "100000+", Min: 100000, Unbounded: true},
}

func ParsePriceRange(token string) (PriceRange, bool) {
	for _, pr := range PriceRanges {
		if pr.Token == token {
			return pr, true
		}
	}
	return PriceRange{}, false
}

func (p PriceRange) Contains(fee int) bool {
	if fee < p.Min {
		return false
	}
	return p.Unbounded || fee < p.Max
}
