package offers

import (
	"strconv"

	"github.com/tamasolah/travelair/internal/travelapi"
)

// Price bucket identifiers accepted by the filter.
const (
	PriceUnder1000  = "<1000"
	Price1000To3000 = "1000-3000"
	PriceOver3000   = ">3000"
)

// Transports the offers carry. Anything else in a filter simply matches
// nothing.
var KnownTransports = []string{"Autocar", "Avion", "Tren", "Vapor"}

// Filter narrows an offer list. Empty dimension means no constraint on it.
// Values within one dimension are alternatives, the dimensions themselves
// all have to match.
type Filter struct {
	Transports   []string
	PriceBuckets []string
	Ratings      []string
}

func (f Filter) IsEmpty() bool {
	return len(f.Transports) == 0 && len(f.PriceBuckets) == 0 && len(f.Ratings) == 0
}

// Apply returns the offers matching the filter, input order preserved.
func (f Filter) Apply(all []travelapi.Offer) []travelapi.Offer {
	if f.IsEmpty() {
		return all
	}

	matched := make([]travelapi.Offer, 0, len(all))
	for _, offer := range all {
		if f.matches(offer) {
			matched = append(matched, offer)
		}
	}
	return matched
}

func (f Filter) matches(offer travelapi.Offer) bool {
	if len(f.Transports) > 0 && !contains(f.Transports, offer.Transport) {
		return false
	}
	if len(f.PriceBuckets) > 0 && !matchesAnyBucket(f.PriceBuckets, float64(offer.Price)) {
		return false
	}
	if len(f.Ratings) > 0 && !containsRating(f.Ratings, offer.Rating) {
		return false
	}
	return true
}

// transport values match exactly, the filter choices come from the same
// fixed set the offers carry
func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// bucket bounds: under 1000 exclusive, the middle range inclusive on both
// ends, over 3000 exclusive
func matchesAnyBucket(buckets []string, price float64) bool {
	for _, bucket := range buckets {
		switch bucket {
		case PriceUnder1000:
			if price < 1000 {
				return true
			}
		case Price1000To3000:
			if price >= 1000 && price <= 3000 {
				return true
			}
		case PriceOver3000:
			if price > 3000 {
				return true
			}
		}
	}
	return false
}

// ratings match on the offer rating's string form, so a "4" filter selects
// offers rated exactly 4, not 4.5
func containsRating(values []string, rating float64) bool {
	ratingStr := strconv.FormatFloat(rating, 'f', -1, 64)
	for _, value := range values {
		if value == ratingStr {
			return true
		}
	}
	return false
}
