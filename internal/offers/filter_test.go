package offers

import (
	"testing"

	"github.com/tamasolah/travelair/internal/travelapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testOffers() []travelapi.Offer {
	return []travelapi.Offer{
		{ID: 1, Title: "Sejur Creta", Transport: "Avion", Price: 999.99, Rating: 4},
		{ID: 2, Title: "Circuit Italia", Transport: "Autocar", Price: 1000, Rating: 4.5},
		{ID: 3, Title: "Croaziera Mediterana", Transport: "Vapor", Price: 3000, Rating: 5},
		{ID: 4, Title: "City break Viena", Transport: "Tren", Price: 3000.01, Rating: 4},
		{ID: 5, Title: "Sejur Mamaia", Transport: "Autocar", Price: 750, Rating: 3},
	}
}

func offerIDs(offers []travelapi.Offer) []int {
	ids := make([]int, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestFilter_Empty(t *testing.T) {
	all := testOffers()
	assert.True(t, Filter{}.IsEmpty())
	assert.Equal(t, all, Filter{}.Apply(all))
}

func TestFilter_Transport(t *testing.T) {
	all := testOffers()

	filtered := Filter{Transports: []string{"Autocar"}}.Apply(all)
	assert.Equal(t, []int{2, 5}, offerIDs(filtered))

	// multiple transports are alternatives
	filtered = Filter{Transports: []string{"Avion", "Vapor"}}.Apply(all)
	assert.Equal(t, []int{1, 3}, offerIDs(filtered))

	// matching is exact, a differently-cased value selects nothing
	filtered = Filter{Transports: []string{"avion"}}.Apply(all)
	assert.Empty(t, filtered)

	filtered = Filter{Transports: []string{"Elicopter"}}.Apply(all)
	assert.Empty(t, filtered)
}

func TestFilter_PriceBuckets(t *testing.T) {
	all := testOffers()

	testCases := []struct {
		name    string
		buckets []string
		wantIDs []int
	}{
		{
			name:    "under 1000 excludes the boundary",
			buckets: []string{PriceUnder1000},
			wantIDs: []int{1, 5},
		},
		{
			name:    "middle bucket inclusive on both ends",
			buckets: []string{Price1000To3000},
			wantIDs: []int{2, 3},
		},
		{
			name:    "over 3000 excludes the boundary",
			buckets: []string{PriceOver3000},
			wantIDs: []int{4},
		},
		{
			name:    "buckets combine as alternatives",
			buckets: []string{PriceUnder1000, PriceOver3000},
			wantIDs: []int{1, 4, 5},
		},
		{
			name:    "unknown bucket matches nothing",
			buckets: []string{"100-200"},
			wantIDs: []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filtered := Filter{PriceBuckets: tc.buckets}.Apply(all)
			assert.Equal(t, tc.wantIDs, offerIDs(filtered))
		})
	}
}

func TestFilter_Rating(t *testing.T) {
	all := testOffers()

	// exact match on the string form, "4" does not catch 4.5
	filtered := Filter{Ratings: []string{"4"}}.Apply(all)
	assert.Equal(t, []int{1, 4}, offerIDs(filtered))

	filtered = Filter{Ratings: []string{"4.5"}}.Apply(all)
	assert.Equal(t, []int{2}, offerIDs(filtered))

	filtered = Filter{Ratings: []string{"3", "5"}}.Apply(all)
	assert.Equal(t, []int{3, 5}, offerIDs(filtered))
}

func TestFilter_DimensionsConjunctive(t *testing.T) {
	all := testOffers()

	filtered := Filter{
		Transports:   []string{"Autocar"},
		PriceBuckets: []string{PriceUnder1000},
	}.Apply(all)
	require.Equal(t, []int{5}, offerIDs(filtered))

	filtered = Filter{
		Transports:   []string{"Autocar"},
		PriceBuckets: []string{PriceOver3000},
	}.Apply(all)
	assert.Empty(t, filtered)
}
