package offers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tamasolah/travelair/internal/telemetry/tracing"
	"github.com/tamasolah/travelair/internal/travelapi"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	offerListCacheKey = "offers::all"
	specialOffersMax  = 4
)

type apiClient interface {
	Offers(ctx context.Context) ([]travelapi.Offer, error)
	Offer(ctx context.Context, id int) (*travelapi.Offer, error)
	AddReview(ctx context.Context, offerID int, review travelapi.ReviewRequest) (*travelapi.Review, error)
}

// Service serves offer listings on top of the travel API, keeping the full
// list in an in-process cache so repeated filter queries do not hammer the
// remote API.
type Service struct {
	api            apiClient
	cache          *freecache.Cache
	cacheTTLSecond int
}

func NewService(api apiClient, cacheTTLSeconds int) *Service {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Service{
		api:            api,
		cache:          freecache.NewCache(cacheSize),
		cacheTTLSecond: cacheTTLSeconds,
	}
}

// All returns the full offer list, from cache when fresh.
func (s *Service) All(ctx context.Context) (offers []travelapi.Offer, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "offersService.all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if cachedBytes, err := s.cache.Get([]byte(offerListCacheKey)); err == nil {
		var cached []travelapi.Offer
		if err := json.Unmarshal(cachedBytes, &cached); err == nil {
			log.Tracef("offers list served from cache, %d offers", len(cached))
			return cached, nil
		}
		log.Errorf("failed to unmarshal cached offers list: %s", err)
	}

	offers, err = s.api.Offers(ctx)
	if err != nil {
		return nil, fmt.Errorf("get offers: %w", err)
	}

	if offersBytes, err := json.Marshal(offers); err != nil {
		log.Errorf("failed to marshal offers list for caching: %s", err)
	} else if err := s.cache.Set([]byte(offerListCacheKey), offersBytes, s.cacheTTLSecond); err != nil {
		log.Errorf("failed to cache offers list: %s", err)
	}

	return offers, nil
}

// Filtered returns the offers matching the given filter.
func (s *Service) Filtered(ctx context.Context, filter Filter) ([]travelapi.Offer, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all), nil
}

// Special returns the offers promoted on the home page, the first few of
// the full list.
func (s *Service) Special(ctx context.Context) ([]travelapi.Offer, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > specialOffersMax {
		all = all[:specialOffersMax]
	}
	return all, nil
}

// Get returns a single offer with its reviews, always fresh from the API
// since reviews change more often than the listing.
func (s *Service) Get(ctx context.Context, id int) (*travelapi.Offer, error) {
	return s.api.Offer(ctx, id)
}

// AddReview posts a review and drops the cached list so the updated rating
// shows up on the next listing.
func (s *Service) AddReview(ctx context.Context, offerID int, review travelapi.ReviewRequest) (*travelapi.Review, error) {
	created, err := s.api.AddReview(ctx, offerID, review)
	if err != nil {
		return nil, err
	}
	s.InvalidateCache()
	return created, nil
}

func (s *Service) InvalidateCache() {
	s.cache.Del([]byte(offerListCacheKey))
}
