package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tamasolah/travelair/internal/offers"
	"github.com/tamasolah/travelair/internal/telemetry/metrics"
	"github.com/tamasolah/travelair/internal/travelapi"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOffersAPI struct {
	offers []travelapi.Offer
	err    error
}

func (f *fakeOffersAPI) Offers(_ context.Context) ([]travelapi.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.offers, nil
}

func (f *fakeOffersAPI) Offer(_ context.Context, id int) (*travelapi.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.offers {
		if f.offers[i].ID == id {
			return &f.offers[i], nil
		}
	}
	return nil, &travelapi.APIError{StatusCode: http.StatusNotFound, Detail: "Not found."}
}

func (f *fakeOffersAPI) AddReview(_ context.Context, offerID int, review travelapi.ReviewRequest) (*travelapi.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &travelapi.Review{ID: 55, Rating: review.Rating, Text: review.Text}, nil
}

func newTestOffersHandler(api *fakeOffersAPI) *OffersHandler {
	return NewOffersHandler(offers.NewService(api, 60), metrics.NewTestManager())
}

func TestOffersHandler_HandleList(t *testing.T) {
	api := &fakeOffersAPI{offers: []travelapi.Offer{
		{ID: 1, Title: "Sejur Creta", Transport: "Avion", Price: 900, Rating: 4},
		{ID: 2, Title: "Circuit Italia", Transport: "Autocar", Price: 1500, Rating: 4},
		{ID: 3, Title: "Croaziera", Transport: "Vapor", Price: 3200, Rating: 5},
	}}
	handler := newTestOffersHandler(api)

	req := httptest.NewRequest("GET", "/oferte", nil)
	rr := httptest.NewRecorder()
	handler.handleList(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []travelapi.Offer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 3)
}

func TestOffersHandler_HandleList_Filtered(t *testing.T) {
	api := &fakeOffersAPI{offers: []travelapi.Offer{
		{ID: 1, Title: "Sejur Creta", Transport: "Avion", Price: 900, Rating: 4},
		{ID: 2, Title: "Circuit Italia", Transport: "Autocar", Price: 1500, Rating: 4},
		{ID: 3, Title: "Croaziera", Transport: "Vapor", Price: 3200, Rating: 5},
	}}
	handler := newTestOffersHandler(api)

	req := httptest.NewRequest("GET", "/oferte?transport=Avion&transport=Vapor&rating=5", nil)
	rr := httptest.NewRecorder()
	handler.handleList(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []travelapi.Offer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestOffersHandler_HandleGet(t *testing.T) {
	api := &fakeOffersAPI{offers: []travelapi.Offer{
		{ID: 7, Title: "City break Roma", Price: 850},
	}}
	handler := newTestOffersHandler(api)

	router := mux.NewRouter()
	handler.SetupRoutes(router)

	req := httptest.NewRequest("GET", "/oferta/7", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got travelapi.Offer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "City break Roma", got.Title)

	// unknown offer
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/oferta/999", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// garbage id
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/oferta/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOffersHandler_HandleAddReview(t *testing.T) {
	api := &fakeOffersAPI{offers: []travelapi.Offer{{ID: 7}}}
	metricsManager := metrics.NewTestManager()
	handler := NewOffersHandler(offers.NewService(api, 60), metricsManager)

	router := mux.NewRouter()
	handler.SetupRoutes(router)

	body := `{"text":"super sejur","rating":5}`
	req := httptest.NewRequest("POST", "/oferta/7/recenzii", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var created travelapi.Review
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, 5, created.Rating)

	// rating out of range is rejected before reaching the API
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(
		"POST", "/oferta/7/recenzii", strings.NewReader(`{"text":"x","rating":9}`),
	))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
