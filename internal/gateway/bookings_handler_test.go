package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tamasolah/travelair/internal/telemetry/metrics"
	"github.com/tamasolah/travelair/internal/travelapi"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBookingsHandler_HandleList(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiMock := NewMockbookingsClient(ctrl)
	handler := NewBookingsHandler(apiMock, metrics.NewTestManager())

	apiMock.EXPECT().
		Bookings(gomock.Any()).
		Return([]travelapi.Booking{
			{ID: 1, NumPersons: 2, OfferID: 7, OfferTitle: "Sejur Grecia"},
			{ID: 2, NumPersons: 1, OfferID: 9, OfferTitle: "City break Roma"},
		}, nil)

	req := httptest.NewRequest("GET", "/rezervarile-mele", nil)
	rr := httptest.NewRecorder()
	handler.handleList(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var bookings []travelapi.Booking
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bookings))
	require.Len(t, bookings, 2)
	assert.Equal(t, "Sejur Grecia", bookings[0].OfferTitle)
}

func TestBookingsHandler_HandleList_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiMock := NewMockbookingsClient(ctrl)
	handler := NewBookingsHandler(apiMock, metrics.NewTestManager())

	apiMock.EXPECT().
		Bookings(gomock.Any()).
		Return(nil, fmt.Errorf("get bookings: %w", travelapi.ErrUnauthorized))

	req := httptest.NewRequest("GET", "/rezervarile-mele", nil)
	rr := httptest.NewRecorder()
	handler.handleList(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "please re-authenticate")
}

func TestBookingsHandler_HandleCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiMock := NewMockbookingsClient(ctrl)
	metricsManager := metrics.NewTestManager()
	handler := NewBookingsHandler(apiMock, metricsManager)

	apiMock.EXPECT().
		CreateBooking(gomock.Any(), travelapi.BookingRequest{NumPersons: 2, OfferID: 7}).
		Return(nil)

	req := httptest.NewRequest("POST", "/rezervari", strings.NewReader(`{"numar_persoane":2,"oferta":7}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.handleCreate(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterBookings))
}

func TestBookingsHandler_HandleCreate_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiMock := NewMockbookingsClient(ctrl)
	handler := NewBookingsHandler(apiMock, metrics.NewTestManager())

	// no upstream call expected for invalid payloads

	testCases := []struct {
		name string
		body string
	}{
		{name: "zero persons", body: `{"numar_persoane":0,"oferta":7}`},
		{name: "missing offer", body: `{"numar_persoane":2}`},
		{name: "garbage", body: `{]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/rezervari", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			handler.handleCreate(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestBookingsHandler_HandleCreate_UpstreamDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiMock := NewMockbookingsClient(ctrl)
	handler := NewBookingsHandler(apiMock, metrics.NewTestManager())

	apiMock.EXPECT().
		CreateBooking(gomock.Any(), gomock.Any()).
		Return(&travelapi.APIError{StatusCode: http.StatusBadRequest, Detail: "locuri insuficiente"})

	req := httptest.NewRequest("POST", "/rezervari", strings.NewReader(`{"numar_persoane":20,"oferta":7}`))
	rr := httptest.NewRecorder()
	handler.handleCreate(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "locuri insuficiente")
}
