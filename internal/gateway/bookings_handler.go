package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tamasolah/travelair/internal/telemetry/metrics"
	"github.com/tamasolah/travelair/internal/telemetry/tracing"
	"github.com/tamasolah/travelair/internal/travelapi"
	"github.com/tamasolah/travelair/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=bookings_mocks_test.go -package=gateway

type bookingsClient interface {
	Bookings(ctx context.Context) ([]travelapi.Booking, error)
	CreateBooking(ctx context.Context, booking travelapi.BookingRequest) error
}

// BookingsHandler serves the bookings page and booking creation.
type BookingsHandler struct {
	api            bookingsClient
	metricsManager *metrics.Manager
}

func NewBookingsHandler(api bookingsClient, metricsManager *metrics.Manager) *BookingsHandler {
	return &BookingsHandler{
		api:            api,
		metricsManager: metricsManager,
	}
}

func (handler *BookingsHandler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/rezervarile-mele", handler.handleList).Methods("GET", "OPTIONS").Name("list-bookings")
	mainRouter.HandleFunc("/rezervari", handler.handleCreate).Methods("POST", "OPTIONS").Name("new-booking")
}

func (handler *BookingsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "bookingsHandler.list")
	defer span.End()

	bookings, err := handler.api.Bookings(ctx)
	if err != nil {
		writeUpstreamError(w, span, err, "failed to get bookings")
		return
	}

	bookingsBytes, err := json.Marshal(bookings)
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
		log.Errorf("marshal bookings error: %s", err)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, bookingsBytes)
}

func (handler *BookingsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "bookingsHandler.create")
	defer span.End()

	var booking travelapi.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		log.Errorf("create booking, unmarshal json params: %s", err)
		http.Error(w, "invalid booking", http.StatusBadRequest)
		return
	}

	if booking.NumPersons < 1 {
		http.Error(w, "error, number of persons must be at least 1", http.StatusBadRequest)
		return
	}
	if booking.OfferID < 1 {
		http.Error(w, "error, offer missing", http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.Int("booking.offer", booking.OfferID),
		attribute.Int("booking.persons", booking.NumPersons),
	)

	if err := handler.api.CreateBooking(ctx, booking); err != nil {
		writeUpstreamError(w, span, err, "failed to create booking")
		return
	}

	handler.metricsManager.CounterBookings.Inc()
	log.Tracef("new booking for offer %d created", booking.OfferID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, []byte(`{"detail":"rezervare creată"}`), http.StatusCreated)
}
