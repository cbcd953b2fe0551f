package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/tamasolah/travelair/internal/offers"
	"github.com/tamasolah/travelair/internal/telemetry/metrics"
	"github.com/tamasolah/travelair/internal/telemetry/tracing"
	"github.com/tamasolah/travelair/internal/travelapi"
	"github.com/tamasolah/travelair/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OffersHandler serves the offer listing, the offer details and posting of
// reviews.
type OffersHandler struct {
	offersService  *offers.Service
	metricsManager *metrics.Manager
}

func NewOffersHandler(offersService *offers.Service, metricsManager *metrics.Manager) *OffersHandler {
	return &OffersHandler{
		offersService:  offersService,
		metricsManager: metricsManager,
	}
}

func (handler *OffersHandler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/oferte", handler.handleList).Methods("GET", "OPTIONS").Name("list-offers")
	mainRouter.HandleFunc("/oferta/{id}", handler.handleGet).Methods("GET", "OPTIONS").Name("get-offer")
	mainRouter.HandleFunc("/oferta/{id}/recenzii", handler.handleAddReview).Methods("POST", "OPTIONS").Name("new-review")
}

// query params: ?transport=Avion&transport=Tren&pret=<1000&rating=4
func filterFromQuery(r *http.Request) offers.Filter {
	query := r.URL.Query()
	return offers.Filter{
		Transports:   query["transport"],
		PriceBuckets: query["pret"],
		Ratings:      query["rating"],
	}
}

func (handler *OffersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "offersHandler.list")
	defer span.End()

	filter := filterFromQuery(r)
	span.SetAttributes(attribute.Bool("filter.empty", filter.IsEmpty()))

	filteredOffers, err := handler.offersService.Filtered(ctx, filter)
	if err != nil {
		writeUpstreamError(w, span, err, "failed to get offers")
		return
	}

	offersBytes, err := json.Marshal(filteredOffers)
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
		log.Errorf("marshal offers error: %s", err)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, offersBytes)
}

func (handler *OffersHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "offersHandler.get")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("offer.id", id))

	offer, err := handler.offersService.Get(ctx, id)
	if err != nil {
		var apiErr *travelapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		writeUpstreamError(w, span, err, "failed to get offer")
		return
	}

	offerBytes, err := json.Marshal(offer)
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
		log.Errorf("marshal offer error: %s", err)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, offerBytes)
}

func (handler *OffersHandler) handleAddReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "offersHandler.addReview")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}

	var review travelapi.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		log.Errorf("add review, unmarshal json params: %s", err)
		http.Error(w, "invalid review", http.StatusBadRequest)
		return
	}
	if review.Rating < 1 || review.Rating > 5 {
		http.Error(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	created, err := handler.offersService.AddReview(ctx, id, review)
	if err != nil {
		writeUpstreamError(w, span, err, "failed to add review")
		return
	}

	handler.metricsManager.CounterReviews.Inc()

	createdBytes, err := json.Marshal(created)
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
		log.Errorf("marshal created review error: %s", err)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdBytes, http.StatusCreated)
}

// writeUpstreamError maps a travel API failure to the client response. A 401
// from upstream means the stored credential went stale, the session is
// already cleared by then and the client has to log in again.
func writeUpstreamError(w http.ResponseWriter, span trace.Span, err error, fallbackMsg string) {
	if errors.Is(err, travelapi.ErrUnauthorized) {
		http.Error(w, "please re-authenticate", http.StatusUnauthorized)
		return
	}

	span.SetStatus(codes.Error, fallbackMsg)
	span.RecordError(err)
	log.Errorf("%s: %s", fallbackMsg, err)

	var apiErr *travelapi.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		http.Error(w, apiErr.Detail, apiErr.StatusCode)
		return
	}
	http.Error(w, fallbackMsg, http.StatusInternalServerError)
}
