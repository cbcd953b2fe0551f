package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tamasolah/travelair/internal/telemetry/metrics"
	"github.com/tamasolah/travelair/internal/telemetry/tracing"
	"github.com/tamasolah/travelair/internal/travelapi"
	"github.com/tamasolah/travelair/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=contact_mocks_test.go -package=gateway

type contactClient interface {
	SendContact(ctx context.Context, contact travelapi.ContactRequest) (string, error)
}

// ContactHandler forwards contact-form messages to the travel API.
type ContactHandler struct {
	api            contactClient
	metricsManager *metrics.Manager
}

func NewContactHandler(api contactClient, metricsManager *metrics.Manager) *ContactHandler {
	return &ContactHandler{
		api:            api,
		metricsManager: metricsManager,
	}
}

func (handler *ContactHandler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/contact", handler.handleSend).Methods("POST", "OPTIONS").Name("contact")
}

func (handler *ContactHandler) handleSend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "contactHandler.send")
	defer span.End()

	var contact travelapi.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		log.Errorf("contact, unmarshal json params: %s", err)
		http.Error(w, "invalid contact message", http.StatusBadRequest)
		return
	}

	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		http.Error(w, "error, name, email and message are required", http.StatusBadRequest)
		return
	}
	if !emailRegex.MatchString(contact.Email) {
		http.Error(w, "error, email invalid", http.StatusBadRequest)
		return
	}

	detail, err := handler.api.SendContact(ctx, contact)
	if err != nil {
		writeUpstreamError(w, span, err, "failed to send contact message")
		return
	}

	handler.metricsManager.CounterContactMessages.Inc()
	log.Tracef("contact message from %s forwarded", contact.Email)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"detail": %q}`, detail))
}
