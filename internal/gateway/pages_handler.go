package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/tamasolah/travelair/internal/offers"
	"github.com/tamasolah/travelair/internal/session"
	"github.com/tamasolah/travelair/internal/telemetry/tracing"
	"github.com/tamasolah/travelair/internal/travelapi"
	"github.com/tamasolah/travelair/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// agency contact details shown on the about page
type agencyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	About   string `json:"about"`
}

var travelAirAgency = agencyInfo{
	Name:    "TravelAir",
	Address: "Str. Ion Creangă 1, București",
	Phone:   "+40 312 345 678",
	Email:   "support@travelair.ro",
	About:   "Agenție de turism cu sejururi, circuite și croaziere în toată lumea.",
}

// PagesHandler serves the page-level endpoints of the web client: the login
// root, the home page payload and the static about page.
type PagesHandler struct {
	sessionStore  *session.Store
	offersService *offers.Service
}

func NewPagesHandler(sessionStore *session.Store, offersService *offers.Service) *PagesHandler {
	return &PagesHandler{
		sessionStore:  sessionStore,
		offersService: offersService,
	}
}

func (handler *PagesHandler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/acasa", handler.handleHome).Methods("GET", "OPTIONS").Name("home")
	mainRouter.HandleFunc("/despre-noi", handler.handleAbout).Methods("GET", "OPTIONS").Name("about")
}

func (handler *PagesHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	// an authenticated visitor has no business on the login page
	if handler.sessionStore.IsAuthenticated() {
		http.Redirect(w, r, "/acasa", http.StatusFound)
		return
	}
	pkg.WriteTextResponseOK(w, "TravelAir - autentificare necesară")
}

func (handler *PagesHandler) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "pagesHandler.home")
	defer span.End()

	specialOffers, err := handler.offersService.Special(ctx)
	if err != nil {
		writeUpstreamError(w, span, err, "failed to get offers")
		return
	}

	payload := struct {
		SpecialOffers []travelapi.Offer `json:"specialOffers"`
	}{SpecialOffers: specialOffers}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
		log.Errorf("marshal home payload error: %s", err)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, payloadBytes)
}

func (handler *PagesHandler) handleAbout(w http.ResponseWriter, _ *http.Request) {
	infoBytes, err := json.Marshal(travelAirAgency)
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
		log.Errorf("marshal agency info error: %s", err)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, infoBytes)
}
