package main

// Small CLI client for the TravelAir API: log in, browse and filter offers,
// book them, post reviews and send contact messages, all from the terminal.
// The session survives between runs in the session dir.

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tamasolah/travelair/internal/localstore"
	"github.com/tamasolah/travelair/internal/offers"
	"github.com/tamasolah/travelair/internal/session"
	"github.com/tamasolah/travelair/internal/travelapi"
)

const defaultAPIBaseURL = "https://api.travelair.ro"

var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "login":
		err = cmdLogin(ctx, args)
	case "logout":
		err = cmdLogout(args)
	case "whoami":
		err = cmdWhoami(args)
	case "offers":
		err = cmdOffers(ctx, args)
	case "offer":
		err = cmdOffer(ctx, args)
	case "book":
		err = cmdBook(ctx, args)
	case "review":
		err = cmdReview(ctx, args)
	case "bookings":
		err = cmdBookings(ctx, args)
	case "contact":
		err = cmdContact(ctx, args)
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printUsage() {
	fmt.Println(`usage: travelair <command> [flags]

commands:
  login     log in and store the session
  logout    drop the stored session
  whoami    show the logged in user
  offers    list offers, with optional filters
  offer     show one offer with its reviews
  book      book an offer
  review    post a review for an offer
  bookings  list your bookings
  contact   send a contact message`)
}

// common flags shared by every subcommand
func commonFlags(fs *flag.FlagSet) (apiBaseURL, sessionDir *string) {
	defaultSessionDir := ".travelair"
	if homeDir, err := os.UserHomeDir(); err == nil {
		defaultSessionDir = filepath.Join(homeDir, ".travelair")
	}
	apiBaseURL = fs.String("api", defaultAPIBaseURL, "travel API base URL")
	sessionDir = fs.String("session-dir", defaultSessionDir, "session storage directory")
	return apiBaseURL, sessionDir
}

func newSessionAndClient(apiBaseURL, sessionDir string) (*session.Store, *travelapi.Client, error) {
	storage, err := localstore.NewStore(sessionDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open session storage: %w", err)
	}

	sessionStore := session.NewStore(
		strings.TrimSuffix(apiBaseURL, "/")+"/api/token/",
		http.DefaultClient,
		storage,
	)
	sessionStore.Initialize()

	client := travelapi.NewClient(strings.TrimSuffix(apiBaseURL, "/"), http.DefaultClient, sessionStore)
	client.OnUnauthorized(func() {
		log.Println("session expired, please log in again")
		sessionStore.Logout()
	})

	return sessionStore, client, nil
}

func cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	apiBaseURL, sessionDir := commonFlags(fs)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" || *password == "" {
		return fmt.Errorf("username, email and password are required")
	}
	if !emailRegex.MatchString(*email) {
		return fmt.Errorf("invalid email address: %s", *email)
	}

	sessionStore, _, err := newSessionAndClient(*apiBaseURL, *sessionDir)
	if err != nil {
		return err
	}

	if err := sessionStore.Login(ctx, session.Credentials{
		Username: *username,
		Email:    *email,
		Password: *password,
	}); err != nil {
		return err
	}

	log.Printf("logged in as %s", *username)
	return nil
}

func cmdLogout(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	apiBaseURL, sessionDir := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sessionStore, _, err := newSessionAndClient(*apiBaseURL, *sessionDir)
	if err != nil {
		return err
	}

	// logging out twice is fine
	sessionStore.Logout()
	log.Println("logged out")
	return nil
}

func cmdWhoami(args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	apiBaseURL, sessionDir := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sessionStore, _, err := newSessionAndClient(*apiBaseURL, *sessionDir)
	if err != nil {
		return err
	}

	if !sessionStore.IsAuthenticated() {
		log.Println("not logged in")
		return nil
	}

	user := sessionStore.User()
	log.Printf("logged in as: %s <%s>", user.Username, user.Email)

	if expiry, err := sessionStore.TokenExpiry(); err == nil {
		log.Printf("token valid until: %s", expiry.Format(time.RFC1123))
	}
	return nil
}

func cmdOffers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("offers", flag.ExitOnError)
	apiBaseURL, sessionDir := commonFlags(fs)
	transport := fs.String("transport", "", "transport filter, comma separated (Autocar,Avion,Tren,Vapor)")
	price := fs.String("price", "", "price filter, comma separated buckets (<1000, 1000-3000, >3000)")
	rating := fs.String("rating", "", "rating filter, comma separated exact ratings")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, client, err := newSessionAndClient(*apiBaseURL, *sessionDir)
	if err != nil {
		return err
	}

	all, err := client.Offers(ctx)
	if err != nil {
		return err
	}

	filter := offers.Filter{
		Transports:   splitCommaList(*transport),
		PriceBuckets: splitCommaList(*price),
		Ratings:      splitCommaList(*rating),
	}
	filtered := filter.Apply(all)

	if len(filtered) == 0 {
		log.Println("no offers found")
		return nil
	}

	for _, offer := range filtered {
		log.Printf(
			"[%d] %s - %s | %.2f EUR | %s | rating %.1f",
			offer.ID, offer.Title, offer.Destination, float64(offer.Price), offer.Transport, offer.Rating,
		)
	}
	return nil
}

func cmdOffer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("offer", flag.ExitOnError)
	apiBaseURL, sessionDir := commonFlags(fs)
	id := fs.Int("id", 0, "offer id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id < 1 {
		return fmt.Errorf("offer id is required")
	}

	_, client, err := newSessionAndClient(*apiBaseURL, *sessionDir)
	if err != nil {
		return err
	}

	offer, err := client.Offer(ctx, *id)
	if err != nil {
		return err
	}

	offerJSON, err := json.MarshalIndent(offer, "", "  ")
	if err != nil {
		return err
	}
	log.Println(string(offerJSON))
	return nil
}

func cmdBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	apiBaseURL, sessionDir := commonFlags(fs)
	id := fs.Int("id", 0, "offer id")
	persons := fs.Int("persons", 1, "number of persons")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id < 1 {
		return fmt.Errorf("offer id is required")
	}

	_, client, err := newSessionAndClient(*apiBaseURL, *sessionDir)
	if err != nil {
		return err
	}

	if err := client.CreateBooking(ctx, travelapi.BookingRequest{
		NumPersons: *persons,
		OfferID:    *id,
	}); err != nil {
		return err
	}

	log.Printf("booked offer %d for %d person(s)", *id, *persons)
	return nil
}

func cmdReview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	apiBaseURL, sessionDir := commonFlags(fs)
	id := fs.Int("id", 0, "offer id")
	rating := fs.Int("rating", 0, "rating, 1 to 5")
	text := fs.String("text", "", "review text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id < 1 {
		return fmt.Errorf("offer id is required")
	}
	if *rating < 1 || *rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	_, client, err := newSessionAndClient(*apiBaseURL, *sessionDir)
	if err != nil {
		return err
	}

	created, err := client.AddReview(ctx, *id, travelapi.ReviewRequest{
		Text:   *text,
		Rating: *rating,
	})
	if err != nil {
		return err
	}

	log.Printf("review %d posted for offer %d", created.ID, *id)
	return nil
}

func cmdBookings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bookings", flag.ExitOnError)
	apiBaseURL, sessionDir := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, client, err := newSessionAndClient(*apiBaseURL, *sessionDir)
	if err != nil {
		return err
	}

	bookings, err := client.Bookings(ctx)
	if err != nil {
		return err
	}

	if len(bookings) == 0 {
		log.Println("no bookings yet")
		return nil
	}

	for _, booking := range bookings {
		log.Printf(
			"[%d] %s (%s) | %d person(s) | booked at %s",
			booking.ID, booking.OfferTitle, booking.Destination, booking.NumPersons, booking.BookedAt,
		)
	}
	return nil
}

func cmdContact(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("contact", flag.ExitOnError)
	apiBaseURL, sessionDir := commonFlags(fs)
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email")
	phone := fs.String("phone", "", "your phone number")
	subject := fs.String("subject", "", "message subject")
	message := fs.String("message", "", "message text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, client, err := newSessionAndClient(*apiBaseURL, *sessionDir)
	if err != nil {
		return err
	}

	detail, err := client.SendContact(ctx, travelapi.ContactRequest{
		Name:    *name,
		Email:   *email,
		Phone:   *phone,
		Subject: *subject,
		Message: *message,
	})
	if err != nil {
		return err
	}

	log.Println(detail)
	return nil
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
