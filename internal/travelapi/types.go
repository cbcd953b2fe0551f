package travelapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price handles the remote API serializing decimal prices either as a JSON
// number or as a quoted string.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse price %q: %w", s, err)
	}
	*p = Price(val)
	return nil
}

type Offer struct {
	ID          int      `json:"id"`
	Title       string   `json:"titlu"`
	Description string   `json:"descriere"`
	Destination string   `json:"destinatie"`
	Price       Price    `json:"pret"`
	Rating      float64  `json:"rating"`
	Transport   string   `json:"transport"`
	Duration    string   `json:"durata"`
	Lodging     string   `json:"tip_cazare"`
	Seats       int      `json:"numar_locuri"`
	Facilities  string   `json:"facilitati"`
	Image       string   `json:"imagine"`
	Reviews     []Review `json:"reviews,omitempty"`
}

type Review struct {
	ID       int    `json:"id"`
	Username string `json:"user_username"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
}

type ReviewRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

type BookingRequest struct {
	NumPersons int `json:"numar_persoane"`
	OfferID    int `json:"oferta"`
}

// bookingRecord mirrors the loose upstream booking payload, older API
// versions expose the offer fields under different names.
type bookingRecord struct {
	ID               int         `json:"id"`
	NumPersons       int         `json:"numar_persoane"`
	BookedAt         string      `json:"data_rezervare"`
	OfferRef         json.Number `json:"oferta"`
	OfferID          int         `json:"oferta_id"`
	AltOfferID       int         `json:"id_oferta"`
	OfferTitle       string      `json:"oferta_titlu"`
	OfferDestination string      `json:"oferta_destinatie"`
	AltDestination   string      `json:"destinatie"`
	OfferImage       string      `json:"oferta_imagine"`
	AltImage         string      `json:"imagine"`
}

type Booking struct {
	ID          int    `json:"id"`
	NumPersons  int    `json:"numPersons"`
	BookedAt    string `json:"bookedAt"`
	OfferID     int    `json:"offerId"`
	OfferTitle  string `json:"offerTitle"`
	Destination string `json:"destination"`
	ImageURL    string `json:"imageUrl"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (b bookingRecord) normalize(mediaBaseURL string) Booking {
	booking := Booking{
		ID:          b.ID,
		NumPersons:  b.NumPersons,
		BookedAt:    b.BookedAt,
		OfferTitle:  b.OfferTitle,
		Destination: b.OfferDestination,
		ImageURL:    absoluteMediaURL(mediaBaseURL, b.OfferImage),
	}

	if booking.Destination == "" {
		booking.Destination = b.AltDestination
	}
	if b.OfferImage == "" && b.AltImage != "" {
		booking.ImageURL = absoluteMediaURL(mediaBaseURL, b.AltImage)
	}

	switch {
	case b.OfferID != 0:
		booking.OfferID = b.OfferID
	case b.AltOfferID != 0:
		booking.OfferID = b.AltOfferID
	default:
		if ref, err := b.OfferRef.Int64(); err == nil {
			booking.OfferID = int(ref)
		}
	}

	if booking.OfferTitle == "" {
		if booking.OfferID != 0 {
			booking.OfferTitle = fmt.Sprintf("Oferta %d", booking.OfferID)
		} else {
			booking.OfferTitle = "Oferta"
		}
	}

	return booking
}

func absoluteMediaURL(baseURL, url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if strings.HasPrefix(url, "/") {
		return baseURL + url
	}
	return baseURL + "/media/" + url
}
