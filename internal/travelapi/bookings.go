package travelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Bookings fetches the bookings of the authenticated user, normalized from
// the loose upstream payload.
func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "GET", "/api/rezervari/", nil, &raw); err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	records, err := decodeBookingList(raw)
	if err != nil {
		return nil, err
	}

	bookings := make([]Booking, 0, len(records))
	for _, record := range records {
		bookings = append(bookings, record.normalize(c.baseURL))
	}
	return bookings, nil
}

func decodeBookingList(raw json.RawMessage) ([]bookingRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var records []bookingRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("unmarshal bookings list: %w", err)
		}
		return records, nil
	}

	var envelope struct {
		Results []bookingRecord `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal bookings envelope: %w", err)
	}
	return envelope.Results, nil
}

// CreateBooking books an offer for the authenticated user.
func (c *Client) CreateBooking(ctx context.Context, booking BookingRequest) error {
	if booking.NumPersons < 1 {
		return fmt.Errorf("invalid number of persons: %d", booking.NumPersons)
	}
	if err := c.do(ctx, "POST", "/api/rezervari/", booking, nil); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}
