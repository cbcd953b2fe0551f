package travelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Offers fetches all travel offers. The API returns either a bare list or a
// paginated {"results": [...]} envelope, both are accepted.
func (c *Client) Offers(ctx context.Context) ([]Offer, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "GET", "/api/oferte/", nil, &raw); err != nil {
		return nil, fmt.Errorf("get offers: %w", err)
	}

	return decodeOfferList(raw)
}

func decodeOfferList(raw json.RawMessage) ([]Offer, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []Offer{}, nil
	}

	if trimmed[0] == '[' {
		var offers []Offer
		if err := json.Unmarshal(trimmed, &offers); err != nil {
			return nil, fmt.Errorf("unmarshal offers list: %w", err)
		}
		return offers, nil
	}

	var envelope struct {
		Results []Offer `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal offers envelope: %w", err)
	}
	if envelope.Results == nil {
		return []Offer{}, nil
	}
	return envelope.Results, nil
}

// Offer fetches a single offer, reviews embedded.
func (c *Client) Offer(ctx context.Context, id int) (*Offer, error) {
	var offer Offer
	if err := c.do(ctx, "GET", fmt.Sprintf("/api/oferte/%d/", id), nil, &offer); err != nil {
		return nil, fmt.Errorf("get offer %d: %w", id, err)
	}
	return &offer, nil
}

// AddReview posts a review for the given offer, authentication required.
func (c *Client) AddReview(ctx context.Context, offerID int, review ReviewRequest) (*Review, error) {
	var created Review
	path := fmt.Sprintf("/api/oferte/%d/recenzii/", offerID)
	if err := c.do(ctx, "POST", path, review, &created); err != nil {
		return nil, fmt.Errorf("add review for offer %d: %w", offerID, err)
	}
	return &created, nil
}
