package travelapi

import (
	"context"
	"fmt"
)

// SendContact submits a contact-form message. The bearer token is attached
// when present but the endpoint accepts anonymous messages too. Returns the
// confirmation detail from the API.
func (c *Client) SendContact(ctx context.Context, contact ContactRequest) (string, error) {
	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		return "", fmt.Errorf("name, email and message are required")
	}

	var resp struct {
		Detail string `json:"detail"`
	}
	if err := c.do(ctx, "POST", "/api/contact/", contact, &resp); err != nil {
		return "", fmt.Errorf("send contact message: %w", err)
	}
	return resp.Detail, nil
}
