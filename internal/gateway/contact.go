package gateway

import (
	"context"
	"net/http"

	"bookstore/internal/domain/model"
)

func (c *Client) SendContact(ctx context.Context, msg model.ContactMessage) error {
	return c.doJSON(ctx, http.MethodPost, "/api/contact/send", nil, authNone, msg, nil)
}
