package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"im-client/internal/models"
)

// FetchMessages returns the history between identity and counterpartID.
func (c *Client) FetchMessages(ctx context.Context, identity models.Identity, counterpartID string) ([]models.Message, error) {
	var payload []messagePayload
	q := url.Values{"user1": {identity.ID}, "user2": {counterpartID}}
	if err := c.doJSON(ctx, http.MethodGet, "/api/messages", q, identity.Token, nil, &payload); err != nil {
		return nil, err
	}
	msgs := make([]models.Message, 0, len(payload))
	for _, m := range payload {
		msgs = append(msgs, m.message())
	}
	return msgs, nil
}

// SendMessage persists body as a message from identity to recipientID.
func (c *Client) SendMessage(ctx context.Context, identity models.Identity, recipientID, body string) error {
	req := struct {
		Sender    string `json:"sender"`
		Recipient string `json:"recipient"`
		Message   string `json:"message"`
	}{identity.ID, recipientID, body}
	return c.doJSON(ctx, http.MethodPost, "/api/messages", nil, identity.Token, req, nil)
}

// SendToResponder asks the server-side chatbot for a reply. Nothing is stored.
func (c *Client) SendToResponder(ctx context.Context, identity models.Identity, body string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	req := map[string]string{"message": body}
	if err := c.doJSON(ctx, http.MethodPost, "/api/messages/bot", nil, identity.Token, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
