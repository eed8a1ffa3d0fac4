package apiclient

import (
	"bytes"
	"encoding/json"
	"time"

	"im-client/internal/models"
)

type userPayload struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

func (u userPayload) profile() models.Profile {
	return models.Profile{
		ID:          u.ID,
		DisplayName: u.Username,
		AvatarURL:   models.AvatarFor(u.Avatar, u.Username),
	}
}

func profiles(users []userPayload) []models.Profile {
	out := make([]models.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.profile())
	}
	return out
}

// participant is a message party that the API returns either as a bare id
// or as a populated user document.
type participant struct {
	userPayload
}

func (p *participant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &p.ID)
	}
	return json.Unmarshal(data, &p.userPayload)
}

type messagePayload struct {
	ID        string      `json:"_id"`
	Sender    participant `json:"sender"`
	Recipient participant `json:"recipient"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}

func (m messagePayload) message() models.Message {
	return models.Message{
		ID:          m.ID,
		SenderID:    m.Sender.ID,
		SenderName:  m.Sender.Username,
		RecipientID: m.Recipient.ID,
		Body:        m.Message,
		Timestamp:   m.Timestamp,
	}
}

type authPayload struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (a authPayload) identity() models.Identity {
	return models.Identity{Profile: a.User.profile(), Token: a.Token}
}
