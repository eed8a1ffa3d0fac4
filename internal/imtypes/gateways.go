//go:generate go run go.uber.org/mock/mockgen -source=gateways.go -destination=../mocks/mock_gateways.go -package=mocks

// Package imtypes holds the collaborator contracts the session controller
// consumes. apiclient, storage and responder implement them.
package imtypes

import (
	"context"

	"im-client/internal/models"
)

// FriendsList is the social graph of one identity at the time of the fetch.
type FriendsList struct {
	Friends  []models.Profile `json:"friends"`
	Requests []models.Profile `json:"friendRequests"`
}

// SocialGraphGateway fetches and mutates the friend graph.
type SocialGraphGateway interface {
	FetchFriends(ctx context.Context, identity models.Identity) (FriendsList, error)
	SendFriendRequest(ctx context.Context, identity models.Identity, targetID string) error
	RespondFriendRequest(ctx context.Context, identity models.Identity, fromID string, accept bool) error
}

// DirectoryGateway lists and searches users. Calls are not identity scoped.
type DirectoryGateway interface {
	SearchUsers(ctx context.Context, query string) ([]models.Profile, error)
	ListAllUsers(ctx context.Context) ([]models.Profile, error)
}

// MessageGateway persists and fetches peer messages.
type MessageGateway interface {
	// FetchMessages returns the history between identity and counterpartID,
	// ascending by timestamp.
	FetchMessages(ctx context.Context, identity models.Identity, counterpartID string) ([]models.Message, error)
	SendMessage(ctx context.Context, identity models.Identity, recipientID, body string) error
}

// ResponderGateway produces automated replies. Nothing sent here is persisted.
type ResponderGateway interface {
	SendToResponder(ctx context.Context, identity models.Identity, body string) (string, error)
}

// Authenticator issues identities and revokes them.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (models.Identity, error)
	Signup(ctx context.Context, username, password, avatarURL string) (models.Identity, error)
	Logout(ctx context.Context, identity models.Identity) error
}

// Backend bundles every collaborator a session needs.
type Backend interface {
	SocialGraphGateway
	DirectoryGateway
	MessageGateway
	Authenticator
}
