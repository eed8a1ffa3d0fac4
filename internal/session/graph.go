package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"im-client/internal/auth"
	"im-client/internal/imtypes"
	"im-client/internal/models"

	"github.com/samber/lo"
)

// SocialGraph caches the friend list and the incoming friend requests of the
// session identity. The server is authoritative; nothing is mutated locally
// except by Refresh.
type SocialGraph struct {
	session *auth.Session
	gateway imtypes.SocialGraphGateway
	opts    Options

	mu       sync.RWMutex
	friends  []models.Profile
	requests []models.Profile
}

// NewSocialGraph creates an empty graph. Call Refresh to populate it.
func NewSocialGraph(s *auth.Session, gateway imtypes.SocialGraphGateway, opts Options) *SocialGraph {
	return &SocialGraph{session: s, gateway: gateway, opts: opts.withDefaults()}
}

// Refresh replaces both sets with the collaborator's view. On failure the
// previous sets are kept.
func (g *SocialGraph) Refresh(ctx context.Context) error {
	identity, err := g.session.Identity()
	if err != nil {
		return err
	}

	callCtx, cancel := withTimeout(ctx, g.opts.CallTimeout)
	defer cancel()
	list, err := g.gateway.FetchFriends(callCtx, identity)
	if err != nil {
		return communicationError("fetch friends", err, FallbackCommunication)
	}

	friends, requests := normaliseGraph(identity.ID, list)

	g.mu.Lock()
	g.friends = friends
	g.requests = requests
	g.mu.Unlock()
	return nil
}

// SendRequest asks the collaborator to create a pending request to targetID.
// No local request record is created.
func (g *SocialGraph) SendRequest(ctx context.Context, targetID string) error {
	identity, err := g.session.Identity()
	if err != nil {
		return err
	}
	targetID = strings.TrimSpace(targetID)
	if err := validateTarget(identity, "user id", targetID); err != nil {
		return err
	}

	callCtx, cancel := withTimeout(ctx, g.opts.CallTimeout)
	defer cancel()
	if err := g.gateway.SendFriendRequest(callCtx, identity, targetID); err != nil {
		return communicationError("send friend request", err, FallbackFriendRequest)
	}
	return nil
}

// Respond accepts or rejects the incoming request from fromID, then refreshes.
// Once the response went through, a failed refresh only keeps the previous
// sets; it is logged and not returned.
func (g *SocialGraph) Respond(ctx context.Context, fromID string, accept bool) error {
	identity, err := g.session.Identity()
	if err != nil {
		return err
	}
	fromID = strings.TrimSpace(fromID)
	if err := validateTarget(identity, "user id", fromID); err != nil {
		return err
	}

	callCtx, cancel := withTimeout(ctx, g.opts.CallTimeout)
	err = g.gateway.RespondFriendRequest(callCtx, identity, fromID, accept)
	cancel()
	if err != nil {
		return communicationError("respond to friend request", err, FallbackRespond)
	}
	if err := g.Refresh(ctx); err != nil {
		g.opts.Logger.Warn("refresh after friend request response failed",
			slog.String("from", fromID), slog.Any("error", err))
		return silent(err)
	}
	return nil
}

// Friends returns a copy of the friend list.
func (g *SocialGraph) Friends() []models.Profile {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]models.Profile(nil), g.friends...)
}

// Requests returns a copy of the incoming request list.
func (g *SocialGraph) Requests() []models.Profile {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]models.Profile(nil), g.requests...)
}

// Friend looks up a friend by id.
func (g *SocialGraph) Friend(id string) (models.Profile, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return lo.Find(g.friends, func(p models.Profile) bool { return p.ID == id })
}

// excluded returns the ids a directory view must never list.
func (g *SocialGraph) excluded(selfID string) map[string]struct{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make(map[string]struct{}, len(g.friends)+len(g.requests)+2)
	ids[selfID] = struct{}{}
	ids[models.ResponderID] = struct{}{}
	for _, p := range g.friends {
		ids[p.ID] = struct{}{}
	}
	for _, p := range g.requests {
		ids[p.ID] = struct{}{}
	}
	return ids
}

// normaliseGraph drops self, the responder id and duplicates. An id listed
// both as friend and as requester stays a friend only.
func normaliseGraph(selfID string, list imtypes.FriendsList) ([]models.Profile, []models.Profile) {
	keep := func(p models.Profile, _ int) bool {
		return p.ID != "" && p.ID != selfID && p.ID != models.ResponderID
	}
	byID := func(p models.Profile) string { return p.ID }

	friends := lo.UniqBy(lo.Filter(list.Friends, keep), byID)
	friendIDs := lo.SliceToMap(friends, func(p models.Profile) (string, struct{}) { return p.ID, struct{}{} })
	requests := lo.UniqBy(lo.Filter(list.Requests, func(p models.Profile, i int) bool {
		_, isFriend := friendIDs[p.ID]
		return keep(p, i) && !isFriend
	}), byID)
	return friends, requests
}

func validateTarget(identity models.Identity, field, id string) error {
	switch id {
	case "":
		return &ValidationError{Field: field, Reason: "is empty"}
	case identity.ID:
		return &ValidationError{Field: field, Reason: "cannot be yourself"}
	case models.ResponderID:
		return &ValidationError{Field: field, Reason: "the chatbot is not part of the social graph"}
	}
	return nil
}

func (g *SocialGraph) reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.friends = nil
	g.requests = nil
}
