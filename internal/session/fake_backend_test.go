package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"im-client/internal/auth"
	"im-client/internal/imtypes"
	"im-client/internal/models"

	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory social graph shared by several sessions.
type fakeBackend struct {
	mu       sync.Mutex
	users    []models.Profile
	friends  map[[2]string]bool // sorted pair
	pending  map[[2]string]bool // from, to
	messages []models.Message
	clock    time.Time

	peerCalls      int
	responderCalls int
	reply          string
	replyErr       error
}

var _ imtypes.Backend = (*fakeBackend)(nil)
var _ imtypes.ResponderGateway = (*fakeBackend)(nil)

func newFakeBackend(users ...models.Profile) *fakeBackend {
	return &fakeBackend{
		users:   users,
		friends: map[[2]string]bool{},
		pending: map[[2]string]bool{},
		clock:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func pair(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func (f *fakeBackend) user(id string) (models.Profile, bool) {
	for _, u := range f.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.Profile{}, false
}

func (f *fakeBackend) FetchFriends(_ context.Context, identity models.Identity) (imtypes.FriendsList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := imtypes.FriendsList{Friends: []models.Profile{}, Requests: []models.Profile{}}
	for _, u := range f.users {
		if f.friends[pair(identity.ID, u.ID)] {
			list.Friends = append(list.Friends, u)
		}
		if f.pending[[2]string{u.ID, identity.ID}] {
			list.Requests = append(list.Requests, u)
		}
	}
	return list, nil
}

func (f *fakeBackend) SendFriendRequest(_ context.Context, identity models.Identity, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case targetID == identity.ID:
		return imtypes.Rejection("Cannot add yourself")
	case f.friends[pair(identity.ID, targetID)]:
		return imtypes.Rejection("Already friends")
	case f.pending[[2]string{identity.ID, targetID}], f.pending[[2]string{targetID, identity.ID}]:
		return imtypes.Rejection("Request already pending")
	}
	if _, ok := f.user(targetID); !ok {
		return imtypes.Rejection("User not found")
	}
	f.pending[[2]string{identity.ID, targetID}] = true
	return nil
}

func (f *fakeBackend) RespondFriendRequest(_ context.Context, identity models.Identity, fromID string, accept bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]string{fromID, identity.ID}
	if !f.pending[key] {
		return imtypes.Rejection("No pending request")
	}
	delete(f.pending, key)
	if accept {
		f.friends[pair(fromID, identity.ID)] = true
	}
	return nil
}

func (f *fakeBackend) SearchUsers(_ context.Context, query string) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Profile
	for _, u := range f.users {
		if u.MatchesQuery(query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeBackend) ListAllUsers(context.Context) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Profile(nil), f.users...), nil
}

func (f *fakeBackend) FetchMessages(_ context.Context, identity models.Identity, counterpartID string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.peerCalls++
	var out []models.Message
	for _, m := range f.messages {
		if pair(m.SenderID, m.RecipientID) == pair(identity.ID, counterpartID) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeBackend) SendMessage(_ context.Context, identity models.Identity, recipientID, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.peerCalls++
	f.clock = f.clock.Add(time.Second)
	f.messages = append(f.messages, models.Message{
		SenderID:    identity.ID,
		RecipientID: recipientID,
		Body:        body,
		Timestamp:   f.clock,
	})
	return nil
}

func (f *fakeBackend) SendToResponder(context.Context, models.Identity, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responderCalls++
	return f.reply, f.replyErr
}

func (f *fakeBackend) Login(context.Context, string, string) (models.Identity, error) {
	return models.Identity{}, errors.New("not supported")
}

func (f *fakeBackend) Signup(context.Context, string, string, string) (models.Identity, error) {
	return models.Identity{}, errors.New("not supported")
}

func (f *fakeBackend) Logout(context.Context, models.Identity) error { return nil }

var (
	alice = models.Profile{ID: "1", DisplayName: "alice"}
	bob   = models.Profile{ID: "2", DisplayName: "bob"}
	carol = models.Profile{ID: "3", DisplayName: "carol"}
	dave  = models.Profile{ID: "4", DisplayName: "dave"}
)

func identityOf(p models.Profile) models.Identity {
	return models.Identity{Profile: p, Token: "token-" + p.ID}
}

func newTestSession(t *testing.T, p models.Profile) *auth.Session {
	t.Helper()
	s, err := auth.NewSession(context.Background(), identityOf(p), nil)
	require.NoError(t, err)
	return s
}

func newFakeController(t *testing.T, backend *fakeBackend, p models.Profile) *Controller {
	t.Helper()
	return NewController(newTestSession(t, p), GatewaysFor(backend, backend), Options{CallTimeout: time.Second})
}

func ids(profiles []models.Profile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.ID)
	}
	return out
}
