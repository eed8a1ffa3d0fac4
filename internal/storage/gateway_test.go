package storage

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"im-client/internal/auth"
	"im-client/internal/config"
	"im-client/internal/imtypes"
	"im-client/internal/mocks"
	"im-client/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var testAuth = config.AuthConfig{JWTSecretKey: "storage-secret", JWTExpiry: time.Hour}

type memUsers struct{ byID map[uint]*models.User }

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	u.ID = uint(len(m.byID) + 1)
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) GetByUsername(_ context.Context, name string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Username == name {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) GetByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := m.byID[id]; ok {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memUsers) List(ctx context.Context) ([]models.User, error) {
	ids := make([]uint, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	return m.GetByIDs(ctx, ids)
}

func (m *memUsers) Search(context.Context, string, int) ([]models.User, error) { return nil, nil }

func (m *memUsers) TouchLastSeen(_ context.Context, id uint, at time.Time) error {
	m.byID[id].LastSeenAt = &at
	return nil
}

type memRequests struct{ rows []*models.FriendRequest }

func (m *memRequests) Create(_ context.Context, r *models.FriendRequest) error {
	m.rows = append(m.rows, r)
	return nil
}

func (m *memRequests) FindPendingRequest(ctx context.Context, a, b uint) (*models.FriendRequest, error) {
	if r, _ := m.FindPendingFrom(ctx, a, b); r != nil {
		return r, nil
	}
	return m.FindPendingFrom(ctx, b, a)
}

func (m *memRequests) FindPendingFrom(_ context.Context, from, to uint) (*models.FriendRequest, error) {
	for _, r := range m.rows {
		if r.RequesterUserID == from && r.RecipientUserID == to && r.Status == models.FriendRequestStatusPending {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memRequests) GetPendingRequestsForUser(context.Context, uint) ([]models.FriendRequest, error) {
	return nil, nil
}

func (m *memRequests) Resolve(_ context.Context, r *models.FriendRequest, s models.FriendRequestStatus) error {
	r.Status = s
	return nil
}

func (m *memRequests) WithTx(*gorm.DB) FriendRequestRepository { return m }

type memFriendships struct{ rows []*models.Friendship }

func (m *memFriendships) Create(_ context.Context, f *models.Friendship) error {
	f.EnsureCanonicalOrder()
	m.rows = append(m.rows, f)
	return nil
}

func (m *memFriendships) AreUsersFriends(_ context.Context, a, b uint) (bool, error) {
	key := models.NewFriendship(a, b)
	for _, f := range m.rows {
		if f.UserID1 == key.UserID1 && f.UserID2 == key.UserID2 {
			return true, nil
		}
	}
	return false, nil
}

func (m *memFriendships) GetFriendIDs(_ context.Context, id uint) ([]uint, error) {
	var ids []uint
	for _, f := range m.rows {
		if f.UserID1 == id || f.UserID2 == id {
			ids = append(ids, f.Other(id))
		}
	}
	return ids, nil
}

func (m *memFriendships) WithTx(*gorm.DB) FriendshipRepository { return m }

type memMessages struct{ rows []models.DirectMessage }

func (m *memMessages) Create(_ context.Context, msg *models.DirectMessage) error {
	m.rows = append(m.rows, *msg)
	return nil
}

func (m *memMessages) Between(_ context.Context, a, b uint, _ int) ([]models.DirectMessage, error) {
	var out []models.DirectMessage
	for _, msg := range m.rows {
		if (msg.SenderID == a && msg.RecipientID == b) || (msg.SenderID == b && msg.RecipientID == a) {
			out = append(out, msg)
		}
	}
	return out, nil
}

type gatewayFixture struct {
	g           *Gateway
	users       *memUsers
	requests    *memRequests
	friendships *memFriendships
	messages    *memMessages
}

func newGatewayFixture(t *testing.T, blacklist auth.TokenBlacklist) gatewayFixture {
	t.Helper()
	f := gatewayFixture{
		users:       &memUsers{byID: map[uint]*models.User{}},
		requests:    &memRequests{},
		friendships: &memFriendships{},
		messages:    &memMessages{},
	}
	f.g = &Gateway{
		users:       f.users,
		requests:    f.requests,
		friendships: f.friendships,
		messages:    f.messages,
		authCfg:     testAuth,
		blacklist:   blacklist,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) },
	}
	return f
}

func (f gatewayFixture) signup(t *testing.T, name string) models.Identity {
	t.Helper()
	identity, err := f.g.Signup(context.Background(), name, "pw-"+name, "")
	require.NoError(t, err)
	return identity
}

func TestGateway_Auth(t *testing.T) {
	ctx := context.Background()

	t.Run("signup then login", func(t *testing.T) {
		req := require.New(t)
		f := newGatewayFixture(t, nil)

		created := f.signup(t, "alice")
		req.Equal("1", created.ID)
		req.Contains(created.AvatarURL, "seed=alice")
		req.NotEqual("pw-alice", f.users.byID[1].PasswordHash)

		_, err := f.g.Signup(ctx, "alice", "other", "")
		req.ErrorIs(err, ErrUsernameTaken)

		identity, err := f.g.Login(ctx, "alice", "pw-alice")
		req.NoError(err)
		req.Equal("alice", identity.DisplayName)
		req.NotNil(f.users.byID[1].LastSeenAt)

		_, err = f.g.Login(ctx, "alice", "wrong")
		req.ErrorIs(err, ErrInvalidCredentials)
		_, err = f.g.Login(ctx, "nobody", "x")
		req.ErrorIs(err, ErrInvalidCredentials)
		_, err = f.g.Login(ctx, "", "")
		req.ErrorIs(err, auth.ErrCredentialsRequired)
	})

	t.Run("token must belong to the identity", func(t *testing.T) {
		req := require.New(t)
		f := newGatewayFixture(t, nil)
		alice := f.signup(t, "alice")
		bob := f.signup(t, "bob")

		forged := bob
		forged.Token = alice.Token
		_, err := f.g.FetchFriends(ctx, forged)
		req.ErrorIs(err, ErrUnauthorized)
		req.Equal("Unauthorized", imtypes.PayloadMessage(err, "fallback"))
	})

	t.Run("logout blacklists the jti", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		blacklist := mocks.NewMockTokenBlacklist(ctrl)
		f := newGatewayFixture(t, blacklist)
		alice := f.signup(t, "alice")

		gomock.InOrder(
			blacklist.EXPECT().IsBlacklisted(gomock.Any(), gomock.Any()).Return(false, nil),
			blacklist.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			blacklist.EXPECT().IsBlacklisted(gomock.Any(), gomock.Any()).Return(true, nil),
		)

		req.NoError(f.g.Logout(ctx, alice))
		_, err := f.g.FetchFriends(ctx, alice)
		req.ErrorIs(err, auth.ErrTokenRevoked)
	})
}

func TestGateway_SendFriendRequest(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newGatewayFixture(t, nil)
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")
	carol := f.signup(t, "carol")

	req.ErrorIs(f.g.SendFriendRequest(ctx, alice, alice.ID), ErrFriendRequestSelf)
	req.ErrorIs(f.g.SendFriendRequest(ctx, alice, "99"), ErrRecipientNotFound)
	req.ErrorIs(f.g.SendFriendRequest(ctx, alice, models.ResponderID), ErrRecipientNotFound)

	req.NoError(f.g.SendFriendRequest(ctx, alice, bob.ID))
	req.ErrorIs(f.g.SendFriendRequest(ctx, alice, bob.ID), ErrFriendRequestExists)
	req.ErrorIs(f.g.SendFriendRequest(ctx, bob, alice.ID), ErrFriendRequestExists)

	req.NoError(f.friendships.Create(ctx, models.NewFriendship(3, 1)))
	req.ErrorIs(f.g.SendFriendRequest(ctx, alice, carol.ID), ErrAlreadyFriends)
	req.Len(f.requests.rows, 1)
}

func TestGateway_FetchFriends(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newGatewayFixture(t, nil)
	alice := f.signup(t, "alice")
	f.signup(t, "bob")
	f.signup(t, "carol")
	req.NoError(f.friendships.Create(ctx, models.NewFriendship(1, 3)))
	req.NoError(f.friendships.Create(ctx, models.NewFriendship(2, 1)))

	list, err := f.g.FetchFriends(ctx, alice)
	req.NoError(err)
	req.Equal([]string{"bob", "carol"}, []string{list.Friends[0].DisplayName, list.Friends[1].DisplayName})
	req.NotNil(list.Requests)
	req.Empty(list.Requests)
}

func TestGateway_Messages(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newGatewayFixture(t, nil)
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")

	req.ErrorIs(f.g.SendMessage(ctx, alice, bob.ID, "hi"), ErrNotFriends)
	req.NoError(f.friendships.Create(ctx, models.NewFriendship(1, 2)))
	req.ErrorIs(f.g.SendMessage(ctx, alice, bob.ID, "  "), ErrEmptyMessage)
	req.NoError(f.g.SendMessage(ctx, alice, bob.ID, "hi"))

	msgs, err := f.g.FetchMessages(ctx, bob, alice.ID)
	req.NoError(err)
	req.Len(msgs, 1)
	req.Equal(alice.ID, msgs[0].SenderID)
	req.Equal(bob.ID, msgs[0].RecipientID)
	req.Equal("hi", msgs[0].Body)
}

func TestPostgresDSN(t *testing.T) {
	req := require.New(t)
	cfg := config.DatabaseConfig{Host: "db", Port: 5432, User: "im", DBName: "im_client", SSLMode: "disable"}
	req.Equal("host=db port=5432 user=im dbname=im_client sslmode=disable", postgresDSN(cfg))

	cfg.Password = "pw"
	req.Contains(postgresDSN(cfg), "password=pw")
}

func TestLikePattern(t *testing.T) {
	req := require.New(t)
	req.Equal("%bob%", likePattern(" Bob "))
	req.Equal(`%50\%\_off%`, likePattern("50%_off"))
}
