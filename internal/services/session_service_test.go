package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"im-client/internal/auth"
	"im-client/internal/imtypes"
	"im-client/internal/mocks"
	"im-client/internal/models"
	"im-client/internal/session"
)

var (
	alice = models.Identity{Profile: models.Profile{ID: "1", DisplayName: "alice"}, Token: "opaque-token"}
	bob   = models.Profile{ID: "2", DisplayName: "bob"}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceFixture struct {
	backend   *mocks.MockBackend
	responder *mocks.MockResponderGateway
	store     *mocks.MockCredentialStore
}

func newServiceFixture(t *testing.T) (serviceFixture, SessionService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := serviceFixture{
		backend:   mocks.NewMockBackend(ctrl),
		responder: mocks.NewMockResponderGateway(ctrl),
		store:     mocks.NewMockCredentialStore(ctrl),
	}
	svc := NewSessionService(f.backend, f.responder, f.store, session.Options{Logger: discardLogger()}, discardLogger())
	return f, svc
}

func (f serviceFixture) expectMount() {
	f.backend.EXPECT().FetchFriends(gomock.Any(), alice).
		Return(imtypes.FriendsList{Friends: []models.Profile{bob}, Requests: []models.Profile{}}, nil)
	f.backend.EXPECT().ListAllUsers(gomock.Any()).Return([]models.Profile{alice.Profile, bob}, nil)
}

func TestSessionService_LoginMountsController(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f, svc := newServiceFixture(t)

	_, err := svc.Controller()
	req.ErrorIs(err, ErrNoSession)

	f.backend.EXPECT().Login(gomock.Any(), "alice", "secret").Return(alice, nil)
	f.store.EXPECT().Save(gomock.Any(), alice).Return(nil)
	f.expectMount()

	ctrl, err := svc.Login(ctx, "alice", "secret")
	req.NoError(err)

	current, err := svc.Controller()
	req.NoError(err)
	req.Same(ctrl, current)

	view := ctrl.Snapshot()
	req.Equal("alice", view.Identity.DisplayName)
	req.Equal([]models.Profile{bob}, view.Friends)
	req.Empty(view.Directory)
}

func TestSessionService_LoginFailure(t *testing.T) {
	req := require.New(t)
	f, svc := newServiceFixture(t)

	rejected := imtypes.Rejection("Invalid credentials")
	f.backend.EXPECT().Login(gomock.Any(), "alice", "wrong").Return(models.Identity{}, rejected)

	_, err := svc.Login(context.Background(), "alice", "wrong")
	req.ErrorIs(err, rejected)
	_, err = svc.Controller()
	req.ErrorIs(err, ErrNoSession)
}

func TestSessionService_SignupPersistFailure(t *testing.T) {
	req := require.New(t)
	f, svc := newServiceFixture(t)

	diskFull := errors.New("disk full")
	f.backend.EXPECT().Signup(gomock.Any(), "alice", "secret", "").Return(alice, nil)
	f.store.EXPECT().Save(gomock.Any(), alice).Return(diskFull)

	_, err := svc.Signup(context.Background(), "alice", "secret", "")
	req.ErrorIs(err, diskFull)
}

func TestSessionService_Restore(t *testing.T) {
	t.Run("resumes persisted credentials", func(t *testing.T) {
		req := require.New(t)
		f, svc := newServiceFixture(t)
		f.store.EXPECT().Load(gomock.Any()).Return(alice, nil)
		f.expectMount()

		ctrl, err := svc.Restore(context.Background())
		req.NoError(err)
		req.True(ctrl.Session().Active())
	})

	t.Run("nothing stored", func(t *testing.T) {
		req := require.New(t)
		f, svc := newServiceFixture(t)
		f.store.EXPECT().Load(gomock.Any()).Return(models.Identity{}, auth.ErrNoCredentials)

		_, err := svc.Restore(context.Background())
		req.ErrorIs(err, auth.ErrNoCredentials)
	})

	t.Run("without a store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewSessionService(mocks.NewMockBackend(ctrl), nil, nil, session.Options{}, discardLogger())
		_, err := svc.Restore(context.Background())
		require.ErrorIs(t, err, auth.ErrNoCredentials)
	})
}

func TestSessionService_Logout(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f, svc := newServiceFixture(t)

	f.backend.EXPECT().Login(gomock.Any(), "alice", "secret").Return(alice, nil)
	f.store.EXPECT().Save(gomock.Any(), alice).Return(nil)
	f.expectMount()
	ctrl, err := svc.Login(ctx, "alice", "secret")
	req.NoError(err)

	gomock.InOrder(
		f.backend.EXPECT().Logout(gomock.Any(), alice).Return(nil),
		f.store.EXPECT().Clear(gomock.Any()).Return(nil),
	)
	req.NoError(svc.Logout(ctx))
	req.False(ctrl.Session().Active())

	_, err = svc.Controller()
	req.ErrorIs(err, ErrNoSession)
	req.ErrorIs(svc.Logout(ctx), ErrNoSession)
}

// scopedBackend adds per-identity directory access to a mock backend.
type scopedBackend struct {
	*mocks.MockBackend
	directory *mocks.MockDirectoryGateway
	scopedTo  string
}

func (b *scopedBackend) DirectoryFor(identity models.Identity) imtypes.DirectoryGateway {
	b.scopedTo = identity.ID
	return b.directory
}

func TestSessionService_ScopedDirectory(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	backend := &scopedBackend{
		MockBackend: mocks.NewMockBackend(ctrl),
		directory:   mocks.NewMockDirectoryGateway(ctrl),
	}
	store := mocks.NewMockCredentialStore(ctrl)
	svc := NewSessionService(backend, nil, store, session.Options{}, discardLogger())

	backend.EXPECT().Login(gomock.Any(), "alice", "secret").Return(alice, nil)
	store.EXPECT().Save(gomock.Any(), alice).Return(nil)
	backend.EXPECT().FetchFriends(gomock.Any(), alice).Return(imtypes.FriendsList{}, nil)
	backend.directory.EXPECT().ListAllUsers(gomock.Any()).Return([]models.Profile{bob}, nil)

	c, err := svc.Login(context.Background(), "alice", "secret")
	req.NoError(err)
	req.Equal("1", backend.scopedTo)
	req.Equal([]models.Profile{bob}, c.Snapshot().Directory)
}
