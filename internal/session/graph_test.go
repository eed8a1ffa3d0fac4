package session

import (
	"context"
	"errors"
	"testing"

	"im-client/internal/imtypes"
	"im-client/internal/mocks"
	"im-client/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSocialGraph_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces both sets and normalises overlaps", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gw := mocks.NewMockSocialGraphGateway(ctrl)
		g := NewSocialGraph(newTestSession(t, alice), gw, Options{})

		gw.EXPECT().FetchFriends(gomock.Any(), identityOf(alice)).Return(imtypes.FriendsList{
			Friends:  []models.Profile{bob, bob, alice, models.AutomatedResponder{}.Profile()},
			Requests: []models.Profile{bob, carol},
		}, nil)

		req.NoError(g.Refresh(ctx))
		req.Equal([]string{"2"}, ids(g.Friends()))
		req.Equal([]string{"3"}, ids(g.Requests()))
	})

	t.Run("failure keeps previous sets", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gw := mocks.NewMockSocialGraphGateway(ctrl)
		g := NewSocialGraph(newTestSession(t, alice), gw, Options{})

		gomock.InOrder(
			gw.EXPECT().FetchFriends(gomock.Any(), gomock.Any()).
				Return(imtypes.FriendsList{Friends: []models.Profile{bob}, Requests: []models.Profile{carol}}, nil),
			gw.EXPECT().FetchFriends(gomock.Any(), gomock.Any()).
				Return(imtypes.FriendsList{}, errors.New("connection refused")),
		)

		req.NoError(g.Refresh(ctx))
		err := g.Refresh(ctx)

		var ce *CommunicationError
		req.ErrorAs(err, &ce)
		req.Equal("fetch friends", ce.Operation)
		req.Equal([]string{"2"}, ids(g.Friends()))
		req.Equal([]string{"3"}, ids(g.Requests()))
	})
}

func TestSocialGraph_SendRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects invalid targets without a call", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gw := mocks.NewMockSocialGraphGateway(ctrl)
		g := NewSocialGraph(newTestSession(t, alice), gw, Options{})

		for _, target := range []string{"", "  ", alice.ID, models.ResponderID} {
			var ve *ValidationError
			req.ErrorAs(g.SendRequest(ctx, target), &ve, "target %q", target)
		}
	})

	t.Run("payload error becomes the user message", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gw := mocks.NewMockSocialGraphGateway(ctrl)
		g := NewSocialGraph(newTestSession(t, alice), gw, Options{})

		gw.EXPECT().SendFriendRequest(gomock.Any(), identityOf(alice), bob.ID).
			Return(imtypes.Rejection("Request already pending"))

		err := g.SendRequest(ctx, bob.ID)
		req.Equal("Request already pending", UserMessage(err))
	})

	t.Run("bare error falls back to the generic text", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gw := mocks.NewMockSocialGraphGateway(ctrl)
		g := NewSocialGraph(newTestSession(t, alice), gw, Options{})

		gw.EXPECT().SendFriendRequest(gomock.Any(), gomock.Any(), bob.ID).Return(errors.New("EOF"))

		req.Equal(FallbackFriendRequest, UserMessage(g.SendRequest(ctx, bob.ID)))
	})
}

func TestSocialGraph_Respond(t *testing.T) {
	ctx := context.Background()

	t.Run("accept is symmetric", func(t *testing.T) {
		req := require.New(t)
		backend := newFakeBackend(alice, bob)
		ga := NewSocialGraph(newTestSession(t, alice), backend, Options{})
		gb := NewSocialGraph(newTestSession(t, bob), backend, Options{})

		req.NoError(ga.SendRequest(ctx, bob.ID))
		req.NoError(gb.Refresh(ctx))
		req.Equal([]string{alice.ID}, ids(gb.Requests()))

		req.NoError(gb.Respond(ctx, alice.ID, true))
		req.NoError(ga.Refresh(ctx))

		req.Equal([]string{alice.ID}, ids(gb.Friends()))
		req.Equal([]string{bob.ID}, ids(ga.Friends()))
		req.Empty(ga.Requests())
		req.Empty(gb.Requests())
	})

	t.Run("reject leaves friend lists alone", func(t *testing.T) {
		req := require.New(t)
		backend := newFakeBackend(alice, bob, carol)
		backend.friends[pair(alice.ID, carol.ID)] = true
		ga := NewSocialGraph(newTestSession(t, alice), backend, Options{})
		gb := NewSocialGraph(newTestSession(t, bob), backend, Options{})

		req.NoError(ga.SendRequest(ctx, bob.ID))
		req.NoError(ga.Refresh(ctx))
		req.NoError(gb.Refresh(ctx))
		friendsA, friendsB := ga.Friends(), gb.Friends()

		req.NoError(gb.Respond(ctx, alice.ID, false))
		req.NoError(ga.Refresh(ctx))

		req.Equal(friendsA, ga.Friends())
		req.Equal(friendsB, gb.Friends())
		req.Empty(gb.Requests())
	})

	t.Run("failed response skips the refresh", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gw := mocks.NewMockSocialGraphGateway(ctrl)
		g := NewSocialGraph(newTestSession(t, bob), gw, Options{})

		gw.EXPECT().RespondFriendRequest(gomock.Any(), identityOf(bob), alice.ID, true).
			Return(errors.New("timeout"))

		err := g.Respond(ctx, alice.ID, true)
		var ce *CommunicationError
		req.ErrorAs(err, &ce)
		req.Equal(FallbackRespond, ce.Message)
	})

	t.Run("refresh failure after a response keeps the previous sets", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		gw := mocks.NewMockSocialGraphGateway(ctrl)
		g := NewSocialGraph(newTestSession(t, bob), gw, Options{})

		gomock.InOrder(
			gw.EXPECT().FetchFriends(gomock.Any(), gomock.Any()).
				Return(imtypes.FriendsList{Requests: []models.Profile{alice}}, nil),
			gw.EXPECT().RespondFriendRequest(gomock.Any(), gomock.Any(), alice.ID, false).Return(nil),
			gw.EXPECT().FetchFriends(gomock.Any(), gomock.Any()).Return(imtypes.FriendsList{}, errors.New("boom")),
		)

		req.NoError(g.Refresh(ctx))
		req.NoError(g.Respond(ctx, alice.ID, false))
		req.Equal([]string{alice.ID}, ids(g.Requests()))
	})
}
