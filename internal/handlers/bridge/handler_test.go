package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"im-client/internal/imtypes"
	"im-client/internal/mocks"
	"im-client/internal/models"
	"im-client/internal/services"
	"im-client/internal/session"
)

var (
	alice = models.Identity{Profile: models.Profile{ID: "1", DisplayName: "alice"}, Token: "opaque-token"}
	bob   = models.Profile{ID: "2", DisplayName: "bob"}
	carol = models.Profile{ID: "3", DisplayName: "carol"}
	dave  = models.Profile{ID: "4", DisplayName: "dave"}
)

type bridgeFixture struct {
	backend   *mocks.MockBackend
	responder *mocks.MockResponderGateway
	server    *httptest.Server
}

func newBridgeFixture(t *testing.T) bridgeFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := bridgeFixture{
		backend:   mocks.NewMockBackend(ctrl),
		responder: mocks.NewMockResponderGateway(ctrl),
	}
	svc := services.NewSessionService(f.backend, f.responder, nil, session.Options{Logger: logger}, logger)
	f.server = httptest.NewServer(NewRouter(svc, logger))
	t.Cleanup(f.server.Close)
	return f
}

func (f bridgeFixture) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	httpReq, err := http.NewRequestWithContext(context.Background(), method, f.server.URL+path, reader)
	require.NoError(t, err)
	resp, err := f.server.Client().Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

type readModel struct {
	Identity         models.Profile   `json:"identity"`
	Friends          []models.Profile `json:"friends"`
	IncomingRequests []models.Profile `json:"incomingRequests"`
	Selected         *models.Profile  `json:"selected"`
	State            string           `json:"state"`
	Messages         []models.Message `json:"messages"`
	Directory        []models.Profile `json:"directory"`
	Draft            string           `json:"draft"`
	Notice           *session.Notice  `json:"notice"`
}

func decodeModel(t *testing.T, raw []byte) readModel {
	t.Helper()
	var m readModel
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func (f bridgeFixture) login(t *testing.T) readModel {
	t.Helper()
	f.backend.EXPECT().Login(gomock.Any(), "alice", "secret").Return(alice, nil)
	f.backend.EXPECT().FetchFriends(gomock.Any(), gomock.Any()).
		Return(imtypes.FriendsList{Friends: []models.Profile{bob}, Requests: []models.Profile{carol}}, nil)
	f.backend.EXPECT().ListAllUsers(gomock.Any()).Return([]models.Profile{alice.Profile, bob, carol, dave}, nil)

	status, raw := f.do(t, http.MethodPost, "/auth/login", CredentialsRequest{Username: "alice", Password: "secret"})
	require.Equal(t, http.StatusOK, status, string(raw))
	return decodeModel(t, raw)
}

func TestBridge_RequiresSession(t *testing.T) {
	f := newBridgeFixture(t)
	status, raw := f.do(t, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.JSONEq(t, `{"error":"未登录"}`, string(raw))
}

func TestBridge_LoginRejected(t *testing.T) {
	f := newBridgeFixture(t)
	f.backend.EXPECT().Login(gomock.Any(), "alice", "wrong").Return(models.Identity{}, imtypes.Rejection("Invalid credentials"))

	status, raw := f.do(t, http.MethodPost, "/auth/login", CredentialsRequest{Username: "alice", Password: "wrong"})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.JSONEq(t, `{"error":"Invalid credentials"}`, string(raw))
}

func TestBridge_BadBody(t *testing.T) {
	f := newBridgeFixture(t)
	resp, err := f.server.Client().Post(f.server.URL+"/auth/login", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBridge_Session(t *testing.T) {
	req := require.New(t)
	f := newBridgeFixture(t)

	model := f.login(t)
	req.Equal("alice", model.Identity.DisplayName)
	req.Equal([]models.Profile{bob}, model.Friends)
	req.Equal([]models.Profile{carol}, model.IncomingRequests)
	req.Equal([]models.Profile{dave}, model.Directory)
	req.Equal("unselected", model.State)

	sentAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	first := models.Message{ID: "10", SenderID: "2", RecipientID: "1", Body: "hi alice", Timestamp: sentAt}
	reply := models.Message{ID: "11", SenderID: "1", RecipientID: "2", Body: "hey bob", Timestamp: sentAt.Add(time.Minute)}

	// open the conversation with bob
	f.backend.EXPECT().FetchMessages(gomock.Any(), gomock.Any(), "2").Return([]models.Message{first}, nil)
	status, raw := f.do(t, http.MethodPut, "/api/conversation", SelectRequest{ID: "2"})
	req.Equal(http.StatusOK, status, string(raw))
	model = decodeModel(t, raw)
	req.Equal("ready", model.State)
	req.Equal("bob", model.Selected.DisplayName)
	req.Len(model.Messages, 1)

	// send a message, which is persisted and refetched
	status, raw = f.do(t, http.MethodPut, "/api/draft", DraftRequest{Text: "hey bob"})
	req.Equal(http.StatusOK, status)
	req.Equal("hey bob", decodeModel(t, raw).Draft)

	gomock.InOrder(
		f.backend.EXPECT().SendMessage(gomock.Any(), gomock.Any(), "2", "hey bob").Return(nil),
		f.backend.EXPECT().FetchMessages(gomock.Any(), gomock.Any(), "2").Return([]models.Message{first, reply}, nil),
	)
	status, raw = f.do(t, http.MethodPost, "/api/messages", nil)
	req.Equal(http.StatusOK, status, string(raw))
	model = decodeModel(t, raw)
	req.Empty(model.Draft)
	req.Equal([]string{"hi alice", "hey bob"}, []string{model.Messages[0].Body, model.Messages[1].Body})

	// only friends and the responder can be opened
	status, raw = f.do(t, http.MethodPut, "/api/conversation", SelectRequest{ID: "4"})
	req.Equal(http.StatusBadRequest, status, string(raw))

	// a refused friend request surfaces the collaborator text and a notice
	f.backend.EXPECT().SendFriendRequest(gomock.Any(), gomock.Any(), "4").
		Return(imtypes.Rejection("Friend request already pending"))
	status, raw = f.do(t, http.MethodPost, "/api/friend-requests", FriendRequestPayload{UserID: "4"})
	req.Equal(http.StatusBadGateway, status)
	req.JSONEq(`{"error":"Friend request already pending"}`, string(raw))

	status, raw = f.do(t, http.MethodGet, "/api/state", nil)
	req.Equal(http.StatusOK, status)
	model = decodeModel(t, raw)
	req.NotNil(model.Notice)
	req.False(model.Notice.Success)

	status, _ = f.do(t, http.MethodDelete, "/api/notice", nil)
	req.Equal(http.StatusNoContent, status)
	_, raw = f.do(t, http.MethodGet, "/api/state", nil)
	req.Nil(decodeModel(t, raw).Notice)

	// short queries do not search
	status, raw = f.do(t, http.MethodGet, "/api/directory/search?q=d", nil)
	req.Equal(http.StatusOK, status)
	req.JSONEq(`{"query":"d","results":null}`, string(raw))

	// accepting carol refetches the graph and the directory
	f.backend.EXPECT().RespondFriendRequest(gomock.Any(), gomock.Any(), "3", true).Return(nil)
	f.backend.EXPECT().FetchFriends(gomock.Any(), gomock.Any()).
		Return(imtypes.FriendsList{Friends: []models.Profile{bob, carol}, Requests: []models.Profile{}}, nil)
	f.backend.EXPECT().ListAllUsers(gomock.Any()).Return([]models.Profile{alice.Profile, bob, carol, dave}, nil)
	status, raw = f.do(t, http.MethodPost, "/api/friend-requests/3/accept", nil)
	req.Equal(http.StatusOK, status, string(raw))
	model = decodeModel(t, raw)
	req.Equal([]models.Profile{bob, carol}, model.Friends)
	req.Empty(model.IncomingRequests)

	status, raw = f.do(t, http.MethodGet, "/api/directory", nil)
	req.Equal(http.StatusOK, status)
	req.JSONEq(`[{"id":"4","displayName":"dave"}]`, string(raw))

	// logout ends the session
	f.backend.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(nil)
	status, _ = f.do(t, http.MethodPost, "/api/auth/logout", nil)
	req.Equal(http.StatusNoContent, status)

	status, _ = f.do(t, http.MethodGet, "/api/state", nil)
	req.Equal(http.StatusUnauthorized, status)
}

func TestErrorStatus(t *testing.T) {
	req := require.New(t)

	status, msg := errorStatus(&session.CommunicationError{Operation: "send", Message: "Failed", Err: context.DeadlineExceeded})
	req.Equal(http.StatusGatewayTimeout, status)
	req.Equal("Failed", msg)

	status, _ = errorStatus(session.ErrEmptyBody)
	req.Equal(http.StatusBadRequest, status)

	status, msg = errorStatus(io.ErrUnexpectedEOF)
	req.Equal(http.StatusInternalServerError, status)
	req.Equal(session.FallbackCommunication, msg)
}

func TestBridge_ValidatesBodies(t *testing.T) {
	req := require.New(t)
	f := newBridgeFixture(t)

	status, raw := f.do(t, http.MethodPost, "/auth/login", CredentialsRequest{Password: "secret"})
	req.Equal(http.StatusBadRequest, status)
	req.JSONEq(`{"error":"username: failed required"}`, string(raw))

	status, raw = f.do(t, http.MethodPost, "/auth/signup", CredentialsRequest{Username: "alice", Password: "secret", Avatar: "not a url"})
	req.Equal(http.StatusBadRequest, status)
	req.JSONEq(`{"error":"avatar: failed url"}`, string(raw))
}
