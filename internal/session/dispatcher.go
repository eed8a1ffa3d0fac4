package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"im-client/internal/auth"
	"im-client/internal/imtypes"
	"im-client/internal/models"

	"github.com/google/uuid"
)

// DeliveryPolicy decides how an outgoing message becomes visible.
type DeliveryPolicy int

const (
	// PullRefetch persists the message and then refetches the history.
	PullRefetch DeliveryPolicy = iota
	// OptimisticLocal appends the message locally before the call returns.
	OptimisticLocal
)

func (p DeliveryPolicy) String() string {
	if p == OptimisticLocal {
		return "optimistic-local"
	}
	return "pull-refetch"
}

// Channel describes where messages for a counterpart go.
type Channel struct {
	Name      string
	Policy    DeliveryPolicy
	Persisted bool
}

var (
	PeerChannel      = Channel{Name: "peer", Policy: PullRefetch, Persisted: true}
	ResponderChannel = Channel{Name: "responder", Policy: OptimisticLocal, Persisted: false}
)

// ChannelFor maps a counterpart to its channel.
func ChannelFor(cp models.Counterpart) (Channel, error) {
	switch models.Canonical(cp).(type) {
	case models.RealUser:
		return PeerChannel, nil
	case models.AutomatedResponder:
		return ResponderChannel, nil
	default:
		return Channel{}, ErrNoCounterpart
	}
}

// Delivery records where a sent draft went.
type Delivery struct {
	Channel
	To models.Counterpart
}

// Dispatcher sends the draft to the selected counterpart.
type Dispatcher struct {
	session   *auth.Session
	convs     *Conversations
	peer      imtypes.MessageGateway
	responder imtypes.ResponderGateway
	opts      Options

	mu       sync.Mutex
	draft    string
	awaiting int
}

func NewDispatcher(s *auth.Session, convs *Conversations, peer imtypes.MessageGateway, responder imtypes.ResponderGateway, opts Options) *Dispatcher {
	return &Dispatcher{session: s, convs: convs, peer: peer, responder: responder, opts: opts.withDefaults()}
}

func (d *Dispatcher) SetDraft(text string) {
	d.mu.Lock()
	d.draft = text
	d.mu.Unlock()
}

func (d *Dispatcher) Draft() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

// Awaiting reports whether a responder reply is outstanding.
func (d *Dispatcher) Awaiting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.awaiting > 0
}

// Send delivers the current draft to the counterpart selected at call time
// and reports the channel and counterpart used. An empty or whitespace-only
// draft and a missing counterpart are rejected without any call.
func (d *Dispatcher) Send(ctx context.Context) (Delivery, error) {
	identity, err := d.session.Identity()
	if err != nil {
		return Delivery{}, err
	}
	body := d.Draft()
	if strings.TrimSpace(body) == "" {
		return Delivery{}, ErrEmptyBody
	}
	cp := d.convs.Selected()
	ch, err := ChannelFor(cp)
	if err != nil {
		return Delivery{}, err
	}
	sent := Delivery{Channel: ch, To: cp}

	switch ch.Policy {
	case OptimisticLocal:
		d.sendResponder(ctx, identity, body)
		return sent, nil
	default:
		return sent, d.sendPeer(ctx, identity, cp, body)
	}
}

func (d *Dispatcher) sendPeer(ctx context.Context, identity models.Identity, cp models.Counterpart, body string) error {
	callCtx, cancel := withTimeout(ctx, d.opts.CallTimeout)
	err := d.peer.SendMessage(callCtx, identity, cp.CounterpartID(), body)
	cancel()
	if err != nil {
		// draft is kept for a retry
		return communicationError("send message", err, FallbackSendMessage)
	}

	d.clearDraft(body)
	if err := d.convs.Reload(ctx); err != nil {
		d.opts.Logger.Warn("reload after send failed", slog.Any("error", err))
	}
	return nil
}

func (d *Dispatcher) sendResponder(ctx context.Context, identity models.Identity, body string) {
	d.convs.appendTranscript(models.Message{
		ID:          uuid.NewString(),
		SenderID:    models.SenderUser,
		SenderName:  identity.DisplayName,
		RecipientID: models.ResponderID,
		Body:        body,
		Timestamp:   d.opts.Clock(),
	})
	d.clearDraft(body)

	d.mu.Lock()
	d.awaiting++
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.awaiting--
		d.mu.Unlock()
	}()

	callCtx, cancel := withTimeout(ctx, d.opts.CallTimeout)
	reply, err := d.responder.SendToResponder(callCtx, identity, body)
	cancel()
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			d.opts.Logger.Warn("responder call failed", slog.Any("error", err))
		}
		reply = d.opts.FallbackReply
	}

	responder := models.AutomatedResponder{}.Profile()
	d.convs.appendTranscript(models.Message{
		ID:          uuid.NewString(),
		SenderID:    models.SenderBot,
		SenderName:  responder.DisplayName,
		RecipientID: identity.ID,
		Body:        reply,
		Timestamp:   d.opts.Clock(),
	})
}

// clearDraft clears the draft unless it was edited after sent was read.
func (d *Dispatcher) clearDraft(sent string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.draft == sent {
		d.draft = ""
	}
}

// reset drops the draft.
func (d *Dispatcher) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft = ""
}
