package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"im-client/internal/auth"
	"im-client/internal/imtypes"
	"im-client/internal/models"
)

// ViewState is the lifecycle of the selected conversation.
type ViewState int

const (
	Unselected ViewState = iota
	Loading
	Ready
	Empty
)

func (s ViewState) String() string {
	switch s {
	case Unselected:
		return "unselected"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

func (s ViewState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Conversations owns the selected counterpart and its message history. The
// responder transcript lives only here and survives switching away from it.
type Conversations struct {
	session *auth.Session
	gateway imtypes.MessageGateway
	opts    Options

	mu         sync.RWMutex
	selected   models.Counterpart
	state      ViewState
	messages   []models.Message
	transcript []models.Message
	gen        uint64
}

func NewConversations(s *auth.Session, gateway imtypes.MessageGateway, opts Options) *Conversations {
	return &Conversations{session: s, gateway: gateway, opts: opts.withDefaults()}
}

// Select makes cp the active counterpart. A nil cp clears the selection, the
// responder shows its local transcript, and a real user is reloaded. A real
// user carrying an empty id, the session's own id or the responder id is
// rejected and the selection is left as it was.
func (c *Conversations) Select(ctx context.Context, cp models.Counterpart) error {
	cp = models.Canonical(cp)
	if u, ok := cp.(models.RealUser); ok {
		identity, err := c.session.Identity()
		if err != nil {
			return err
		}
		if err := validateTarget(identity, "counterpart", u.CounterpartID()); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.gen++
	c.selected = cp
	switch cp.(type) {
	case nil:
		c.state = Unselected
		c.messages = nil
		c.mu.Unlock()
		return nil
	case models.AutomatedResponder:
		c.state = Ready
		c.messages = append([]models.Message(nil), c.transcript...)
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.Reload(ctx)
}

// Reload refetches the history of the selected real user. Fetch failures
// leave an empty history and are only logged. The result is dropped when
// another select or reload started in the meantime.
func (c *Conversations) Reload(ctx context.Context) error {
	identity, err := c.session.Identity()
	if err != nil {
		return err
	}

	c.mu.Lock()
	cp := c.selected
	if cp == nil {
		c.mu.Unlock()
		return ErrNoCounterpart
	}
	if models.IsResponder(cp) {
		c.mu.Unlock()
		return nil
	}
	c.gen++
	gen := c.gen
	c.state = Loading
	c.mu.Unlock()

	callCtx, cancel := withTimeout(ctx, c.opts.CallTimeout)
	history, err := c.gateway.FetchMessages(callCtx, identity, cp.CounterpartID())
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || !models.SameCounterpart(cp, c.selected) {
		c.opts.Logger.Debug("discarding stale history", slog.String("counterpart", cp.CounterpartID()))
		return nil
	}
	if err != nil {
		c.opts.Logger.Warn("fetch messages failed",
			slog.String("counterpart", cp.CounterpartID()), slog.Any("error", err))
		c.messages = nil
		c.state = Empty
		return nil
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})
	c.messages = history
	c.state = Ready
	return nil
}

// Selected returns the active counterpart, or nil.
func (c *Conversations) Selected() models.Counterpart {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

func (c *Conversations) State() ViewState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Messages returns a copy of the visible history.
func (c *Conversations) Messages() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Message(nil), c.messages...)
}

// Transcript returns a copy of the responder conversation.
func (c *Conversations) Transcript() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Message(nil), c.transcript...)
}

// appendTranscript records a responder exchange message. It is mirrored into
// the visible history only while the responder is selected.
func (c *Conversations) appendTranscript(m models.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = append(c.transcript, m)
	if models.IsResponder(c.selected) {
		c.messages = append(c.messages, m)
	}
}

// Clear drops the selection and the responder transcript.
func (c *Conversations) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.selected = nil
	c.state = Unselected
	c.messages = nil
	c.transcript = nil
}
