// Package responder provides a local automated responder that answers from
// a fixed set of keyword rules.
package responder

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/samber/lo"

	"im-client/internal/imtypes"
	"im-client/internal/models"
)

// Rule answers when any of its keywords appears as a word of the message.
type Rule struct {
	Name     string
	Keywords []string
	Reply    func(identity models.Identity, now time.Time) string
}

// DefaultRules are tried in order; the first match wins.
var DefaultRules = []Rule{
	{
		Name:     "greeting",
		Keywords: []string{"hello", "hi", "hey", "你好"},
		Reply: func(identity models.Identity, _ time.Time) string {
			if identity.DisplayName == "" {
				return "Hello! How can I help you today?"
			}
			return fmt.Sprintf("Hello %s! How can I help you today?", identity.DisplayName)
		},
	},
	{
		Name:     "help",
		Keywords: []string{"help", "帮助"},
		Reply: func(models.Identity, time.Time) string {
			return "Add friends from the user directory, accept their requests, then pick a friend to chat with."
		},
	},
	{
		Name:     "time",
		Keywords: []string{"time", "date"},
		Reply: func(_ models.Identity, now time.Time) string {
			return "It is " + now.Format("Monday, 2 January 2006 15:04") + "."
		},
	},
	{
		Name:     "thanks",
		Keywords: []string{"thanks", "thank", "thx", "谢谢"},
		Reply: func(models.Identity, time.Time) string {
			return "You're welcome!"
		},
	},
}

// Scripted is a ResponderGateway that never leaves the process.
type Scripted struct {
	rules []Rule
	now   func() time.Time
}

var _ imtypes.ResponderGateway = (*Scripted)(nil)

// Option configures a Scripted responder.
type Option func(*Scripted)

// WithRules replaces DefaultRules.
func WithRules(rules []Rule) Option {
	return func(s *Scripted) { s.rules = rules }
}

// WithClock overrides time.Now for the time rule.
func WithClock(now func() time.Time) Option {
	return func(s *Scripted) { s.now = now }
}

func NewScripted(opts ...Option) *Scripted {
	s := &Scripted{rules: DefaultRules, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendToResponder returns the reply of the first matching rule, or echoes
// the message back.
func (s *Scripted) SendToResponder(ctx context.Context, identity models.Identity, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	words := tokenize(body)
	for _, rule := range s.rules {
		if lo.Some(words, rule.Keywords) {
			return rule.Reply(identity, s.now()), nil
		}
	}
	return fmt.Sprintf("You said: %q. Try \"help\" to see what I can do.", strings.TrimSpace(body)), nil
}

func tokenize(body string) []string {
	return strings.FieldsFunc(strings.ToLower(body), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}
