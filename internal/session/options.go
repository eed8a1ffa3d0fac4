package session

import (
	"io"
	"log/slog"
	"time"

	"im-client/internal/config"
)

const (
	defaultCallTimeout    = 10 * time.Second
	defaultMinQueryLength = 2
	defaultFallbackReply  = "Sorry, the chatbot could not reply."
)

// Options tunes the controller and its components. Zero values fall back to
// the defaults above.
type Options struct {
	CallTimeout    time.Duration
	MinQueryLength int
	FallbackReply  string
	Clock          func() time.Time
	Logger         *slog.Logger
	Events         EventSink
}

// OptionsFromConfig maps the SESSION section onto Options.
func OptionsFromConfig(cfg config.SessionConfig, logger *slog.Logger, events EventSink) Options {
	return Options{
		CallTimeout:    cfg.CallTimeout,
		MinQueryLength: cfg.MinQueryLength,
		FallbackReply:  cfg.ResponderFallback,
		Logger:         logger,
		Events:         events,
	}
}

func (o Options) withDefaults() Options {
	if o.CallTimeout <= 0 {
		o.CallTimeout = defaultCallTimeout
	}
	if o.MinQueryLength <= 0 {
		o.MinQueryLength = defaultMinQueryLength
	}
	if o.FallbackReply == "" {
		o.FallbackReply = defaultFallbackReply
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Events == nil {
		o.Events = NopSink{}
	}
	return o
}
