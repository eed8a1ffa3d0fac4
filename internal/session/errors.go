package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"im-client/internal/imtypes"
)

// Fallback texts shown when a collaborator error carries no payload.
const (
	FallbackSendMessage   = "Failed to send message"
	FallbackFriendRequest = "Failed to send request"
	FallbackRespond       = "Failed to respond to request"
	FallbackCommunication = "Request failed"
)

// CommunicationError reports a failed collaborator call. Message is the text
// meant for the user; Err is the underlying cause.
type CommunicationError struct {
	Operation string
	Message   string
	Err       error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *CommunicationError) Unwrap() error { return e.Err }

// Timeout reports whether the call ran out of time.
func (e *CommunicationError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

func communicationError(op string, err error, fallback string) *CommunicationError {
	return &CommunicationError{
		Operation: op,
		Message:   imtypes.PayloadMessage(err, fallback),
		Err:       err,
	}
}

// ValidationError rejects an action before any call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	ErrEmptyBody     = &ValidationError{Field: "body", Reason: "message is empty"}
	ErrNoCounterpart = &ValidationError{Field: "counterpart", Reason: "no conversation selected"}
)

// UserMessage extracts the text to show for err. Validation errors are not
// meant for display and yield "".
func UserMessage(err error) string {
	var ce *CommunicationError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return ""
}

// withTimeout bounds one outbound call. A zero timeout leaves ctx as is.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
