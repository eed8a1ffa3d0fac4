package imtypes

import "errors"

// PayloadError is implemented by collaborator errors that carry a message
// meant for the user, such as the "error" field of a REST response body.
type PayloadError interface {
	error
	PayloadMessage() string
}

// Rejection is a business-rule refusal whose text is shown to the user as is.
type Rejection string

func (r Rejection) Error() string          { return string(r) }
func (r Rejection) PayloadMessage() string { return string(r) }

// PayloadMessage returns the user-facing text carried by err, or fallback when
// err carries none.
func PayloadMessage(err error, fallback string) string {
	var pe PayloadError
	if errors.As(err, &pe) {
		if msg := pe.PayloadMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
