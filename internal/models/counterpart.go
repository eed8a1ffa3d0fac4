package models

// ResponderID is the identifier reserved for the automated responder. No real
// user may carry it.
const ResponderID = "chatbot"

const (
	responderName   = "AI Chatbot"
	responderAvatar = "https://cdn-icons-png.flaticon.com/512/4712/4712037.png"
)

// Counterpart is the other party of a conversation. The only implementations
// are RealUser and AutomatedResponder.
type Counterpart interface {
	CounterpartID() string
	Profile() Profile
	counterpart()
}

// RealUser is a counterpart backed by another user of the social graph.
type RealUser struct {
	User Profile
}

// NewRealUser wraps a profile as a counterpart.
func NewRealUser(p Profile) RealUser {
	return RealUser{User: p}
}

func (u RealUser) CounterpartID() string { return u.User.ID }
func (u RealUser) Profile() Profile      { return u.User }
func (RealUser) counterpart()            {}

// AutomatedResponder is the scripted reply channel. It is not a member of the
// social graph.
type AutomatedResponder struct{}

func (AutomatedResponder) CounterpartID() string { return ResponderID }

func (AutomatedResponder) Profile() Profile {
	return Profile{ID: ResponderID, DisplayName: responderName, AvatarURL: responderAvatar}
}

func (AutomatedResponder) counterpart() {}

// Canonical returns cp in its value form. Pointers to either variant are
// dereferenced and a nil pointer becomes a nil counterpart.
func Canonical(cp Counterpart) Counterpart {
	switch v := cp.(type) {
	case *RealUser:
		if v == nil {
			return nil
		}
		return *v
	case *AutomatedResponder:
		if v == nil {
			return nil
		}
		return AutomatedResponder{}
	}
	return cp
}

// SameCounterpart reports whether a and b denote the same party. Two nil
// counterparts are the same.
func SameCounterpart(a, b Counterpart) bool {
	a, b = Canonical(a), Canonical(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.CounterpartID() == b.CounterpartID()
}

// IsResponder reports whether cp is the automated responder.
func IsResponder(cp Counterpart) bool {
	_, ok := Canonical(cp).(AutomatedResponder)
	return ok
}
