package models

// Friendship represents a friendship relationship between two users.
// To avoid duplicates and simplify queries, UserID1 should always be less than UserID2.
type Friendship struct {
	BaseModel
	UserID1 uint `gorm:"not null;uniqueIndex:idx_friendship_users"` // ID of the first user
	UserID2 uint `gorm:"not null;uniqueIndex:idx_friendship_users"` // ID of the second user
}

// NewFriendship builds a friendship between a and b in canonical order.
func NewFriendship(a, b uint) *Friendship {
	f := &Friendship{UserID1: a, UserID2: b}
	f.EnsureCanonicalOrder()
	return f
}

// EnsureCanonicalOrder sets UserID1 to the smaller ID and UserID2 to the larger ID.
// This should be called before creating a Friendship record.
func (f *Friendship) EnsureCanonicalOrder() {
	if f.UserID1 > f.UserID2 {
		f.UserID1, f.UserID2 = f.UserID2, f.UserID1
	}
}

// Other returns the member of the friendship that is not userID.
func (f *Friendship) Other(userID uint) uint {
	if f.UserID1 == userID {
		return f.UserID2
	}
	return f.UserID1
}
