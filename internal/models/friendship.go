package models

import "time"

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship is a directed edge from requester to receiver. At most one
// row exists per unordered pair regardless of direction.
type Friendship struct {
	ID          int       `db:"id" json:"id"`
	RequesterID string    `db:"requester_id" json:"requester_id"`
	ReceiverID  string    `db:"receiver_id" json:"receiver_id"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// OtherParty returns the endpoint of the edge that is not userID.
func (f Friendship) OtherParty(userID string) string {
	if f.RequesterID == userID {
		return f.ReceiverID
	}
	return f.RequesterID
}
