package models

// Profile is the denormalized copy of an account used for lookups and
// joins. A profile row exists only after the account's first sync.
type Profile struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
}

// Friend is the API view of an accepted friend. Message is nil when the
// friend has not published a secret message yet.
type Friend struct {
	ID      string  `json:"id"`
	Email   string  `json:"email"`
	Message *string `json:"message"`
}
