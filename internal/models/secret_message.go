package models

import "time"

// SecretMessage is the single free-text value an account may publish.
// At most one row per account, enforced by upsert on user_id.
type SecretMessage struct {
	UserID    string    `db:"user_id" json:"user_id"`
	Message   string    `db:"message" json:"message"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
