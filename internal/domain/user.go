package domain

import "time"

// Presence states stored on the user document. Login and logout flip the
// status; the Redis mirror expires stale "online" entries on its own.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusAway    = "away"
)

type User struct {
	ID           string    `bson:"_id" json:"uid"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	DisplayName  string    `bson:"display_name" json:"displayName"`
	PhotoURL     string    `bson:"photo_url,omitempty" json:"photoURL,omitempty"`
	Status       string    `bson:"status" json:"status"`
	LastActive   time.Time `bson:"last_active" json:"lastActive"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
