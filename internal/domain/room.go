package domain

import "time"

type Room struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	CreatedBy   string    `bson:"created_by" json:"createdBy"`
	Members     []string  `bson:"members" json:"members"`
	IsPrivate   bool      `bson:"is_private" json:"isPrivate"`
	PhotoURL    string    `bson:"photo_url,omitempty" json:"photoURL,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// VisibleTo reports whether the viewer may see the room: public rooms are
// visible to everyone, private rooms only to members.
func (r *Room) VisibleTo(userID string) bool {
	if !r.IsPrivate {
		return true
	}
	for _, m := range r.Members {
		if m == userID {
			return true
		}
	}
	return false
}
