package domain

import "time"

// Chat is a direct or group conversation. LastMessage is a denormalized
// copy of the most recent message, refreshed on every send; it can lag the
// messages collection if the process dies between the two writes.
type Chat struct {
	ID           string    `bson:"_id" json:"id"`
	Participants []string  `bson:"participants" json:"participants"`
	IsGroupChat  bool      `bson:"is_group_chat" json:"isGroupChat"`
	GroupName    string    `bson:"group_name,omitempty" json:"groupName,omitempty"`
	GroupPhoto   string    `bson:"group_photo,omitempty" json:"groupPhoto,omitempty"`
	LastMessage  *Message  `bson:"last_message,omitempty" json:"lastMessage,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasParticipant reports whether userID is part of the conversation.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
