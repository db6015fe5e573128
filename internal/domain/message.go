package domain

import "time"

// Message is immutable once written. Text may be empty when a file is
// attached; a message with neither is never persisted.
type Message struct {
	ID        string    `bson:"_id" json:"id"`
	ChatID    string    `bson:"chat_id" json:"-"`
	SenderID  string    `bson:"sender_id" json:"senderId"`
	Text      string    `bson:"text" json:"text"`
	FileURL   string    `bson:"file_url,omitempty" json:"fileURL,omitempty"`
	FileName  string    `bson:"file_name,omitempty" json:"fileName,omitempty"`
	FileType  string    `bson:"file_type,omitempty" json:"fileType,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	Read      bool      `bson:"read" json:"read"`
}
