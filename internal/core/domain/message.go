package domain

import (
	"errors"
	"time"
)

// BroadcastConversation is the conversation id shared by admin broadcasts.
const BroadcastConversation = "broadcast"

var ErrMessageNotFound = errors.New("message not found")

// Message belongs to a conversation keyed by a user id, or by
// BroadcastConversation for admin broadcasts. Every message sent by a
// non-admin is visible to all admins regardless of relay connectivity.
type Message struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	SenderID       string    `json:"sender_id" bson:"sender_id"`
	SenderRole     string    `json:"sender_role" bson:"sender_role"`
	RecipientID    string    `json:"recipient_id,omitempty" bson:"recipient_id,omitempty"`
	Text           string    `json:"text" bson:"text"`
	ReadBy         []string  `json:"read_by" bson:"read_by"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// ReadByAdmin reports whether the given admin has marked the message read.
func (m *Message) ReadByAdmin(adminID string) bool {
	for _, id := range m.ReadBy {
		if id == adminID {
			return true
		}
	}
	return false
}
