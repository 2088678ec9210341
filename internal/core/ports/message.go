package ports

import (
	"context"

	"github.com/autocarepro/autocare-api/internal/core/domain"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// ListConversation returns all messages in one conversation, oldest first.
	ListConversation(ctx context.Context, conversationID string) ([]*domain.Message, error)
	// ListUserSubmissions returns every message sent by non-admin users,
	// newest first. Backs the admin "all submissions" view.
	ListUserSubmissions(ctx context.Context) ([]*domain.Message, error)
	// MarkRead adds adminID to the message's read-receipt list.
	MarkRead(ctx context.Context, id, adminID string) error
}

// SendMessageInput carries an outgoing message. RecipientID is only honoured
// for admin senders addressing a specific user's conversation.
type SendMessageInput struct {
	Text        string
	RecipientID string
}

// MessageService defines messaging use cases.
type MessageService interface {
	Send(ctx context.Context, actor domain.Actor, in SendMessageInput) (*domain.Message, error)
	// Broadcast posts to the shared broadcast conversation. Admin only.
	Broadcast(ctx context.Context, actor domain.Actor, text string) (*domain.Message, error)
	// List returns the caller's conversation, or all user submissions for admins.
	List(ctx context.Context, actor domain.Actor) ([]*domain.Message, error)
	MarkRead(ctx context.Context, actor domain.Actor, id string) error
}
