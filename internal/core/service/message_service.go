package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// MessageService implements messaging use cases. Messages are persisted
// first; relay notifications are emitted after the write and are
// fire-and-forget (disconnected admins reconcile via the list endpoint).
type MessageService struct {
	repo  ports.MessageRepository
	relay ports.RelayPublisher
	log   zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, relay ports.RelayPublisher, log zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, relay: relay, log: log}
}

func (s *MessageService) Send(ctx context.Context, actor domain.Actor, in ports.SendMessageInput) (*domain.Message, error) {
	msg := &domain.Message{
		SenderID:   actor.UserID,
		SenderRole: actor.Role,
		Text:       in.Text,
		ReadBy:     []string{},
		CreatedAt:  time.Now().UTC(),
	}

	if actor.Role == domain.RoleAdmin {
		// Admin replies land in the addressed user's conversation.
		if in.RecipientID == "" {
			return nil, domain.ErrUserNotFound
		}
		msg.RecipientID = in.RecipientID
		msg.ConversationID = in.RecipientID
	} else {
		// User submissions always live in the sender's own conversation,
		// which is what makes them visible to every admin.
		msg.ConversationID = actor.UserID
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to persist message")
		return nil, err
	}

	if actor.Role == domain.RoleAdmin {
		s.relay.Publish(ports.UserChannel(in.RecipientID), newRelayEvent(ports.EventMessageReceived, created))
	} else {
		s.relay.Publish(ports.ChannelAdmin, newRelayEvent(ports.EventMessageReceived, created))
		s.relay.Publish(ports.ChannelAdmin, newRelayEvent(ports.EventAdminSubmission, created))
	}

	return created, nil
}

func (s *MessageService) Broadcast(ctx context.Context, actor domain.Actor, text string) (*domain.Message, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	msg := &domain.Message{
		ConversationID: domain.BroadcastConversation,
		SenderID:       actor.UserID,
		SenderRole:     domain.RoleAdmin,
		Text:           text,
		ReadBy:         []string{},
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.relay.Publish(ports.ChannelAdmin, newRelayEvent(ports.EventAdminBroadcastReceived, created))

	s.log.Info().Str("message_id", created.ID).Msg("admin broadcast sent")
	return created, nil
}

func (s *MessageService) List(ctx context.Context, actor domain.Actor) ([]*domain.Message, error) {
	if actor.Role == domain.RoleAdmin {
		return s.repo.ListUserSubmissions(ctx)
	}
	return s.repo.ListConversation(ctx, actor.UserID)
}

func (s *MessageService) MarkRead(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, id, actor.UserID)
}

// newRelayEvent wraps a payload snapshot in the relay envelope.
func newRelayEvent(name string, payload any) ports.RelayEvent {
	return ports.RelayEvent{
		ID:        uuid.NewString(),
		Name:      name,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}
