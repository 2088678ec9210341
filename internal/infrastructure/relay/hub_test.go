package relay

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/ports"
)

func TestHub_PublishReachesChannelSubscribers(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	adminA := hub.Subscribe(ports.ChannelAdmin)
	adminB := hub.Subscribe(ports.ChannelAdmin)
	user := hub.Subscribe(ports.UserChannel("user_1"))

	hub.Publish(ports.ChannelAdmin, ports.RelayEvent{Name: ports.EventPaymentNotification})

	for _, s := range []*Session{adminA, adminB} {
		select {
		case ev := <-s.C:
			if ev.Name != ports.EventPaymentNotification {
				t.Fatalf("unexpected event: %s", ev.Name)
			}
		default:
			t.Fatalf("admin session did not receive the event")
		}
	}

	select {
	case ev := <-user.C:
		t.Fatalf("user channel must not receive admin events, got %s", ev.Name)
	default:
	}
}

func TestHub_PublishToEmptyChannelIsDiscarded(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	// Must not panic or block.
	hub.Publish(ports.UserChannel("nobody"), ports.RelayEvent{Name: ports.EventMessageReceived})
}

func TestHub_UnsubscribeClosesSession(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	s := hub.Subscribe(ports.ChannelAdmin)

	if got := hub.SubscriberCount(ports.ChannelAdmin); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}

	hub.Unsubscribe(s)

	if got := hub.SubscriberCount(ports.ChannelAdmin); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}
	if _, ok := <-s.C; ok {
		t.Fatalf("session channel should be closed")
	}

	// A second unsubscribe is a no-op, not a double close.
	hub.Unsubscribe(s)

	hub.Publish(ports.ChannelAdmin, ports.RelayEvent{Name: ports.EventMessageReceived})
}

func TestHub_SlowSessionDropsEvents(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	s := hub.Subscribe(ports.UserChannel("user_1"))

	// Overfill the session buffer; the publisher must never block.
	for i := 0; i < sessionBuffer+10; i++ {
		hub.Publish(ports.UserChannel("user_1"), ports.RelayEvent{Name: ports.EventMessageReceived})
	}

	received := 0
	for {
		select {
		case <-s.C:
			received++
			continue
		default:
		}
		break
	}
	if received != sessionBuffer {
		t.Fatalf("expected exactly %d buffered events, got %d", sessionBuffer, received)
	}
}
