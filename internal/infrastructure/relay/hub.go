package relay

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/api/metrics"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

const sessionBuffer = 64

// Session is one attached relay subscriber. Events arrive on C until
// Unsubscribe; a slow session has events dropped rather than blocking the
// publisher (at-most-once, no replay).
type Session struct {
	Channel string
	C       chan ports.RelayEvent
}

// Hub owns the channel → session-set subscriber table. It is the single
// process-wide dispatcher: mutated on connect/disconnect, read on every
// publish. Injected into services as a ports.RelayPublisher.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Session]struct{}
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]map[*Session]struct{}),
		log:      log,
	}
}

// Subscribe attaches a new session to the given channel.
func (h *Hub) Subscribe(channel string) *Session {
	s := &Session{
		Channel: channel,
		C:       make(chan ports.RelayEvent, sessionBuffer),
	}

	h.mu.Lock()
	if h.sessions[channel] == nil {
		h.sessions[channel] = make(map[*Session]struct{})
	}
	h.sessions[channel][s] = struct{}{}
	h.mu.Unlock()

	metrics.RelaySessions.WithLabelValues(channelLabel(channel)).Inc()
	return s
}

// Unsubscribe detaches the session and closes its event channel.
func (h *Hub) Unsubscribe(s *Session) {
	h.mu.Lock()
	set, ok := h.sessions[s.Channel]
	if ok {
		if _, attached := set[s]; attached {
			delete(set, s)
			close(s.C)
		}
		if len(set) == 0 {
			delete(h.sessions, s.Channel)
		}
	}
	h.mu.Unlock()

	if ok {
		metrics.RelaySessions.WithLabelValues(channelLabel(s.Channel)).Dec()
	}
}

// Publish fans the event out to every session on the channel. Fire and
// forget: a session whose buffer is full has the event dropped, and channels
// with no subscribers discard the event entirely.
func (h *Hub) Publish(channel string, event ports.RelayEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.sessions[channel] {
		select {
		case s.C <- event:
			metrics.RelayEventsPublished.WithLabelValues(event.Name).Inc()
		default:
			metrics.RelayEventsDropped.WithLabelValues(event.Name).Inc()
			h.log.Warn().Str("channel", channel).Str("event", event.Name).Msg("relay session buffer full, event dropped")
		}
	}
}

// SubscriberCount reports the number of sessions attached to a channel.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[channel])
}

// channelLabel collapses per-user channels into one metric label value.
func channelLabel(channel string) string {
	if channel == ports.ChannelAdmin {
		return ports.ChannelAdmin
	}
	return "user"
}
