package ports

import "time"

// Relay channel names. Each connected session joins exactly one channel.
const (
	ChannelAdmin = "admin"
	// ChannelUserPrefix prefixes the private per-user channel name.
	ChannelUserPrefix = "user:"
)

// Relay event names delivered to subscribed sessions.
const (
	EventMessageReceived        = "message-received"
	EventAdminBroadcastReceived = "admin-broadcast-received"
	EventPaymentNotification    = "payment-notification"
	EventLocationUpdate         = "location-update"
	EventAdminSubmission        = "admin-submission-received"
)

// UserChannel returns the private channel name for a user id.
func UserChannel(userID string) string {
	return ChannelUserPrefix + userID
}

// RelayEvent is a denormalized snapshot of a state change, emitted after the
// triggering document write. Delivery is best-effort, at-most-once.
type RelayEvent struct {
	ID        string    `json:"id"`
	Name      string    `json:"event"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// RelayPublisher is injected into services that emit state-change
// notifications. Publish is fire-and-forget: it never blocks the caller on
// delivery and provides no acknowledgment.
type RelayPublisher interface {
	Publish(channel string, event RelayEvent)
}
