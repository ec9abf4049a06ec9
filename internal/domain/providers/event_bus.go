package providers

import (
	"context"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to booking
// events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channel constants
const (
	// EventChannelBookingUpdates is the firehose channel for all booking events
	EventChannelBookingUpdates = "booking:updates"

	// EventChannelTurfPrefix is the prefix for turf-specific channels
	EventChannelTurfPrefix = "turf:"

	// EventChannelUserPrefix is the prefix for per-user notification channels
	EventChannelUserPrefix = "user:"
)

// GetTurfChannel returns the channel name for a specific turf
func GetTurfChannel(turfID string) string {
	return EventChannelTurfPrefix + turfID
}

// GetUserChannel returns the channel name for a specific user
func GetUserChannel(userID string) string {
	return EventChannelUserPrefix + userID
}
