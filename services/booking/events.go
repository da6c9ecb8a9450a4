package booking

import (
	"context"

	"glowbook/models"
	"glowbook/utils"

	"go.uber.org/zap"
)

// Event types published by the booking manager.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// Event is emitted after a successful booking mutation. Persistence is
// already committed when subscribers run; a subscriber failure never
// affects the booking.
type Event struct {
	Type           string
	Booking        models.Booking
	PreviousStatus string
}

// Subscriber receives booking events. Subscribers run fire-and-forget
// on their own goroutine and must tolerate being called concurrently.
type Subscriber func(ctx context.Context, evt Event)

// Subscribe registers a subscriber for all subsequent events.
func (m *DefaultBookingManager) Subscribe(sub Subscriber) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, sub)
	m.mu.Unlock()
}

// publish fans an event out to all subscribers. Each runs detached from
// the caller's request context; panics are logged and swallowed.
func (m *DefaultBookingManager) publish(evt Event) {
	m.mu.RLock()
	subs := make([]Subscriber, len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.RUnlock()

	for _, sub := range subs {
		go func(sub Subscriber) {
			defer func() {
				if r := recover(); r != nil {
					utils.GetLogger().Error("booking: event subscriber panicked",
						zap.String("event", evt.Type),
						zap.String("bookingID", evt.Booking.ID),
						zap.Any("panic", r))
				}
			}()
			sub(context.Background(), evt)
		}(sub)
	}
}
