package booking

import (
	"context"

	"glowbook/models"
)

// BookingManager owns the appointment lifecycle for a user acting as
// client or business counterparty. Collection reads fail soft and keep
// the last-known-good cache; mutations propagate errors and leave the
// cache untouched on failure.
type BookingManager interface {
	FetchBookings(ctx context.Context, userID string) []models.Booking
	CreateBooking(ctx context.Context, clientID string, input models.BookingInput) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID, newStatus string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)

	Bookings() []models.Booking
	Loading() bool
	Generation() uint64
	Subscribe(sub Subscriber)
}
