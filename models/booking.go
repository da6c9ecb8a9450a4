package models

import "time"

// Booking status values. Transitions are validated by the booking
// service before any remote write; completed and cancelled are terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking references exactly one client, one business and one service.
// Bookings are never physically deleted; cancellation is a status change.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	ClientID        string    `bson:"client_id" json:"client_id"`
	BusinessID      string    `bson:"business_id" json:"business_id"`
	ServiceID       string    `bson:"service_id" json:"service_id"`
	AppointmentDate string    `bson:"appointment_date" json:"appointment_date"` // "YYYY-MM-DD"
	AppointmentTime string    `bson:"appointment_time" json:"appointment_time"` // "HH:MM"
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	TotalAmount     float64   `bson:"total_amount" json:"total_amount"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`

	// Joined snapshots, populated on fetch only.
	Business *Business `bson:"business,omitempty" json:"business,omitempty"`
	Service  *Service  `bson:"service,omitempty" json:"service,omitempty"`
	Client   *User     `bson:"client,omitempty" json:"client,omitempty"`
}

// BookingInput carries caller-supplied booking fields. Any status value
// supplied here is ignored: new bookings always start out pending. The
// total amount is resolved upstream (service price plus any options) and
// is not re-validated here.
type BookingInput struct {
	BusinessID      string  `json:"business_id" binding:"required"`
	ServiceID       string  `json:"service_id" binding:"required"`
	AppointmentDate string  `json:"appointment_date" binding:"required"`
	AppointmentTime string  `json:"appointment_time" binding:"required"`
	Notes           string  `json:"notes"`
	TotalAmount     float64 `json:"total_amount" binding:"required"`
	Status          string  `json:"status"`
}

// AppointmentAt combines the date and time fields into a wall-clock
// instant. The zone is the server's; appointment fields are local times.
func (b Booking) AppointmentAt() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.AppointmentDate+" "+b.AppointmentTime, time.Local)
}
