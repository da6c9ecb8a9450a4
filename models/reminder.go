package models

// ReminderPayload is the queued payload for a scheduled booking reminder.
type ReminderPayload struct {
	ReminderID   string `json:"reminderId"`
	BookingID    string `json:"bookingId"`
	ClientID     string `json:"clientId"`
	BusinessName string `json:"businessName"`
	FireAt       string `json:"fireAt"` // RFC 3339
	Title        string `json:"title"`
	Body         string `json:"body"`
}
