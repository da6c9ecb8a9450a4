package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"glowbook/database/gateway"
	"glowbook/models"
	"glowbook/utils"

	"go.uber.org/zap"
)

// bookingJoins enriches each booking row with counterparty snapshots.
var bookingJoins = []gateway.Join{
	{Table: gateway.TableBusinesses, LocalField: "business_id", As: "business"},
	{Table: gateway.TableServices, LocalField: "service_id", As: "service"},
	{Table: gateway.TableUsers, LocalField: "client_id", As: "client"},
}

// DefaultBookingManager is the production BookingManager. The cache is
// owned exclusively by the instance.
type DefaultBookingManager struct {
	Gateway gateway.Gateway

	mu          sync.RWMutex
	bookings    map[string]models.Booking
	generation  uint64
	loading     bool
	subscribers []Subscriber
}

// NewBookingManager returns a BookingManager backed by the given gateway.
func NewBookingManager(gw gateway.Gateway) *DefaultBookingManager {
	return &DefaultBookingManager{
		Gateway:  gw,
		bookings: make(map[string]models.Booking),
	}
}

// FetchBookings retrieves all bookings where the user is the client or
// the counterparty business, enriched with joined snapshots and ordered
// by appointment date ascending. Gateway failures are logged and the
// last-known-good cache is returned unchanged.
func (m *DefaultBookingManager) FetchBookings(ctx context.Context, userID string) []models.Booking {
	logger := utils.GetLogger()

	m.setLoading(true)
	defer m.setLoading(false)

	rows, err := m.Gateway.Select(ctx, gateway.TableBookings,
		gateway.Filter{"client_id": userID}, nil, bookingJoins...)
	if err != nil {
		logger.Error("booking: fetch failed, keeping cached bookings",
			zap.String("userID", userID), zap.Error(err))
		return m.Bookings()
	}

	// The user may also be the business counterparty; pick up bookings
	// against any business they own.
	bizRows, err := m.Gateway.Select(ctx, gateway.TableBusinesses,
		gateway.Filter{"owner_id": userID}, nil)
	if err != nil {
		logger.Error("booking: business lookup failed, keeping cached bookings",
			zap.String("userID", userID), zap.Error(err))
		return m.Bookings()
	}
	for _, bizRow := range bizRows {
		bizID, _ := bizRow["id"].(string)
		if bizID == "" {
			continue
		}
		more, err := m.Gateway.Select(ctx, gateway.TableBookings,
			gateway.Filter{"business_id": bizID}, nil, bookingJoins...)
		if err != nil {
			logger.Error("booking: counterparty fetch failed, keeping cached bookings",
				zap.String("businessID", bizID), zap.Error(err))
			return m.Bookings()
		}
		rows = append(rows, more...)
	}

	fetched, err := gateway.DecodeRows[models.Booking](rows)
	if err != nil {
		logger.Error("booking: decode failed, keeping cached bookings", zap.Error(err))
		return m.Bookings()
	}

	m.mu.Lock()
	m.bookings = make(map[string]models.Booking, len(fetched))
	for _, bk := range fetched {
		m.bookings[bk.ID] = bk
	}
	m.generation++
	m.mu.Unlock()

	return m.Bookings()
}

// CreateBooking inserts a booking with status forced to pending, caches
// the result and emits a booking-created event. Insert failures are
// propagated and the cache stays untouched.
func (m *DefaultBookingManager) CreateBooking(ctx context.Context, clientID string, input models.BookingInput) (*models.Booking, error) {
	row := gateway.Row{
		"client_id":        clientID,
		"business_id":      input.BusinessID,
		"service_id":       input.ServiceID,
		"appointment_date": input.AppointmentDate,
		"appointment_time": input.AppointmentTime,
		"notes":            input.Notes,
		"total_amount":     input.TotalAmount,
		// Status is forced: whatever the caller supplied is ignored.
		"status": models.BookingStatusPending,
	}

	inserted, err := m.Gateway.Insert(ctx, gateway.TableBookings, row)
	if err != nil {
		return nil, err
	}
	var bk models.Booking
	if err := gateway.DecodeRow(inserted, &bk); err != nil {
		return nil, fmt.Errorf("failed to decode inserted booking: %w", err)
	}

	m.mu.Lock()
	m.bookings[bk.ID] = bk
	m.generation++
	m.mu.Unlock()

	utils.GetLogger().Info("booking: created",
		zap.String("bookingID", bk.ID),
		zap.String("clientID", clientID),
		zap.String("businessID", bk.BusinessID))

	m.publish(Event{Type: EventBookingCreated, Booking: bk})
	return &bk, nil
}

// UpdateBookingStatus validates the transition against the booking's
// current status, then issues the remote update and replaces the cached
// entry. Joined snapshots from the cache are carried over.
func (m *DefaultBookingManager) UpdateBookingStatus(ctx context.Context, bookingID, newStatus string) (*models.Booking, error) {
	current, err := m.currentStatus(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(bookingID, current, newStatus); err != nil {
		return nil, err
	}

	updated, err := m.Gateway.Update(ctx, gateway.TableBookings, bookingID,
		gateway.Row{"status": newStatus})
	if err != nil {
		return nil, err
	}
	var bk models.Booking
	if err := gateway.DecodeRow(updated, &bk); err != nil {
		return nil, fmt.Errorf("failed to decode updated booking: %w", err)
	}

	m.mu.Lock()
	if cached, ok := m.bookings[bookingID]; ok {
		bk.Business = cached.Business
		bk.Service = cached.Service
		bk.Client = cached.Client
	}
	m.bookings[bookingID] = bk
	m.generation++
	m.mu.Unlock()

	utils.GetLogger().Info("booking: status updated",
		zap.String("bookingID", bookingID),
		zap.String("from", current),
		zap.String("to", newStatus))

	m.publish(Event{Type: EventBookingStatusChanged, Booking: bk, PreviousStatus: current})
	return &bk, nil
}

// CancelBooking transitions a booking to cancelled. Bookings are never
// physically deleted.
func (m *DefaultBookingManager) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return m.UpdateBookingStatus(ctx, bookingID, models.BookingStatusCancelled)
}

// currentStatus prefers the cached entry and falls back to a remote read
// for bookings this instance has not seen.
func (m *DefaultBookingManager) currentStatus(ctx context.Context, bookingID string) (string, error) {
	m.mu.RLock()
	cached, ok := m.bookings[bookingID]
	m.mu.RUnlock()
	if ok {
		return cached.Status, nil
	}

	rows, err := m.Gateway.Select(ctx, gateway.TableBookings, gateway.Filter{"id": bookingID}, nil)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", &gateway.NotFoundError{Table: gateway.TableBookings, ID: bookingID}
	}
	var bk models.Booking
	if err := gateway.DecodeRow(rows[0], &bk); err != nil {
		return "", fmt.Errorf("failed to decode booking %s: %w", bookingID, err)
	}
	return bk.Status, nil
}

// Bookings returns a snapshot of the cache ordered by appointment date
// ascending, time breaking ties.
func (m *DefaultBookingManager) Bookings() []models.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Booking, 0, len(m.bookings))
	for _, bk := range m.bookings {
		out = append(out, bk)
	}
	sort.Slice(out, func(i, j int) bool {
		a := out[i].AppointmentDate + " " + out[i].AppointmentTime
		b := out[j].AppointmentDate + " " + out[j].AppointmentTime
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Loading reports whether a FetchBookings call is in flight.
func (m *DefaultBookingManager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Generation returns the cache generation counter.
func (m *DefaultBookingManager) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

func (m *DefaultBookingManager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
