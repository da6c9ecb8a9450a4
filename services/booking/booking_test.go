package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"glowbook/database/gateway"
	"glowbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBookings(t *testing.T) *gateway.FakeGateway {
	t.Helper()
	gw := gateway.NewFakeGateway()
	now := time.Now()
	require.NoError(t, gw.Seed(gateway.TableUsers,
		models.User{ID: "U1", Role: models.RoleClient, FullName: "Ada Client"},
		models.User{ID: "U2", Role: models.RoleBusiness, FullName: "Bea Owner"},
	))
	require.NoError(t, gw.Seed(gateway.TableBusinesses,
		models.Business{ID: "B1", OwnerID: "U2", Name: "Shear Genius", Category: "hair"},
	))
	require.NoError(t, gw.Seed(gateway.TableServices,
		models.Service{ID: "S1", BusinessID: "B1", Name: "Haircut", Price: 40, DurationMinutes: 30, Category: "hair", IsActive: true},
	))
	require.NoError(t, gw.Seed(gateway.TableBookings,
		models.Booking{
			ID: "BK1", ClientID: "U1", BusinessID: "B1", ServiceID: "S1",
			AppointmentDate: "2026-09-20", AppointmentTime: "14:00",
			TotalAmount: 40, Status: models.BookingStatusPending, CreatedAt: now,
		},
		models.Booking{
			ID: "BK2", ClientID: "U1", BusinessID: "B1", ServiceID: "S1",
			AppointmentDate: "2026-09-05", AppointmentTime: "09:30",
			TotalAmount: 40, Status: models.BookingStatusConfirmed, CreatedAt: now,
		},
	))
	return gw
}

func TestFetchBookingsJoinedAndOrdered(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)

	got := mgr.FetchBookings(context.Background(), "U1")
	require.Len(t, got, 2)

	// Appointment date ascending.
	assert.Equal(t, "BK2", got[0].ID)
	assert.Equal(t, "BK1", got[1].ID)

	// Joined snapshots.
	require.NotNil(t, got[0].Business)
	assert.Equal(t, "Shear Genius", got[0].Business.Name)
	require.NotNil(t, got[0].Service)
	assert.Equal(t, "Haircut", got[0].Service.Name)
	require.NotNil(t, got[0].Client)
	assert.Equal(t, "Ada Client", got[0].Client.FullName)
}

func TestFetchBookingsCountsCounterpartyBusiness(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)

	// U2 is no client, but owns B1: both bookings are against it.
	got := mgr.FetchBookings(context.Background(), "U2")
	require.Len(t, got, 2)
}

func TestFetchBookingsFailsSoft(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)
	first := mgr.FetchBookings(context.Background(), "U1")
	require.Len(t, first, 2)

	gw.SelectErr = errors.New("network down")
	got := mgr.FetchBookings(context.Background(), "U1")

	// Last-known-good cache, no error surfaced, loading released.
	assert.Equal(t, first, got)
	assert.False(t, mgr.Loading())
}

func TestCreateBookingForcesPendingStatus(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)

	bk, err := mgr.CreateBooking(context.Background(), "U1", models.BookingInput{
		BusinessID:      "B1",
		ServiceID:       "S1",
		AppointmentDate: "2026-10-01",
		AppointmentTime: "11:00",
		TotalAmount:     40,
		Status:          models.BookingStatusConfirmed, // must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, bk.Status)
	assert.NotEmpty(t, bk.ID)

	cached := mgr.Bookings()
	require.Len(t, cached, 1)
	assert.Equal(t, models.BookingStatusPending, cached[0].Status)
}

func TestCreateBookingFailureLeavesCacheUntouched(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)
	mgr.FetchBookings(context.Background(), "U1")
	before := mgr.Bookings()

	gw.InsertErr = errors.New("boom")
	_, err := mgr.CreateBooking(context.Background(), "U1", models.BookingInput{
		BusinessID: "B1", ServiceID: "S1",
		AppointmentDate: "2026-10-01", AppointmentTime: "11:00", TotalAmount: 40,
	})
	var gwErr *gateway.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, before, mgr.Bookings())
}

func TestCreateBookingEmitsEvent(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)

	events := make(chan Event, 1)
	mgr.Subscribe(func(ctx context.Context, evt Event) {
		events <- evt
	})

	bk, err := mgr.CreateBooking(context.Background(), "U1", models.BookingInput{
		BusinessID: "B1", ServiceID: "S1",
		AppointmentDate: "2026-10-01", AppointmentTime: "11:00", TotalAmount: 40,
	})
	require.NoError(t, err)

	select {
	case evt := <-events:
		assert.Equal(t, EventBookingCreated, evt.Type)
		assert.Equal(t, bk.ID, evt.Booking.ID)
	case <-time.After(time.Second):
		t.Fatal("expected a booking-created event")
	}
}

func TestCreateBookingFailureEmitsNoEvent(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)

	events := make(chan Event, 1)
	mgr.Subscribe(func(ctx context.Context, evt Event) {
		events <- evt
	})

	gw.InsertErr = errors.New("boom")
	_, err := mgr.CreateBooking(context.Background(), "U1", models.BookingInput{
		BusinessID: "B1", ServiceID: "S1",
		AppointmentDate: "2026-10-01", AppointmentTime: "11:00", TotalAmount: 40,
	})
	require.Error(t, err)

	select {
	case evt := <-events:
		t.Fatalf("unexpected event %q after failed create", evt.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)
	mgr.FetchBookings(context.Background(), "U1")

	bk, err := mgr.UpdateBookingStatus(context.Background(), "BK1", models.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, bk.Status)

	// Joined snapshots survive the status update.
	require.NotNil(t, bk.Business)
	assert.Equal(t, "Shear Genius", bk.Business.Name)

	// Going back to pending is illegal per the state machine.
	_, err = mgr.UpdateBookingStatus(context.Background(), "BK1", models.BookingStatusPending)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, models.BookingStatusConfirmed, validation.From)
}

func TestUpdateBookingStatusUncachedFallsBackToRemote(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)

	// Nothing fetched yet: current status comes from the gateway.
	bk, err := mgr.UpdateBookingStatus(context.Background(), "BK2", models.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, bk.Status)
}

func TestUpdateBookingStatusUnknownBooking(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)

	_, err := mgr.UpdateBookingStatus(context.Background(), "ghost", models.BookingStatusConfirmed)
	var notFound *gateway.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUpdateBookingStatusFailureLeavesCacheUntouched(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)
	mgr.FetchBookings(context.Background(), "U1")
	before := mgr.Bookings()
	beforeGen := mgr.Generation()

	gw.UpdateErr = errors.New("boom")
	_, err := mgr.UpdateBookingStatus(context.Background(), "BK1", models.BookingStatusConfirmed)
	require.Error(t, err)

	assert.Equal(t, before, mgr.Bookings())
	assert.Equal(t, beforeGen, mgr.Generation())
}

func TestCancelBooking(t *testing.T) {
	gw := seedBookings(t)
	mgr := NewBookingManager(gw)
	mgr.FetchBookings(context.Background(), "U1")

	bk, err := mgr.CancelBooking(context.Background(), "BK1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, bk.Status)

	// Cancelled is terminal.
	_, err = mgr.CancelBooking(context.Background(), "BK1")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}
