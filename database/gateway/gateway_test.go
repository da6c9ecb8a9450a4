package gateway

import (
	"context"
	"testing"
	"time"

	"glowbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeGatewaySelectWithJoin(t *testing.T) {
	gw := NewFakeGateway()
	require.NoError(t, gw.Seed(TableBusinesses, models.Business{ID: "B1", Name: "Shear Genius"}))
	require.NoError(t, gw.Seed(TableBookings, models.Booking{
		ID: "BK1", ClientID: "U1", BusinessID: "B1", ServiceID: "S1",
		AppointmentDate: "2026-09-20", AppointmentTime: "14:00",
		Status: models.BookingStatusPending, CreatedAt: time.Now(),
	}))

	rows, err := gw.Select(context.Background(), TableBookings,
		Filter{"client_id": "U1"}, nil,
		Join{Table: TableBusinesses, LocalField: "business_id", As: "business"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	var bk models.Booking
	require.NoError(t, DecodeRow(rows[0], &bk))
	require.NotNil(t, bk.Business)
	assert.Equal(t, "Shear Genius", bk.Business.Name)
}

func TestFakeGatewayUpdateAndDeleteReportMissingRows(t *testing.T) {
	gw := NewFakeGateway()

	_, err := gw.Update(context.Background(), TableServices, "ghost", Row{"price": 10.0})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	err = gw.Delete(context.Background(), TableServices, "ghost")
	require.ErrorAs(t, err, &notFound)
}

func TestFakeGatewayInsertAssignsIdentity(t *testing.T) {
	gw := NewFakeGateway()

	row, err := gw.Insert(context.Background(), TableServices, Row{"name": "Haircut"})
	require.NoError(t, err)
	assert.NotEmpty(t, row["id"])
	assert.NotNil(t, row["created_at"])
	assert.NotNil(t, row["updated_at"])
}
