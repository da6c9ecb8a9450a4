package catalog

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

func seedCatalog(t *testing.T) *gateway.FakeGateway {
	t.Helper()
	gw := gateway.NewFakeGateway()
	now := time.Now()
	require.NoError(t, gw.Seed(gateway.TableBusinesses, models.Business{
		ID:        "B1",
		OwnerID:   "U1",
		Name:      "Shear Genius",
		Category:  "hair",
		Rating:    4.8,
		CreatedAt: now,
	}))
	require.NoError(t, gw.Seed(gateway.TableServices,
		models.Service{ID: "S1", BusinessID: "B1", Name: "Blowout", Price: 35, DurationMinutes: 45, Category: "hair", IsActive: true, CreatedAt: now},
		models.Service{ID: "S2", BusinessID: "B1", Name: "Perm", Price: 80, DurationMinutes: 90, Category: "hair", IsActive: false, CreatedAt: now},
	))
	return gw
}

func TestFetchBusinessDataOnlyActiveServices(t *testing.T) {
	gw := seedCatalog(t)
	mgr := NewCatalogManager(gw)

	biz, services, err := mgr.FetchBusinessData(context.Background(), "B1")
	require.NoError(t, err)
	require.NotNil(t, biz)
	assert.Equal(t, "Shear Genius", biz.Name)

	require.Len(t, services, 1)
	assert.Equal(t, "S1", services[0].ID)
	assert.Equal(t, "S1", mgr.Services()[0].ID)
	assert.False(t, mgr.Loading())
}

func TestFetchBusinessDataNotFound(t *testing.T) {
	gw := seedCatalog(t)
	mgr := NewCatalogManager(gw)

	_, _, err := mgr.FetchBusinessData(context.Background(), "nope")
	var notFound *gateway.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, gateway.TableBusinesses, notFound.Table)
	assert.False(t, mgr.Loading())
}

func TestFetchBusinessDataAtomicOnServiceFailure(t *testing.T) {
	gw := seedCatalog(t)
	mgr := NewCatalogManager(gw)

	_, _, err := mgr.FetchBusinessData(context.Background(), "B1")
	require.NoError(t, err)
	before := mgr.Services()
	beforeBiz := mgr.Business()
	beforeGen := mgr.Generation()

	// A second business appears remotely, but its services select fails:
	// neither cache may move.
	require.NoError(t, gw.Seed(gateway.TableBusinesses, models.Business{ID: "B2", OwnerID: "U2", Name: "Nail Bar"}))
	gw.SelectErr = errors.New("boom")
	gw.SelectErrTable = gateway.TableServices

	_, _, err = mgr.FetchBusinessData(context.Background(), "B2")
	var gwErr *gateway.GatewayError
	require.ErrorAs(t, err, &gwErr)

	assert.Equal(t, before, mgr.Services())
	assert.Equal(t, beforeBiz, mgr.Business())
	assert.Equal(t, beforeGen, mgr.Generation())
}

func TestAddService(t *testing.T) {
	gw := seedCatalog(t)
	mgr := NewCatalogManager(gw)
	_, _, err := mgr.FetchBusinessData(context.Background(), "B1")
	require.NoError(t, err)
	before := len(mgr.Services())

	svc, err := mgr.AddService(context.Background(), "B1", models.ServiceInput{
		Name:            "Haircut",
		Price:           40,
		DurationMinutes: 30,
		Category:        "hair",
		IsActive:        true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, svc.ID)
	assert.Equal(t, "B1", svc.BusinessID)
	assert.Len(t, mgr.Services(), before+1)
}

func TestAddServiceFailureLeavesCacheUntouched(t *testing.T) {
	gw := seedCatalog(t)
	mgr := NewCatalogManager(gw)
	_, _, err := mgr.FetchBusinessData(context.Background(), "B1")
	require.NoError(t, err)
	before := mgr.Services()
	beforeGen := mgr.Generation()

	gw.InsertErr = errors.New("boom")
	_, err = mgr.AddService(context.Background(), "B1", models.ServiceInput{Name: "Haircut", Price: 40, DurationMinutes: 30, Category: "hair"})
	var gwErr *gateway.GatewayError
	require.ErrorAs(t, err, &gwErr)

	assert.Equal(t, before, mgr.Services())
	assert.Equal(t, beforeGen, mgr.Generation())
}

func TestUpdateService(t *testing.T) {
	gw := seedCatalog(t)
	mgr := NewCatalogManager(gw)
	_, _, err := mgr.FetchBusinessData(context.Background(), "B1")
	require.NoError(t, err)

	svc, err := mgr.UpdateService(context.Background(), "S1", map[string]any{"price": 45.0})
	require.NoError(t, err)
	assert.Equal(t, 45.0, svc.Price)
	assert.Equal(t, 45.0, mgr.Services()[0].Price)
}

func TestUpdateServiceNotFound(t *testing.T) {
	gw := seedCatalog(t)
	mgr := NewCatalogManager(gw)

	_, err := mgr.UpdateService(context.Background(), "ghost", map[string]any{"price": 45.0})
	var notFound *gateway.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUpdateServiceFailureLeavesCacheUntouched(t *testing.T) {
	gw := seedCatalog(t)
	mgr := NewCatalogManager(gw)
	_, _, err := mgr.FetchBusinessData(context.Background(), "B1")
	require.NoError(t, err)
	before := mgr.Services()

	gw.UpdateErr = errors.New("boom")
	_, err = mgr.UpdateService(context.Background(), "S1", map[string]any{"price": 45.0})
	require.Error(t, err)
	assert.Equal(t, before, mgr.Services())
}

func TestDeleteServiceRemovesAfterConfirmation(t *testing.T) {
	gw := seedCatalog(t)
	mgr := NewCatalogManager(gw)
	_, _, err := mgr.FetchBusinessData(context.Background(), "B1")
	require.NoError(t, err)

	require.NoError(t, mgr.DeleteService(context.Background(), "S1"))
	assert.Empty(t, mgr.Services())
}

func TestDeleteServiceFailureKeepsCachedRow(t *testing.T) {
	gw := seedCatalog(t)
	mgr := NewCatalogManager(gw)
	_, _, err := mgr.FetchBusinessData(context.Background(), "B1")
	require.NoError(t, err)
	before := mgr.Services()

	gw.DeleteErr = errors.New("boom")
	err = mgr.DeleteService(context.Background(), "S1")
	require.Error(t, err)

	// Never optimistic-delete: the row must survive a failed remote delete.
	assert.Equal(t, before, mgr.Services())
}
