package catalog

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

// DefaultCatalogManager is the production CatalogManager. The cache is
// owned exclusively by the instance; independent instances for the same
// business will diverge without external coordination.
type DefaultCatalogManager struct {
	Gateway gateway.Gateway

	mu         sync.RWMutex
	business   *models.Business
	services   map[string]models.Service
	generation uint64
	loading    bool
}

// NewCatalogManager returns a CatalogManager backed by the given gateway.
func NewCatalogManager(gw gateway.Gateway) *DefaultCatalogManager {
	return &DefaultCatalogManager{
		Gateway:  gw,
		services: make(map[string]models.Service),
	}
}

// FetchBusinessData loads the business and its active services, then
// replaces both caches in one step. A missing business is a
// NotFoundError; a stale business is never mixed with fresh services.
func (m *DefaultCatalogManager) FetchBusinessData(ctx context.Context, businessID string) (*models.Business, []models.Service, error) {
	logger := utils.GetLogger()

	m.setLoading(true)
	defer m.setLoading(false)

	bizRows, err := m.Gateway.Select(ctx, gateway.TableBusinesses, gateway.Filter{"id": businessID}, nil)
	if err != nil {
		return nil, nil, err
	}
	if len(bizRows) == 0 {
		return nil, nil, &gateway.NotFoundError{Table: gateway.TableBusinesses, ID: businessID}
	}
	var biz models.Business
	if err := gateway.DecodeRow(bizRows[0], &biz); err != nil {
		return nil, nil, fmt.Errorf("failed to decode business %s: %w", businessID, err)
	}

	svcRows, err := m.Gateway.Select(ctx, gateway.TableServices,
		gateway.Filter{"business_id": businessID, "is_active": true},
		&gateway.Order{Field: "name"})
	if err != nil {
		return nil, nil, err
	}
	services, err := gateway.DecodeRows[models.Service](svcRows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode services for business %s: %w", businessID, err)
	}

	m.mu.Lock()
	m.business = &biz
	m.services = make(map[string]models.Service, len(services))
	for _, svc := range services {
		m.services[svc.ID] = svc
	}
	m.generation++
	m.mu.Unlock()

	logger.Debug("catalog: fetched business data",
		zap.String("businessID", businessID),
		zap.Int("services", len(services)))
	return &biz, services, nil
}

// AddService inserts a new service scoped to the business. Identity and
// timestamps are assigned remotely; the cached entry is the returned row.
func (m *DefaultCatalogManager) AddService(ctx context.Context, businessID string, input models.ServiceInput) (*models.Service, error) {
	row := gateway.Row{
		"business_id":      businessID,
		"name":             input.Name,
		"description":      input.Description,
		"price":            input.Price,
		"duration_minutes": input.DurationMinutes,
		"category":         input.Category,
		"is_active":        input.IsActive,
	}

	inserted, err := m.Gateway.Insert(ctx, gateway.TableServices, row)
	if err != nil {
		return nil, err
	}
	var svc models.Service
	if err := gateway.DecodeRow(inserted, &svc); err != nil {
		return nil, fmt.Errorf("failed to decode inserted service: %w", err)
	}

	m.mu.Lock()
	m.services[svc.ID] = svc
	m.generation++
	m.mu.Unlock()

	utils.GetLogger().Info("catalog: service added",
		zap.String("serviceID", svc.ID), zap.String("businessID", businessID))
	return &svc, nil
}

// UpdateService applies a partial update and replaces the cached entry
// on success. The gateway reports NotFoundError when no row matched.
func (m *DefaultCatalogManager) UpdateService(ctx context.Context, serviceID string, partial map[string]any) (*models.Service, error) {
	updated, err := m.Gateway.Update(ctx, gateway.TableServices, serviceID, gateway.Row(partial))
	if err != nil {
		return nil, err
	}
	var svc models.Service
	if err := gateway.DecodeRow(updated, &svc); err != nil {
		return nil, fmt.Errorf("failed to decode updated service: %w", err)
	}

	m.mu.Lock()
	if _, cached := m.services[serviceID]; cached {
		m.services[serviceID] = svc
		m.generation++
	}
	m.mu.Unlock()
	return &svc, nil
}

// DeleteService removes the service remotely, then drops it from the
// cache only after remote confirmation so a failed delete cannot
// resurrect a stale row.
func (m *DefaultCatalogManager) DeleteService(ctx context.Context, serviceID string) error {
	if err := m.Gateway.Delete(ctx, gateway.TableServices, serviceID); err != nil {
		return err
	}

	m.mu.Lock()
	if _, cached := m.services[serviceID]; cached {
		delete(m.services, serviceID)
		m.generation++
	}
	m.mu.Unlock()

	utils.GetLogger().Info("catalog: service deleted", zap.String("serviceID", serviceID))
	return nil
}

// Business returns the cached business, or nil before the first fetch.
func (m *DefaultCatalogManager) Business() *models.Business {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.business
}

// Services returns a snapshot of the cached services sorted by name.
func (m *DefaultCatalogManager) Services() []models.Service {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Service, 0, len(m.services))
	for _, svc := range m.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Loading reports whether a FetchBusinessData call is in flight.
// Mutations do not hold the flag.
func (m *DefaultCatalogManager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Generation returns the cache generation counter. It increments on
// every successful cache change.
func (m *DefaultCatalogManager) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

func (m *DefaultCatalogManager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
