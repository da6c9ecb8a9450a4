package catalog

import (
	"context"

	"glowbook/models"
)

// CatalogManager owns a business profile and its active service
// offerings: read-through fetch plus mutation with local cache sync.
// The cache reflects the last successful remote fetch plus locally
// applied mutations; a failed mutation never touches it.
type CatalogManager interface {
	FetchBusinessData(ctx context.Context, businessID string) (*models.Business, []models.Service, error)
	AddService(ctx context.Context, businessID string, input models.ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, serviceID string, partial map[string]any) (*models.Service, error)
	DeleteService(ctx context.Context, serviceID string) error

	Business() *models.Business
	Services() []models.Service
	Loading() bool
	Generation() uint64
}
