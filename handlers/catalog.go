package handlers

import (
	"net/http"

	"glowbook/models"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the catalog manager at the UI boundary.
type CatalogHandler struct {
	Registry *ManagerRegistry
}

func NewCatalogHandler(registry *ManagerRegistry) *CatalogHandler {
	return &CatalogHandler{Registry: registry}
}

// GetBusinessData loads a business profile and its active services.
func (h *CatalogHandler) GetBusinessData(c *gin.Context) {
	businessID := c.Param("id")
	mgr := h.Registry.CatalogFor(businessID)

	biz, services, err := mgr.FetchBusinessData(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, "failed to load business data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"business":   biz,
		"services":   services,
		"generation": mgr.Generation(),
	})
}

// AddService creates a service under a business.
func (h *CatalogHandler) AddService(c *gin.Context) {
	businessID := c.Param("id")

	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	svc, err := h.Registry.CatalogFor(businessID).AddService(c.Request.Context(), businessID, input)
	if err != nil {
		respondError(c, "failed to add service", err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// serviceUpdateInput carries the updatable service fields. Pointers
// distinguish "absent" from zero values so partial updates stay partial.
type serviceUpdateInput struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"duration_minutes"`
	Category        *string  `json:"category"`
	IsActive        *bool    `json:"is_active"`
}

func (in serviceUpdateInput) fields() map[string]any {
	partial := map[string]any{}
	if in.Name != nil {
		partial["name"] = *in.Name
	}
	if in.Description != nil {
		partial["description"] = *in.Description
	}
	if in.Price != nil {
		partial["price"] = *in.Price
	}
	if in.DurationMinutes != nil {
		partial["duration_minutes"] = *in.DurationMinutes
	}
	if in.Category != nil {
		partial["category"] = *in.Category
	}
	if in.IsActive != nil {
		partial["is_active"] = *in.IsActive
	}
	return partial
}

// UpdateService applies a partial update to a service.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	businessID := c.Param("id")
	serviceID := c.Param("serviceID")

	var input serviceUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	partial := input.fields()
	if len(partial) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields provided"})
		return
	}

	svc, err := h.Registry.CatalogFor(businessID).UpdateService(c.Request.Context(), serviceID, partial)
	if err != nil {
		respondError(c, "failed to update service", err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService removes a service after remote confirmation.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	businessID := c.Param("id")
	serviceID := c.Param("serviceID")

	if err := h.Registry.CatalogFor(businessID).DeleteService(c.Request.Context(), serviceID); err != nil {
		respondError(c, "failed to delete service", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": serviceID})
}
