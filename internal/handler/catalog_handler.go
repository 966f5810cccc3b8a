package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carprice/internal/catalog"
)

// CatalogHandler serves the brand and model lists used by the single-entry form.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// Brands handles GET /api/catalog/brands
func (h *CatalogHandler) Brands(c *gin.Context) {
	RespondOK(c, h.catalog.Brands())
}

// Types handles GET /api/catalog/brands/:brand/types
func (h *CatalogHandler) Types(c *gin.Context) {
	brand := c.Param("brand")
	types := h.catalog.Types(brand)
	if types == nil {
		RespondError(c, http.StatusNotFound, "BRAND_NOT_FOUND", "unknown car brand")
		return
	}
	RespondOK(c, types)
}
