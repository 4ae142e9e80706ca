package handlers

import (
	"net/http"

	"eventify/services/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Catalog *catalog.Service
}

func NewCatalogHandler(c *catalog.Service) *CatalogHandler {
	return &CatalogHandler{Catalog: c}
}

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cat, err := h.Catalog.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cat.Categories()})
}

// GetSchema handles GET /api/categories/:id/schema. Unknown categories yield an empty schema.
func (h *CatalogHandler) GetSchema(c *gin.Context) {
	schema, err := h.Catalog.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schema)
}
