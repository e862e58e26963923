package controller

import (
	"net/http"

	"merch-intake/service"
)

// CatalogController serves the product catalog
type CatalogController struct {
	catalog service.CatalogProvider
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog service.CatalogProvider) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// GetCatalog handles GET /api/catalog
func (c *CatalogController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, c.catalog.Catalog())
}
