package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hijabstore/internal/catalog"
	"hijabstore/internal/service"
)

// SeedHandler loads the bundled catalog into the store.
type SeedHandler struct {
	productService service.ProductService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(productService service.ProductService) *SeedHandler {
	return &SeedHandler{productService: productService}
}

// SeedProductsResponse represents the seed response.
type SeedProductsResponse struct {
	Pesan   string   `json:"pesan"`
	Count   int      `json:"count"`
	Skipped []string `json:"skipped,omitempty"`
}

// SeedProducts godoc
// @Summary Seed the default hijab catalog
// @Description Upserts the bundled catalog by product id.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SeedProductsResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/seed/products [post]
func (h *SeedHandler) SeedProducts(c echo.Context) error {
	res, err := catalog.Default()
	if err != nil {
		return respondError(err)
	}

	count, err := h.productService.Seed(c.Request().Context(), res.Products)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, SeedProductsResponse{
		Pesan:   "Katalog berhasil dimuat",
		Count:   count,
		Skipped: res.Skipped,
	})
}
