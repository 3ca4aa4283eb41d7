package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "hijabstore/internal/errors"
	"hijabstore/internal/service"
)

// ProductHandler serves catalog search.
type ProductHandler struct {
	svc service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Search godoc
// @Summary Search hijab products
// @Description Substring match on category or name. An empty keyword returns the whole catalog.
// @Tags catalog
// @Produce json
// @Param keyword query string false "Search keyword"
// @Success 200 {array} model.Product
// @Failure 500 {object} errors.ErrorResponse
// @Router /hijab [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.svc.Search(c.Request().Context(), c.QueryParam("keyword"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Pesan: "Gagal mencari data hijab",
			Error: err.Error(),
		}).SetInternal(err)
	}
	return c.JSON(http.StatusOK, products)
}
