package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thumbtack/onlineshop/internal/api/middleware"
	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/core/ports"
)

// ProductHandler exposes the catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Add handles POST /api/products.
//
// @Summary      Add a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      addProductRequest  true  "Product"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Add(c echo.Context) error {
	var req addProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.service.Add(c.Request().Context(), middleware.Token(c), ports.AddProductInput{
		Name:       req.Name,
		Price:      req.Price,
		Count:      req.Count,
		Categories: req.Categories,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(view))
}

// Edit handles PUT /api/products/:id.
//
// @Summary      Edit a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Product id"
// @Param        body  body      editProductRequest  true  "Fields to change"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Edit(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req editProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.service.Edit(c.Request().Context(), middleware.Token(c), id, ports.EditProductInput{
		Name:       req.Name,
		Price:      req.Price,
		Count:      req.Count,
		Categories: req.Categories,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(view))
}

// Delete handles DELETE /api/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  emptyResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), middleware.Token(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyResponse{})
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), middleware.Token(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(view))
}

// List handles GET /api/products.
//
// Without a category parameter every product is listed; an empty one
// (?category=) lists only uncategorized products. Ids may be repeated or
// comma separated.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     []int   false  "Category ids; empty for uncategorized only"  collectionFormat(multi)
// @Param        order     query     string  false  "product (default) or category"  Enums(product, category)
// @Success      200       {array}   productResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      401       {object}  ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter, err := categoryFilter(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), middleware.Token(c), ports.ListProductsInput{
		Filter: filter,
		Order:  domain.ParseSortOrder(c.QueryParam("order")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(views))
}

func categoryFilter(c echo.Context) (domain.CategoryFilter, error) {
	values, ok := c.QueryParams()["category"]
	if !ok {
		return domain.AnyCategory(), nil
	}

	ids := []int64{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return domain.CategoryFilter{}, &ValidationError{Violations: []FieldViolation{{
					Code:    "Invalid",
					Field:   "category",
					Message: "category must be a list of integers",
				}}}
			}
			ids = append(ids, id)
		}
	}
	return domain.InCategories(ids), nil
}
