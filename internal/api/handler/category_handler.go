package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thumbtack/onlineshop/internal/api/middleware"
	"github.com/thumbtack/onlineshop/internal/core/ports"
)

// CategoryHandler exposes the category tree to administrators.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Add handles POST /api/categories.
//
// @Summary      Add a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      addCategoryRequest  true  "Category, optionally with a parent"
// @Success      200   {object}  categoryResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Add(c echo.Context) error {
	var req addCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.service.Add(c.Request().Context(), middleware.Token(c), ports.AddCategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponse(view))
}

// Get handles GET /api/categories/:id.
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  categoryResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), middleware.Token(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponse(view))
}

// Edit handles PUT /api/categories/:id.
//
// @Summary      Rename or re-parent a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Category id"
// @Param        body  body      editCategoryRequest  true  "Fields to change"
// @Success      200   {object}  categoryResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Edit(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req editCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.service.Edit(c.Request().Context(), middleware.Token(c), id, ports.EditCategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponse(view))
}

// Delete handles DELETE /api/categories/:id.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  emptyResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), middleware.Token(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyResponse{})
}

// List handles GET /api/categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}   categoryResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponses(views))
}
