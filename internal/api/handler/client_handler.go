package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/thumbtack/onlineshop/internal/api/middleware"
	"github.com/thumbtack/onlineshop/internal/core/ports"
)

// ClientHandler handles deposits, purchases and the basket.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// PutDeposit handles PUT /api/deposits.
//
// @Summary      Top up the deposit
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      depositRequest  true  "Amount to add"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/deposits [put]
func (h *ClientHandler) PutDeposit(c echo.Context) error {
	var req depositRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.service.PutDeposit(c.Request().Context(), middleware.Token(c), req.Deposit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(view))
}

// GetDeposit handles GET /api/deposits.
//
// @Summary      Get the deposit
// @Tags         client
// @Produce      json
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/deposits [get]
func (h *ClientHandler) GetDeposit(c echo.Context) error {
	view, err := h.service.GetDeposit(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(view))
}

// BuyProduct handles POST /api/purchases.
//
// @Summary      Buy a product
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      purchaseRequest  true  "Product as seen in the catalog; count defaults to 1"
// @Success      200   {object}  orderLineResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/purchases [post]
func (h *ClientHandler) BuyProduct(c echo.Context) error {
	var req purchaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	line, err := h.service.BuyProduct(c.Request().Context(), middleware.Token(c), toPurchaseInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderLineResponse(*line))
}

// History handles GET /api/purchases.
//
// @Summary      Purchase history
// @Tags         client
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of purchases"
// @Success      200    {array}   purchaseResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse
// @Router       /api/purchases [get]
func (h *ClientHandler) History(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return &ValidationError{Violations: []FieldViolation{{
				Code:    "Range",
				Field:   "limit",
				Message: "limit must be a non-negative integer",
			}}}
		}
		limit = n
	}

	views, err := h.service.History(c.Request().Context(), middleware.Token(c), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPurchaseResponses(views))
}

// AddToBasket handles POST /api/baskets.
//
// @Summary      Put a product into the basket
// @Tags         basket
// @Accept       json
// @Produce      json
// @Param        body  body      purchaseRequest  true  "Product as seen in the catalog; count defaults to 1"
// @Success      200   {array}   orderLineResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/baskets [post]
func (h *ClientHandler) AddToBasket(c echo.Context) error {
	var req purchaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lines, err := h.service.AddToBasket(c.Request().Context(), middleware.Token(c), toPurchaseInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderLineResponses(lines))
}

// DeleteFromBasket handles DELETE /api/baskets/:id.
//
// @Summary      Remove a product from the basket
// @Tags         basket
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  emptyResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/baskets/{id} [delete]
func (h *ClientHandler) DeleteFromBasket(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteFromBasket(c.Request().Context(), middleware.Token(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyResponse{})
}

// EditBasketCount handles PUT /api/baskets.
//
// @Summary      Change the count of a basket line
// @Tags         basket
// @Accept       json
// @Produce      json
// @Param        body  body      purchaseRequest  true  "Basket line with the new count"
// @Success      200   {array}   orderLineResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/baskets [put]
func (h *ClientHandler) EditBasketCount(c echo.Context) error {
	var req purchaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lines, err := h.service.EditBasketCount(c.Request().Context(), middleware.Token(c), toPurchaseInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderLineResponses(lines))
}

// GetBasket handles GET /api/baskets.
//
// @Summary      Get the basket
// @Tags         basket
// @Produce      json
// @Success      200  {array}   orderLineResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/baskets [get]
func (h *ClientHandler) GetBasket(c echo.Context) error {
	lines, err := h.service.GetBasket(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderLineResponses(lines))
}

// BuyBasket handles POST /api/purchases/baskets.
//
// @Summary      Buy basket lines
// @Tags         basket
// @Accept       json
// @Produce      json
// @Param        body  body      []purchaseRequest  true  "Basket lines to buy; count defaults to the basket count"
// @Success      200   {object}  basketPurchaseResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/purchases/baskets [post]
func (h *ClientHandler) BuyBasket(c echo.Context) error {
	var req []purchaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.service.BuyBasket(c.Request().Context(), middleware.Token(c), toPurchaseInputs(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, basketPurchaseResponse{
		Bought:    toOrderLineResponses(result.Bought),
		Remaining: toOrderLineResponses(result.Remaining),
	})
}
