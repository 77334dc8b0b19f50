package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thumbtack/onlineshop/internal/api/middleware"
	"github.com/thumbtack/onlineshop/internal/core/ports"
)

// AccountHandler handles registration, sessions and profiles.
type AccountHandler struct {
	service ports.AccountService
	cookie  string
}

// NewAccountHandler returns a handler that issues sessions in the named cookie.
func NewAccountHandler(service ports.AccountService, cookie string) *AccountHandler {
	return &AccountHandler{service: service, cookie: cookie}
}

// RegisterClient creates a client account and logs it in.
//
// @Summary      Register a client
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      registerClientRequest  true  "Client registration form"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /api/clients [post]
func (h *AccountHandler) RegisterClient(c echo.Context) error {
	var req registerClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, token, err := h.service.RegisterClient(c.Request().Context(), ports.RegisterClientInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Patronymic: req.Patronymic,
		Email:      req.Email,
		Address:    req.Address,
		Phone:      req.Phone,
		Login:      req.Login,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	middleware.SetSession(c, h.cookie, token)
	return c.JSON(http.StatusOK, toAccountResponse(view))
}

// RegisterAdmin creates an administrator account and logs it in.
//
// @Summary      Register an administrator
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      registerAdminRequest  true  "Administrator registration form"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /api/admins [post]
func (h *AccountHandler) RegisterAdmin(c echo.Context) error {
	var req registerAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, token, err := h.service.RegisterAdmin(c.Request().Context(), ports.RegisterAdminInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Patronymic: req.Patronymic,
		Position:   req.Position,
		Login:      req.Login,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	middleware.SetSession(c, h.cookie, token)
	return c.JSON(http.StatusOK, toAccountResponse(view))
}

// EditClient replaces the profile of the logged-in client.
//
// @Summary      Edit client profile
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      editClientRequest  true  "New profile"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/clients [put]
func (h *AccountHandler) EditClient(c echo.Context) error {
	var req editClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.service.EditClient(c.Request().Context(), middleware.Token(c), ports.EditClientInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Patronymic:  req.Patronymic,
		Email:       req.Email,
		Address:     req.Address,
		Phone:       req.Phone,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(view))
}

// EditAdmin replaces the profile of the logged-in administrator.
//
// @Summary      Edit administrator profile
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      editAdminRequest  true  "New profile"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/admins [put]
func (h *AccountHandler) EditAdmin(c echo.Context) error {
	var req editAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.service.EditAdmin(c.Request().Context(), middleware.Token(c), ports.EditAdminInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Patronymic:  req.Patronymic,
		Position:    req.Position,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(view))
}

// ListClients returns every client without deposits.
//
// @Summary      List clients
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   accountResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/clients [get]
func (h *AccountHandler) ListClients(c echo.Context) error {
	views, err := h.service.ListClients(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponses(views))
}

// Current returns the profile of the session owner.
//
// @Summary      Current account
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) Current(c echo.Context) error {
	view, err := h.service.Current(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(view))
}

// Login opens a new session.
//
// @Summary      Login
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /api/sessions [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, err := h.service.Login(ctx, req.Login, req.Password)
	if err != nil {
		return err
	}
	view, err := h.service.Current(ctx, token)
	if err != nil {
		return err
	}

	middleware.SetSession(c, h.cookie, token)
	return c.JSON(http.StatusOK, toAccountResponse(view))
}

// Logout closes the caller's session. Calling it without one is not an error.
//
// @Summary      Logout
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  emptyResponse
// @Router       /api/sessions [delete]
func (h *AccountHandler) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context(), middleware.Token(c)); err != nil {
		return err
	}
	middleware.ClearSession(c, h.cookie)
	return c.JSON(http.StatusOK, emptyResponse{})
}
