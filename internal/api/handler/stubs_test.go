package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thumbtack/onlineshop/internal/core/ports"
)

var testSettings = ports.Settings{MaxNameLength: 50, MinPasswordLength: 8}

// Stubs embed the service interface; calling a method without a stub func
// panics, which flags an unexpected call.

type stubAccountService struct {
	ports.AccountService
	registerClientFn func(ctx context.Context, in ports.RegisterClientInput) (*ports.AccountView, string, error)
	loginFn          func(ctx context.Context, login, password string) (string, error)
	currentFn        func(ctx context.Context, token string) (*ports.AccountView, error)
	logoutFn         func(ctx context.Context, token string) error
}

func (s *stubAccountService) RegisterClient(ctx context.Context, in ports.RegisterClientInput) (*ports.AccountView, string, error) {
	return s.registerClientFn(ctx, in)
}

func (s *stubAccountService) Login(ctx context.Context, login, password string) (string, error) {
	return s.loginFn(ctx, login, password)
}

func (s *stubAccountService) Current(ctx context.Context, token string) (*ports.AccountView, error) {
	return s.currentFn(ctx, token)
}

func (s *stubAccountService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

type stubProductService struct {
	ports.ProductService
	listFn func(ctx context.Context, token string, in ports.ListProductsInput) ([]ports.ProductView, error)
}

func (s *stubProductService) List(ctx context.Context, token string, in ports.ListProductsInput) ([]ports.ProductView, error) {
	return s.listFn(ctx, token, in)
}

type stubClientService struct {
	ports.ClientService
	putDepositFn func(ctx context.Context, token string, amount int) (*ports.AccountView, error)
	buyBasketFn  func(ctx context.Context, token string, in []ports.PurchaseInput) (*ports.BasketPurchaseResult, error)
	historyFn    func(ctx context.Context, token string, limit int) ([]ports.PurchaseView, error)
}

func (s *stubClientService) PutDeposit(ctx context.Context, token string, amount int) (*ports.AccountView, error) {
	return s.putDepositFn(ctx, token, amount)
}

func (s *stubClientService) BuyBasket(ctx context.Context, token string, in []ports.PurchaseInput) (*ports.BasketPurchaseResult, error) {
	return s.buyBasketFn(ctx, token, in)
}

func (s *stubClientService) History(ctx context.Context, token string, limit int) ([]ports.PurchaseView, error) {
	return s.historyFn(ctx, token, limit)
}

// newContext builds an echo context with the shop validator and, when body
// is non-empty, a JSON request body.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator(testSettings)

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func intPtr(v int) *int { return &v }

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "JAVASESSIONID" {
			return c
		}
	}
	return nil
}
