package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/thumbtack/onlineshop/docs"
	"github.com/thumbtack/onlineshop/internal/api/handler"
	"github.com/thumbtack/onlineshop/internal/api/middleware"
	"github.com/thumbtack/onlineshop/internal/core/ports"
	"github.com/thumbtack/onlineshop/internal/infrastructure/http/handlers"
)

// Services are the core use cases the API exposes.
type Services struct {
	Accounts   ports.AccountService
	Categories ports.CategoryService
	Products   ports.ProductService
	Clients    ports.ClientService
	Server     ports.ServerService
}

// Options tune the router.
type Options struct {
	// SessionCookie names the cookie carrying the session token.
	SessionCookie string
	// Debug enables /api/debug routes.
	Debug bool
	// Checks are the readiness probes, by dependency name.
	Checks map[string]handlers.Check
	// Metrics receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator(svc.Server.Settings())

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Metrics != nil {
		registerer, gatherer = opts.Metrics, opts.Metrics
	}

	// --- Global middleware ---
	// The metrics middleware sits outside the logger so it sees the status
	// written by the error handler.
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "onlineshop",
		Registerer: registerer,
	}))
	e.Use(requestLogger(log))

	// --- Operational routes ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(opts.Checks).Readiness)

	// --- Dependencies ---
	accounts := handler.NewAccountHandler(svc.Accounts, opts.SessionCookie)
	categories := handler.NewCategoryHandler(svc.Categories)
	products := handler.NewProductHandler(svc.Products)
	clients := handler.NewClientHandler(svc.Clients)
	server := handler.NewServerHandler(svc.Server)

	g := e.Group("/api", middleware.Session(opts.SessionCookie))

	g.POST("/clients", accounts.RegisterClient)
	g.PUT("/clients", accounts.EditClient)
	g.GET("/clients", accounts.ListClients)
	g.POST("/admins", accounts.RegisterAdmin)
	g.PUT("/admins", accounts.EditAdmin)
	g.GET("/accounts", accounts.Current)
	g.POST("/sessions", accounts.Login)
	g.DELETE("/sessions", accounts.Logout)

	g.POST("/categories", categories.Add)
	g.GET("/categories", categories.List)
	g.GET("/categories/:id", categories.Get)
	g.PUT("/categories/:id", categories.Edit)
	g.DELETE("/categories/:id", categories.Delete)

	g.POST("/products", products.Add)
	g.GET("/products", products.List)
	g.GET("/products/:id", products.Get)
	g.PUT("/products/:id", products.Edit)
	g.DELETE("/products/:id", products.Delete)

	g.PUT("/deposits", clients.PutDeposit)
	g.GET("/deposits", clients.GetDeposit)
	g.POST("/purchases", clients.BuyProduct)
	g.GET("/purchases", clients.History)
	g.POST("/purchases/baskets", clients.BuyBasket)
	g.POST("/baskets", clients.AddToBasket)
	g.PUT("/baskets", clients.EditBasketCount)
	g.GET("/baskets", clients.GetBasket)
	g.DELETE("/baskets/:id", clients.DeleteFromBasket)

	g.GET("/settings", server.Settings)
	g.POST("/debug/clear", server.Clear, middleware.DebugOnly(opts.Debug))

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
