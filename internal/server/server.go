package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"techstore-api/internal/auth"
	"techstore-api/internal/handler"
	"techstore-api/internal/service"
)

type Server struct {
	echo           *echo.Echo
	issuer         *auth.TokenIssuer
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
	catalogHandler *handler.CatalogHandler
	bannerHandler  *handler.BannerHandler
	userHandler    *handler.UserHandler
}

func NewServer(
	issuer *auth.TokenIssuer,
	logLevel string,
	orderService service.OrderService,
	paymentService service.PaymentService,
	catalogService service.CatalogService,
	bannerService service.BannerService,
	userService service.UserService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(parseLogLevel(logLevel))

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		issuer:         issuer,
		orderHandler:   handler.NewOrderHandler(orderService),
		paymentHandler: handler.NewPaymentHandler(paymentService),
		catalogHandler: handler.NewCatalogHandler(catalogService),
		bannerHandler:  handler.NewBannerHandler(bannerService),
		userHandler:    handler.NewUserHandler(userService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- public storefront --------
	api.POST("/auth/register", s.userHandler.Register)
	api.POST("/auth/login", s.userHandler.Login)
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:slug", s.catalogHandler.GetProduct)
	api.GET("/banners", s.bannerHandler.ListActive)

	// -------- gateway callbacks (verified by message hash) --------
	api.POST("/payments/paynow/ipn", s.paymentHandler.PaynowIPN)

	// -------- authenticated buyer --------
	authed := api.Group("", auth.Middleware(s.issuer))
	authed.POST("/orders", s.orderHandler.CreateOrder)
	authed.GET("/orders/mine", s.orderHandler.ListMine)
	authed.GET("/orders/:id", s.orderHandler.GetOrder)
	authed.POST("/orders/:id/pay", s.paymentHandler.Pay)
	authed.POST("/orders/:id/capture-paypal", s.paymentHandler.CapturePaypal)
	authed.POST("/orders/:id/verify-paynow", s.paymentHandler.VerifyPaynow)
	authed.POST("/orders/:id/charge-card", s.paymentHandler.ChargeCard)
	authed.PUT("/profile", s.userHandler.UpdateProfile)

	// -------- admin back-office --------
	admin := api.Group("/admin", auth.Middleware(s.issuer), auth.AdminOnly())
	admin.GET("/summary", s.orderHandler.Summary)
	admin.GET("/orders", s.orderHandler.ListAll)
	admin.PUT("/orders/:id/deliver", s.orderHandler.Deliver)
	admin.POST("/orders/:id/pay", s.paymentHandler.RecordCashPayment)
	admin.POST("/products", s.catalogHandler.CreateProduct)
	admin.PUT("/products/:id", s.catalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.catalogHandler.DeleteProduct)
	admin.GET("/banners", s.bannerHandler.ListAll)
	admin.POST("/banners", s.bannerHandler.Create)
	admin.PUT("/banners/:id", s.bannerHandler.Update)
	admin.DELETE("/banners/:id", s.bannerHandler.Delete)
	admin.GET("/users", s.userHandler.ListUsers)
	admin.PUT("/users/:id", s.userHandler.UpdateUser)
	admin.DELETE("/users/:id", s.userHandler.DeleteUser)
}

func parseLogLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

// Handler exposes the underlying mux for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
