package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"printo/internal/http/middleware"
	"printo/internal/model"
	"printo/internal/service"
)

// Services bundles the service layer for route registration.
type Services struct {
	Auth          service.AuthService
	Sellers       service.SellerService
	Products      service.ProductService
	Orders        service.OrderService
	Payments      service.PaymentService
	Commissions   service.CommissionService
	Notifications service.NotificationService
	Banners       service.BannerService
	Dashboard     service.DashboardService
}

// RegisterRoutes attaches all HTTP routes to the Fiber app. Handlers stay
// thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	authH := NewAuthHandler(svcs.Auth)
	sellerH := NewSellerHandler(svcs.Sellers)
	productH := NewProductHandler(svcs.Products, svcs.Sellers)
	orderH := NewOrderHandler(svcs.Orders, svcs.Sellers, svcs.Auth)
	paymentH := NewPaymentHandler(svcs.Payments, svcs.Orders, svcs.Auth)
	commissionH := NewCommissionHandler(svcs.Commissions)
	notificationH := NewNotificationHandler(svcs.Notifications)
	bannerH := NewBannerHandler(svcs.Banners)
	dashboardH := NewDashboardHandler(svcs.Dashboard, svcs.Sellers)

	authed := middleware.RequireAuth(svcs.Auth)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	sellerOnly := middleware.RequireRole(model.RoleSeller, model.RoleAdmin)

	// Health checks DB connectivity; healthz is a bare liveness probe.
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	auth := app.Group("/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", authH.Login)
	auth.Get("/profile", authed, authH.Profile)

	sellers := app.Group("/sellers")
	sellers.Post("/", authed, sellerH.Create)
	sellers.Get("/me", authed, sellerH.Me)
	sellers.Get("/me/orders", authed, sellerOnly, orderH.SellerOrders)
	sellers.Get("/me/earnings", authed, sellerOnly, dashboardH.SellerEarnings)
	sellers.Get("/", authed, adminOnly, sellerH.List)
	sellers.Get("/:id", authed, sellerH.Get)
	sellers.Get("/:id/children", authed, sellerH.Children)
	sellers.Put("/:id", authed, sellerH.Update)
	sellers.Patch("/:id/verification", authed, adminOnly, sellerH.SetVerification)

	products := app.Group("/products")
	products.Get("/", productH.List)
	products.Get("/:id", productH.Get)
	products.Get("/:id/images", productH.Images)
	products.Post("/", authed, sellerOnly, productH.Create)
	products.Put("/:id", authed, sellerOnly, productH.Update)
	products.Delete("/:id", authed, sellerOnly, productH.Delete)
	products.Post("/:id/images", authed, sellerOnly, productH.UploadImage)

	orders := app.Group("/orders", authed)
	orders.Post("/", orderH.Create)
	orders.Get("/", orderH.List)
	orders.Get("/:id", orderH.Get)
	orders.Patch("/:id/status", sellerOnly, orderH.UpdateStatus)
	orders.Post("/:id/cancel", orderH.Cancel)

	payments := app.Group("/payments", authed)
	payments.Post("/", paymentH.Create)
	payments.Post("/verify", paymentH.Verify)

	commissions := app.Group("/commissions", authed, adminOnly)
	commissions.Get("/", commissionH.List)
	commissions.Get("/:category", commissionH.Get)
	commissions.Put("/", commissionH.Set)
	commissions.Delete("/:category", commissionH.Delete)

	notifications := app.Group("/notifications", authed)
	notifications.Get("/", notificationH.List)
	notifications.Get("/unread-count", notificationH.UnreadCount)
	notifications.Patch("/:id/read", notificationH.MarkRead)

	banners := app.Group("/banners")
	banners.Get("/", bannerH.List)
	banners.Post("/", authed, adminOnly, bannerH.Create)
	banners.Put("/:id", authed, adminOnly, bannerH.Update)
	banners.Delete("/:id", authed, adminOnly, bannerH.Delete)

	admin := app.Group("/admin", authed, adminOnly)
	admin.Get("/earnings", dashboardH.AdminEarnings)
	admin.Get("/banners", bannerH.ListAll)
}
