package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DragonsUnit/AeroCommerce/api/controllers"
	"github.com/DragonsUnit/AeroCommerce/api/middleware"
	internalauth "github.com/DragonsUnit/AeroCommerce/internal/auth"
	"github.com/DragonsUnit/AeroCommerce/internal/authz"
	"github.com/DragonsUnit/AeroCommerce/internal/checkout"
	"github.com/DragonsUnit/AeroCommerce/internal/coupons"
	"github.com/DragonsUnit/AeroCommerce/internal/orders"
	pkgauth "github.com/DragonsUnit/AeroCommerce/pkg/auth"
	"github.com/DragonsUnit/AeroCommerce/pkg/auth/session"
	"github.com/DragonsUnit/AeroCommerce/pkg/config"
	"github.com/DragonsUnit/AeroCommerce/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	pubsubP controllers.Pinger,
	tokens *pkgauth.TokenIssuer,
	sessions session.Checker,
	authService internalauth.Service,
	checkoutService *checkout.Service,
	ordersRepo orders.Repository,
	couponsRepo *coupons.Repository,
	authzService *authz.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP, pubsubP))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.Auth(tokens, sessions, logg)).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, sessions, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.PlaceOrder(checkoutService, logg))
			r.Get("/", controllers.ListOrders(checkoutService, logg))
		})

		r.Route("/seller", func(r chi.Router) {
			r.Use(middleware.RequireSeller(authzService, logg))
			r.Get("/orders", controllers.SellerOrders(ordersRepo, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, sessions, logg))
		r.Use(middleware.RequireAdmin(authzService, logg))

		r.Get("/coupons", controllers.AdminCoupons(couponsRepo, logg))
	})

	return r
}
