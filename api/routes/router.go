package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swiftcargo/swiftcargo-backend/api/controllers"
	"github.com/swiftcargo/swiftcargo-backend/api/middleware"
	"github.com/swiftcargo/swiftcargo-backend/internal/quotes"
	"github.com/swiftcargo/swiftcargo-backend/internal/rates"
	"github.com/swiftcargo/swiftcargo-backend/internal/shipments"
	"github.com/swiftcargo/swiftcargo-backend/pkg/config"
	"github.com/swiftcargo/swiftcargo-backend/pkg/db"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	"github.com/swiftcargo/swiftcargo-backend/pkg/logger"
	"github.com/swiftcargo/swiftcargo-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	metricsRegistry *prometheus.Registry,
	quoteService quotes.Service,
	shipmentService shipments.Service,
	ratesService rates.Service,
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
		if redisClient != nil {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
		} else {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, nil))
		}
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/quotes", controllers.QuoteCreate(quoteService, logg))
		r.Get("/tracking/{reference}", controllers.Track(shipmentService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Post("/shipments", controllers.ShipmentBook(shipmentService, logg))

			r.With(middleware.RequireRole(logg, enums.ActorRoleCourier, enums.ActorRoleOps, enums.ActorRoleAdmin)).
				Post("/shipments/{reference}/scans", controllers.ShipmentScan(shipmentService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.ActorRoleOps, enums.ActorRoleAdmin))
				r.Get("/shipments", controllers.ShipmentList(shipmentService, logg))
				r.Post("/shipments/{reference}/payment", controllers.ShipmentPayment(shipmentService, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(logg, enums.ActorRoleAdmin, enums.ActorRoleOps))

		r.Route("/tariffs", func(r chi.Router) {
			r.Get("/", controllers.TariffList(ratesService, logg))
			r.Post("/", controllers.TariffCreate(ratesService, logg))
			r.Get("/{tariffId}", controllers.TariffGet(ratesService, logg))
			r.Put("/{tariffId}", controllers.TariffUpdate(ratesService, logg))
		})

		r.Route("/shipments/{reference}/scans/{scanId}", func(r chi.Router) {
			r.Patch("/", controllers.ScanEdit(shipmentService, logg))
			r.Delete("/", controllers.ScanDelete(shipmentService, logg))
		})
	})

	return r
}
