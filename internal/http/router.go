package http

import (
	"log/slog"
	"time"

	"github.com/geocoder89/opay/internal/auth"
	"github.com/geocoder89/opay/internal/cache"
	"github.com/geocoder89/opay/internal/config"
	"github.com/geocoder89/opay/internal/http/handlers"
	"github.com/geocoder89/opay/internal/http/middlewares"
	"github.com/geocoder89/opay/internal/observability"
	"github.com/geocoder89/opay/internal/sessionstore"
	"github.com/geocoder89/opay/internal/storage"
	"github.com/geocoder89/opay/internal/validation"
	"github.com/geocoder89/opay/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps are the long-lived collaborators the router serves.
type Deps struct {
	Store    storage.Store
	Sessions *sessionstore.Store
	Views    *view.Registry
	Tokens   *auth.Manager
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
}

// BuildDeps wires the storage backend into sessions, views and metrics.
func BuildDeps(cfg config.Config, store storage.Store, log *slog.Logger) Deps {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	prom := observability.NewProm(reg)
	instrumented := storage.NewInstrumented(store, prom)

	// the memory driver is its own cache
	var sessionsStore storage.Store = instrumented
	if cfg.StoreCacheTTL > 0 && cfg.StoreDriver != config.StoreMemory {
		sessionsStore = storage.NewCached(instrumented, cache.New(cfg.StoreCacheTTL))
	}
	sessions := sessionstore.New(sessionsStore)

	views := view.NewRegistry(view.Config{
		Sessions:       sessions,
		Validator:      validation.New(),
		Metrics:        prom,
		Logger:         log,
		CarouselPeriod: cfg.CarouselPeriod,
	})

	return Deps{
		Store:    instrumented,
		Sessions: sessions,
		Views:    views,
		Tokens:   auth.NewManager(cfg.JWTSecret, cfg.DeviceTTL()),
		Prom:     prom,
		Gatherer: reg,
	}
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.UseJSONFieldNames()

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	if cfg.OTelEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(middlewares.RequestLogger())
	r.Use(deps.Prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))

	// health
	h := handlers.NewHealthHandler(deps.Store.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	r.GET("/dashboard/chart", handlers.DashboardChart)

	// everything below belongs to a device
	device := middlewares.NewDeviceMiddleware(deps.Tokens, cfg.Env == "prod")
	limiter := middlewares.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	ipLimiter := middlewares.NewRateLimiter(cfg.IPLimitPerMinute, time.Minute)

	api := r.Group("/",
		ipLimiter.RateLimiterMiddleware(middlewares.KeyByIP),
		device.EnsureDevice(),
	)

	viewsHandler := handlers.NewViewsHandler(deps.Views)
	storageHandler := handlers.NewStorageHandler(deps.Sessions)

	api.POST("/views", middlewares.RequireJSON(), viewsHandler.Open)
	api.GET("/views/:id", viewsHandler.Get)
	api.POST("/views/:id/events",
		limiter.RateLimiterMiddleware(middlewares.KeyByDeviceOrIP),
		middlewares.RequireJSON(),
		viewsHandler.Dispatch,
	)
	api.GET("/views/:id/stream", viewsHandler.Stream)
	api.DELETE("/views/:id", viewsHandler.Close)
	api.DELETE("/storage", storageHandler.Clear)

	log.Debug("router ready", "store", cfg.StoreDriver)

	return r
}
