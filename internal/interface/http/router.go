package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/config"
	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, registry *prometheus.Registry, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	logger = logger.With("component", "http.router")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger, metrics.NewHTTP(registry)),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(logger),
	)

	router.GET("/healthz", handler.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, logger))
	{
		users := api.Group("/users/:userId")
		users.GET("/profile", handler.GetProfile)
		users.PUT("/profile", handler.SaveProfile)
		users.GET("/passport", handler.Passport)
		users.GET("/transits", handler.Transits)
		users.POST("/dreams", handler.CreateDream)
		users.GET("/dreams", handler.ListDreams)
		users.GET("/dreams/:dreamId", handler.GetDream)

		api.GET("/astro/atmosphere", handler.Atmosphere)
		api.POST("/astro/natal", handler.Natal)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
