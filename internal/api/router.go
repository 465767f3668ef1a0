package api

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/buildcore/vendor-intake/internal/api/handlers"
	"github.com/buildcore/vendor-intake/internal/api/middleware"
	"github.com/buildcore/vendor-intake/internal/client/monday"
	"github.com/buildcore/vendor-intake/internal/config"
	"github.com/buildcore/vendor-intake/internal/service"
)

// SetupRouter wires handlers, middleware and CORS into the HTTP surface.
func SetupRouter(
	cfg config.Config,
	mondayClient *monday.MondayClient,
	vendorService *service.VendorService,
	limiter *middleware.RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg)
	connectionHandler := handlers.NewConnectionHandler(mondayClient)
	vendorHandler := handlers.NewVendorHandler(vendorService, cfg)

	mux.HandleFunc("GET /health", middleware.WithLogging(healthHandler.Check))

	// Everything under /api shares the fixed-window rate limit.
	mux.HandleFunc("GET /api/test-connection", middleware.WithLogging(limiter.Limit(connectionHandler.Test)))
	mux.HandleFunc("POST /api/vendor-application", middleware.WithLogging(limiter.Limit(vendorHandler.Submit)))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
	})

	return corsHandler.Handler(mux)
}
