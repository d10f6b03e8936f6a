// Package api serves an open shapefile over HTTP as GeoJSON.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fceschmidt/shapefile-utils/pkg/shapefile"
)

// StartServer starts the HTTP server with all routes configured. It blocks
// until the listener fails.
func StartServer(sf *shapefile.Shapefile, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(sf, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Printf("Serving shapefile API on %s (%d records)", addr, sf.NumRecords())
	return http.ListenAndServe(addr, Router(server))
}

// Router builds the chi router for the given server.
func Router(server *Server) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if server.config.APIKey != "" {
			r.Use(apiKeyMiddleware(server.config.APIKey))
		}

		r.Get("/health", server.metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/header", server.metrics.InstrumentHandler("GET", "/api/v1/header", server.handleHeader))
		r.Get("/records/count", server.metrics.InstrumentHandler("GET", "/api/v1/records/count", server.handleCount))
		r.Get("/records/{id}", server.metrics.InstrumentHandler("GET", "/api/v1/records/{id}", server.handleRecord))
	})

	return r
}
