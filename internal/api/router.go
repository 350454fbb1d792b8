// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pathforge/pathforge/internal/config"
)

// NewRouter assembles the HTTP routes and middleware stack.
func NewRouter(h *Handlers, cfg *config.ServerConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(httprate.LimitByIP(cfg.RateLimit, cfg.RateWindow))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/recommendations", h.Recommend)
		r.Post("/recommendations/adaptive", h.Adaptive)
		r.Post("/curriculum/sequence", h.Sequence)
		r.Post("/mentors", h.Mentors)
		r.Post("/mentors/network", h.Network)
		r.Post("/mentors/learning-path", h.PathMentors)
		r.Post("/study-groups", h.StudyGroups)
	})

	return r
}
