// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Command server runs the recommendation HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pathforge/pathforge/internal/adaptive"
	"github.com/pathforge/pathforge/internal/api"
	"github.com/pathforge/pathforge/internal/complexity"
	"github.com/pathforge/pathforge/internal/config"
	"github.com/pathforge/pathforge/internal/curriculum"
	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/mentor"
	"github.com/pathforge/pathforge/internal/metrics"
	"github.com/pathforge/pathforge/internal/recommend"
	"github.com/pathforge/pathforge/internal/recommend/scorers"
	"github.com/pathforge/pathforge/internal/supervisor"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Logging)
	logger := logging.Component("main")

	m := metrics.New(prometheus.DefaultRegisterer)

	// The remote classifier is optional; without an API key the
	// word-count heuristic estimates complexity.
	var classifier complexity.Classifier
	if cfg.Gemini.APIKey != "" {
		gemini, err := complexity.NewGeminiClassifier(context.Background(), cfg.Gemini)
		if err != nil {
			return err
		}
		classifier = gemini
		logger.Info().Str("model", cfg.Gemini.Model).Msg("gemini classifier enabled")
	} else {
		logger.Info().Msg("no gemini api key, using heuristic complexity estimates")
	}
	estimator := complexity.NewEstimator(classifier, m)

	engine, err := recommend.NewEngine(&cfg.Engine, []recommend.Scorer{
		scorers.NewContentScorer(),
		scorers.NewCollaborativeScorer(),
		scorers.NewExternalScorer(),
	}, m)
	if err != nil {
		return err
	}

	handlers := api.NewHandlers(
		engine,
		curriculum.NewSequencer(estimator),
		adaptive.NewSelector(engine, estimator),
		mentor.NewMatcher(),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handlers, &cfg.Server),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	supCfg := supervisor.DefaultConfig()
	supCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	sup := supervisor.New("pathforge", logging.NewSlogLogger(), supCfg)
	sup.Add(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("addr", cfg.Server.Addr()).Msg("starting")
	if err := sup.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("shutdown complete")
	return nil
}
