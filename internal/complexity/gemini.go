// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package complexity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/pathforge/pathforge/internal/logging"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig configures the remote classifier.
type GeminiConfig struct {
	// APIKey is the Gemini API key.
	APIKey string `json:"api_key" koanf:"api_key"`

	// Model overrides the default model name.
	Model string `json:"model" koanf:"model"`

	// RequestTimeout bounds each classification call.
	RequestTimeout time.Duration `json:"request_timeout" koanf:"request_timeout"`

	// RequestsPerSecond throttles outbound calls.
	RequestsPerSecond float64 `json:"requests_per_second" koanf:"requests_per_second"`

	// Burst is the rate limiter burst size.
	Burst int `json:"burst" koanf:"burst"`
}

// DefaultGeminiConfig returns conservative remote-classifier settings.
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		Model:             defaultGeminiModel,
		RequestTimeout:    10 * time.Second,
		RequestsPerSecond: 2,
		Burst:             4,
	}
}

// GeminiClassifier estimates complexity with the Gemini API. Calls are
// rate limited and run behind a circuit breaker so a degraded upstream
// does not stall catalog processing; callers fall back to Heuristic
// when Classify fails.
type GeminiClassifier struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[int]
	logger  zerolog.Logger
}

// NewGeminiClassifier creates the remote classifier.
func NewGeminiClassifier(ctx context.Context, cfg GeminiConfig) (*GeminiClassifier, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("complexity: gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultGeminiConfig().RequestTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultGeminiConfig().RequestsPerSecond
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = DefaultGeminiConfig().Burst
	}

	logger := logging.Component("complexity.gemini")
	breaker := gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
		Name:        "gemini-classifier",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("classifier breaker state change")
		},
	})

	return &GeminiClassifier{
		client:  client,
		model:   model,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		breaker: breaker,
		logger:  logger,
	}, nil
}

// Classify implements Classifier.
func (g *GeminiClassifier) Classify(ctx context.Context, title, description string) (int, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("classifier rate limit: %w", err)
	}

	return g.breaker.Execute(func() (int, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		resp, err := g.client.Models.GenerateContent(callCtx, g.model, genai.Text(classifyPrompt(title, description)), nil)
		if err != nil {
			return 0, fmt.Errorf("generate content: %w", err)
		}

		text := firstResponseText(resp)
		if text == "" {
			return 0, errors.New("gemini returned empty response")
		}
		level, err := ParseLevel(text)
		if err != nil {
			g.logger.Warn().Str("response", text).Msg("unparsable classifier response")
			return 0, err
		}
		return level, nil
	})
}

func classifyPrompt(title, description string) string {
	var b strings.Builder
	b.WriteString("Rate the complexity of the following learning content on a scale from 1 to 9:\n")
	for i, name := range levelNames {
		fmt.Fprintf(&b, "%d = %s\n", i+1, name)
	}
	b.WriteString("Respond with the number only.\n\n")
	fmt.Fprintf(&b, "Title: %s\nDescription: %s\n", title, description)
	return b.String()
}

func firstResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			if text := strings.TrimSpace(part.Text); text != "" {
				return text
			}
		}
	}
	return ""
}
