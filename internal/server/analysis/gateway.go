// Package analysis wraps the external text-generation provider behind a
// resilient gateway: bounded retries with exponential backoff and a fixed
// fallback answer when the provider stays unavailable.
package analysis

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/medassist/symptomchecker/internal/common"
	"github.com/medassist/symptomchecker/internal/logging"
	"github.com/medassist/symptomchecker/internal/server/config"
	"github.com/medassist/symptomchecker/internal/server/metrics"
	"github.com/medassist/symptomchecker/internal/server/symptomchecks"
)

const (
	// maxCompletionTokens bounds the provider's answer.
	maxCompletionTokens = 1000

	// completionTemperature keeps sampling deterministic-leaning.
	completionTemperature = 0.3
)

type Gateway struct {
	client      ChatClient
	model       string
	maxAttempts int
	baseBackoff time.Duration
	logger      logging.Logger
	metrics     *metrics.Metrics
}

func NewGateway(client ChatClient, cfg *config.Config, logger logging.Logger, m *metrics.Metrics) *Gateway {
	return &Gateway{
		client:      client,
		model:       cfg.OpenAIModel,
		maxAttempts: cfg.AnalysisMaxAttempts,
		baseBackoff: cfg.AnalysisBaseBackoff,
		logger:      logger.With("module", "analysis"),
		metrics:     m,
	}
}

// Analyze builds the structured prompt for the submission and queries the
// provider, retrying on any provider error. Between attempts it waits
// baseBackoff*2^attempt, suspending only the current request. When every
// attempt fails the fixed fallback text is returned as a successful result.
// The only hard failure is a nominal success carrying no usable text.
func (g *Gateway) Analyze(ctx context.Context, submission symptomchecks.Submission) (string, error) {

	prompt := buildPrompt(submission)

	for attempt := 0; attempt < g.maxAttempts; attempt++ {

		text, err := g.complete(ctx, prompt)
		if err == nil {
			g.metrics.AnalysisAttempts.WithLabelValues("success").Inc()
			if text == "" {
				return "", common.ErrorEmptyAnalysis
			}
			g.logger.Info(ctx, "symptom analysis completed", "attempt", attempt+1)
			return text, nil
		}

		g.metrics.AnalysisAttempts.WithLabelValues("failure").Inc()
		g.logger.Error(ctx, "analysis provider error", "attempt", attempt+1, "error", err.Error())

		// no wait after the final attempt
		if attempt < g.maxAttempts-1 {
			delay := g.baseBackoff * (1 << attempt)
			if err := sleepCtx(ctx, delay); err != nil {
				return "", err
			}
		}
	}

	g.metrics.AnalysisFallbacks.Inc()
	g.logger.Warn(ctx, "analysis attempts exhausted, substituting fallback text")

	return fallbackText, nil
}

// HealthCheck issues a minimal probe against the provider and reports
// reachability. Failures are reported as false, never propagated.
func (g *Gateway) HealthCheck(ctx context.Context) bool {
	_, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Hello"},
		},
		MaxTokens: 5,
	})
	if err != nil {
		g.logger.Error(ctx, "analysis provider health check failed", "error", err.Error())
		return false
	}
	return true
}

func (g *Gateway) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxCompletionTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
