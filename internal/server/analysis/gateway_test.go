package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	openai "github.com/sashabaranov/go-openai"

	"github.com/medassist/symptomchecker/internal/common"
	"github.com/medassist/symptomchecker/internal/logging"
	"github.com/medassist/symptomchecker/internal/server/config"
	"github.com/medassist/symptomchecker/internal/server/metrics"
	"github.com/medassist/symptomchecker/internal/server/symptomchecks"
)

type fakeClient struct {
	// responses are consumed one per call; err entries simulate provider
	// failures.
	responses []fakeResponse
	calls     int

	lastReq openai.ChatCompletionRequest
}

type fakeResponse struct {
	content string
	err     error
}

func (f *fakeClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		return openai.ChatCompletionResponse{}, errors.New("no scripted response")
	}
	r := f.responses[i]
	if r.err != nil {
		return openai.ChatCompletionResponse{}, r.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: r.content}},
		},
	}, nil
}

func newTestGateway(client ChatClient) *Gateway {
	cfg := &config.Config{
		OpenAIModel:         "gpt-4o",
		AnalysisMaxAttempts: 3,
		AnalysisBaseBackoff: time.Millisecond,
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := metrics.New(prometheus.NewRegistry())
	return NewGateway(client, cfg, logger, m)
}

func submission() symptomchecks.Submission {
	return symptomchecks.Submission{
		Age:      30,
		Sex:      "male",
		Symptoms: "headache and fever for the past 2 days",
		Duration: "2 days",
		Severity: 7,
	}
}

func TestAnalyze_FirstAttemptSucceeds(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{{content: "likely viral infection"}}}
	g := newTestGateway(client)

	got, err := g.Analyze(context.Background(), submission())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if got != "likely viral infection" {
		t.Fatalf("unexpected analysis: %q", got)
	}
	if client.calls != 1 {
		t.Fatalf("expected 1 call, got %d", client.calls)
	}

	if client.lastReq.Model != "gpt-4o" {
		t.Errorf("unexpected model: %q", client.lastReq.Model)
	}
	if client.lastReq.MaxTokens != maxCompletionTokens {
		t.Errorf("unexpected token budget: %d", client.lastReq.MaxTokens)
	}
	if len(client.lastReq.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(client.lastReq.Messages))
	}
	if client.lastReq.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("first message should be the system instruction")
	}
}

func TestAnalyze_RecoversAfterFailures(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: errors.New("timeout")},
		{err: errors.New("malformed response")},
		{content: "analysis text"},
	}}
	g := newTestGateway(client)

	got, err := g.Analyze(context.Background(), submission())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if got != "analysis text" {
		t.Fatalf("unexpected analysis: %q", got)
	}
	if client.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", client.calls)
	}
}

func TestAnalyze_AllAttemptsFail_ReturnsFallback(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: errors.New("down")},
		{err: errors.New("down")},
		{err: errors.New("down")},
	}}
	g := newTestGateway(client)

	got, err := g.Analyze(context.Background(), submission())
	if err != nil {
		t.Fatalf("fallback path must not return an error, got: %v", err)
	}
	if got == "" {
		t.Fatal("fallback text must be non-empty")
	}
	if !strings.Contains(got, "healthcare provider") {
		t.Fatalf("unexpected fallback text: %q", got)
	}
	if client.calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", client.calls)
	}
}

func TestAnalyze_EmptySuccessIsHardFailure(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{{content: "   "}}}
	g := newTestGateway(client)

	_, err := g.Analyze(context.Background(), submission())
	if !errors.Is(err, common.ErrorEmptyAnalysis) {
		t.Fatalf("expected ErrorEmptyAnalysis, got %v", err)
	}
}

func TestAnalyze_CancelledDuringBackoff(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: errors.New("down")},
		{content: "never reached"},
	}}

	cfg := &config.Config{
		OpenAIModel:         "gpt-4o",
		AnalysisMaxAttempts: 3,
		AnalysisBaseBackoff: time.Hour,
	}
	g := NewGateway(client, cfg, logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), metrics.New(prometheus.NewRegistry()))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := g.Analyze(ctx, submission())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected a single attempt before cancellation, got %d", client.calls)
	}
}

func TestAnalyze_PromptEmbedsSubmission(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{{content: "ok"}}}
	g := newTestGateway(client)

	sub := submission()
	sub.AdditionalNotes = "also experiencing fatigue"
	if _, err := g.Analyze(context.Background(), sub); err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	prompt := client.lastReq.Messages[1].Content
	for _, want := range []string{
		"Age: 30 years",
		"Sex: male",
		"headache and fever for the past 2 days",
		"Duration: 2 days",
		"Severity (1-10): 7",
		"also experiencing fatigue",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestAnalyze_AbsentNotesRenderedAsNone(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{{content: "ok"}}}
	g := newTestGateway(client)

	if _, err := g.Analyze(context.Background(), submission()); err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	prompt := client.lastReq.Messages[1].Content
	if !strings.Contains(prompt, "Additional Notes: None") {
		t.Fatalf("expected explicit None placeholder in prompt:\n%s", prompt)
	}
}

func TestHealthCheck(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		client := &fakeClient{responses: []fakeResponse{{content: "Hi"}}}
		g := newTestGateway(client)
		if !g.HealthCheck(context.Background()) {
			t.Fatal("expected healthy")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		client := &fakeClient{responses: []fakeResponse{{err: errors.New("down")}}}
		g := newTestGateway(client)
		if g.HealthCheck(context.Background()) {
			t.Fatal("expected unhealthy")
		}
	})
}
