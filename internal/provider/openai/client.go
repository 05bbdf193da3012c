// Package openai adapts an OpenAI-compatible API to the content-generation and
// speech-synthesis collaborators used by the generation services.
package openai

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const ProviderName = "openai"

// Config holds OpenAI client configuration.
type Config struct {
	APIKey      string
	BaseURL     string
	ChatModel   string
	SpeechModel string
	Temperature float32
	Timeout     time.Duration
}

// CallRecorder receives the outcome of every provider call.
type CallRecorder interface {
	ObserveCall(provider, operation string, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCall(string, string, time.Duration, error) {}

type Option func(*base)

// WithRecorder reports call outcomes to r.
func WithRecorder(r CallRecorder) Option {
	return func(b *base) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithHTTPClient replaces the HTTP client built from Config.Timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(b *base) { b.httpClient = c }
}

type base struct {
	client     *openaigo.Client
	httpClient *http.Client
	recorder   CallRecorder
	tracer     trace.Tracer
	logger     *slog.Logger
}

func newBase(cfg Config, logger *slog.Logger, component string, opts ...Option) base {
	b := base{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		recorder:   nopRecorder{},
		tracer:     otel.Tracer("storycast/provider/openai"),
		logger:     logger.With("provider", ProviderName, "component", component),
	}
	for _, opt := range opts {
		opt(&b)
	}

	clientCfg := openaigo.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = b.httpClient
	b.client = openaigo.NewClientWithConfig(clientCfg)
	return b
}

// observe wraps one provider call with a span, a duration sample and a debug log.
func (b *base) observe(ctx context.Context, operation string, call func(ctx context.Context) error) error {
	ctx, span := b.tracer.Start(ctx, "openai."+operation,
		trace.WithAttributes(attribute.String("provider.operation", operation)),
	)
	defer span.End()

	start := time.Now()
	err := call(ctx)
	elapsed := time.Since(start)

	b.recorder.ObserveCall(ProviderName, operation, elapsed, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		b.logger.Debug("provider call failed", "operation", operation, "duration", elapsed, "error", err)
		return err
	}
	b.logger.Debug("provider call completed", "operation", operation, "duration", elapsed)
	return nil
}
