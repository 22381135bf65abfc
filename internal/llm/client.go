package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the provider is reachable.
	Available(ctx context.Context) bool
}

// provider performs one HTTP round trip for a resolved request.
type provider interface {
	name() Provider
	do(ctx context.Context, call resolvedCall) (*GenerateResponse, error)
	available(ctx context.Context) bool
}

type resolvedCall struct {
	system      string
	prompt      string
	temperature float64
	maxTokens   int
}

// client wraps a provider with timeouts, retries, rate limiting, and
// call observation.
type client struct {
	cfg      LLMConfig
	backend  provider
	limiter  *rate.Limiter
	observer Observer
}

// NewClient builds the client for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	httpClient := newHTTPClient()
	switch cfg.Provider {
	case ProviderGemini, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: set TRATLUS_LLM_API_KEY or GEMINI_API_KEY", ErrNotConfigured)
		}
		return newClient(cfg, &geminiProvider{cfg: cfg, http: httpClient}, observer), nil
	case ProviderOllama:
		return newClient(cfg, &ollamaProvider{cfg: cfg, http: httpClient}, observer), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, cfg.Provider)
	}
}

// NewOllamaClient creates an LLMClient that talks to a local Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	return newClient(cfg, &ollamaProvider{cfg: cfg, http: newHTTPClient()}, observer)
}

// NewGeminiClient creates an LLMClient for the Gemini generateContent API.
func NewGeminiClient(cfg LLMConfig, observer Observer) LLMClient {
	return newClient(cfg, &geminiProvider{cfg: cfg, http: newHTTPClient()}, observer)
}

func newClient(cfg LLMConfig, backend provider, observer Observer) *client {
	if observer == nil {
		observer = NoopObserver{}
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	return &client{cfg: cfg, backend: backend, limiter: limiter, observer: observer}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

func (c *client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	call := resolvedCall{
		system:      req.SystemPrompt,
		prompt:      req.UserPrompt,
		temperature: taskCfg.Temperature,
		maxTokens:   taskCfg.MaxTokens,
	}
	if req.Temperature != nil {
		call.temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		call.maxTokens = *req.MaxTokens
	}

	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	made := 0

	for i := 0; i < attempts; i++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				lastErr = fmt.Errorf("%w: rate limit wait: %v", ErrTimeout, err)
				break
			}
		}
		made++
		resp, err := c.attempt(ctx, timeout, call)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Provider:  c.backend.name(),
				Model:     c.cfg.Model,
				LatencyMs: latency,
				Attempts:  made,
				Success:   true,
			})
			resp.LatencyMs = latency
			if resp.Model == "" {
				resp.Model = c.cfg.Model
			}
			return resp, nil
		}
		lastErr = err

		// Blocked prompts fail the same way every time.
		if errors.Is(err, ErrBlocked) || errors.Is(err, ErrNotConfigured) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	finalErr := c.classify(ctx, lastErr)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  c.backend.name(),
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  made,
		Success:   false,
		ErrorCode: errorCode(finalErr),
	})
	return nil, finalErr
}

// attempt runs one provider call under its own deadline.
func (c *client) attempt(ctx context.Context, timeout time.Duration, call resolvedCall) (*GenerateResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	resp, err := c.backend.do(attemptCtx, call)
	if err != nil && attemptCtx.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return resp, err
}

func (c *client) classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil, errors.Is(err, ErrTimeout):
		return ErrTimeout
	case errors.Is(err, ErrBlocked), errors.Is(err, ErrNotConfigured):
		return err
	case isConnectionError(err):
		return ErrProviderUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func (c *client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.backend.available(ctx)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrProviderUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrBlocked):
		return "BLOCKED"
	case errors.Is(err, ErrNotConfigured):
		return "NOT_CONFIGURED"
	default:
		return "UNKNOWN"
	}
}

// Unavailable returns a client whose every call fails with err. It stands
// in for a provider that could not be configured so commands that never
// reach the model still run.
func Unavailable(err error) LLMClient {
	return unavailableClient{err: err}
}

type unavailableClient struct{ err error }

func (c unavailableClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, c.err
}

func (unavailableClient) Available(context.Context) bool { return false }
