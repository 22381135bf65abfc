package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(provider Provider, endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Endpoint = endpoint
	cfg.RequestsPerMinute = 0
	if provider == ProviderOllama {
		cfg.Model = defaultOllamaModel
	} else {
		cfg.APIKey = "test-key"
	}
	return cfg
}

func shortTimeout(cfg LLMConfig, ms int) LLMConfig {
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskItinerary: {Temperature: 0.9, MaxTokens: 512, TimeoutMs: ms},
	}
	return cfg
}

func writeGemini(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]string{{"text": text}}},
			"finishReason": "STOP",
		}},
		"modelVersion": "gemini-test",
	})
}

func TestNewClient_GeminiRequiresKey(t *testing.T) {
	cfg := testConfig(ProviderGemini, "http://unused")
	cfg.APIKey = ""
	_, err := NewClient(cfg, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewClient_SelectsOllama(t *testing.T) {
	c, err := NewClient(testConfig(ProviderOllama, "http://unused"), nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, c.(*client).backend.name())
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/"+defaultGeminiModel+":generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 3)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "system prompt", req.Contents[0].Parts[0].Text)
		assert.Equal(t, "model", req.Contents[1].Role)
		assert.Equal(t, geminiPrimer, req.Contents[1].Parts[0].Text)
		assert.Equal(t, "user prompt", req.Contents[2].Parts[0].Text)
		assert.Equal(t, 0.9, req.GenerationConfig.Temperature)
		assert.Equal(t, 1, req.GenerationConfig.TopK)
		assert.Equal(t, 8192, req.GenerationConfig.MaxOutputTokens)
		require.Len(t, req.SafetySettings, 4)
		for _, s := range req.SafetySettings {
			assert.Equal(t, "BLOCK_MEDIUM_AND_ABOVE", s.Threshold)
		}

		writeGemini(w, `{"destination":"Lisbon"}`)
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(ProviderGemini, srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskItinerary,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"destination":"Lisbon"}`, resp.Text)
	assert.Equal(t, "gemini-test", resp.Model)
}

func TestGeminiClient_Generate_OmitsPrimerWithoutSystemPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Contents, 1)
		writeGemini(w, "ok")
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(ProviderGemini, srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskNearby, UserPrompt: "p"})
	require.NoError(t, err)
}

func TestGeminiClient_Generate_RequestOverrides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 0.2, req.GenerationConfig.Temperature)
		assert.Equal(t, 100, req.GenerationConfig.MaxOutputTokens)
		writeGemini(w, "ok")
	}))
	defer srv.Close()

	temp, tokens := 0.2, 100
	client := NewGeminiClient(testConfig(ProviderGemini, srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:        TaskAddActivity,
		UserPrompt:  "p",
		Temperature: &temp,
		MaxTokens:   &tokens,
	})
	require.NoError(t, err)
}

func TestGeminiClient_Generate_BlockedPromptNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer srv.Close()

	cfg := testConfig(ProviderGemini, srv.URL)
	cfg.MaxRetries = 3
	var captured LLMCallEvent
	client := NewGeminiClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskItinerary, UserPrompt: "p"})

	assert.ErrorIs(t, err, ErrBlocked)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "BLOCKED", captured.ErrorCode)
}

func TestGeminiClient_Generate_SafetyFinishReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[]},"finishReason":"SAFETY"}]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(ProviderGemini, srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskItinerary, UserPrompt: "p"})
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestGeminiClient_Generate_MissingKey(t *testing.T) {
	cfg := testConfig(ProviderGemini, "http://unused")
	cfg.APIKey = ""
	client := NewGeminiClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskItinerary, UserPrompt: "p"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGeminiClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1beta/models/"+defaultGeminiModel, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(ProviderGemini, srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background()))

	cfg := testConfig(ProviderGemini, srv.URL)
	cfg.APIKey = ""
	assert.False(t, NewGeminiClient(cfg, NoopObserver{}).Available(context.Background()))
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultOllamaModel, req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)

		resp := ollamaResponse{Model: defaultOllamaModel, Response: `{"day":1}`}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(ProviderOllama, srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskReplaceActivity,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"day":1}`, resp.Text)
	assert.Equal(t, defaultOllamaModel, resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := shortTimeout(testConfig(ProviderOllama, srv.URL), 50)
	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskItinerary, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig(ProviderOllama, "http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0
	cfg = shortTimeout(cfg, 1000)

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskItinerary, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestOllamaClient_Generate_RetryOnTransientError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{Model: defaultOllamaModel, Response: "ok"})
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOllama, srv.URL)
	cfg.MaxRetries = 1

	var captured LLMCallEvent
	client := NewOllamaClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskItinerary, UserPrompt: "test"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, 2, captured.Attempts)
}

func TestOllamaClient_Generate_RetryAfterAttemptTimeout(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			time.Sleep(150 * time.Millisecond)
		}
		json.NewEncoder(w).Encode(ollamaResponse{Model: defaultOllamaModel, Response: "ok"})
	}))
	defer srv.Close()

	cfg := shortTimeout(testConfig(ProviderOllama, srv.URL), 50)
	cfg.MaxRetries = 1

	client := NewOllamaClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskItinerary, UserPrompt: "test"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOllamaClient_Generate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOllama, srv.URL)
	cfg.MaxRetries = 0

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskItinerary, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(testConfig(ProviderOllama, srv.URL), NoopObserver{}).Available(context.Background()))
	assert.False(t, NewOllamaClient(testConfig(ProviderOllama, "http://127.0.0.1:1"), NoopObserver{}).Available(context.Background()))
}

func TestClient_RateLimiterBlocksSecondCall(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(ollamaResponse{Response: "ok"})
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOllama, srv.URL)
	cfg.RequestsPerMinute = 1
	client := NewOllamaClient(cfg, NoopObserver{})

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskItinerary, UserPrompt: "a"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = client.Generate(ctx, GenerateRequest{Task: TaskItinerary, UserPrompt: "b"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_ObserverTimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := shortTimeout(testConfig(ProviderOllama, srv.URL), 50)
	cfg.MaxRetries = 0

	var captured LLMCallEvent
	client := NewOllamaClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskItinerary, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
	assert.Equal(t, TaskItinerary, captured.Task)
	assert.Equal(t, ProviderOllama, captured.Provider)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }

func TestUnavailable(t *testing.T) {
	c := Unavailable(ErrNotConfigured)
	_, err := c.Generate(context.Background(), GenerateRequest{Task: TaskItinerary})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, c.Available(context.Background()))
}
