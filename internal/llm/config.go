package llm

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskItinerary       TaskType = "itinerary"
	TaskReplaceActivity TaskType = "replace_activity"
	TaskAddActivity     TaskType = "add_activity"
	TaskNearby          TaskType = "nearby"
)

// Provider selects the model backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider          Provider `env:"TRATLUS_LLM_PROVIDER" envDefault:"gemini"`
	LogCalls          bool     `env:"TRATLUS_LLM_LOG_CALLS" envDefault:"false"`
	Endpoint          string   `env:"TRATLUS_LLM_ENDPOINT"`
	Model             string   `env:"TRATLUS_LLM_MODEL"`
	APIKey            string   `env:"TRATLUS_LLM_API_KEY"`
	GeminiAPIKey      string   `env:"GEMINI_API_KEY"`
	TimeoutMs         int      `env:"TRATLUS_LLM_TIMEOUT_MS" envDefault:"60000"`
	MaxRetries        int      `env:"TRATLUS_LLM_MAX_RETRIES" envDefault:"1"`
	RequestsPerMinute int      `env:"TRATLUS_LLM_REQUESTS_PER_MINUTE" envDefault:"30"`

	ItineraryTimeoutMs int `env:"TRATLUS_LLM_ITINERARY_TIMEOUT_MS"`
	ActivityTimeoutMs  int `env:"TRATLUS_LLM_ACTIVITY_TIMEOUT_MS"`
	NearbyTimeoutMs    int `env:"TRATLUS_LLM_NEARBY_TIMEOUT_MS"`

	Tasks map[TaskType]TaskConfig `env:"-"`
}

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"
	defaultGeminiModel    = "gemini-pro-latest"
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
)

// DefaultConfig returns an LLMConfig targeting Gemini with the task
// defaults used for itinerary generation.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:          ProviderGemini,
		Endpoint:          defaultGeminiEndpoint,
		Model:             defaultGeminiModel,
		TimeoutMs:         60000,
		MaxRetries:        1,
		RequestsPerMinute: 30,
		Tasks:             defaultTasks(),
	}
}

func defaultTasks() map[TaskType]TaskConfig {
	return map[TaskType]TaskConfig{
		TaskItinerary:       {Temperature: 0.9, MaxTokens: 8192, TimeoutMs: 120000},
		TaskReplaceActivity: {Temperature: 0.9, MaxTokens: 2048, TimeoutMs: 45000},
		TaskAddActivity:     {Temperature: 0.9, MaxTokens: 2048, TimeoutMs: 45000},
		TaskNearby:          {Temperature: 0.9, MaxTokens: 8192, TimeoutMs: 90000},
	}
}

// LoadConfig reads LLM configuration from the process environment.
func LoadConfig() (LLMConfig, error) {
	return loadConfig(env.Options{})
}

// LoadConfigFrom reads LLM configuration from the given variables only.
func LoadConfigFrom(environ map[string]string) (LLMConfig, error) {
	return loadConfig(env.Options{Environment: environ})
}

func loadConfig(opts env.Options) (LLMConfig, error) {
	var cfg LLMConfig
	if err := env.Parse(&cfg, opts); err != nil {
		return LLMConfig{}, fmt.Errorf("parsing llm config: %w", err)
	}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.Endpoint == "" {
			cfg.Endpoint = defaultGeminiEndpoint
		}
		if cfg.Model == "" {
			cfg.Model = defaultGeminiModel
		}
		if cfg.APIKey == "" {
			cfg.APIKey = cfg.GeminiAPIKey
		}
	case ProviderOllama:
		if cfg.Endpoint == "" {
			cfg.Endpoint = defaultOllamaEndpoint
		}
		if cfg.Model == "" {
			cfg.Model = defaultOllamaModel
		}
	default:
		return LLMConfig{}, fmt.Errorf("unknown llm provider %q (want gemini or ollama)", cfg.Provider)
	}
	if cfg.TimeoutMs <= 0 {
		return LLMConfig{}, fmt.Errorf("TRATLUS_LLM_TIMEOUT_MS must be positive, got %d", cfg.TimeoutMs)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	cfg.Tasks = defaultTasks()
	applyTaskTimeout(&cfg, TaskItinerary, cfg.ItineraryTimeoutMs)
	applyTaskTimeout(&cfg, TaskReplaceActivity, cfg.ActivityTimeoutMs)
	applyTaskTimeout(&cfg, TaskAddActivity, cfg.ActivityTimeoutMs)
	applyTaskTimeout(&cfg, TaskNearby, cfg.NearbyTimeoutMs)

	return cfg, nil
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeout(cfg *LLMConfig, task TaskType, ms int) {
	if ms <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = ms
	cfg.Tasks[task] = tc
}
