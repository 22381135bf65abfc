package llm

import "errors"

var (
	// ErrProviderUnavailable indicates the model provider is unreachable.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrBlocked indicates the provider refused the prompt or the answer
	// under its safety settings.
	ErrBlocked = errors.New("llm response blocked by safety settings")

	// ErrNotConfigured indicates a provider is missing required settings
	// such as an API key.
	ErrNotConfigured = errors.New("llm provider not configured")
)
