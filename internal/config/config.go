// Package config centralizes runtime configuration for the guarantor intake
// core. Settings come from environment variables with defaults applied and
// are validated on load so misconfiguration fails fast.
package config

import "time"

// Backend modes.
const (
	ModeFixture = "fixture"
	ModeRemote  = "remote"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Backend BackendConfig
	Upload  UploadConfig
	Draft   DraftConfig
	Session SessionConfig
	Logging LoggingConfig
}

// BackendConfig selects and tunes the data-access backend.
type BackendConfig struct {
	// Mode chooses the backend: "fixture" or "remote" (default: fixture)
	Mode string `env:"BACKEND_MODE" default:"fixture"`

	// BaseURL is the intake API base URL; required in remote mode
	// Supports both API_BASE_URL and BACKEND_BASE_URL env vars
	BaseURL string `env:"API_BASE_URL" envAlt:"BACKEND_BASE_URL"`

	// RequestTimeout bounds each API call (default: 30s)
	RequestTimeout time.Duration `env:"API_REQUEST_TIMEOUT" default:"30s"`

	// RetryCount is how many times transient failures are retried (default: 2)
	RetryCount int `env:"API_RETRY_COUNT" default:"2"`
}

// UploadConfig tunes the file upload coordinator.
type UploadConfig struct {
	// MaxConcurrent caps simultaneous file transfers (default: 5)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"5"`

	// ProgressTick paces simulated fixture-backend upload progress (default: 25ms)
	ProgressTick time.Duration `env:"UPLOAD_PROGRESS_TICK" default:"25ms"`
}

// DraftConfig tunes draft autosave and persistence.
type DraftConfig struct {
	// Path is the draft file location (default: guarantor-form-draft.json)
	Path string `env:"DRAFT_PATH" default:"guarantor-form-draft.json"`

	// AutosaveDebounce is the quiet period before a draft save (default: 2s)
	AutosaveDebounce time.Duration `env:"DRAFT_AUTOSAVE_DEBOUNCE" default:"2s"`
}

// SessionConfig identifies the submitting user.
type SessionConfig struct {
	// SubmittedBy is stamped onto records created by this session (default: current_user)
	SubmittedBy string `env:"SESSION_SUBMITTED_BY" default:"current_user"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
