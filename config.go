package screencheck

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the environment-driven settings of the harness.
type Config struct {
	// CI switches every wait to its longer variant.
	CI       EnvFlag `envconfig:"CI"`
	TmuxPath string  `envconfig:"SCREENCHECK_TMUX"`
	Socket   string  `envconfig:"SCREENCHECK_SOCKET"`
	LogLevel string  `envconfig:"SCREENCHECK_LOG_LEVEL"`
	Update   EnvFlag `envconfig:"SCREENCHECK_UPDATE"`
}

// EnvFlag is a switch set by the presence of an environment variable. Any
// value other than "", "0", "false", "no" or "off" turns it on, so CI=true,
// CI=1 and CI=woodpecker all count.
type EnvFlag bool

// Decode implements envconfig.Decoder. It never fails.
func (f *EnvFlag) Decode(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "no", "off":
		*f = false
	default:
		*f = true
	}
	return nil
}

// Waits is the table of delays a Session observes around tmux calls.
type Waits struct {
	Start       time.Duration // after the working window is created
	Keys        time.Duration // after every SendKeys
	Capture     time.Duration // before the first capture of ScreenContent
	Retry       time.Duration // between captures while waiting for a change
	MaxCaptures int           // upper bound on captures per ScreenContent
}

const (
	startDelay     = 500 * time.Millisecond
	keyDelay       = 500 * time.Millisecond
	ciKeyDelay     = 3 * time.Second
	captureDelay   = 500 * time.Millisecond
	ciCaptureDelay = time.Second
	retryInterval  = 500 * time.Millisecond
	maxCaptures    = 5
)

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("screencheck: failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns the
// default configuration if the environment cannot be parsed.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the configuration used outside CI with no overrides.
func Default() *Config {
	return &Config{}
}

// Waits derives the wait table for this configuration.
func (c Config) Waits() Waits {
	w := Waits{
		Start:       startDelay,
		Keys:        keyDelay,
		Capture:     captureDelay,
		Retry:       retryInterval,
		MaxCaptures: maxCaptures,
	}
	if c.CI {
		w.Keys = ciKeyDelay
		w.Capture = ciCaptureDelay
	}
	return w
}
