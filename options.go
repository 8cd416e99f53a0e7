package screencheck

import (
	"go.uber.org/zap"
)

type options struct {
	width      int
	height     int
	namePrefix string
	cfg        *Config
	waits      *Waits
	executor   Executor
	registry   *Registry
	clock      Clock
	logger     *zap.Logger
}

// Option configures a Session created by NewSession or Open.
type Option func(*options)

// WithSize sets the terminal dimensions (columns x rows).
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithNamePrefix sets the prefix of the generated session name.
func WithNamePrefix(prefix string) Option {
	return func(o *options) {
		o.namePrefix = prefix
	}
}

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithWaits overrides the wait table derived from the configuration.
func WithWaits(w Waits) Option {
	return func(o *options) {
		o.waits = &w
	}
}

// WithExecutor sets the executor used to talk to tmux. By default a tmux
// runner is built from the configuration.
func WithExecutor(e Executor) Option {
	return func(o *options) {
		o.executor = e
	}
}

// WithRegistry registers the session in r instead of the default registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithClock sets the clock used for every wait.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger. By default logging is controlled by
// SCREENCHECK_LOG_LEVEL and is off when unset.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

const (
	defaultWidth      = 80
	defaultHeight     = 24
	defaultNamePrefix = "TestJard"
)

func defaultOptions() options {
	return options{
		width:      defaultWidth,
		height:     defaultHeight,
		namePrefix: defaultNamePrefix,
	}
}

// resolve fills in every dependency the caller did not provide.
func (o *options) resolve() {
	if o.cfg == nil {
		o.cfg = LoadOrDefault()
	}
	if o.waits == nil {
		w := o.cfg.Waits()
		o.waits = &w
	}
	if o.logger == nil {
		o.logger = newLogger(o.cfg.LogLevel)
	}
	if o.clock == nil {
		o.clock = realClock{}
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	if o.executor == nil {
		o.executor = newRunner(o.cfg, o.logger)
	}
}
