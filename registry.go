package screencheck

import (
	"errors"
	"sort"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// ErrDuplicateSession is returned by Registry.Add when a session with the
// same name is already registered.
var ErrDuplicateSession = errors.New("screencheck: session name already registered")

// Registry tracks every live session so stragglers can be killed when a test
// run ends. The zero value is not usable; create one with NewRegistry.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	logger   *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry used by sessions created
// without WithRegistry.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(newLogger(LoadOrDefault().LogLevel))
	})
	return defaultRegistry
}

// Add registers s under its name.
func (r *Registry) Add(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.name]; ok {
		return ErrDuplicateSession
	}
	r.sessions[s.name] = s
	return nil
}

// Remove unregisters s. Removing a session that is not registered is a no-op.
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.sessions[s.name]; ok && cur == s {
		delete(r.sessions, s.name)
	}
}

// Contains reports whether s is registered.
func (r *Registry) Contains(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.sessions[s.name]
	return ok && cur == s
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sessions returns the registered sessions ordered by name.
func (r *Registry) Sessions() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Sweep stops every registered session and returns how many there were.
// Each straggler is logged with the call site that declared it.
func (r *Registry) Sweep() int {
	leaked := r.Sessions()
	for _, s := range leaked {
		r.logger.Warn("stopping leaked session",
			zap.String("session", s.name),
			zap.String("source", s.source),
			zap.Stringer("state", s.State()),
		)
		s.Stop()
	}
	return len(leaked)
}

// Main runs the tests and then sweeps the default registry. Use it from
// TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(screencheck.Main(m))
//	}
func Main(m *testing.M) int {
	code := m.Run()
	DefaultRegistry().Sweep()
	return code
}
