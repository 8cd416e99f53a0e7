package screencheck

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// State is the lifecycle stage of a Session.
type State int

const (
	Created State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Session is one tmux session hosting the program under test.
//
// A Session is created with NewSession (or Open in tests), started with
// Start and torn down with Stop. Every tmux failure is surfaced as text:
// the captured screen of a broken session contains the failure description,
// so a screen assertion fails with a readable message.
type Session struct {
	name    string
	dir     string
	command string
	width   int
	height  int
	source  string

	executor Executor
	registry *Registry
	clock    Clock
	waits    Waits
	logger   *zap.Logger

	mu          sync.Mutex
	state       State
	content     string
	lastFailure *Result
}

const maxNameAttempts = 10

// NewSession declares a session that will run command in dir. The session is
// registered immediately, so it is swept even if Start is never called or
// fails.
func NewSession(dir, command string, userOpts ...Option) *Session {
	return newSession(2, dir, command, userOpts)
}

func newSession(skip int, dir, command string, userOpts []Option) *Session {
	opts := defaultOptions()
	for _, o := range userOpts {
		o(&opts)
	}
	opts.resolve()

	s := &Session{
		dir:      dir,
		command:  command,
		width:    opts.width,
		height:   opts.height,
		source:   callSite(skip + 1),
		executor: opts.executor,
		registry: opts.registry,
		clock:    opts.clock,
		waits:    *opts.waits,
	}

	// Handle collision: if the name is taken, regenerate.
	for i := 0; i < maxNameAttempts; i++ {
		s.name = generateSessionName(opts.namePrefix)
		s.logger = opts.logger.With(zap.String("session", s.name))
		if err := s.registry.Add(s); err == nil {
			s.logger.Debug("session declared", zap.String("source", s.source), zap.String("command", command))
			return s
		}
	}

	// Extremely unlikely: 10 collisions in a row.
	panic(fmt.Sprintf("screencheck: could not generate a unique session name after %d attempts", maxNameAttempts))
}

// Open declares and starts a session for the duration of a test. The session
// is stopped automatically via t.Cleanup.
//
// The test is skipped when tmux cannot be found or is older than 3.0, unless
// the tmux path was configured explicitly, in which case it fails.
func Open(t testing.TB, dir, command string, userOpts ...Option) *Session {
	t.Helper()

	opts := defaultOptions()
	for _, o := range userOpts {
		o(&opts)
	}
	if opts.executor == nil {
		if opts.cfg == nil {
			opts.cfg = LoadOrDefault()
		}
		cfg := *opts.cfg
		cfg.TmuxPath = requireTmux(t, cfg.TmuxPath)
		userOpts = append(userOpts, WithConfig(&cfg))
	}

	s := newSession(2, dir, command, userOpts)
	t.Cleanup(s.Stop)
	s.Start()
	return s
}

// Start creates the tmux session and its working window, then waits for the
// program to initialize. Start on a session that is not Created does nothing.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Created {
		s.logger.Warn("start ignored", zap.Stringer("state", s.state))
		return
	}
	s.state = Running

	s.check("new-session", createSession(s.executor, s.name, s.dir, s.width, s.height))
	s.check("new-window", createWindow(s.executor, s.name, s.dir, s.command))
	s.logger.Debug("session started", zap.Int("width", s.width), zap.Int("height", s.height))

	s.clock.Sleep(s.waits.Start)
}

// SendKeys sends keys to the session and waits for the program to react.
//
// A string is typed literally. A Key (or an integer) is sent as a tmux key
// name, so SendKeys("next", Enter) types "next" and presses Enter.
// Consecutive tokens of the same kind are sent in one tmux call.
func (s *Session) SendKeys(keys ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Running {
		s.logger.Warn("send-keys ignored", zap.Stringer("state", s.state))
		return
	}

	for _, run := range groupTokens(keys) {
		s.check("send-keys", sendKeys(s.executor, s.name, run.literal, run.tokens))
	}
	s.clock.Sleep(s.waits.Keys)
}

// Screen captures the current screen. It is ScreenContent(true).
func (s *Session) Screen() string {
	return s.ScreenContent(true)
}

// ScreenContent captures the visible screen with wrapped lines joined.
//
// When allowDuplication is false, the capture is repeated until it differs
// from the previously returned content or the capture budget is spent; the
// last capture is returned either way. A screen caught mid-redraw is
// otherwise indistinguishable from the state before the redraw.
func (s *Session) ScreenContent(allowDuplication bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Running {
		s.logger.Warn("capture ignored", zap.Stringer("state", s.state))
		return s.content
	}

	s.clock.Sleep(s.waits.Capture)

	previous := s.content
	for attempt := 1; ; attempt++ {
		res := capturePane(s.executor, s.name)
		s.check("capture-pane", res)
		s.content = res.String()

		if allowDuplication || s.content != previous || attempt >= s.waits.MaxCaptures {
			s.logger.Debug("captured", zap.Int("attempt", attempt), zap.Bool("changed", s.content != previous))
			break
		}
		s.clock.Sleep(s.waits.Retry)
	}
	return s.content
}

// Stop kills the tmux session and removes the session from its registry.
// The kill result is ignored, so Stop is safe to call on sessions that never
// started, already exited or were already stopped.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Stopped {
		_ = killSession(s.executor, s.name)
		s.state = Stopped
		s.logger.Debug("session stopped")
	}
	s.registry.Remove(s)
}

// Name returns the tmux session name.
func (s *Session) Name() string {
	return s.name
}

// Source returns the file:line that declared the session.
func (s *Session) Source() string {
	return s.source
}

// Size returns the configured width and height.
func (s *Session) Size() (width, height int) {
	return s.width, s.height
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastFailure returns the most recent failed tmux call, if any.
func (s *Session) LastFailure() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFailure == nil {
		return Result{}, false
	}
	return *s.lastFailure, true
}

func (s *Session) String() string {
	return fmt.Sprintf("session %s (%s, declared at %s)", s.name, s.command, s.source)
}

// check records and logs a failed tmux call. Caller must hold s.mu.
func (s *Session) check(op string, res Result) {
	if res.OK() {
		return
	}
	s.lastFailure = &res
	s.logger.Warn("tmux call failed", zap.String("op", op), zap.Error(res.Err))
}

// tokenRun is a batch of consecutive keys of the same kind.
type tokenRun struct {
	literal bool
	tokens  []string
}

func groupTokens(keys []any) []tokenRun {
	var runs []tokenRun
	for _, k := range keys {
		token, literal := keyToken(k)
		if n := len(runs); n > 0 && runs[n-1].literal == literal {
			runs[n-1].tokens = append(runs[n-1].tokens, token)
			continue
		}
		runs = append(runs, tokenRun{literal: literal, tokens: []string{token}})
	}
	return runs
}

// keyToken converts a SendKeys argument to its tmux form and reports whether
// it is literal text.
func keyToken(k any) (string, bool) {
	switch v := k.(type) {
	case string:
		return v, true
	case Key:
		return string(v), false
	case int:
		return strconv.Itoa(v), false
	case fmt.Stringer:
		return v.String(), false
	default:
		return fmt.Sprint(v), false
	}
}

func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}
