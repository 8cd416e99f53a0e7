// Package tmuxcli provides low-level tmux command execution. It is internal to
// the screencheck package.
package tmuxcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Runner executes tmux commands, optionally against a specific server socket.
type Runner struct {
	tmuxPath   string
	socketPath string
	logger     *zap.Logger
}

// New creates a Runner bound to the given tmux binary. An empty socketPath
// targets the default tmux server.
func New(tmuxPath, socketPath string) *Runner {
	return &Runner{
		tmuxPath:   tmuxPath,
		socketPath: socketPath,
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger used to trace every invocation at debug level.
func (r *Runner) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.logger = logger
}

// Result is the outcome of a single tmux invocation. Exactly one of Output
// (on success) or Err (on failure) is meaningful.
type Result struct {
	Output string
	Err    *Error
}

// OK reports whether the command exited with status zero.
func (r Result) OK() bool {
	return r.Err == nil
}

// String returns the captured output on success and a readable description
// of the failure otherwise, so the result can be asserted on directly.
func (r Result) String() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Output
}

// Exec runs a tmux command and returns its result. It never fails: errors are
// encoded in the Result.
func (r *Runner) Exec(args ...string) Result {
	return r.ExecContext(context.Background(), args...)
}

// ExecContext runs a tmux command with the given context.
func (r *Runner) ExecContext(ctx context.Context, args ...string) Result {
	var fullArgs []string
	if r.socketPath != "" {
		fullArgs = append(fullArgs, "-S", r.socketPath)
	}
	fullArgs = append(fullArgs, args...)
	cmd := exec.CommandContext(ctx, r.tmuxPath, fullArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	op := ""
	if len(args) > 0 {
		op = args[0]
	}

	err := cmd.Run()
	if err == nil {
		r.logger.Debug("tmux", zap.String("op", op), zap.Strings("args", fullArgs))
		return Result{Output: stdout.String()}
	}

	tmuxErr := &Error{
		Op:       op,
		Command:  FormatCommand(r.tmuxPath, fullArgs),
		Args:     fullArgs,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr.String()),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		tmuxErr.ExitCode = exitErr.ExitCode()
	}
	r.logger.Debug("tmux failed", zap.String("op", op), zap.Strings("args", fullArgs), zap.Error(tmuxErr))
	return Result{Err: tmuxErr}
}

// Run executes a tmux command and returns its stdout, or the *Error
// describing why it failed.
func (r *Runner) Run(args ...string) (string, error) {
	res := r.Exec(args...)
	if res.Err != nil {
		return "", res.Err
	}
	return res.Output, nil
}

// HasSession reports whether the named session exists on the server.
func (r *Runner) HasSession(name string) bool {
	return r.Exec("has-session", "-t", name).OK()
}

// SocketPath returns the socket path used by this runner.
func (r *Runner) SocketPath() string {
	return r.socketPath
}

// TmuxPath returns the path to the tmux binary.
func (r *Runner) TmuxPath() string {
	return r.tmuxPath
}

// Error represents a tmux command failure. ExitCode is -1 when the process
// could not be started at all.
type Error struct {
	Op       string
	Command  string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	var msg string
	if e.ExitCode >= 0 {
		msg = fmt.Sprintf("failed to call `%s`: exit status %d", e.Command, e.ExitCode)
	} else {
		msg = fmt.Sprintf("failed to call `%s`. Error: %v", e.Command, e.Err)
	}
	if e.Stderr != "" {
		msg += "\nstderr: " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FormatCommand renders a command line for humans. Arguments containing
// whitespace or quotes are double-quoted with embedded quotes escaped.
func FormatCommand(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}

// Quote double-quotes s when it is empty or contains whitespace or quotes.
func Quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\") {
		return s
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// Version runs "tmux -V" and returns the version string (e.g. "3.4").
func Version(tmuxPath string) (string, error) {
	cmd := exec.Command(tmuxPath, "-V")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux -V failed: %v (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	// Output is like "tmux 3.4" or "tmux next-3.5"
	output := strings.TrimSpace(stdout.String())
	version := strings.TrimPrefix(output, "tmux ")
	return version, nil
}
