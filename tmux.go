package screencheck

import (
	"os/exec"
	"regexp"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cboone/screencheck/internal/tmuxcli"
)

const (
	minTmuxVersion = "3.0"
	blankWindow    = "blank"
	mainWindow     = "main"
)

// Result is the outcome of one tmux invocation: captured output on success,
// a structured failure otherwise. Its String method renders either case.
type Result = tmuxcli.Result

// Executor runs tmux commands. Implementations must not panic; failures are
// reported through the Result.
type Executor interface {
	Exec(args ...string) Result
}

// newRunner builds the default tmux executor for cfg.
func newRunner(cfg *Config, logger *zap.Logger) *tmuxcli.Runner {
	path := cfg.TmuxPath
	if path == "" {
		path = "tmux"
	}
	runner := tmuxcli.New(path, cfg.Socket)
	runner.SetLogger(logger)
	return runner
}

// requireTmux finds the tmux binary for a test and checks that it is recent
// enough. A missing or outdated tmux skips the test, unless the path came
// from SCREENCHECK_TMUX: a configured binary that does not work is a failure.
func requireTmux(t testing.TB, configured string) string {
	t.Helper()

	path, explicit := configured, configured != ""
	if !explicit {
		found, err := exec.LookPath("tmux")
		if err != nil {
			t.Skip("screencheck: open: tmux not found")
		}
		path = found
	}

	giveUp := t.Skipf
	if explicit {
		giveUp = t.Fatalf
	}

	version, err := tmuxcli.Version(path)
	if err != nil {
		giveUp("screencheck: open: %v", err)
		return path
	}
	if !versionAtLeast(version, minTmuxVersion) {
		giveUp("screencheck: open: tmux %s is older than %s", version, minTmuxVersion)
	}
	return path
}

// tmuxVersionRe extracts major.minor from "tmux 3.3a", "next-3.5" and the like.
var tmuxVersionRe = regexp.MustCompile(`(\d+)\.(\d+)`)

func parseVersion(v string) (major, minor int, ok bool) {
	m := tmuxVersionRe.FindStringSubmatch(v)
	if m == nil {
		return 0, 0, false
	}
	major, _ = strconv.Atoi(m[1])
	minor, _ = strconv.Atoi(m[2])
	return major, minor, true
}

// versionAtLeast compares major.minor only; patch letters are ignored.
func versionAtLeast(version, minVersion string) bool {
	major, minor, ok := parseVersion(version)
	wantMajor, wantMinor, wantOK := parseVersion(minVersion)
	if !ok || !wantOK {
		return false
	}
	return major > wantMajor || (major == wantMajor && minor >= wantMinor)
}

// generateSessionName returns prefix followed by a random UUID.
func generateSessionName(prefix string) string {
	return prefix + uuid.NewString()
}

// createSession starts a detached session whose only window is a placeholder.
func createSession(e Executor, name, dir string, width, height int) Result {
	args := []string{"new-session", "-d"}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	args = append(args,
		"-s", name,
		"-n", blankWindow,
		"-x", strconv.Itoa(width),
		"-y", strconv.Itoa(height),
	)
	return e.Exec(args...)
}

// createWindow opens the working window running command. tmux hands the
// command to the default shell.
func createWindow(e Executor, name, dir, command string) Result {
	args := []string{"new-window"}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	args = append(args, "-t", name, "-n", mainWindow, command)
	return e.Exec(args...)
}

// sendKeys sends tokens to the session. Literal tokens use send-keys -l so
// tmux never looks them up as key names.
func sendKeys(e Executor, name string, literal bool, tokens []string) Result {
	args := []string{"send-keys", "-t", name}
	if literal {
		args = append(args, "-l")
	}
	args = append(args, tokens...)
	return e.Exec(args...)
}

// capturePane captures the visible pane, joining wrapped lines.
func capturePane(e Executor, name string) Result {
	return e.Exec("capture-pane", "-J", "-p", "-t", name)
}

// killSession kills the session and every process running in it.
func killSession(e Executor, name string) Result {
	return e.Exec("kill-session", "-t", name)
}
