package screencheck_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cboone/screencheck"
	"github.com/cboone/screencheck/internal/tmuxcli"
)

var testBinary string

func TestMain(m *testing.M) {
	// Build the test fixture binary.
	dir, err := os.MkdirTemp("", "screencheck-testbin-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	binPath := filepath.Join(dir, "testbin")
	cmd := exec.Command("go", "build", "-o", binPath, "./internal/testbin")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build testbin: %v\n", err)
		os.RemoveAll(dir)
		os.Exit(1)
	}

	testBinary = binPath
	code := screencheck.Main(m)
	os.RemoveAll(dir)
	os.Exit(code)
}

// isolatedConfig gives the test its own tmux server so it never touches the
// user's sessions.
func isolatedConfig(t *testing.T) *screencheck.Config {
	t.Helper()
	if _, err := exec.LookPath("tmux"); err != nil {
		t.Skip("tmux not found in PATH")
	}

	// Unix socket paths are limited to ~104 bytes; keep them short.
	dir, err := os.MkdirTemp("", "sc")
	require.NoError(t, err)
	socket := filepath.Join(dir, "tmux.sock")
	t.Cleanup(func() {
		tmuxcli.New("tmux", socket).Exec("kill-server")
		os.RemoveAll(dir)
	})

	cfg := screencheck.LoadOrDefault()
	cfg.Socket = socket
	return cfg
}

func TestHelloTranscript(t *testing.T) {
	cfg := isolatedConfig(t)
	// tmux closes a window whose command exits; sleep keeps the pane around to capture.
	s := screencheck.Open(t, "", testBinary+" hello && sleep 30", screencheck.WithConfig(cfg))

	s.SendKeys("q")
	screencheck.AssertRepl(t, "Hello", s.ScreenContent(false))
}

func TestJardScreen(t *testing.T) {
	cfg := isolatedConfig(t)
	s := screencheck.Open(t, os.TempDir(), testBinary+" jard", screencheck.WithConfig(cfg))

	s.SendKeys("next", screencheck.Enter)

	expected := strings.Join([]string{
		"┌ Jard ┐",
		fmt.Sprintf("│%-28s│", " step ?"),
		fmt.Sprintf("│%-28s│", " > next"),
		"└" + strings.Repeat("─", 28) + "┘",
	}, "\n")
	screencheck.AssertScreen(t, expected, s.ScreenContent(false))
}

func TestJardScreenMismatchReport(t *testing.T) {
	cfg := isolatedConfig(t)
	s := screencheck.Open(t, "", testBinary+" jard", screencheck.WithConfig(cfg))

	screen := s.Screen()
	ok, msg := screencheck.MatchScreen("┌ Jard ┐\n│ nothing like it │")(screen)
	assert.False(t, ok)
	assert.Contains(t, msg, "Expected screen:\n###\n┌ Jard ┐\n│ nothing like it │\n###")
	assert.Contains(t, msg, "Actual screen:\n###\n"+screen+"\n###")
}

func TestTerminalSize(t *testing.T) {
	cfg := isolatedConfig(t)
	s := screencheck.Open(t, "", testBinary+" size", screencheck.WithConfig(cfg), screencheck.WithSize(100, 30))

	screencheck.AssertRepl(t, "size: 100x30", s.Screen())
}

func TestStopKillsSession(t *testing.T) {
	cfg := isolatedConfig(t)
	s := screencheck.Open(t, "", testBinary+" jard", screencheck.WithConfig(cfg))
	runner := tmuxcli.New("tmux", cfg.Socket)

	require.True(t, runner.HasSession(s.Name()))
	assert.True(t, screencheck.DefaultRegistry().Contains(s))

	s.Stop()
	assert.False(t, runner.HasSession(s.Name()))
	assert.False(t, screencheck.DefaultRegistry().Contains(s))
	assert.Equal(t, screencheck.Stopped, s.State())
}

func TestSweepKillsLeakedSessions(t *testing.T) {
	cfg := isolatedConfig(t)
	reg := screencheck.NewRegistry(nil)
	runner := tmuxcli.New("tmux", cfg.Socket)

	var names []string
	for i := 0; i < 3; i++ {
		s := screencheck.NewSession("", testBinary+" jard", screencheck.WithConfig(cfg), screencheck.WithRegistry(reg))
		s.Start()
		names = append(names, s.Name())
	}
	for _, n := range names {
		require.True(t, runner.HasSession(n), n)
	}

	assert.Equal(t, 3, reg.Sweep())
	for _, n := range names {
		assert.False(t, runner.HasSession(n), n)
	}
}

func TestMissingTmuxSurfacesAsText(t *testing.T) {
	reg := screencheck.NewRegistry(nil)
	s := screencheck.NewSession("", "true",
		screencheck.WithConfig(&screencheck.Config{TmuxPath: "/non/existent/tmux"}),
		screencheck.WithRegistry(reg),
		screencheck.WithWaits(screencheck.Waits{MaxCaptures: 1}),
	)
	s.Start()

	screen := s.Screen()
	assert.True(t, strings.HasPrefix(screen, "failed to call `/non/existent/tmux capture-pane -J -p -t "+s.Name()+"`. Error: "), screen)

	s.Stop()
	assert.Equal(t, 0, reg.Len())
}
