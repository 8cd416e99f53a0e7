// Package screencheck verifies the rendered screens of terminal debugger UIs.
//
// screencheck runs a program inside a tmux session, sends keystrokes,
// captures the visible screen and compares it against an expected layout
// while tolerating box-drawing decoration, surrounding whitespace and
// wildcard characters.
//
// # Quick Start
//
//	func TestStepOver(t *testing.T) {
//		s := screencheck.Open(t, "testdata", "ruby step_over.rb")
//		s.SendKeys(screencheck.F8)
//		screencheck.AssertScreen(t, `
//	┌ Source  step_over.rb:7 ─────────────┐
//	│   6   def greet                     │
//	│ ➠ 7     puts "hi"                   │
//	└─────────────────────────────────────┘
//	`, s.ScreenContent(false))
//	}
//
// # Session Lifecycle
//
// [NewSession] declares a session with a unique name and registers it in a
// [Registry]; [Session.Start] creates the tmux session with a placeholder
// window and opens a second window running the command; [Session.Stop]
// kills the tmux session and unregisters it. [Open] does all of that for a
// test and stops the session through t.Cleanup.
//
// Sessions that are never stopped are killed by [Registry.Sweep]. Call
// [Main] from TestMain to sweep the default registry after the run:
//
//	func TestMain(m *testing.M) {
//		os.Exit(screencheck.Main(m))
//	}
//
// # Waiting
//
// Rendering by the program under test cannot be observed synchronously, so
// sessions wait after each interaction:
//
//   - 0.5s after Start
//   - 0.5s after SendKeys (3s when CI is set)
//   - 0.5s before each capture (1s when CI is set)
//
// [Session.ScreenContent] with allowDuplication=false re-captures every 0.5s,
// at most 5 times, until the screen differs from the previous capture.
//
// # Failures as Text
//
// tmux failures never panic. The failed command and its exit status are
// rendered as text and become the captured screen, so the following
// assertion fails with a readable report.
//
// # Matchers
//
// [MatchScreen] compares framed layouts: the first line is a title compared
// without border glyphs, prompt lines ("jard >>") and empty framed rows are
// ignored. [MatchRepl] compares transcripts line by line after trimming.
// In both, '?' in the expected text matches any single character.
//
// [AssertScreen], [AssertRepl], [RequireScreen] and [RequireRepl] report
// mismatches through testify.
//
// # Configuration
//
//   - CI: use the longer waits
//   - SCREENCHECK_TMUX: tmux binary
//   - SCREENCHECK_SOCKET: tmux server socket (default server when unset)
//   - SCREENCHECK_LOG_LEVEL: zap log level (logging is off when unset)
//   - SCREENCHECK_UPDATE: rewrite golden files in [MatchScreenSnapshot]
package screencheck
