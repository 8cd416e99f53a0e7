package screencheck

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// A Matcher compares captured text against an expectation it was built with.
// On mismatch, message holds the full expected and actual blocks.
type Matcher func(actual string) (ok bool, message string)

// Wildcard matches any single character of the actual text when it appears
// in an expected line. There is no escape for a literal '?'.
const Wildcard = "?"

// DefaultPromptMarker identifies lines that belong to the debugger's live
// input prompt.
const DefaultPromptMarker = "jard >>"

// Box-drawing glyphs used to frame titled panels.
const (
	normalCorners     = "┌┐└┘"
	overlappedCorners = "├┤┬┴"
	HorizontalLine    = "─"
	VerticalLine      = "│"
	CrossCorner       = "┼"
)

// BorderGlyphs returns a fresh copy of every glyph neutralized in title
// lines: the normal and overlapped corners, the lines and the cross.
func BorderGlyphs() []string {
	glyphs := strings.Split(normalCorners+overlappedCorners, "")
	return append(glyphs, HorizontalLine, VerticalLine, CrossCorner)
}

type matchOptions struct {
	promptMarker string
	glyphs       []string
}

// MatchOption configures MatchScreen.
type MatchOption func(*matchOptions)

// WithPromptMarker sets the marker of prompt lines dropped from the actual
// screen. An empty marker keeps every line.
func WithPromptMarker(marker string) MatchOption {
	return func(o *matchOptions) {
		o.promptMarker = marker
	}
}

// WithBorderGlyphs replaces the set of glyphs neutralized in title lines.
func WithBorderGlyphs(glyphs ...string) MatchOption {
	return func(o *matchOptions) {
		o.glyphs = glyphs
	}
}

func newMatchOptions(userOpts []MatchOption) matchOptions {
	opts := matchOptions{
		promptMarker: DefaultPromptMarker,
		glyphs:       BorderGlyphs(),
	}
	for _, o := range userOpts {
		o(&opts)
	}
	return opts
}

// MatchScreen matches a framed screen layout.
//
// Prompt lines and framed rows with a blank interior are dropped from the
// actual screen. The first line is a title: border glyphs are replaced with
// spaces on both sides before the trimmed titles are compared. Every other
// line must have the same length as its expected counterpart and match it
// character by character, where '?' in the expected line matches anything.
func MatchScreen(expected string, userOpts ...MatchOption) Matcher {
	opts := newMatchOptions(userOpts)
	neutralize := borderReplacer(opts.glyphs)

	return func(actual string) (bool, string) {
		exp := strings.TrimSpace(expected)
		act := strings.TrimSpace(cleanScreen(actual, opts.promptMarker))
		if exp == act || matchFramed(splitLines(exp), splitLines(act), neutralize) {
			return true, ""
		}
		return false, failureMessage(expected, actual, exp, act)
	}
}

// MatchRepl matches a transcript. Every line is trimmed on both sides; lines
// are then compared with the same wildcard rule as MatchScreen, without any
// title handling.
func MatchRepl(expected string) Matcher {
	return func(actual string) (bool, string) {
		exp := trimLines(expected)
		act := trimLines(actual)
		if exp == act || matchLines(splitLines(exp), splitLines(act)) {
			return true, ""
		}
		return false, failureMessage(expected, actual, exp, act)
	}
}

// cleanScreen drops prompt lines and framed rows that carry no content.
func cleanScreen(actual, promptMarker string) string {
	lines := splitLines(actual)
	kept := lines[:0]
	for _, line := range lines {
		if promptMarker != "" && strings.Contains(strings.TrimSpace(line), promptMarker) {
			continue
		}
		if blankInterior(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// blankInterior reports whether everything between the first and the last
// character of line is whitespace. An empty line has no interior.
func blankInterior(line string) bool {
	c := chars(line)
	if len(c) == 0 {
		return false
	}
	if len(c) <= 2 {
		return true
	}
	return strings.TrimSpace(strings.Join(c[1:len(c)-1], "")) == ""
}

func matchFramed(expected, actual []string, neutralize *strings.Replacer) bool {
	if len(expected) != len(actual) {
		return false
	}
	if len(expected) == 0 {
		return true
	}

	expTitle := strings.TrimSpace(neutralize.Replace(expected[0]))
	actTitle := strings.TrimSpace(neutralize.Replace(actual[0]))
	if expTitle != actTitle {
		return false
	}
	return matchLines(expected[1:], actual[1:])
}

func matchLines(expected, actual []string) bool {
	if len(expected) != len(actual) {
		return false
	}
	for i := range expected {
		if !matchLine(expected[i], actual[i]) {
			return false
		}
	}
	return true
}

// matchLine compares two lines of equal length character by character.
func matchLine(expected, actual string) bool {
	ec, ac := chars(expected), chars(actual)
	if len(ec) != len(ac) {
		return false
	}
	for i, c := range ec {
		if c == Wildcard {
			continue
		}
		if c != ac[i] {
			return false
		}
	}
	return true
}

func borderReplacer(glyphs []string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(glyphs))
	for _, g := range glyphs {
		pairs = append(pairs, g, " ")
	}
	return strings.NewReplacer(pairs...)
}

// failureMessage renders both blocks verbatim followed by a diff of their
// normalized forms.
func failureMessage(expected, actual, normExpected, normActual string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Expected screen:\n###\n%s\n###\n\nActual screen:\n###\n%s\n###\n", expected, actual)

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(normExpected),
		B:        difflib.SplitLines(normActual),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  2,
	})
	if err == nil && diff != "" {
		fmt.Fprintf(&b, "\nDiff:\n%s", diff)
	}
	return b.String()
}
