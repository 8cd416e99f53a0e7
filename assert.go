package screencheck

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertMatch asserts that actual satisfies m. On failure the matcher's
// expected/actual report is the failure message.
func AssertMatch(t assert.TestingT, m Matcher, actual string, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	ok, msg := m(actual)
	if ok {
		return true
	}
	return assert.Fail(t, msg, msgAndArgs...)
}

// AssertScreen asserts that actual matches the framed layout expected.
func AssertScreen(t assert.TestingT, expected, actual string, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return AssertMatch(t, MatchScreen(expected), actual, msgAndArgs...)
}

// AssertRepl asserts that actual matches the transcript expected.
func AssertRepl(t assert.TestingT, expected, actual string, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return AssertMatch(t, MatchRepl(expected), actual, msgAndArgs...)
}

// RequireScreen is AssertScreen followed by FailNow on mismatch.
func RequireScreen(t require.TestingT, expected, actual string, msgAndArgs ...any) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if !AssertScreen(t, expected, actual, msgAndArgs...) {
		t.FailNow()
	}
}

// RequireRepl is AssertRepl followed by FailNow on mismatch.
func RequireRepl(t require.TestingT, expected, actual string, msgAndArgs ...any) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if !AssertRepl(t, expected, actual, msgAndArgs...) {
		t.FailNow()
	}
}
