package screencheck

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingT captures failures instead of failing the running test.
type recordingT struct {
	errors  []string
	stopped bool
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() {
	r.stopped = true
}

func TestAssertScreen(t *testing.T) {
	rt := &recordingT{}
	assert.True(t, AssertScreen(rt, "┌ Jard ┐\n│ ? │", "│ Jard │\n│ x │\njard >> "))
	assert.Empty(t, rt.errors)

	assert.False(t, AssertScreen(rt, "┌ Jard ┐\n│ y │", "│ Jard │\n│ x │", "after %s", "step"))
	if assert.Len(t, rt.errors, 1) {
		assert.Contains(t, rt.errors[0], "Expected screen:\n")
		assert.Contains(t, rt.errors[0], "after step")
	}
	assert.False(t, rt.stopped)
}

func TestAssertRepl(t *testing.T) {
	rt := &recordingT{}
	assert.True(t, AssertRepl(rt, "=> 2", "  => 2  \n"))
	assert.False(t, AssertRepl(rt, "=> 2", "=> 3"))
	assert.Len(t, rt.errors, 1)
}

func TestRequireStopsOnMismatch(t *testing.T) {
	rt := &recordingT{}
	RequireRepl(rt, "Hello", "Hello")
	assert.False(t, rt.stopped)

	RequireRepl(rt, "Hello", "Bye")
	assert.True(t, rt.stopped)

	rt = &recordingT{}
	RequireScreen(rt, "T\nab", "T\nac")
	assert.True(t, rt.stopped)
}

func TestAssertMatchCustomMatcher(t *testing.T) {
	rt := &recordingT{}
	m := Matcher(func(actual string) (bool, string) {
		return actual == "ok", "wanted ok"
	})
	assert.True(t, AssertMatch(rt, m, "ok"))
	assert.False(t, AssertMatch(rt, m, "nope"))
	if assert.Len(t, rt.errors, 1) {
		assert.Contains(t, rt.errors[0], "wanted ok")
	}
}
