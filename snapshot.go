package screencheck

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MatchScreenSnapshot compares actual against a golden screen stored in
// testdata/<sanitized-test-name>-<hash>/<sanitized-name>.txt using
// MatchScreen, so golden files may contain '?' wildcards and border-decorated
// titles. Golden files hold the screen as MatchScreen sees it: prompt lines
// and blank framed rows are left out.
//
// Set SCREENCHECK_UPDATE=1 to create or update golden files.
func MatchScreenSnapshot(t testing.TB, name, actual string, opts ...MatchOption) {
	t.Helper()

	dir := snapshotDir(t)
	path := filepath.Join(dir, sanitizeName(name)+".txt")
	content := normalizeForSnapshot(cleanScreen(actual, newMatchOptions(opts).promptMarker))

	if LoadOrDefault().Update {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("screencheck: snapshot: failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("screencheck: snapshot: failed to write golden file: %v", err)
		}
		return
	}

	golden, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("screencheck: snapshot: golden file not found: %s\nRun with SCREENCHECK_UPDATE=1 to create it.\n\nActual screen:\n%s", path, content)
		}
		t.Fatalf("screencheck: snapshot: failed to read golden file: %v", err)
	}

	if ok, msg := MatchScreen(string(golden), opts...)(actual); !ok {
		t.Fatalf("screencheck: snapshot: mismatch for %q\nGolden file: %s\nRun with SCREENCHECK_UPDATE=1 to update.\n\n%s", name, path, msg)
	}
}

// snapshotDir is testdata/<test name>-<hash>. The hash keeps subtests whose
// names sanitize identically apart.
func snapshotDir(t testing.TB) string {
	t.Helper()
	sum := sha256.Sum256([]byte(t.Name()))
	return filepath.Join("testdata", sanitizeName(t.Name())+"-"+hex.EncodeToString(sum[:4]))
}

// normalizeForSnapshot drops trailing spaces on each line and trailing empty
// lines, and terminates the result with exactly one newline.
func normalizeForSnapshot(raw string) string {
	var b strings.Builder
	pending := 0
	for _, line := range splitLines(raw) {
		line = strings.TrimRight(line, " ")
		if line == "" {
			pending++
			continue
		}
		b.WriteString(strings.Repeat("\n", pending))
		pending = 0
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if b.Len() == 0 {
		return "\n"
	}
	return b.String()
}

// sanitizeName replaces characters that are not filesystem-safe.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
