package screencheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const variablesScreen = "│  Variables   │\n" +
	"│ a = 1        │\n" +
	"│              │\n" +
	"│ b = \"x\"      │\n" +
	"└──────────────┘\n" +
	"jard >> \n\n"

func TestMatchScreenSnapshotGolden(t *testing.T) {
	t.Setenv("SCREENCHECK_UPDATE", "0")
	MatchScreenSnapshot(t, "variables", variablesScreen)
}

func TestMatchScreenSnapshotUpdate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCREENCHECK_UPDATE", "1")

	MatchScreenSnapshot(t, "after step", variablesScreen)

	path := filepath.Join(snapshotDir(t), "after_step.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "│  Variables   │\n│ a = 1        │\n│ b = \"x\"      │\n└──────────────┘\n", string(data))

	// The written golden matches the screen it came from.
	t.Setenv("SCREENCHECK_UPDATE", "0")
	MatchScreenSnapshot(t, "after step", variablesScreen)
}

func TestSnapshotDir(t *testing.T) {
	dir := snapshotDir(t)
	assert.True(t, strings.HasPrefix(dir, filepath.Join("testdata", "TestSnapshotDir-")), dir)
	assert.Len(t, strings.TrimPrefix(dir, filepath.Join("testdata", "TestSnapshotDir-")), 8)

	t.Run("sub test/with spaces", func(t *testing.T) {
		assert.NotEqual(t, dir, snapshotDir(t))
		assert.NotContains(t, filepath.Base(snapshotDir(t)), "/")
	})
}

func TestNormalizeForSnapshot(t *testing.T) {
	assert.Equal(t, "a\n  b\n", normalizeForSnapshot("a   \n  b\n\n   \n"))
	assert.Equal(t, "\n", normalizeForSnapshot(""))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "TestX_sub_case-1.txt", sanitizeName("TestX/sub case-1.txt"))
	assert.Len(t, sanitizeName(strings.Repeat("a", 100)), 60)
}
