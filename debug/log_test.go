package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")

	Log("engine", "dropped before enable")
	require.NoError(t, Enable(path))
	defer Disable()
	assert.True(t, Enabled())

	Log("engine", "note=%d vel=%d", 60, 100)
	fmt.Fprintf(Writer("cue"), "entered cue %d\n", 2)
	for i := 0; i < 4; i++ {
		LogEvery(2, "midi", "tick")
	}

	Disable()
	assert.False(t, Enabled())
	Log("engine", "dropped after disable")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "=== Debug logging started ===")
	assert.Contains(t, out, "engine     note=60 vel=100")
	assert.Contains(t, out, "cue        entered cue 2\n")
	assert.Equal(t, 2, strings.Count(out, "tick (every 2"))
	assert.NotContains(t, out, "dropped")
}
