package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gpl = `GIMP Palette
Name: Mono
Columns: 2
# black to white
0 0 0	black
255 255 255	white
`

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.gpl")
	require.NoError(t, os.WriteFile(path, []byte(gpl), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Mono", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {255, 255, 255}}, p.Colors)

	empty := filepath.Join(t.TempDir(), "empty.gpl")
	require.NoError(t, os.WriteFile(empty, []byte("GIMP Palette\n"), 0o644))
	_, err = LoadGPL(empty)
	assert.ErrorContains(t, err, "no colors found")
}

func TestLoadDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Plasma", p.Name)

	// callers may not mutate the shared table
	p.Colors[0] = RGB{1, 2, 3}
	assert.NotEqual(t, RGB{1, 2, 3}, Default().Colors[0])
}

func TestLookup(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
	assert.Equal(t, RGB{200, 100, 50}, p.Index(9))
	assert.Equal(t, RGB{0, 0, 0}, p.Index(-1))
}

func TestHeat(t *testing.T) {
	th := New(nil)
	assert.Equal(t, th.RGB(RoleMuted), th.Heat(0, 5))
	assert.Equal(t, th.RGB(RoleSuccess), th.Heat(5, 5))
	assert.Equal(t, th.RGB(RoleAccent+(RoleSuccess-RoleAccent)*0.2), th.Heat(1, 5))
	assert.Equal(t, lipgloss.Color("#0d0887"), th.BG())
}
