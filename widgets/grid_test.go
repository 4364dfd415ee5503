package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	on  = Cell{Color: [3]uint8{255, 255, 0}, Symbol: '■'}
	off = Cell{Color: [3]uint8{40, 0, 80}, Symbol: '□'}
)

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "■■□", RenderProgress(2, 3, 8, on, off))
	assert.Equal(t, "■■■", RenderProgress(9, 3, 8, on, off))
	assert.Equal(t, "□□", RenderProgress(-1, 2, 8, on, off))
	assert.Equal(t, "■ 4/20", RenderProgress(4, 20, 8, on, off))
	assert.Empty(t, RenderProgress(0, 0, 8, on, off))
}

func TestRenderNoteGrid(t *testing.T) {
	var cells [128]Cell
	for i := range cells {
		cells[i] = Cell{Symbol: '·'}
	}
	cells[0].Symbol = '●'
	cells[127].Symbol = '○'

	out := RenderNoteGrid(cells, lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "112 · · · · · · · · · · · · · · · ○", lines[0])
	assert.Equal(t, "  0 ● · · · · · · · · · · · · · · ·", lines[7])
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{
		{Title: "Cues", Keys: []KeyBinding{{Key: "n", Desc: "next cue"}}},
		{Keys: []KeyBinding{{Key: "q", Desc: "quit"}}},
	})
	assert.Equal(t, "Cues\n  n            next cue\n  q            quit", out)
}

func TestRenderLegendItem(t *testing.T) {
	assert.Equal(t, "  ■ hit - counted this cue", RenderLegendItem(on, "hit", "counted this cue"))
}
