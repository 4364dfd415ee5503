package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one coloured symbol of a grid
type Cell struct {
	Color  [3]uint8
	Symbol rune
}

// RenderCell renders a single coloured cell
func RenderCell(c Cell) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(c.Color)))
	return style.Render(string(c.Symbol))
}

// RenderCellRow renders a row of cells with spacing
func RenderCellRow(cells []Cell) string {
	var out strings.Builder
	for i, c := range cells {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(RenderCell(c))
	}
	return out.String()
}

// RenderNoteGrid renders 128 note cells as 8 rows of 16, lowest notes at the
// bottom. Each row is prefixed with the number of its first note.
func RenderNoteGrid(cells [128]Cell, label lipgloss.Style) string {
	var lines []string
	for row := 7; row >= 0; row-- {
		first := row * 16
		line := label.Render(fmt.Sprintf("%3d ", first)) + RenderCellRow(cells[first:first+16])
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderProgress renders done of total as filled and empty cells.
// Bars longer than width are summarised as a count.
func RenderProgress(done, total, width int, on, off Cell) string {
	if total <= 0 {
		return ""
	}
	done = min(max(done, 0), total)
	if total > width {
		return RenderCell(on) + fmt.Sprintf(" %d/%d", done, total)
	}
	var out strings.Builder
	for i := 0; i < total; i++ {
		if i < done {
			out.WriteString(RenderCell(on))
		} else {
			out.WriteString(RenderCell(off))
		}
	}
	return out.String()
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(c Cell, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderCell(c), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
