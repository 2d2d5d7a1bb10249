// Package widgets has rendering primitives shared by the TUI tabs.
package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupStyle frames popup content when no style is given.
var PopupStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(1, 2)

// RenderPopup frames popup with frame and centers it over base, which is
// clipped or padded to width x height. Base rows above, below and beside the
// card are kept.
func RenderPopup(base, popup string, width, height int, frame lipgloss.Style) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := Canvas(base, width, height)
	card := frame.Render(popup)
	cardLines := strings.Split(card, "\n")
	cardW := widest(cardLines)
	if cardW == 0 {
		return canvas
	}
	x := max(0, (width-cardW)/2)
	y := max(0, (height-len(cardLines))/2)
	return stamp(canvas, cardLines, cardW, x, y, width, height)
}

// Canvas clips or pads s to exactly height lines of width columns.
func Canvas(s string, width, height int) string {
	lines := fixLines(s, height)
	for i := range lines {
		lines[i] = PadRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// PadRight truncates or pads s to width visible columns.
func PadRight(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func stamp(canvas string, card []string, cardW, x, y, width, height int) string {
	rows := strings.Split(canvas, "\n")
	for i, line := range card {
		row := y + i
		if row >= len(rows) || row >= height {
			break
		}
		target := PadRight(rows[row], width)
		left := PadRight(ansi.Truncate(target, x, ""), x)
		mid := PadRight(line, cardW)
		end := x + ansi.StringWidth(mid)
		right := ""
		if end < width {
			right = PadRight(skipColumns(target, end), width-end)
		}
		rows[row] = ansi.Truncate(left+mid+right, width, "")
	}
	return strings.Join(rows, "\n")
}

func fixLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func widest(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}

func skipColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}
