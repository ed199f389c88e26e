package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Overlay splicing for floating widget frames.
//
// The canvas is a fixed-size cell grid. Each frame is painted over the
// background at its (x, y) offset in ascending z-order, so later frames
// occlude earlier ones. Splicing is ANSI-aware: styled background text on
// either side of a frame keeps its escape sequences intact.

// blankCanvas returns a width x height grid of spaces.
func blankCanvas(width, height int) []string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	row := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = row
	}
	return lines
}

// overlay paints block over the base lines at cell offset (x, y), clipping
// anything that falls outside the base grid. Base lines are assumed to all
// have the same printable width.
func overlay(base []string, block string, x, y int) []string {
	if len(base) == 0 || block == "" {
		return base
	}
	baseW := xansi.StringWidth(base[0])
	if x >= baseW || y >= len(base) {
		return base
	}

	blockLines := strings.Split(block, "\n")
	for i, bl := range blockLines {
		row := y + i
		if row < 0 || row >= len(base) {
			continue
		}
		bw := xansi.StringWidth(bl)
		bx := x
		// Clip the left edge when the frame is dragged past the canvas origin.
		if bx < 0 {
			bl = xansi.Cut(bl, -bx, bw)
			bw = xansi.StringWidth(bl)
			bx = 0
		}
		if bw == 0 {
			continue
		}
		if bx+bw > baseW {
			bl = xansi.Cut(bl, 0, baseW-bx)
			bw = baseW - bx
		}

		left := xansi.Cut(base[row], 0, bx)
		// Cut can come up short when the line is narrower than the canvas; pad to the seam.
		if lw := xansi.StringWidth(left); lw < bx {
			left += strings.Repeat(" ", bx-lw)
		}
		right := xansi.Cut(base[row], bx+bw, baseW)
		base[row] = left + "\x1b[0m" + bl + "\x1b[0m" + right
	}
	return base
}
