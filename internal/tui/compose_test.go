package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func plain(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = xansi.Strip(l)
	}
	return out
}

func TestBlankCanvasDimensions(t *testing.T) {
	grid := blankCanvas(10, 3)
	if len(grid) != 3 {
		t.Fatalf("rows = %d, want 3", len(grid))
	}
	for i, l := range grid {
		if xansi.StringWidth(l) != 10 {
			t.Fatalf("row %d width = %d, want 10", i, xansi.StringWidth(l))
		}
	}
}

func TestOverlayPaintsAtOffset(t *testing.T) {
	grid := blankCanvas(10, 4)
	grid = overlay(grid, "ab\ncd", 3, 1)

	got := plain(grid)
	if got[1] != "   ab     " {
		t.Fatalf("row 1 = %q", got[1])
	}
	if got[2] != "   cd     " {
		t.Fatalf("row 2 = %q", got[2])
	}
	if got[0] != strings.Repeat(" ", 10) {
		t.Fatalf("row 0 disturbed: %q", got[0])
	}
}

func TestOverlayClipsRightEdge(t *testing.T) {
	grid := blankCanvas(6, 2)
	grid = overlay(grid, "abcdef", 4, 0)

	got := plain(grid)
	if got[0] != "    ab" {
		t.Fatalf("row 0 = %q", got[0])
	}
	if w := xansi.StringWidth(grid[0]); w != 6 {
		t.Fatalf("row 0 width = %d, want 6", w)
	}
}

func TestOverlayClipsBottomEdge(t *testing.T) {
	grid := blankCanvas(6, 2)
	grid = overlay(grid, "aa\nbb\ncc", 0, 1)

	got := plain(grid)
	if got[1] != "aa    " {
		t.Fatalf("row 1 = %q", got[1])
	}
	if len(grid) != 2 {
		t.Fatalf("rows = %d, want 2", len(grid))
	}
}

func TestOverlayLaterBlocksOcclude(t *testing.T) {
	grid := blankCanvas(8, 1)
	grid = overlay(grid, "XXXX", 0, 0)
	grid = overlay(grid, "YY", 1, 0)

	if got := plain(grid)[0]; got != "XYYX    " {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestOverlayKeepsStyledNeighbors(t *testing.T) {
	base := []string{"\x1b[31maaaa\x1b[0m" + "    "}
	out := overlay(base, "ZZ", 5, 0)

	got := xansi.Strip(out[0])
	if got != "aaaa ZZ " {
		t.Fatalf("row = %q", got)
	}
	if !strings.Contains(out[0], "\x1b[31m") {
		t.Fatalf("left segment lost its style: %q", out[0])
	}
}
