package backend

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/remux/internal/backend/style"
)

// Cell is a single terminal grid position: one rune (or zero, for the
// trailing column of a wide character) plus the style it should render with.
type Cell struct {
	Rune  rune
	Width int
	Style style.Style
}

// EmptyCell is a single blank space in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: style.Default()}
}

// NewCell returns a cell holding r in the default style, with Width computed
// via uniseg rather than a hand-rolled East-Asian-width table.
func NewCell(r rune) Cell {
	return Cell{Rune: r, Width: runeWidth(r), Style: style.Default()}
}

// NewStyledCell returns a cell holding r rendered in st.
func NewStyledCell(r rune, st style.Style) Cell {
	return Cell{Rune: r, Width: runeWidth(r), Style: st}
}

func runeWidth(r rune) int {
	if r < 0x20 || r == 0x7f {
		return 0
	}
	return uniseg.StringWidth(string(r))
}

// ScreenRect is a rectangular region of the terminal grid, rows/columns
// half-open like Go slices: [Top, Bottom) x [Left, Right).
type ScreenRect struct {
	Top, Left, Bottom, Right int
}

// Width returns the rectangle's column span.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the rectangle's row span.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}
