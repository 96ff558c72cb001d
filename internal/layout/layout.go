// Package layout derives the screen-visible view of a buffer from its
// cached visual-metrics prefix sum: which visual lines are on screen, where
// the cursor falls in visual space, and how a wide/combining-mark-heavy line
// slices into wrapped rows. It never mutates the buffer it reads; the cache
// it consumes is rebuilt by (*buffer.TextBuffer).EnsureVisuals before any of
// these are called.
package layout

import (
	"sort"

	"github.com/rivo/uniseg"

	"github.com/dshills/remux/internal/buffer"
)

// VisibleLine names one on-screen row: which buffer line it comes from, the
// character column it starts at, and how many characters (not terminal
// cells) it covers. Under Wrap a single buffer line contributes one
// VisibleLine per wrapped row; under Truncate exactly one.
type VisibleLine struct {
	BufferY int
	StartX  int
	Len     int
}

// startLineForScroll returns the greatest buffer-line index i such that
// prefixSum[i] <= scrollY, via binary search over the prefix sum.
func startLineForScroll(prefixSum []int, scrollY int) int {
	// sort.Search finds the first index where prefixSum[i] > scrollY; the
	// line we want is one before that.
	i := sort.Search(len(prefixSum), func(i int) bool { return prefixSum[i] > scrollY })
	if i == 0 {
		return 0
	}
	return i - 1
}

// IterVisibleVisualLines returns up to viewportHeight visual-line
// descriptors starting from scrollY, walking the prefix sum forward without
// rescanning from the top of the buffer.
func IterVisibleVisualLines(b *buffer.TextBuffer, scrollX, scrollY, width, viewportHeight int, wrap buffer.WrapMode) []VisibleLine {
	if viewportHeight <= 0 || b.LineCount() == 0 {
		return nil
	}
	w := width
	if w < 1 {
		w = 1
	}

	prefixSum := b.PrefixSum()
	if len(prefixSum) == 0 {
		return nil
	}

	bufY := startLineForScroll(prefixSum, scrollY)
	rowsEmitted := 0
	// sub is which wrapped row of bufY we're resuming at.
	sub := 0
	if wrap == buffer.Wrap {
		sub = scrollY - prefixSum[bufY]
	}

	var out []VisibleLine
	for bufY < b.LineCount() && rowsEmitted < viewportHeight {
		height := b.VisualHeight(bufY)
		for ; sub < height && rowsEmitted < viewportHeight; sub++ {
			if wrap == buffer.Truncate {
				out = append(out, VisibleLine{BufferY: bufY, StartX: scrollX, Len: b.LineCharLen(bufY)})
			} else {
				startX := sub * w
				length := graphemeSliceLen(b.LineText(bufY), startX, w)
				out = append(out, VisibleLine{BufferY: bufY, StartX: startX, Len: length})
			}
			rowsEmitted++
		}
		bufY++
		sub = 0
	}
	return out
}

// graphemeSliceLen returns how many characters of text, starting at
// character index startX, fit within width terminal columns, measured by
// grapheme cluster display width rather than by rune count.
func graphemeSliceLen(text string, startX, width int) int {
	runes := []rune(text)
	if startX >= len(runes) {
		return 0
	}
	remainder := string(runes[startX:])

	count := 0
	col := 0
	state := -1
	rest := remainder
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		w := uniseg.StringWidth(cluster)
		if col+w > width && count > 0 {
			break
		}
		col += w
		count += len([]rune(cluster))
		rest = next
		state = newState
		if col >= width {
			break
		}
	}
	return count
}

// CursorGlobalVisualY returns the cursor's position in global visual-row
// coordinates: the prefix sum at its buffer line, plus the wrapped-row
// offset within that line under Wrap.
func CursorGlobalVisualY(b *buffer.TextBuffer, width int, wrap buffer.WrapMode) int {
	prefixSum := b.PrefixSum()
	y := b.Cursor().Y
	if y < 0 || y >= len(prefixSum) {
		return 0
	}
	base := prefixSum[y]
	if wrap != buffer.Wrap {
		return base
	}
	w := width
	if w < 1 {
		w = 1
	}
	return base + b.Cursor().X/w
}

// CursorVisualPos returns the cursor's screen-relative (sx, sy), derived
// from its global visual position minus scrollY, and (under Truncate)
// cursorX - scrollX, else cursorX mod width.
func CursorVisualPos(b *buffer.TextBuffer, scrollX, scrollY, width int, wrap buffer.WrapMode) (sx, sy int) {
	sy = CursorGlobalVisualY(b, width, wrap) - scrollY
	if wrap == buffer.Truncate {
		sx = b.Cursor().X - scrollX
		return sx, sy
	}
	w := width
	if w < 1 {
		w = 1
	}
	sx = b.Cursor().X % w
	return sx, sy
}
