package editor

import (
	"sort"

	"github.com/dshills/remux/internal/buffer"
	"github.com/dshills/remux/internal/layout"
)

// lineForScrollRow returns the greatest buffer-line index whose prefix-sum
// entry is at or before row, via binary search, mirroring
// internal/layout's own scroll-to-line lookup.
func (e *Editor) lineForScrollRow(row int) int {
	ps := e.buf.PrefixSum()
	if len(ps) == 0 {
		return 0
	}
	i := sort.Search(len(ps), func(i int) bool { return ps[i] > row })
	if i == 0 {
		return 0
	}
	return i - 1
}

// clampCursorToViewport moves the cursor to the nearest line still on
// screen after a manual page scroll, per scroll_up_command/
// scroll_down_command's "also move the cursor to remain within the new
// viewport" requirement.
func (e *Editor) clampCursorToViewport() {
	top := e.lineForScrollRow(e.scrollY)
	bottomRow := e.scrollY + e.height - 1
	if bottomRow < 0 {
		bottomRow = 0
	}
	bottom := e.lineForScrollRow(bottomRow)

	y := e.buf.Cursor().Y
	switch {
	case y < top:
		y = top
	case y > bottom:
		y = bottom
	default:
		return
	}
	e.buf.CursorY = y
	if x := e.buf.Cursor().X; x > e.buf.LineCharLen(y) {
		e.buf.CursorX = e.buf.LineCharLen(y)
	}
}

// ScrollUp moves the viewport up one visual row without touching the
// cursor, marking the scroll as user-driven so ensure_cursor_visible leaves
// it alone until the next command.
func (e *Editor) ScrollUp() {
	e.scrollY--
	if e.scrollY < 0 {
		e.scrollY = 0
	}
	e.scrollIntent = Manual
}

// ScrollDown moves the viewport down one visual row without touching the
// cursor.
func (e *Editor) ScrollDown() {
	total := e.totalVisualRows()
	e.scrollY++
	if max := total - 1; e.scrollY > max {
		if max < 0 {
			max = 0
		}
		e.scrollY = max
	}
	e.scrollIntent = Manual
}

// ScrollUpCommand pages the viewport up by one screenful and pulls the
// cursor back on screen if it scrolled past it. Implements
// command.EditorAPI.
func (e *Editor) ScrollUpCommand() {
	e.buf.EnsureVisuals(e.width, e.wrap)
	page := e.height
	if page < 1 {
		page = 1
	}
	e.scrollY -= page
	if e.scrollY < 0 {
		e.scrollY = 0
	}
	e.scrollIntent = Manual
	e.clampCursorToViewport()
}

// ScrollDownCommand pages the viewport down by one screenful. Implements
// command.EditorAPI.
func (e *Editor) ScrollDownCommand() {
	e.buf.EnsureVisuals(e.width, e.wrap)
	page := e.height
	if page < 1 {
		page = 1
	}
	total := e.totalVisualRows()
	e.scrollY += page
	if max := total - 1; e.scrollY > max {
		if max < 0 {
			max = 0
		}
		e.scrollY = max
	}
	e.scrollIntent = Manual
	e.clampCursorToViewport()
}

// ScrollLeftCommand shifts the horizontal scroll left by 4 columns; a no-op
// under Wrap, where there is no horizontal scroll position. Implements
// command.EditorAPI.
func (e *Editor) ScrollLeftCommand() {
	if e.wrap != buffer.Truncate {
		return
	}
	e.scrollX -= 4
	if e.scrollX < 0 {
		e.scrollX = 0
	}
	e.scrollIntent = Manual
}

// ScrollRightCommand shifts the horizontal scroll right by 4 columns,
// clamped so the line's last column stays reachable. Implements
// command.EditorAPI.
func (e *Editor) ScrollRightCommand() {
	if e.wrap != buffer.Truncate {
		return
	}
	lineLen := e.buf.LineCharLen(e.buf.Cursor().Y)
	max := lineLen - e.width
	if max < 0 {
		max = 0
	}
	e.scrollX += 4
	if e.scrollX > max {
		e.scrollX = max
	}
	e.scrollIntent = Manual
}

func (e *Editor) totalVisualRows() int {
	e.buf.EnsureVisuals(e.width, e.wrap)
	ps := e.buf.PrefixSum()
	if len(ps) == 0 {
		return 0
	}
	return ps[len(ps)-1] + e.buf.VisualHeight(e.buf.LineCount()-1)
}

// ensureCursorVisible scrolls the viewport just enough to bring the cursor
// back on screen. A no-op while ScrollIntent is Manual, so a user-driven
// scroll isn't immediately undone by the next keystroke's cursor motion.
func (e *Editor) ensureCursorVisible() {
	if e.scrollIntent == Manual {
		return
	}
	e.buf.EnsureVisuals(e.width, e.wrap)

	h := e.height
	if h < 1 {
		h = 1
	}
	gy := layout.CursorGlobalVisualY(e.buf, e.width, e.wrap)
	if gy < e.scrollY {
		e.scrollY = gy
	}
	if gy >= e.scrollY+h {
		e.scrollY = gy - h + 1
	}
	if e.scrollY < 0 {
		e.scrollY = 0
	}

	if e.wrap == buffer.Truncate {
		w := e.width
		if w < 1 {
			w = 1
		}
		cx := e.buf.Cursor().X
		if cx < e.scrollX {
			e.scrollX = cx
		}
		if cx >= e.scrollX+w {
			e.scrollX = cx - w + 1
		}
		if e.scrollX < 0 {
			e.scrollX = 0
		}
	}
}
