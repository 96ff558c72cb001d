package buffer

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Position is a character-coordinate location within a buffer: (x, y) where
// y indexes Lines and x indexes characters within that line.
type Position struct {
	X, Y int
}

// Selection is a normalized range with Start lexicographically no greater
// than End.
type Selection struct {
	Start, End Position
}

// UndoKind identifies which primitive an UndoAction inverts.
type UndoKind int

const (
	UndoInsert UndoKind = iota
	UndoDelete
	UndoInsertNewline
	UndoJoinLine
)

// UndoAction records the location at which its inverse must be applied.
type UndoAction struct {
	Kind UndoKind
	X, Y int
	Text string
}

// VisualMetrics caches per-buffer visual-layout state: a prefix sum of
// per-line visual heights, plus the (width, wrap) key it was built from and
// a dirty flag forcing a rebuild.
type VisualMetrics struct {
	PrefixSum []int
	Dirty     bool
	LastWidth int
	LastWrap  WrapMode
}

// TextBuffer is the editor's in-memory file representation: lines, cursor,
// optional mark, undo stack, and the visual-metrics cache.
type TextBuffer struct {
	Lines    []*Line
	CursorX  int
	CursorY  int
	FilePath string
	hasPath  bool

	modified  bool
	mark      *Position
	undoStack []UndoAction
	Visual    VisualMetrics
}

// New returns an empty buffer: a single empty line, cursor at (0,0).
func New() *TextBuffer {
	return &TextBuffer{
		Lines:  []*Line{NewLine("")},
		Visual: VisualMetrics{Dirty: true, LastWrap: Wrap},
	}
}

// runeCount returns the Unicode code-point count of s. The buffer indexes
// characters by code point; grapheme clusters are counted only for a line's
// visual height (RebuildVisualMetrics) and for row slicing in the layout
// package.
func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// charToByteIdx converts a character index into a byte offset into s. It
// never splits a multibyte rune.
func charToByteIdx(s string, charIdx int) int {
	if charIdx <= 0 {
		return 0
	}
	i := 0
	for byteIdx := range s {
		if i == charIdx {
			return byteIdx
		}
		i++
	}
	return len(s)
}

func (b *TextBuffer) pushUndo(a UndoAction) {
	b.undoStack = append(b.undoStack, a)
	b.modified = true
}

// IsModified reports whether the buffer has unsaved changes.
func (b *TextBuffer) IsModified() bool { return b.modified }

// UndoDepth returns the number of entries on the undo stack.
func (b *TextBuffer) UndoDepth() int { return len(b.undoStack) }

// HasFilePath reports whether the buffer is associated with a file.
func (b *TextBuffer) HasFilePath() bool { return b.hasPath }

// Cursor returns the current cursor position.
func (b *TextBuffer) Cursor() Position { return Position{X: b.CursorX, Y: b.CursorY} }

// LineCount returns the number of lines.
func (b *TextBuffer) LineCount() int { return len(b.Lines) }

// LineText returns the text of line y, or "" if out of range.
func (b *TextBuffer) LineText(y int) string {
	if y < 0 || y >= len(b.Lines) {
		return ""
	}
	return b.Lines[y].Text
}

// LineCharLen returns the cached character length of line y.
func (b *TextBuffer) LineCharLen(y int) int {
	if y < 0 || y >= len(b.Lines) {
		return 0
	}
	return b.Lines[y].CharLen
}

// Text joins all lines with '\n', no trailing newline, matching the
// on-disk canonical form.
func (b *TextBuffer) Text() string {
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// InsertChar inserts ch at the cursor, advances the cursor by one character,
// marks the line dirty, and pushes an Insert undo entry.
func (b *TextBuffer) InsertChar(ch rune) {
	x, y := b.CursorX, b.CursorY
	b.insertCharRaw(ch)
	b.pushUndo(UndoAction{Kind: UndoInsert, X: x, Y: y, Text: string(ch)})
}

// insertCharRaw performs the raw mutation without recording undo; used by
// InsertChar and by Yank, which brackets a whole paste in one undo entry.
func (b *TextBuffer) insertCharRaw(ch rune) {
	line := b.Lines[b.CursorY]
	byteIdx := charToByteIdx(line.Text, b.CursorX)
	line.Text = line.Text[:byteIdx] + string(ch) + line.Text[byteIdx:]
	line.CharLen++
	line.dirty = true
	b.CursorX++
	b.Visual.Dirty = true
}

// InsertTextAt inserts a single-line fragment (no embedded newlines) at
// (x, y), moves the cursor to the end of the inserted text, and pushes one
// Insert undo entry.
func (b *TextBuffer) InsertTextAt(x, y int, text string) {
	line := b.Lines[y]
	byteIdx := charToByteIdx(line.Text, x)
	added := runeCount(text)
	line.Text = line.Text[:byteIdx] + text + line.Text[byteIdx:]
	line.CharLen += added
	line.dirty = true
	b.Visual.Dirty = true
	b.pushUndo(UndoAction{Kind: UndoInsert, X: x, Y: y, Text: text})
	b.CursorX = x + added
	b.CursorY = y
}

// InsertNewline splits the current line at the cursor; the tail becomes a
// new line at y+1; the cursor moves to (0, y+1).
func (b *TextBuffer) InsertNewline() {
	x, y := b.CursorX, b.CursorY
	b.splitLineAtCursor()
	b.pushUndo(UndoAction{Kind: UndoInsertNewline, X: x, Y: y})
}

// splitLineAtCursor is the raw mechanic behind InsertNewline: split the
// current line at the cursor and move the cursor to the start of the new
// line, without recording undo. Shared by InsertNewline and the generic
// span-insertion used by Yank and the Delete undo-inverse.
func (b *TextBuffer) splitLineAtCursor() {
	x, y := b.CursorX, b.CursorY
	rest := b.Lines[y].splitOff(x)
	b.Lines = append(b.Lines, nil)
	copy(b.Lines[y+2:], b.Lines[y+1:])
	b.Lines[y+1] = rest
	b.CursorY++
	b.CursorX = 0
	b.Visual.Dirty = true
}

// insertSpan inserts text (which may contain embedded newlines) at (x, y),
// splitting into new lines as needed, and returns the resulting cursor
// position at the end of the inserted text. It performs no undo bookkeeping;
// callers bracket it with their own undo entry.
func (b *TextBuffer) insertSpan(x, y int, text string) (endX, endY int) {
	b.CursorX, b.CursorY = x, y
	for i, part := range strings.Split(text, "\n") {
		if i != 0 {
			b.splitLineAtCursor()
		}
		for _, ch := range part {
			b.insertCharRaw(ch)
		}
	}
	return b.CursorX, b.CursorY
}

// deleteSpan removes [start, end) without recording undo, returning the
// removed text with embedded lines joined by a single '\n'. Leaves the
// cursor at start. Shared by DeleteRange and the Insert undo-inverse, which
// must be able to delete a span spanning multiple lines (a multiline Insert,
// e.g. from Yank, deletes back out across however many lines it created).
func (b *TextBuffer) deleteSpan(startX, startY, endX, endY int) string {
	if startY == endY {
		line := b.Lines[startY]
		a := charToByteIdx(line.Text, startX)
		c := charToByteIdx(line.Text, endX)
		deleted := line.Text[a:c]
		line.Text = line.Text[:a] + line.Text[c:]
		line.CharLen -= endX - startX
		line.dirty = true
		b.Visual.Dirty = true
		b.CursorX = startX
		b.CursorY = startY
		return deleted
	}

	var deleted strings.Builder
	first := b.Lines[startY]
	a := charToByteIdx(first.Text, startX)
	deleted.WriteString(first.Text[a:])
	first.Text = first.Text[:a]
	first.CharLen = startX
	first.dirty = true

	for y := startY + 1; y < endY; y++ {
		deleted.WriteByte('\n')
		removed := b.Lines[startY+1]
		deleted.WriteString(removed.Text)
		b.Lines = append(b.Lines[:startY+1], b.Lines[startY+2:]...)
	}

	last := b.Lines[startY+1]
	bIdx := charToByteIdx(last.Text, endX)
	deleted.WriteByte('\n')
	deleted.WriteString(last.Text[:bIdx])

	restTail := last.Text[bIdx:]
	first.Text += restTail
	first.CharLen += runeCount(restTail)
	first.dirty = true
	b.Lines = append(b.Lines[:startY+1], b.Lines[startY+2:]...)

	b.Visual.Dirty = true
	b.CursorX = startX
	b.CursorY = startY
	return deleted.String()
}

// DeleteRange removes [start, end) and returns the removed text, joining
// spans across lines with a single '\n' and no trailing newline. Places the
// cursor at start and pushes one Delete undo entry.
func (b *TextBuffer) DeleteRange(startX, startY, endX, endY int) string {
	deleted := b.deleteSpan(startX, startY, endX, endY)
	b.pushUndo(UndoAction{Kind: UndoDelete, X: startX, Y: startY, Text: deleted})
	return deleted
}

// DeleteForward deletes the character after the cursor, returning it (or ""
// and false at end of buffer).
func (b *TextBuffer) DeleteForward() (string, bool) {
	y, x := b.CursorY, b.CursorX
	line := b.Lines[y]
	if x >= line.CharLen {
		if y+1 >= len(b.Lines) {
			return "", false
		}
		return b.DeleteRange(x, y, 0, y+1), true
	}
	return b.DeleteRange(x, y, x+1, y), true
}

// DeleteBackward deletes the character before the cursor, joining with the
// previous line at column 0. Fails silently (returns false) at (0,0).
func (b *TextBuffer) DeleteBackward() (string, bool) {
	y, x := b.CursorY, b.CursorX
	if x == 0 && y == 0 {
		return "", false
	}
	if x > 0 {
		return b.DeleteRange(x-1, y, x, y), true
	}
	prevLen := b.Lines[y-1].CharLen
	return b.DeleteRange(prevLen, y-1, 0, y), true
}

// Undo pops the top undo entry and applies its inverse. A no-op on an empty
// stack.
func (b *TextBuffer) Undo() {
	if len(b.undoStack) == 0 {
		return
	}
	a := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]

	switch a.Kind {
	case UndoInsert:
		// The inserted text may span multiple lines (a multiline Yank is one
		// bracketing Insert entry), so the inverse must delete a span, not
		// just splice a.Y's line.
		parts := strings.Split(a.Text, "\n")
		endY := a.Y + len(parts) - 1
		endX := runeCount(parts[len(parts)-1])
		if len(parts) == 1 {
			endX = a.X + endX
		}
		b.deleteSpan(a.X, a.Y, endX, endY)

	case UndoDelete:
		// Re-inserting previously-deleted text grows the affected line(s);
		// every char-count adjustment on this path must increment, never
		// decrement.
		b.insertSpan(a.X, a.Y, a.Text)

	case UndoInsertNewline:
		next := b.Lines[a.Y+1]
		b.Lines[a.Y].Text += next.Text
		b.Lines[a.Y].CharLen += next.CharLen
		b.Lines[a.Y].dirty = true
		b.Lines = append(b.Lines[:a.Y+1], b.Lines[a.Y+2:]...)
		b.CursorX = a.X
		b.CursorY = a.Y

	case UndoJoinLine:
		tail := b.Lines[a.Y].splitOff(a.X)
		b.Lines = append(b.Lines, nil)
		copy(b.Lines[a.Y+2:], b.Lines[a.Y+1:])
		b.Lines[a.Y+1] = tail
		b.CursorX = 0
		b.CursorY = a.Y + 1
	}

	b.Visual.Dirty = true
}

// Yank inserts text at the cursor, splitting on '\n' into new lines, and
// records the whole paste as a single Insert undo entry regardless of how
// many lines it spans.
func (b *TextBuffer) Yank(text string) {
	x, y := b.CursorX, b.CursorY
	b.insertSpan(x, y, text)
	b.pushUndo(UndoAction{Kind: UndoInsert, X: x, Y: y, Text: text})
}

// EnsureVisuals rebuilds the visual-metrics cache if the (width, wrap) key
// has changed or the dirty flag is set; otherwise it is a no-op.
func (b *TextBuffer) EnsureVisuals(width int, wrap WrapMode) {
	if b.Visual.Dirty || b.Visual.LastWidth != width || b.Visual.LastWrap != wrap {
		b.RebuildVisualMetrics(width, wrap)
		b.Visual.Dirty = false
		b.Visual.LastWidth = width
		b.Visual.LastWrap = wrap
	}
}

// RebuildVisualMetrics recomputes every line's visual height and the
// prefix-sum over them.
func (b *TextBuffer) RebuildVisualMetrics(width int, wrap WrapMode) {
	w := width
	if w < 1 {
		w = 1
	}

	b.Visual.PrefixSum = make([]int, 0, len(b.Lines))
	acc := 0
	for _, line := range b.Lines {
		var vh int
		switch wrap {
		case Truncate:
			vh = 1
		default:
			// Visual height is measured in grapheme clusters, not code
			// points, so a combining-mark sequence or ZWJ emoji counts as
			// one unit of width rather than N.
			n := uniseg.GraphemeClusterCount(line.Text)
			if n < 1 {
				n = 1
			}
			vh = (n + w - 1) / w
		}
		line.VisualHeight = vh
		line.lastWidth = width
		line.lastWrap = wrap
		line.dirty = false

		b.Visual.PrefixSum = append(b.Visual.PrefixSum, acc)
		acc += vh
	}
}

// VisualHeight returns the last-computed visual height of line y (valid only
// after EnsureVisuals with a matching key).
func (b *TextBuffer) VisualHeight(y int) int {
	if y < 0 || y >= len(b.Lines) {
		return 1
	}
	return b.Lines[y].VisualHeight
}

// PrefixSum returns the cached prefix-sum array (valid only after
// EnsureVisuals with a matching key).
func (b *TextBuffer) PrefixSum() []int {
	return b.Visual.PrefixSum
}
