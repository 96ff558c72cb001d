package buffer

import (
	"strings"
	"unicode"
)

// SetMark records the current cursor position as the mark.
func (b *TextBuffer) SetMark() {
	pos := b.Cursor()
	b.mark = &pos
}

// ClearMark drops the mark, if any.
func (b *TextBuffer) ClearMark() {
	b.mark = nil
}

// ToggleMark sets the mark if absent, clears it if present.
func (b *TextBuffer) ToggleMark() {
	if b.mark == nil {
		b.SetMark()
		return
	}
	b.ClearMark()
}

// HasMark reports whether a mark is currently set.
func (b *TextBuffer) HasMark() bool {
	return b.mark != nil
}

// Mark returns the mark position and whether one is set.
func (b *TextBuffer) Mark() (Position, bool) {
	if b.mark == nil {
		return Position{}, false
	}
	return *b.mark, true
}

// less reports whether a is lexicographically before b, comparing (y, x).
func less(a, bb Position) bool {
	if a.Y != bb.Y {
		return a.Y < bb.Y
	}
	return a.X < bb.X
}

// Selection returns the normalized region between mark and cursor, and
// whether one exists (requires a mark).
func (b *TextBuffer) Selection() (Selection, bool) {
	if b.mark == nil {
		return Selection{}, false
	}
	cursor := b.Cursor()
	mark := *b.mark
	if less(cursor, mark) {
		return Selection{Start: cursor, End: mark}, true
	}
	return Selection{Start: mark, End: cursor}, true
}

// CopyRegion returns the text of the current selection without mutating the
// buffer, or ErrNoSelection if no mark is set.
func (b *TextBuffer) CopyRegion() (string, error) {
	sel, ok := b.Selection()
	if !ok {
		return "", ErrNoSelection
	}
	return b.peekSpan(sel.Start.X, sel.Start.Y, sel.End.X, sel.End.Y), nil
}

// peekSpan returns the text of [start, end) without mutating the buffer,
// using the same line-joining convention as deleteSpan/DeleteRange.
func (b *TextBuffer) peekSpan(startX, startY, endX, endY int) string {
	if startY == endY {
		line := b.Lines[startY]
		a := charToByteIdx(line.Text, startX)
		c := charToByteIdx(line.Text, endX)
		return line.Text[a:c]
	}

	var out strings.Builder
	first := b.Lines[startY]
	a := charToByteIdx(first.Text, startX)
	out.WriteString(first.Text[a:])
	for y := startY + 1; y < endY; y++ {
		out.WriteByte('\n')
		out.WriteString(b.Lines[y].Text)
	}
	out.WriteByte('\n')
	last := b.Lines[endY]
	c := charToByteIdx(last.Text, endX)
	out.WriteString(last.Text[:c])
	return out.String()
}

// KillRegion deletes the selection, returns the removed text, and clears the
// mark. Returns ErrNoSelection if no mark is set.
func (b *TextBuffer) KillRegion() (string, error) {
	sel, ok := b.Selection()
	if !ok {
		return "", ErrNoSelection
	}
	text := b.DeleteRange(sel.Start.X, sel.Start.Y, sel.End.X, sel.End.Y)
	b.ClearMark()
	return text, nil
}

// KillLine deletes from the cursor to the end of the current line and
// returns the removed text. Like the other kill helpers it never crosses a
// line boundary; at end of line there is nothing to kill.
func (b *TextBuffer) KillLine() (string, error) {
	y, x := b.CursorY, b.CursorX
	line := b.Lines[y]
	if x >= line.CharLen {
		return "", ErrNothingToKill
	}
	return b.DeleteRange(x, y, line.CharLen, y), nil
}

// KillWord deletes from the cursor to the start of the next word boundary
// within the current line and returns the removed text.
func (b *TextBuffer) KillWord() (string, error) {
	y, x := b.CursorY, b.CursorX
	b.MoveCursor(WordRight)
	end := b.CursorX
	b.CursorX = x
	if end == x {
		return "", ErrNothingToKill
	}
	return b.DeleteRange(x, y, end, y), nil
}

// KillBackwardWord deletes from the start of the previous word boundary to
// the cursor, within the current line, and returns the removed text.
func (b *TextBuffer) KillBackwardWord() (string, error) {
	y, x := b.CursorY, b.CursorX
	b.MoveCursor(WordLeft)
	start := b.CursorX
	b.CursorX = x
	if start == x {
		return "", ErrNothingToKill
	}
	return b.DeleteRange(start, y, x, y), nil
}

// KillSentence deletes from the cursor through the end of the current
// sentence, within the current line only. A sentence ends at the character
// after '.', '!', or '?' when that punctuation is followed by end-of-line or
// whitespace; one trailing whitespace character is consumed along with it.
func (b *TextBuffer) KillSentence() (string, error) {
	y, x := b.CursorY, b.CursorX
	chars := []rune(b.Lines[y].Text)
	n := len(chars)
	if x >= n {
		return "", ErrNothingToKill
	}

	end := -1
	for i := x; i < n && end < 0; i++ {
		switch chars[i] {
		case '.', '!', '?':
			if i+1 >= n || unicode.IsSpace(chars[i+1]) {
				end = i + 1
				if end < n && unicode.IsSpace(chars[end]) {
					end++
				}
			}
		}
	}
	if end <= x {
		return "", ErrNothingToKill
	}
	return b.DeleteRange(x, y, end, y), nil
}
