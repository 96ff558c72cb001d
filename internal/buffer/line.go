// Package buffer implements the editor's text buffer: a never-empty
// sequence of Lines addressed by character coordinates, with an undo stack
// (no redo), mark/selection, kill helpers, substring search, and a
// visual-metrics cache consumed by the layout package.
package buffer

// WrapMode selects how a line's visual height is computed.
type WrapMode int

const (
	// Wrap computes multiple visual rows per logical line when it exceeds
	// the viewport width.
	Wrap WrapMode = iota
	// Truncate always reports a single visual row per logical line.
	Truncate
)

// Line is one line of buffer text plus its visual-layout cache.
type Line struct {
	Text         string
	CharLen      int
	VisualHeight int

	dirty     bool
	lastWidth int
	lastWrap  WrapMode
}

// NewLine returns a Line for the given text with its cache marked dirty.
func NewLine(text string) *Line {
	return &Line{
		Text:      text,
		CharLen:   runeCount(text),
		dirty:     true,
		lastWrap:  Wrap,
		lastWidth: 0,
	}
}

// splitOff truncates the line at character index x and returns a new Line
// holding the removed tail.
func (l *Line) splitOff(x int) *Line {
	if x > l.CharLen {
		x = l.CharLen
	}
	byteIdx := charToByteIdx(l.Text, x)
	rest := l.Text[byteIdx:]
	l.Text = l.Text[:byteIdx]
	restLen := l.CharLen - x
	l.CharLen = x
	l.dirty = true
	return &Line{Text: rest, CharLen: restLen, dirty: true, lastWrap: Wrap}
}
