package buffer

import "strings"

// SearchForward scans forward from (x0, y0) for the first occurrence of
// needle, treated as a raw byte substring, returning the character position
// where the match begins. An empty needle never matches.
func (b *TextBuffer) SearchForward(needle string, x0, y0 int) (Position, bool) {
	if needle == "" {
		return Position{}, false
	}

	if y0 >= 0 && y0 < len(b.Lines) {
		if x, ok := findFrom(b.Lines[y0].Text, needle, x0); ok {
			return Position{X: x, Y: y0}, true
		}
	}
	for y := y0 + 1; y < len(b.Lines); y++ {
		if x, ok := findFrom(b.Lines[y].Text, needle, 0); ok {
			return Position{X: x, Y: y}, true
		}
	}
	return Position{}, false
}

// SearchBackward scans backward from (x0, y0) for the last occurrence of
// needle starting at or before that position, treated as a raw byte
// substring. An empty needle never matches.
func (b *TextBuffer) SearchBackward(needle string, x0, y0 int) (Position, bool) {
	if needle == "" {
		return Position{}, false
	}

	if y0 >= 0 && y0 < len(b.Lines) {
		if x, ok := findLastBefore(b.Lines[y0].Text, needle, x0); ok {
			return Position{X: x, Y: y0}, true
		}
	}
	for y := y0 - 1; y >= 0; y-- {
		line := b.Lines[y]
		if x, ok := findLastBefore(line.Text, needle, line.CharLen); ok {
			return Position{X: x, Y: y}, true
		}
	}
	return Position{}, false
}

// findFrom returns the character index of the first occurrence of needle in
// text at or after character index from.
func findFrom(text, needle string, from int) (int, bool) {
	byteFrom := charToByteIdx(text, from)
	if byteFrom > len(text) {
		return 0, false
	}
	idx := strings.Index(text[byteFrom:], needle)
	if idx < 0 {
		return 0, false
	}
	return from + runeCount(text[byteFrom:byteFrom+idx]), true
}

// findLastBefore returns the character index of the last occurrence of
// needle in text that starts at or before character index upTo.
func findLastBefore(text, needle string, upTo int) (int, bool) {
	if upTo < 0 {
		return 0, false
	}
	byteUpTo := charToByteIdx(text, upTo)
	if byteUpTo > len(text) {
		byteUpTo = len(text)
	}
	// The match must start at or before upTo but may extend past it; search
	// the whole text and keep the last hit whose start satisfies that bound.
	best := -1
	pos := 0
	for {
		idx := strings.Index(text[pos:], needle)
		if idx < 0 {
			break
		}
		start := pos + idx
		if start > byteUpTo {
			break
		}
		best = start
		pos = start + 1
		if pos > len(text) {
			break
		}
	}
	if best < 0 {
		return 0, false
	}
	return runeCount(text[:best]), true
}
