package layout

import (
	"testing"

	"github.com/dshills/remux/internal/buffer"
)

func newBufferWithLines(lines ...string) *buffer.TextBuffer {
	b := buffer.New()
	b.Lines = make([]*buffer.Line, len(lines))
	for i, l := range lines {
		b.Lines[i] = buffer.NewLine(l)
	}
	return b
}

func TestIterVisibleVisualLinesWrap(t *testing.T) {
	b := newBufferWithLines("0123456789", "short")
	b.EnsureVisuals(4, buffer.Wrap)

	got := IterVisibleVisualLines(b, 0, 0, 4, 5, buffer.Wrap)
	want := []VisibleLine{
		{BufferY: 0, StartX: 0, Len: 4},
		{BufferY: 0, StartX: 4, Len: 4},
		{BufferY: 0, StartX: 8, Len: 2},
		{BufferY: 1, StartX: 0, Len: 4},
		{BufferY: 1, StartX: 4, Len: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d visible lines, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIterVisibleVisualLinesTruncate(t *testing.T) {
	b := newBufferWithLines("0123456789", "short")
	b.EnsureVisuals(4, buffer.Truncate)

	got := IterVisibleVisualLines(b, 0, 0, 4, 2, buffer.Truncate)
	if len(got) != 2 {
		t.Fatalf("got %d visible lines, want 2", len(got))
	}
	if got[0].Len != 10 || got[1].Len != 5 {
		t.Fatalf("unexpected lengths: %+v", got)
	}
}

func TestCursorGlobalVisualYWrap(t *testing.T) {
	b := newBufferWithLines("0123456789", "short")
	b.CursorX, b.CursorY = 3, 1
	b.EnsureVisuals(4, buffer.Wrap)

	// line 0 occupies rows 0..2 (ceil(10/4) = 3), so line 1 starts at row 3.
	if gy := CursorGlobalVisualY(b, 4, buffer.Wrap); gy != 3 {
		t.Fatalf("global visual y: got %d, want 3", gy)
	}
}

func TestCursorVisualPosTruncate(t *testing.T) {
	b := newBufferWithLines("0123456789")
	b.CursorX, b.CursorY = 7, 0
	b.EnsureVisuals(4, buffer.Truncate)

	sx, sy := CursorVisualPos(b, 2, 0, 4, buffer.Truncate)
	if sx != 5 || sy != 0 {
		t.Fatalf("cursor visual pos: got (%d,%d), want (5,0)", sx, sy)
	}
}
