package main

import (
	"testing"

	"github.com/dshills/remux/internal/buffer"
	"github.com/dshills/remux/internal/editor"
)

func TestInSelectionSingleLine(t *testing.T) {
	sel := buffer.Selection{Start: buffer.Position{X: 2, Y: 0}, End: buffer.Position{X: 5, Y: 0}}

	cases := []struct {
		pos  buffer.Position
		want bool
	}{
		{buffer.Position{X: 1, Y: 0}, false},
		{buffer.Position{X: 2, Y: 0}, true},
		{buffer.Position{X: 4, Y: 0}, true},
		{buffer.Position{X: 5, Y: 0}, false},
	}
	for _, c := range cases {
		if got := inSelection(c.pos, sel); got != c.want {
			t.Errorf("inSelection(%+v, %+v) = %v, want %v", c.pos, sel, got, c.want)
		}
	}
}

func TestInSelectionMultiLine(t *testing.T) {
	sel := buffer.Selection{Start: buffer.Position{X: 3, Y: 0}, End: buffer.Position{X: 2, Y: 2}}

	cases := []struct {
		pos  buffer.Position
		want bool
	}{
		{buffer.Position{X: 0, Y: 0}, false},
		{buffer.Position{X: 3, Y: 0}, true},
		{buffer.Position{X: 0, Y: 1}, true},
		{buffer.Position{X: 1, Y: 2}, true},
		{buffer.Position{X: 2, Y: 2}, false},
		{buffer.Position{X: 0, Y: 3}, false},
	}
	for _, c := range cases {
		if got := inSelection(c.pos, sel); got != c.want {
			t.Errorf("inSelection(%+v, %+v) = %v, want %v", c.pos, sel, got, c.want)
		}
	}
}

func TestIsearchMatchReflectsActiveSession(t *testing.T) {
	b := buffer.New()
	b.Lines = []*buffer.Line{buffer.NewLine("foo bar foo")}
	ed := editor.New(b, nil)

	if pos, n := isearchMatch(ed); pos != nil || n != 0 {
		t.Fatalf("no session: got (%v, %d), want (nil, 0)", pos, n)
	}

	ed.ExecuteNamed("isearch-forward")
	for _, ch := range "foo" {
		ed.Tick(editor.KeyEvent{Rune: ch})
	}

	pos, n := isearchMatch(ed)
	if pos == nil {
		t.Fatal("expected a match after typing a query that occurs in the buffer")
	}
	if n != 3 {
		t.Fatalf("match length: got %d, want 3", n)
	}
}
