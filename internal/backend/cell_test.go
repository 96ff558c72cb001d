package backend

import "testing"

func TestEmptyCell(t *testing.T) {
	c := EmptyCell()
	if c.Rune != ' ' || c.Width != 1 {
		t.Errorf("EmptyCell() = %+v, want Rune=' ', Width=1", c)
	}
}

func TestNewCellWidth(t *testing.T) {
	cases := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'\t', 0},
		{0x7f, 0},
		{'世', 2},
	}
	for _, c := range cases {
		got := NewCell(c.r).Width
		if got != c.want {
			t.Errorf("NewCell(%q).Width = %d, want %d", c.r, got, c.want)
		}
	}
}

func TestScreenRectWidthHeight(t *testing.T) {
	r := ScreenRect{Top: 2, Left: 3, Bottom: 10, Right: 13}
	if r.Width() != 10 {
		t.Errorf("Width() = %d, want 10", r.Width())
	}
	if r.Height() != 8 {
		t.Errorf("Height() = %d, want 8", r.Height())
	}
}

func TestScreenRectEmptyWhenInverted(t *testing.T) {
	r := ScreenRect{Top: 5, Left: 5, Bottom: 2, Right: 2}
	if r.Width() != 0 || r.Height() != 0 {
		t.Errorf("inverted rect: got Width=%d Height=%d, want 0, 0", r.Width(), r.Height())
	}
}
