package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/remux/internal/backend/style"
	"github.com/dshills/remux/internal/keymap"
)

func TestConvertKeyRune(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)
	r, mods := convertKey(ev)
	if r != 'a' || mods != keymap.PhysNone {
		t.Errorf("convertKey(rune a) = %q, %v, want 'a', PhysNone", r, mods)
	}
}

func TestConvertKeySpecial(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	r, _ := convertKey(ev)
	if r != specialKeyRunes[tcell.KeyUp] {
		t.Errorf("convertKey(KeyUp) rune = %U, want %U", r, specialKeyRunes[tcell.KeyUp])
	}
}

func TestConvertKeyWithModifiers(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl|tcell.ModShift)
	_, mods := convertKey(ev)
	if !mods.Has(keymap.PhysCtrl) || !mods.Has(keymap.PhysShift) {
		t.Errorf("convertKey modifiers = %v, want Ctrl|Shift", mods)
	}
	if mods.Has(keymap.PhysAlt) {
		t.Error("convertKey modifiers unexpectedly has Alt")
	}
}

func TestConvertModsMeta(t *testing.T) {
	mods := convertMods(tcell.ModMeta)
	if !mods.Has(keymap.PhysSuper) {
		t.Errorf("convertMods(ModMeta) = %v, want PhysSuper", mods)
	}
}

func TestConvertStyleDefault(t *testing.T) {
	st := convertStyle(style.Default())
	if st != tcell.StyleDefault {
		t.Errorf("convertStyle(Default()) = %v, want tcell.StyleDefault", st)
	}
}

func TestConvertStyleColorsAndAttrs(t *testing.T) {
	s := style.Style{
		Foreground: style.Color{R: 255, G: 0, B: 0},
		Background: style.Color{R: 0, G: 0, B: 255},
		Attributes: style.AttrBold | style.AttrUnderline,
	}
	st := convertStyle(s)
	fg, bg, attrs := st.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("foreground = %v, want red", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("background = %v, want blue", bg)
	}
	if attrs&tcell.AttrBold == 0 || attrs&tcell.AttrUnderline == 0 {
		t.Errorf("attrs = %v, want Bold|Underline", attrs)
	}
}

func TestSpecialKeyRunesAreDistinctPUACodepoints(t *testing.T) {
	seen := make(map[rune]tcell.Key)
	for k, r := range specialKeyRunes {
		if r < 0xE000 && r != '\t' && r != '\r' {
			continue
		}
		if other, ok := seen[r]; ok && other != k {
			t.Errorf("rune %U assigned to both %v and %v", r, other, k)
		}
		seen[r] = k
	}
}
