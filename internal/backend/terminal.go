// Package backend wraps tcell as remux's terminal I/O layer: raw-mode setup,
// a simple cell-grid drawing surface, and translation of tcell's key/resize/
// paste events into the Editor Controller's InputEvent shape. It makes no
// layout or styling decisions of its own — those live in internal/layout and
// the renderer that drives this package — and it never retains a
// dirty-rectangle diff: every Show redraws whatever the caller last painted
// over the whole viewport.
package backend

import (
	"github.com/gdamore/tcell/v2"

	_ "github.com/gdamore/encoding" // registers wide-encoding terminfo tables tcell needs for non-UTF8 locales

	"github.com/dshills/remux/internal/backend/style"
	"github.com/dshills/remux/internal/editor"
	"github.com/dshills/remux/internal/keymap"
)

// Terminal implements terminal I/O over a tcell.Screen.
type Terminal struct {
	screen tcell.Screen

	pasting  bool
	pasteBuf []rune
}

// NewTerminal allocates (but does not initialize) a tcell screen for the
// current terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// Init puts the terminal into raw mode and enables bracketed paste.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	t.screen.EnableMouse(tcell.MouseButtonEvents)
	t.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal to its pre-Init state.
func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

// Size returns the current terminal dimensions in columns and rows.
func (t *Terminal) Size() (width, height int) {
	return t.screen.Size()
}

// SetCell writes one cell into the backing grid. Out-of-bounds positions are
// silently ignored, matching tcell.Screen.SetContent's own behavior.
func (t *Terminal) SetCell(x, y int, cell Cell) {
	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

// Fill paints every cell in rect with cell.
func (t *Terminal) Fill(rect ScreenRect, cell Cell) {
	st := convertStyle(cell.Style)
	width, height := t.screen.Size()
	for y := rect.Top; y < rect.Bottom && y < height; y++ {
		if y < 0 {
			continue
		}
		for x := rect.Left; x < rect.Right && x < width; x++ {
			if x < 0 {
				continue
			}
			t.screen.SetContent(x, y, cell.Rune, nil, st)
		}
	}
}

// Clear blanks the entire screen.
func (t *Terminal) Clear() {
	t.screen.Clear()
}

// Show flushes pending SetCell/Fill/Clear calls to the actual display.
func (t *Terminal) Show() {
	t.screen.Show()
}

// ShowCursor positions and reveals the terminal cursor.
func (t *Terminal) ShowCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

// PollEvent blocks until the next terminal event and returns it translated
// into the Editor Controller's InputEvent shape. Mouse wheel steps become
// WheelEvents; other mouse and focus events are skipped, as are the
// keystrokes tcell delivers inside a bracketed paste, which are buffered
// internally and surfaced as a single PasteEvent once the paste ends.
func (t *Terminal) PollEvent() editor.InputEvent {
	for {
		ev := t.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			if t.pasting {
				t.pasteBuf = append(t.pasteBuf, e.Rune())
				continue
			}
			r, mods := convertKey(e)
			return editor.KeyEvent{Rune: r, Mods: mods}
		case *tcell.EventResize:
			w, h := e.Size()
			return editor.ResizeEvent{Width: w, Height: h}
		case *tcell.EventMouse:
			switch {
			case e.Buttons()&tcell.WheelUp != 0:
				return editor.WheelEvent{Delta: -1}
			case e.Buttons()&tcell.WheelDown != 0:
				return editor.WheelEvent{Delta: 1}
			}
			continue
		case *tcell.EventPaste:
			if e.Start() {
				t.pasting = true
				t.pasteBuf = t.pasteBuf[:0]
				continue
			}
			t.pasting = false
			return editor.PasteEvent{Text: string(t.pasteBuf)}
		default:
			continue
		}
	}
}

// convertKey maps a tcell key event onto a rune plus the physical modifiers
// remux's keymap resolver expects. Control characters already arrive as
// their ASCII control-code rune (Enter as '\r', Backspace as 0x7f, Escape as
// 0x1b) straight from tcell, matching what internal/editor's InputEvent doc
// assumes. Keys with no natural rune (arrows, function keys, Home/End, …)
// are mapped into the Unicode Private Use Area starting at U+E000 so init.lua
// can still bind them via bind(), exactly like any other key.
func convertKey(e *tcell.EventKey) (rune, keymap.PhysicalModifiers) {
	mods := convertMods(e.Modifiers())
	if e.Key() == tcell.KeyRune {
		return e.Rune(), mods
	}
	if r, ok := specialKeyRunes[e.Key()]; ok {
		return r, mods
	}
	return e.Rune(), mods
}

// specialKeyRunes assigns a private-use-area rune to every tcell key that
// doesn't already carry one, so the keymap can bind arrows, function keys,
// and navigation keys the same way it binds any printable character.
var specialKeyRunes = map[tcell.Key]rune{
	tcell.KeyUp:         0xE000,
	tcell.KeyDown:       0xE001,
	tcell.KeyLeft:       0xE002,
	tcell.KeyRight:      0xE003,
	tcell.KeyHome:       0xE004,
	tcell.KeyEnd:        0xE005,
	tcell.KeyPgUp:       0xE006,
	tcell.KeyPgDn:       0xE007,
	tcell.KeyDelete:     0xE008,
	tcell.KeyInsert:     0xE009,
	tcell.KeyTab:        '\t',
	tcell.KeyBacktab:    0xE00A,
	tcell.KeyEnter:      '\r',
	tcell.KeyEscape:     0x1b,
	tcell.KeyBackspace:  0x7f,
	tcell.KeyBackspace2: 0x7f,
	tcell.KeyF1:         0xE010,
	tcell.KeyF2:         0xE011,
	tcell.KeyF3:         0xE012,
	tcell.KeyF4:         0xE013,
	tcell.KeyF5:         0xE014,
	tcell.KeyF6:         0xE015,
	tcell.KeyF7:         0xE016,
	tcell.KeyF8:         0xE017,
	tcell.KeyF9:         0xE018,
	tcell.KeyF10:        0xE019,
	tcell.KeyF11:        0xE01A,
	tcell.KeyF12:        0xE01B,
}

// convertMods translates tcell's modifier mask into remux's physical
// modifier set. tcell.ModMeta is folded into PhysSuper, matching the same
// Meta/Super conflation keymap.PhysicalFromName makes for the "meta" token.
func convertMods(m tcell.ModMask) keymap.PhysicalModifiers {
	var mods keymap.PhysicalModifiers
	if m&tcell.ModCtrl != 0 {
		mods |= keymap.PhysCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= keymap.PhysAlt
	}
	if m&tcell.ModShift != 0 {
		mods |= keymap.PhysShift
	}
	if m&tcell.ModMeta != 0 {
		mods |= keymap.PhysSuper
	}
	return mods
}

// convertStyle translates remux's style.Style into a tcell.Style.
func convertStyle(s style.Style) tcell.Style {
	st := tcell.StyleDefault
	if !s.Foreground.Default {
		st = st.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
	}
	if !s.Background.Default {
		st = st.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}
	if s.Attributes.Has(style.AttrBold) {
		st = st.Bold(true)
	}
	if s.Attributes.Has(style.AttrUnderline) {
		st = st.Underline(true)
	}
	if s.Attributes.Has(style.AttrReverse) {
		st = st.Reverse(true)
	}
	return st
}
