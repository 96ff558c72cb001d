// Package keymap resolves physical key events into command names.
//
// Two modifier spaces exist side by side: PhysicalModifiers describe what the
// terminal actually reported (Ctrl, Alt, Shift, Super); Mods is the editor's
// three-bit logical modifier set (MOD0, MOD1, MOD2) that bindings are keyed
// on. UserConfig supplies the translation between them, including Emacs-style
// prefix keys such as "C-x".
package keymap

import "strings"

// PhysicalModifiers represents the modifier keys a backend reported.
type PhysicalModifiers uint8

const (
	PhysNone PhysicalModifiers = 0
	PhysCtrl PhysicalModifiers = 1 << iota
	PhysAlt
	PhysShift
	PhysSuper
)

// Has returns true if m contains mod.
func (m PhysicalModifiers) Has(mod PhysicalModifiers) bool {
	return m&mod != 0
}

// Intersects returns true if m and other share any bit.
func (m PhysicalModifiers) Intersects(other PhysicalModifiers) bool {
	return m&other != 0
}

// With returns a copy of m with mod added.
func (m PhysicalModifiers) With(mod PhysicalModifiers) PhysicalModifiers {
	return m | mod
}

// IsEmpty returns true if no physical modifier is set.
func (m PhysicalModifiers) IsEmpty() bool {
	return m == PhysNone
}

// physicalNameMap recognizes only multi-character modifier tokens. A
// single-letter token is deliberately never a modifier name here: bind_mod's
// combo grammar reserves single characters for the trailing prefix key, and
// a synonym like "c" for ctrl would make that trailing char unreachable.
var physicalNameMap = map[string]PhysicalModifiers{
	"ctrl":    PhysCtrl,
	"control": PhysCtrl,
	"alt":     PhysAlt,
	"shift":   PhysShift,
	"super":   PhysSuper,
	"meta":    PhysSuper,
}

// PhysicalFromName returns the modifier named by a single token, case
// insensitively. Unrecognized tokens return PhysNone.
func PhysicalFromName(name string) PhysicalModifiers {
	return physicalNameMap[strings.ToLower(name)]
}

// ParsePhysicalCombo parses a "+"-separated modifier combo such as
// "ctrl+alt", optionally followed by a single trailing character that is not
// itself a modifier token. It returns the accumulated modifier mask and the
// trailing rune, or 0 if no trailing character was present.
//
// This is the parser behind the script surface's bind_mod(index, combo):
// with a trailing character the combo names a prefix key; without one it
// names a physical mask to assign directly to a logical MOD bit.
func ParsePhysicalCombo(combo string) (mods PhysicalModifiers, key rune) {
	parts := strings.Split(combo, "+")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if mod := PhysicalFromName(part); mod != PhysNone {
			mods = mods.With(mod)
			continue
		}
		if runes := []rune(part); len(runes) == 1 {
			key = runes[0]
		}
	}
	return mods, key
}
