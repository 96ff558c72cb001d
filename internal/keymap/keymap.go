package keymap

// binding is one registered (mods, key) -> command mapping, tagged with its
// registration order so lookups can break ties deterministically.
type binding struct {
	mods    Mods
	command string
	seq     int
}

// KeyMap maps (logical modifier set, character) to a command name.
//
// Lookup policy: a binding matches an
// input if its mods is a subset of the resolved input mods. When more than
// one binding for the same key matches, the binding with the largest
// modifier popcount wins (most specific); ties are broken by registration
// order, first-registered first. Binding the exact same (mods, key) pair
// again replaces the earlier entry outright rather than creating a tie.
type KeyMap struct {
	byKey map[rune][]binding
	seq   int
}

// NewKeyMap returns an empty KeyMap.
func NewKeyMap() *KeyMap {
	return &KeyMap{byKey: make(map[rune][]binding)}
}

// Bind registers command under (mods, key), replacing any existing binding
// for the exact same pair.
func (k *KeyMap) Bind(mods Mods, key rune, command string) {
	entries := k.byKey[key]
	for i, b := range entries {
		if b.mods == mods {
			entries[i].command = command
			return
		}
	}
	k.seq++
	k.byKey[key] = append(entries, binding{mods: mods, command: command, seq: k.seq})
}

// Lookup returns the command bound to key under the given resolved logical
// mods, and whether a binding was found.
func (k *KeyMap) Lookup(mods Mods, key rune) (string, bool) {
	entries := k.byKey[key]
	var best *binding
	for i := range entries {
		b := &entries[i]
		if !b.mods.Subset(mods) {
			continue
		}
		if best == nil {
			best = b
			continue
		}
		if b.mods.PopCount() > best.mods.PopCount() {
			best = b
		} else if b.mods.PopCount() == best.mods.PopCount() && b.seq < best.seq {
			best = b
		}
	}
	if best == nil {
		return "", false
	}
	return best.command, true
}

// Unbind removes the binding for the exact (mods, key) pair, if present.
func (k *KeyMap) Unbind(mods Mods, key rune) {
	entries := k.byKey[key]
	for i, b := range entries {
		if b.mods == mods {
			k.byKey[key] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}
