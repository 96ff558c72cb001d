package keymap

// UserConfig holds the script-configurable modifier resolution rules plus a
// couple of display toggles that travel with it because the same init.lua
// globals (bind_mod, set_buffer_borders, set_isearch_highlight) configure
// both. It is shared, read-mostly state: the script interpreter writes it at
// load time, the keymap resolver reads it on every keystroke.
type UserConfig struct {
	ModMasks    [3]PhysicalModifiers
	PrefixKeys  [3]*rune
	PrefixMasks [3]PhysicalModifiers

	BufferBorders    bool
	ISearchHighlight bool
}

// NewUserConfig returns a UserConfig with Emacs-ish defaults: MOD0 bound to
// Ctrl, MOD1 to Alt, MOD2 unbound until configured by init.lua.
func NewUserConfig() *UserConfig {
	return &UserConfig{
		ModMasks:         [3]PhysicalModifiers{PhysCtrl, PhysAlt, PhysNone},
		BufferBorders:    true,
		ISearchHighlight: true,
	}
}

// SetPrefixKey configures slot i as a two-stroke prefix: physical modifiers
// intersecting mask, combined with key, are swallowed as a prefix stroke
// rather than resolved to a logical modifier immediately.
func (c *UserConfig) SetPrefixKey(i Slot, key rune, mask PhysicalModifiers) {
	k := key
	c.PrefixKeys[i] = &k
	c.PrefixMasks[i] = mask
}

// SetModMask assigns slot i directly to a physical modifier mask, clearing
// any prefix-key configuration previously set for that slot.
func (c *UserConfig) SetModMask(i Slot, mask PhysicalModifiers) {
	c.ModMasks[i] = mask
	c.PrefixKeys[i] = nil
	c.PrefixMasks[i] = PhysNone
}

// PendingPrefix records a swallowed prefix-key stroke awaiting the next
// keystroke.
type PendingPrefix struct {
	Valid bool
	Slot  Slot
}

// Resolve translates a physical key event into the editor's logical modifier
// set, implementing Emacs-style two-stroke prefixes (step 1), direct
// modifier-mask translation (step 2), and carrying a previously swallowed
// prefix forward onto the next keystroke (step 3).
//
// swallowed is true when this keystroke was consumed as a prefix stroke and
// produced no command lookup; the caller should not treat r as input in that
// case.
func Resolve(phys PhysicalModifiers, r rune, cfg *UserConfig, pending *PendingPrefix) (mods Mods, swallowed bool) {
	for i := 0; i < 3; i++ {
		if cfg.PrefixKeys[i] != nil && r == *cfg.PrefixKeys[i] && phys.Intersects(cfg.PrefixMasks[i]) {
			pending.Valid = true
			pending.Slot = Slot(i)
			return ModNone, true
		}
	}

	for i := 0; i < 3; i++ {
		if phys.Intersects(cfg.ModMasks[i]) {
			mods |= Slot(i).Bit()
		}
	}

	if pending.Valid {
		mods |= pending.Slot.Bit()
		pending.Valid = false
	}

	return mods, false
}
