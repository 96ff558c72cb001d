package command

// PrefixKind names which variant of PrefixState is active.
type PrefixKind int

const (
	PrefixNoneKind PrefixKind = iota
	PrefixDigitsKind
	PrefixUniversalKind
)

// PrefixState is the numeric prefix-argument accumulator: None, a typed
// digit run, or a universal-argument run (each C-u multiplying by 4).
// Digits extend a Digits run (or start one from Universal, discarding its
// accumulated value); universal-argument multiplies a Digits run by 4 in
// place, multiplies a Universal run by 4, or starts a Universal run at 4
// from None; any other command consumes and resets to None.
type PrefixState struct {
	kind  PrefixKind
	value int
}

// Digit applies digit(d): None -> Digits(d); Digits(v) -> Digits(v*10+d);
// Universal(v) -> Digits(d) (the universal run's value is discarded, only
// its invocations mattered for repeat purposes, not its accumulated count).
func (p *PrefixState) Digit(d int) {
	switch p.kind {
	case PrefixDigitsKind:
		p.value = p.value*10 + d
	default:
		p.kind = PrefixDigitsKind
		p.value = d
	}
}

// Universal applies universal-argument: None -> Universal(4); Digits(v) ->
// Digits(v*4) (the run stays a digit run, so a following digit appends to
// the quadrupled value); Universal(v) -> Universal(v*4).
func (p *PrefixState) Universal() {
	switch p.kind {
	case PrefixNoneKind:
		p.kind = PrefixUniversalKind
		p.value = 4
	default:
		p.value *= 4
	}
}

// Consume returns the accumulated numeric value (if any) and resets to
// None. A command that isn't universal-argument or digit-argument-* calls
// this exactly once, at dispatch time.
func (p *PrefixState) Consume() (value int, has bool) {
	if p.kind == PrefixNoneKind {
		return 0, false
	}
	v := p.value
	p.kind = PrefixNoneKind
	p.value = 0
	return v, true
}

// Kind reports the current variant, mostly useful for tests and for
// rendering the "C-u <value>" minibuffer message while a prefix accumulates.
func (p *PrefixState) Kind() PrefixKind { return p.kind }

// Value reports the currently accumulated value without consuming it.
func (p *PrefixState) Value() int { return p.value }
