package keymap

import "testing"

func TestLookupPrefersLargestPopcount(t *testing.T) {
	k := NewKeyMap()
	k.Bind(Mod0, 'x', "cmd-mod0")
	k.Bind(Mod0|Mod1, 'x', "cmd-mod0-mod1")

	got, ok := k.Lookup(Mod0|Mod1|Mod2, 'x')
	if !ok || got != "cmd-mod0-mod1" {
		t.Fatalf("lookup: got %q, %v, want cmd-mod0-mod1", got, ok)
	}
}

func TestLookupBreaksTiesByRegistrationOrder(t *testing.T) {
	k := NewKeyMap()
	k.Bind(Mod0, 'x', "first")
	k.Bind(Mod1, 'x', "second")

	got, ok := k.Lookup(Mod0|Mod1, 'x')
	if !ok || got != "first" {
		t.Fatalf("lookup: got %q, %v, want first", got, ok)
	}
}

func TestBindSamePairReplaces(t *testing.T) {
	k := NewKeyMap()
	k.Bind(Mod0, 'x', "first")
	k.Bind(Mod0, 'x', "replaced")

	got, ok := k.Lookup(Mod0, 'x')
	if !ok || got != "replaced" {
		t.Fatalf("lookup: got %q, %v, want replaced", got, ok)
	}
}

func TestLookupRequiresSubset(t *testing.T) {
	k := NewKeyMap()
	k.Bind(Mod0|Mod1, 'x', "needs-both")

	if _, ok := k.Lookup(Mod0, 'x'); ok {
		t.Fatal("expected no match when input mods are a strict subset of the binding")
	}
}

func TestUnbindRemovesExactPair(t *testing.T) {
	k := NewKeyMap()
	k.Bind(Mod0, 'x', "cmd")
	k.Unbind(Mod0, 'x')

	if _, ok := k.Lookup(Mod0, 'x'); ok {
		t.Fatal("expected binding to be removed")
	}
}

func TestResolvePrefixKeySwallowsStroke(t *testing.T) {
	cfg := NewUserConfig()
	cfg.SetPrefixKey(Slot0, 'x', PhysCtrl)

	var pending PendingPrefix
	mods, swallowed := Resolve(PhysCtrl, 'x', cfg, &pending)
	if !swallowed || mods != ModNone {
		t.Fatalf("expected swallowed prefix stroke, got mods=%v swallowed=%v", mods, swallowed)
	}
	if !pending.Valid || pending.Slot != Slot0 {
		t.Fatalf("expected pending prefix recorded, got %+v", pending)
	}
}

func TestResolveCarriesPendingPrefixForward(t *testing.T) {
	cfg := NewUserConfig()
	cfg.SetPrefixKey(Slot0, 'x', PhysCtrl)

	var pending PendingPrefix
	Resolve(PhysCtrl, 'x', cfg, &pending)

	mods, swallowed := Resolve(PhysNone, 'f', cfg, &pending)
	if swallowed {
		t.Fatal("the stroke following a prefix should not itself be swallowed")
	}
	if mods != Mod0 {
		t.Fatalf("expected Mod0 carried forward, got %v", mods)
	}
	if pending.Valid {
		t.Fatal("pending prefix should be cleared after being applied")
	}
}

func TestResolveDirectModMask(t *testing.T) {
	cfg := NewUserConfig() // MOD0 = Ctrl, MOD1 = Alt by default

	var pending PendingPrefix
	mods, swallowed := Resolve(PhysCtrl, 's', cfg, &pending)
	if swallowed {
		t.Fatal("plain ctrl stroke should not be swallowed")
	}
	if mods != Mod0 {
		t.Fatalf("expected Mod0, got %v", mods)
	}
}

func TestParsePhysicalComboWithPrefixKey(t *testing.T) {
	mods, key := ParsePhysicalCombo("ctrl+x")
	if mods != PhysCtrl || key != 'x' {
		t.Fatalf("got mods=%v key=%q", mods, key)
	}
}

func TestParseLogicalCombo(t *testing.T) {
	if got := ParseLogicalCombo("mod0+mod2"); got != Mod0|Mod2 {
		t.Fatalf("got %v, want Mod0|Mod2", got)
	}
}

func TestPhysicalFromNameRejectsSingleLetters(t *testing.T) {
	if PhysicalFromName("c") != PhysNone {
		t.Fatal("single-letter tokens must never resolve to a modifier")
	}
	if PhysicalFromName("ctrl") != PhysCtrl {
		t.Fatal("expected \"ctrl\" to resolve to PhysCtrl")
	}
}
