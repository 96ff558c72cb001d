package command

import "testing"

func TestDigitSequenceAccumulates(t *testing.T) {
	var p PrefixState
	p.Digit(1)
	p.Digit(2)
	p.Digit(3)

	v, ok := p.Consume()
	if !ok || v != 123 {
		t.Fatalf("consume: got %d, %v, want 123", v, ok)
	}
	if p.Kind() != PrefixNoneKind {
		t.Fatalf("expected None after consume, got %v", p.Kind())
	}
}

func TestUniversalFromNone(t *testing.T) {
	var p PrefixState
	p.Universal()
	if p.Kind() != PrefixUniversalKind || p.Value() != 4 {
		t.Fatalf("got kind=%v value=%d, want Universal(4)", p.Kind(), p.Value())
	}
}

func TestUniversalMultipliesRepeatedly(t *testing.T) {
	var p PrefixState
	p.Universal()
	p.Universal()
	if p.Value() != 16 {
		t.Fatalf("value: got %d, want 16", p.Value())
	}
}

func TestDigitAfterUniversalDiscardsAccumulatedValue(t *testing.T) {
	var p PrefixState
	p.Universal()
	p.Universal() // value = 16
	p.Digit(7)

	if p.Kind() != PrefixDigitsKind || p.Value() != 7 {
		t.Fatalf("got kind=%v value=%d, want Digits(7)", p.Kind(), p.Value())
	}
}

func TestUniversalAfterDigitsMultipliesInPlace(t *testing.T) {
	var p PrefixState
	p.Digit(2)
	p.Universal()

	if p.Kind() != PrefixDigitsKind || p.Value() != 8 {
		t.Fatalf("got kind=%v value=%d, want Digits(8)", p.Kind(), p.Value())
	}

	// Still a digit run, so a following digit appends rather than restarting.
	p.Digit(3)
	if p.Kind() != PrefixDigitsKind || p.Value() != 83 {
		t.Fatalf("got kind=%v value=%d, want Digits(83)", p.Kind(), p.Value())
	}
}

func TestConsumeOnNoneReportsAbsent(t *testing.T) {
	var p PrefixState
	if _, ok := p.Consume(); ok {
		t.Fatal("expected no value on an untouched PrefixState")
	}
}

func TestRegistryRunUnknownCommand(t *testing.T) {
	r := NewRegistry()
	err := r.Run("does-not-exist", Arg{}, nil)
	if err == nil {
		t.Fatal("expected an error for an unregistered command")
	}
}

func TestArgRepeatDefaultsToOne(t *testing.T) {
	a := Arg{}
	if a.Repeat() != 1 {
		t.Fatalf("got %d, want 1", a.Repeat())
	}
	a = Arg{HasInt: true, Int: 5}
	if a.Repeat() != 5 {
		t.Fatalf("got %d, want 5", a.Repeat())
	}
}
