package editor

import (
	"testing"

	"github.com/dshills/remux/internal/buffer"
	"github.com/dshills/remux/internal/command"
	"github.com/dshills/remux/internal/hook"
	"github.com/dshills/remux/internal/keymap"
)

func newEditorWithLines(lines ...string) *Editor {
	b := buffer.New()
	b.Lines = make([]*buffer.Line, len(lines))
	for i, l := range lines {
		b.Lines[i] = buffer.NewLine(l)
	}
	return New(b, nil)
}

func TestDigitPrefixConsumedIntoMotion(t *testing.T) {
	e := newEditorWithLines("abcdefgh")

	e.ExecuteNamed("digit-argument-3")
	e.ExecuteNamed("move-right")

	if cur := e.buf.Cursor(); cur != (buffer.Position{X: 3, Y: 0}) {
		t.Fatalf("cursor: got %+v, want (3,0)", cur)
	}
	if e.prefix.Kind() != command.PrefixNoneKind {
		t.Fatalf("expected prefix consumed back to None, got %v", e.prefix.Kind())
	}
}

func TestIsearchForwardFindsAndAbortRestores(t *testing.T) {
	e := newEditorWithLines("foo", "bar foo baz")

	e.ExecuteNamed("isearch-forward")
	if e.mode != Minibuffer || e.isearch == nil {
		t.Fatal("expected isearch session to start in Minibuffer mode")
	}

	for _, ch := range "foo" {
		e.mini.Push(ch)
		e.isearchUpdate()
	}
	if cur := e.buf.Cursor(); cur != (buffer.Position{X: 0, Y: 0}) {
		t.Fatalf("first match: got %+v, want (0,0)", cur)
	}

	e.isearchNext()
	if cur := e.buf.Cursor(); cur != (buffer.Position{X: 4, Y: 1}) {
		t.Fatalf("second match: got %+v, want (4,1)", cur)
	}

	e.IsearchAbort()
	if cur := e.buf.Cursor(); cur != (buffer.Position{X: 0, Y: 0}) {
		t.Fatalf("after abort: got %+v, want (0,0)", cur)
	}
	if e.isearch != nil || e.mode != Normal {
		t.Fatal("expected isearch session cleared and Normal mode restored")
	}
}

func TestUnknownCommandProducesMessage(t *testing.T) {
	e := newEditorWithLines("x")
	e.ExecuteNamed("no-such-command")
	if got := e.mini.Text(); got != "Unknown command: no-such-command" {
		t.Fatalf("message: got %q", got)
	}
}

func TestKeyboardQuitClearsMarkAndMessages(t *testing.T) {
	e := newEditorWithLines("hello")
	e.buf.SetMark()

	e.ExecuteNamed("keyboard-quit")

	if e.buf.HasMark() {
		t.Fatal("expected mark cleared")
	}
	if got := e.mini.Text(); got != "Quit" {
		t.Fatalf("message: got %q", got)
	}
}

func TestKillRemuxRequestsQuit(t *testing.T) {
	e := newEditorWithLines("x")
	e.ExecuteNamed("kill-remux")
	if !e.ShouldQuit() {
		t.Fatal("expected ShouldQuit to be true")
	}
}

func TestYankCommandUsesKillRing(t *testing.T) {
	e := newEditorWithLines("hello world")
	e.buf.SetMark()
	e.buf.CursorX = 5

	e.ExecuteNamed("kill-ring-save")
	if text, ok := e.KillRingGet(); !ok || text != "hello" {
		t.Fatalf("kill ring: got %q, %v, want %q", text, ok, "hello")
	}

	e.buf.ClearMark()
	e.buf.CursorX, e.buf.CursorY = 6, 0
	e.ExecuteNamed("yank")

	if got := e.buf.LineText(0); got != "hello helloworld" {
		t.Fatalf("line after yank: got %q", got)
	}
}

func TestEnqueuedMessageEventDrainsOnTick(t *testing.T) {
	e := newEditorWithLines("x")
	e.Enqueue(MessageEvent{Text: "queued"})
	e.Tick(nil)
	if got := e.mini.Text(); got != "queued" {
		t.Fatalf("message: got %q", got)
	}
}

func TestGotoLineClampsToBufferLength(t *testing.T) {
	e := newEditorWithLines("a", "b", "c")
	e.gotoLine("100")
	if cur := e.buf.Cursor(); cur != (buffer.Position{X: 0, Y: 2}) {
		t.Fatalf("cursor: got %+v, want (0,2)", cur)
	}
}

func TestToggleWrapModeInvalidatesCache(t *testing.T) {
	e := newEditorWithLines("abc")
	e.buf.EnsureVisuals(80, buffer.Wrap)
	e.ToggleWrapMode()
	if !e.buf.Visual.Dirty {
		t.Fatal("expected visual cache invalidated after wrap toggle")
	}
	if e.wrap != buffer.Truncate {
		t.Fatalf("wrap: got %v, want Truncate", e.wrap)
	}
}

func TestModeChangedFiresOnIsearchTransitions(t *testing.T) {
	e := newEditorWithLines("foo")
	var seen []string
	e.hooks.Add("mode-changed", hook.Func(func(arg string) { seen = append(seen, arg) }))

	e.ExecuteNamed("isearch-forward")
	e.IsearchAbort()

	want := []string{"minibuffer", "normal"}
	if len(seen) != len(want) {
		t.Fatalf("mode-changed fired %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("mode-changed[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestModeChangedDoesNotFireOnNoOpAssignment(t *testing.T) {
	e := newEditorWithLines("foo")
	count := 0
	e.hooks.Add("mode-changed", hook.Func(func(arg string) { count++ }))

	e.setMode(Normal) // already Normal: must not fire
	if count != 0 {
		t.Fatalf("mode-changed fired %d times for a no-op transition, want 0", count)
	}
}

func TestBufferChangedFiresOnInsertOnly(t *testing.T) {
	e := newEditorWithLines("ab")
	var reasons []string
	e.hooks.Add("buffer-changed", hook.Func(func(arg string) { reasons = append(reasons, arg) }))

	e.insertChar('x')
	if len(reasons) != 1 || reasons[0] != "insert-char" {
		t.Fatalf("after insert: reasons = %v, want [insert-char]", reasons)
	}

	// Deletes, kills, and undo notify through the command hooks, not
	// buffer-changed.
	e.ExecuteNamed("undo")
	if len(reasons) != 1 {
		t.Fatalf("after undo: reasons = %v, want no new entries", reasons)
	}
}

func TestBufferChangedDoesNotFireForNonMutatingCommand(t *testing.T) {
	e := newEditorWithLines("abc")
	count := 0
	e.hooks.Add("buffer-changed", hook.Func(func(arg string) { count++ }))

	e.ExecuteNamed("move-right")
	if count != 0 {
		t.Fatalf("buffer-changed fired %d times for move-right, want 0", count)
	}
}

func TestCursorMovedFiresAfterCommandBracketCloses(t *testing.T) {
	e := newEditorWithLines("abc")
	var order []string
	e.hooks.Add("after-command", hook.Func(func(arg string) { order = append(order, "after-command") }))
	e.hooks.Add("cursor-moved", hook.Func(func(arg string) { order = append(order, "cursor-moved:"+arg) }))

	e.ExecuteNamed("move-right")

	want := []string{"after-command", "cursor-moved:1,0"}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("hook order: got %v, want %v", order, want)
	}
}

func TestBeforeAndAfterCommandBracketExecution(t *testing.T) {
	e := newEditorWithLines("abc")
	var order []string
	e.hooks.Add("before-command", hook.Func(func(arg string) { order = append(order, "before:"+arg) }))
	e.hooks.Add("after-command", hook.Func(func(arg string) { order = append(order, "after:"+arg) }))

	e.ExecuteNamed("move-right")

	want := []string{"before:move-right", "after:move-right"}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("hook order: got %v, want %v", order, want)
	}
}

func TestExecuteCommandRunsTypedName(t *testing.T) {
	e := newEditorWithLines("abc")

	e.ExecuteNamed("execute-command")
	if e.mode != Minibuffer {
		t.Fatal("expected execute-command to enter Minibuffer mode")
	}
	for _, ch := range "move-right" {
		e.mini.Push(ch)
	}
	e.ExecuteMinibuffer()

	if cur := e.buf.Cursor(); cur != (buffer.Position{X: 1, Y: 0}) {
		t.Fatalf("cursor: got %+v, want (1,0)", cur)
	}
	if e.mode != Normal {
		t.Fatal("expected Normal mode after submission")
	}
}

func TestPromptMinibufferRunsPendingCommandOnSubmit(t *testing.T) {
	e := newEditorWithLines("abc")

	e.PromptMinibuffer("Confirm: ", "move-right")
	for _, ch := range "anything" {
		e.mini.Push(ch)
	}
	e.ExecuteMinibuffer()

	if cur := e.buf.Cursor(); cur != (buffer.Position{X: 1, Y: 0}) {
		t.Fatalf("cursor: got %+v, want (1,0)", cur)
	}
	if e.pendingCommand != "" {
		t.Fatalf("pending command not cleared: %q", e.pendingCommand)
	}
}

func TestWheelScrollsWithoutMovingCursor(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	e := newEditorWithLines(lines...)
	e.SetViewport(80, 12) // minus minibuffer and border rows: 10 text rows

	e.HandleInput(WheelEvent{Delta: 3})

	if e.scrollY != 3 {
		t.Fatalf("scrollY: got %d, want 3", e.scrollY)
	}
	if cur := e.buf.Cursor(); cur != (buffer.Position{X: 0, Y: 0}) {
		t.Fatalf("cursor moved to %+v during wheel scroll", cur)
	}
	if e.scrollIntent != Manual {
		t.Fatal("expected Manual scroll intent after wheel scroll")
	}

	// A manual scroll must survive the tick's cursor-visibility pass.
	e.Tick(nil)
	if e.scrollY != 3 {
		t.Fatalf("scrollY after tick: got %d, want 3", e.scrollY)
	}
}

func TestWheelUpClampsAtTop(t *testing.T) {
	e := newEditorWithLines("a", "b")
	e.HandleInput(WheelEvent{Delta: -2})
	if e.scrollY != 0 {
		t.Fatalf("scrollY: got %d, want 0", e.scrollY)
	}
}

func TestCtrlCQuitsInNormalMode(t *testing.T) {
	e := newEditorWithLines("abc")
	e.HandleInput(KeyEvent{Rune: runeCtrlC})
	if !e.ShouldQuit() {
		t.Fatal("expected Ctrl-C to request quit")
	}
}

func TestCtrlCDefersToUserBinding(t *testing.T) {
	e := newEditorWithLines("abc")
	e.keys.Bind(keymap.ModNone, runeCtrlC, "move-right")
	e.HandleInput(KeyEvent{Rune: runeCtrlC})
	if e.ShouldQuit() {
		t.Fatal("bound Ctrl-C must run its command, not quit")
	}
	if cur := e.buf.Cursor(); cur != (buffer.Position{X: 1, Y: 0}) {
		t.Fatalf("cursor: got %+v, want (1,0)", cur)
	}
}
