package editor

// Tick runs one iteration of the editor's event loop: it dispatches one
// already-polled input event (the backend owns the blocking poll; the main
// loop in cmd/remux bounds the wait at ~250ms and passes nil on timeout),
// drains the event queue, ticks the minibuffer, and
// reconciles scrolling against the cursor. The caller (cmd/remux) is
// responsible for requesting a render afterward; this controller never
// touches the terminal directly.
func (e *Editor) Tick(ev InputEvent) {
	if ev != nil {
		e.HandleInput(ev)
	}
	e.ProcessEvents()
	e.mini.Tick()
	if e.scrollIntent == FollowCursor {
		e.ensureCursorVisible()
	}
}
