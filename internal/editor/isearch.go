package editor

import (
	"github.com/dshills/remux/internal/buffer"
	"github.com/dshills/remux/internal/command"
	"github.com/dshills/remux/internal/minibuffer"
)

// ISearchState is the incremental-search session overlaid on the buffer
// while the minibuffer is in one of the ISearch modes.
type ISearchState struct {
	Original  buffer.Position
	Query     string
	Dir       command.Direction
	LastMatch *buffer.Position
}

// Isearch returns the active incremental-search session, or nil if none is
// in progress, for renderers to highlight the current match.
func (e *Editor) Isearch() *ISearchState { return e.isearch }

// IsearchStart begins an incremental search, or, if one is already active,
// changes its direction and steps to the next match (Emacs's repeated
// C-s/C-r). Implements command.EditorAPI.
func (e *Editor) IsearchStart(dir command.Direction) {
	if e.isearch != nil {
		e.isearch.Dir = dir
		e.isearchNext()
		return
	}
	e.isearch = &ISearchState{Original: e.buf.Cursor(), Dir: dir}
	e.setMode(Minibuffer)
	mode := minibuffer.ISearchForward
	if dir == command.Backward {
		mode = minibuffer.ISearchBackward
	}
	e.mini.Activate(mode.Prompt(), mode)
}

// IsearchAbort restores the pre-search cursor position and ends the
// session. Implements command.EditorAPI. A no-op when no session is active.
func (e *Editor) IsearchAbort() {
	if e.isearch == nil {
		return
	}
	e.buf.CursorX, e.buf.CursorY = e.isearch.Original.X, e.isearch.Original.Y
	e.isearchFinish()
}

// isearchFinish clears the session and returns to Normal mode, keeping
// whatever cursor position is current (a plain Enter accepts the match in
// place; IsearchAbort moves the cursor back before calling this).
func (e *Editor) isearchFinish() {
	e.isearch = nil
	e.mini.Deactivate()
	e.setMode(Normal)
}

// isearchUpdate re-reads the query from the minibuffer and re-searches from
// the session's anchor (the last match, or the original position before any
// match). An empty query resets the cursor to the original position.
func (e *Editor) isearchUpdate() {
	if e.isearch == nil {
		return
	}
	query := e.mini.Input()
	e.isearch.Query = query
	if query == "" {
		e.buf.CursorX, e.buf.CursorY = e.isearch.Original.X, e.isearch.Original.Y
		e.isearch.LastMatch = nil
		return
	}

	from := e.isearch.Original
	if e.isearch.LastMatch != nil {
		from = *e.isearch.LastMatch
	}
	if pos, ok := e.searchFrom(query, from); ok {
		e.buf.CursorX, e.buf.CursorY = pos.X, pos.Y
		e.isearch.LastMatch = &pos
		e.fireCursorMoved()
	}
}

// isearchNext steps to the next match beyond the last one found, in the
// session's current direction.
func (e *Editor) isearchNext() {
	if e.isearch == nil || e.isearch.Query == "" {
		return
	}
	from := e.isearch.Original
	if e.isearch.LastMatch != nil {
		from = *e.isearch.LastMatch
	}
	if e.isearch.Dir == command.Forward {
		from.X++
	} else {
		from.X--
	}
	if pos, ok := e.searchFrom(e.isearch.Query, from); ok {
		e.buf.CursorX, e.buf.CursorY = pos.X, pos.Y
		e.isearch.LastMatch = &pos
		e.fireCursorMoved()
	}
}

func (e *Editor) searchFrom(query string, from buffer.Position) (buffer.Position, bool) {
	if e.isearch.Dir == command.Forward {
		return e.buf.SearchForward(query, from.X, from.Y)
	}
	return e.buf.SearchBackward(query, from.X, from.Y)
}
