// Package app provides ambient, cross-cutting concerns shared by the editor
// core and its CLI entry point: structured logging and the sentinel errors
// that travel across that boundary. It deliberately holds no editor state —
// the top-level controller lives in internal/editor.
package app

import "errors"

// ErrQuit signals that the run loop should exit normally. main checks for it
// with errors.Is to distinguish a requested quit from a real failure.
var ErrQuit = errors.New("quit requested")
