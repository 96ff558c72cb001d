package buffer

import "errors"

// Sentinel errors surfaced by the buffer. The controller translates these
// into minibuffer messages; none of them are fatal.
var (
	ErrNoFilePath    = errors.New("buffer has no associated file path")
	ErrEmptySavePath = errors.New("empty save path")
	ErrNoSelection   = errors.New("no active region")
	ErrNothingToKill = errors.New("nothing to kill")
	ErrEmptyKillText = errors.New("kill buffer empty")
)
