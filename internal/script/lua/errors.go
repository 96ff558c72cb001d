package lua

import "errors"

// ErrStateClosed is returned when operating on a closed State.
var ErrStateClosed = errors.New("lua state is closed")
