package history

import "errors"

// ErrIndexOutOfRange is returned when a jump targets an index outside the
// recorded history. Valid targets run from -1 (before the first action) to
// the index of the last recorded action.
var ErrIndexOutOfRange = errors.New("history index out of range")
