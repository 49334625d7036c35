package octree

import "errors"

// ErrDegenerateInsert annotates the log line emitted when Insert drops an
// object it could not place; it is never returned to a caller.
var ErrDegenerateInsert = errors.New("octree: object did not fit any child after subdivision")
