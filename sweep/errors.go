package sweep

import "errors"

// ErrNotInitialized is returned by Sweep when called before Init.
var ErrNotInitialized = errors.New("sweep: processor not initialized")
