package pool

import "errors"

var (
	// ErrCapacityExceeded is returned when a pool has no free slot left to
	// satisfy an allocation request.
	ErrCapacityExceeded = errors.New("pool: capacity exceeded")

	// ErrInvalidIndex is returned by Release when the index is out of the
	// pool's range.
	ErrInvalidIndex = errors.New("pool: invalid index")

	// ErrOverflow is returned by Release when the free-list already holds
	// every index in the pool's capacity, which can only happen from a
	// double-release.
	ErrOverflow = errors.New("pool: release overflow (double release?)")
)
