package sim

import "errors"

// Errors returned by the engine. Callers match them with errors.Is; the
// returned errors wrap them with the offending value.
var (
	// ErrInvalidInput reports an empty reference sequence or a frame capacity below one.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownPolicy reports a policy outside {FIFO, LRU, Optimal}.
	ErrUnknownPolicy = errors.New("unknown policy")

	// ErrCapacity reports an insert into a full resident set. Policies evict
	// before inserting, so seeing this means a policy is broken.
	ErrCapacity = errors.New("resident set is full")

	// ErrDuplicatePage reports an insert of a page that is already resident.
	ErrDuplicatePage = errors.New("page already resident")
)
