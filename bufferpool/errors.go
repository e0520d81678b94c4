package bufferpool

import "errors"

// Sentinel errors matching spec.md §6's RC_* taxonomy.
var (
	ErrFileNotFound               = errors.New("bufferpool: page file not found")
	ErrBufferPoolNotExisting      = errors.New("bufferpool: pool not initialized")
	ErrReadNonExistingPage        = errors.New("bufferpool: page not resident / out of range")
	ErrNoAvailableFrame           = errors.New("bufferpool: no available frame")
	ErrInvalidReplacementStrategy = errors.New("bufferpool: invalid replacement strategy")
	ErrWriteFailed                = errors.New("bufferpool: write failed")

	// ErrPoolHasPinnedPages is the spec.md §9 "recommended" shutdown
	// rejection — a deliberate behavior change from the C source's
	// silent leak of pinned frames at shutdown.
	ErrPoolHasPinnedPages = errors.New("bufferpool: pool has pinned pages")
)

// OpError wraps an operation name and underlying cause, in the teacher's
// buffer_pool/errors.go style.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return e.Op + ": <nil>"
	}
	return "bufferpool " + e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}
