package pagefile

import "errors"

// Sentinel errors matching spec.md's RC_* taxonomy, returned instead of
// integer codes per the REDESIGN FLAGS (idiomatic Go error handling in
// place of a C-style return-code enum).
var (
	ErrFileNotFound      = errors.New("pagefile: file not found")
	ErrFileHandleNotInit = errors.New("pagefile: file handle not initialized")
	ErrWriteFailed       = errors.New("pagefile: write failed")
	ErrReadNonExisting   = errors.New("pagefile: read of non-existing page")
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
	return "pagefile " + e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}
