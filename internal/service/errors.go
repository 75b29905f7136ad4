package service

import "fmt"

// Operation names used in RemoteError.Op.
const (
	OpFetch     = "fetch"
	OpCreate    = "create"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpClearDone = "clear completed"
)

// RemoteError reports a failed backend operation. It is the only error kind a
// Service returns.
type RemoteError struct {
	Op      string
	Message string
	Err     error
}

// Failed wraps err as a RemoteError for op. A nil err yields nil.
func Failed(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Op: op, Message: err.Error(), Err: err}
}

// Failedf builds a RemoteError with a formatted message and no cause.
func Failedf(op, format string, args ...any) error {
	return &RemoteError{Op: op, Message: fmt.Sprintf(format, args...)}
}

func (e *RemoteError) Error() string {
	return e.Op + ": " + e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
