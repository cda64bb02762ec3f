package storage

import "errors"

// ErrNotInitialized is returned by every Facade operation invoked before a successful Initialize.
var ErrNotInitialized = errors.New("storage: not initialized")

// InitializationError reports that the backend could not be opened or its schema not ensured.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return "storage: initialize: " + e.Err.Error()
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// QueryError reports a failed read. The stored contacts are unchanged.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return "storage: list: " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed create, update or delete. Op names the operation. A failed write
// leaves no partially applied record behind.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
