package session

import "github.com/pkg/errors"

// ErrNotFound no stored session for the id, or it expired
var ErrNotFound = errors.New("session not found")

// ErrBackend the session backend failed; the stored session may still exist
var ErrBackend = errors.New("session backend failure")

type backendError struct {
	err error
}

func (e *backendError) Error() string {
	return "session backend: " + e.err.Error()
}

func (e *backendError) Unwrap() error {
	return e.err
}

func (e *backendError) Is(target error) bool {
	return target == ErrBackend
}
