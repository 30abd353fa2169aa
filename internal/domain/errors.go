package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrNotFound = errors.New("not found")
	// ErrNetwork covers a rejected request and any non-success status.
	ErrNetwork = errors.New("network failure")
	// ErrParse covers a payload that could not be decoded.
	ErrParse = errors.New("malformed payload")
)

// StatusError reports a non-2xx response. It matches ErrNetwork under
// errors.Is, and ErrNotFound as well for 404s.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with %s", e.Status)
}

// Is reports whether target is one of the sentinels this error stands for.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return true
	case ErrNotFound:
		return e.Code == 404
	}
	return false
}
