package domain

import (
	"errors"
	"fmt"
)

var (
	ErrLookupNotFound      = errors.New("lookup not found")
	ErrUnknownExchangeCode = errors.New("unknown exchange code")
)

// LookupError reports a translation that has no answer in the loaded tables,
// e.g. a working schedule that no exchange owns.
type LookupError struct {
	Kind string
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Key, ErrLookupNotFound)
}

func (e *LookupError) Unwrap() error {
	return ErrLookupNotFound
}
