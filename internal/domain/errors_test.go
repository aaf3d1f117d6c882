package domain

import (
	"errors"
	"testing"
)

func TestLookupError(t *testing.T) {
	var err error = &LookupError{Kind: "working schedule", Key: "999"}

	if !errors.Is(err, ErrLookupNotFound) {
		t.Error("LookupError must unwrap to ErrLookupNotFound")
	}

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) || lookupErr.Key != "999" {
		t.Errorf("errors.As failed: %v", err)
	}

	if err.Error() != "working schedule 999: lookup not found" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
