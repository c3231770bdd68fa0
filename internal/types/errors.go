package types

import (
	"errors"
	"fmt"
)

// Domain specific errors shared across handlers and services.
var (
	ErrNotFound   = errors.New("requested item not found")
	ErrBadRequest = errors.New("bad request")
)

// DetailsLookupError is returned when the mapping provider cannot
// resolve a place identifier. Status carries the provider's status
// string verbatim. Terminal for the activation sequence; never retried.
type DetailsLookupError struct {
	Status string
}

func (e *DetailsLookupError) Error() string {
	return fmt.Sprintf("details lookup failed: %s", e.Status)
}

// VenuesLookupError is returned when the venues-nearby lookup fails.
// Terminal for the activation sequence; never retried.
type VenuesLookupError struct {
	Reason string
}

func (e *VenuesLookupError) Error() string {
	return fmt.Sprintf("venues lookup failed: %s", e.Reason)
}
