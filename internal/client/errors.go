package client

import (
	"errors"
	"fmt"
)

// ErrNoToken indicates the token provider had nothing to offer. This is a
// precondition failure, not something to retry.
var ErrNoToken = errors.New("no bearer token available")

// APIError is a non-2xx response from the lab-manager service.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lab-manager returned %d: %s", e.Status, e.Body)
}
