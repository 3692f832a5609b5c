package petstore

import "errors"

var (
	// ErrEmptyName is returned when Fetch is called with a blank pet name.
	ErrEmptyName = errors.New("petstore: pet name is empty")

	// ErrNotFound is returned when the API knows no pet by the given name.
	ErrNotFound = errors.New("petstore: pet not found")

	// ErrMalformedResponse is returned when the API answer lacks the expected
	// pet payload.
	ErrMalformedResponse = errors.New("petstore: malformed response")
)
