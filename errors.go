package xstitch

import "errors"

var (
	// ErrConfiguration reports invalid input detected before any work is
	// done: an empty catalog, an unknown arity or color method, or
	// non-positive pattern dimensions.
	ErrConfiguration = errors.New("configuration error")

	// ErrLookupFailure reports a matched color that is not present in the
	// candidate set used for reporting. It means the matcher and the report
	// were given different candidate sets.
	ErrLookupFailure = errors.New("lookup failure")
)
