// Package domain defines domain-level errors for the dataset feature.
package domain

import "errors"

// Load failures. All three are terminal for a request; callers match them
// with errors.Is and map them to distinct responses.
var (
	// ErrUnknownSymbol indicates the requested symbol is not in the registry.
	ErrUnknownSymbol = errors.New("unknown stock symbol")

	// ErrSourceUnavailable indicates the raw dataset bytes could not be fetched
	// (network or IO failure, or a non-success upstream status).
	ErrSourceUnavailable = errors.New("data source unavailable")

	// ErrMalformedData indicates the fetched bytes do not satisfy the CSV
	// contract: a required column is missing or a cell cannot be parsed.
	ErrMalformedData = errors.New("malformed dataset")
)
