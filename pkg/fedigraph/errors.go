package fedigraph

import "errors"

var (
	// ErrInvalidArgument marks caller errors: unknown software or graph
	// type, conflicting or out-of-range selectors.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoGraphAvailable is returned when a valid (software, graph type)
	// pair has no dated partitions in the dataset.
	ErrNoGraphAvailable = errors.New("no graph available")
)
