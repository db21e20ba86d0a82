package fedigraph

import (
	"fmt"
	"slices"
)

// The dataset covers a fixed set of fediverse software, each with the
// graph types collected for it. The catalog is process-wide constant
// state; nothing mutates it after init.
var (
	softwareNames = []string{
		"bookwyrm",
		"friendica",
		"lemmy",
		"mastodon",
		"misskey",
		"peertube",
		"pleroma",
	}

	validGraphTypes = map[string][]string{
		"bookwyrm":  {"federation"},
		"friendica": {"federation"},
		"lemmy":     {"federation", "cross_instance", "intra_instance"},
		"mastodon":  {"federation", "active_users"},
		"misskey":   {"federation", "active_users"},
		"peertube":  {"federation"},
		"pleroma":   {"federation", "active_users"},
	}

	// Graph types that encode symmetric relationships and must be
	// materialized as undirected graphs. Everything else is directed.
	undirectedGraphTypes = map[string]bool{
		"federation":     true,
		"cross_instance": true,
		"intra_instance": true,
	}
)

// ListAllSoftware returns every software name the dataset has data for,
// in catalog order.
func ListAllSoftware() []string {
	return slices.Clone(softwareNames)
}

// ListGraphTypes returns the graph types available for software.
func ListGraphTypes(software string) ([]string, error) {
	types, ok := validGraphTypes[software]
	if !ok {
		return nil, fmt.Errorf("%w: invalid software %q, valid software: %v",
			ErrInvalidArgument, software, softwareNames)
	}
	return slices.Clone(types), nil
}

// checkInput validates a (software, graph type) pair against the
// catalog. Every public operation runs this first.
func checkInput(software, graphType string) error {
	types, ok := validGraphTypes[software]
	if !ok {
		return fmt.Errorf("%w: invalid software %q, valid software: %v",
			ErrInvalidArgument, software, softwareNames)
	}
	if !slices.Contains(types, graphType) {
		return fmt.Errorf("%w: %q is not a valid graph type for %s, valid types: %v",
			ErrInvalidArgument, graphType, software, types)
	}
	return nil
}
