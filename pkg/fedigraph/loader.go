// Package fedigraph loads graphs and instance metadata from the public
// fediverse graph dataset. Given a software name and a graph type it
// resolves the requested dated partition, streams the interaction
// records behind it, and materializes them as a weighted instance graph
// or a per-instance metadata table.
package fedigraph

import (
	"context"
	"fmt"

	"github.com/fediscience/fedigraph/pkg/croissant"
)

// Dataset is the slice of the dataset client the loader depends on:
// enumerating record set identifiers and streaming the records of one of
// them. *croissant.Dataset satisfies it.
type Dataset interface {
	RecordSets() []string
	Records(ctx context.Context, id string) (croissant.RecordIterator, error)
}

// GraphLoader is a handle to the fediverse graph dataset. It owns one
// dataset handle created at construction and holds no other state; every
// call recomputes its selection against the live handle. Use one loader
// per goroutine.
type GraphLoader struct {
	dataset Dataset
}

// NewGraphLoaderParams configures a GraphLoader. The zero value loads
// the public dataset with the default caching HTTP fetcher.
type NewGraphLoaderParams struct {
	// ManifestURL overrides the Croissant manifest location.
	ManifestURL string
	// Fetcher overrides how manifest and partitions are retrieved.
	Fetcher croissant.Fetcher
	// Dataset supplies an already constructed dataset handle. When set,
	// ManifestURL and Fetcher are ignored.
	Dataset Dataset
}

// NewGraphLoader creates a loader. Construction fetches and decodes the
// dataset manifest; a manifest that cannot be decoded fails construction
// without retrying.
func NewGraphLoader(ctx context.Context, params NewGraphLoaderParams) (*GraphLoader, error) {
	dataset := params.Dataset
	if dataset == nil {
		ds, err := croissant.NewDataset(ctx, croissant.NewDatasetParams{
			URL:     params.ManifestURL,
			Fetcher: params.Fetcher,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset: %w", err)
		}
		dataset = ds
	}
	return &GraphLoader{dataset: dataset}, nil
}

// ListAllSoftware returns every software name the dataset has data for.
func (l *GraphLoader) ListAllSoftware() []string {
	return ListAllSoftware()
}

// ListGraphTypes returns the graph types available for software.
func (l *GraphLoader) ListGraphTypes(software string) ([]string, error) {
	return ListGraphTypes(software)
}

// ListAvailableDates returns the dates of every partition for the pair,
// ascending. An empty result is not an error.
func (l *GraphLoader) ListAvailableDates(ctx context.Context, software, graphType string) ([]string, error) {
	return listAvailableDates(ctx, l.dataset, software, graphType)
}
