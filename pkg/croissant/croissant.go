// Package croissant is a minimal client for Croissant (JSON-LD) dataset
// descriptions. It resolves a manifest URL to its record sets and
// streams the CSV rows behind a record set as raw records.
//
// Only the slice of the Croissant vocabulary needed to consume
// CSV-backed record sets is implemented: file objects with a contentUrl
// and record set fields that extract single columns.
package croissant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fediscience/fedigraph/pkg/logger"
)

// DefaultManifestURL points at the public fediverse graph dataset
// catalog entry on Kaggle.
const DefaultManifestURL = "https://www.kaggle.com/datasets/marcdamie/fediverse-graph-dataset/croissant/download"

// Record is one row of a record set. Keys are fully qualified field
// identifiers ("{recordSetID}/{column}"); values are the raw cell bytes.
type Record map[string][]byte

// RecordIterator is a blocking pull iterator over the records of one
// record set. Next returns io.EOF after the last record.
type RecordIterator interface {
	Next() (Record, error)
	Close() error
}

// Dataset is a handle to one Croissant dataset. It is created once from
// a manifest URL and read-only afterwards; share one handle per
// goroutine.
type Dataset struct {
	url      string
	fetcher  Fetcher
	cacheDir string
	manifest manifest
}

// NewDatasetParams configures a Dataset.
type NewDatasetParams struct {
	// URL locates the Croissant manifest. Defaults to DefaultManifestURL.
	URL string
	// Fetcher retrieves the manifest and the record set payloads.
	// Defaults to an HTTP fetcher behind the on-disk cache.
	Fetcher Fetcher
	// CacheDir overrides the cache location used by the default fetcher.
	CacheDir string
}

// NewDataset fetches and decodes the dataset manifest. There is no
// retry: a manifest that cannot be fetched or decoded fails construction.
func NewDataset(ctx context.Context, params NewDatasetParams) (*Dataset, error) {
	url := params.URL
	if url == "" {
		url = DefaultManifestURL
	}
	cacheDir := params.CacheDir
	if cacheDir == "" {
		cacheDir = DefaultCacheDir()
	}
	fetcher := params.Fetcher
	if fetcher == nil {
		fetcher = NewCachingFetcher(NewHTTPFetcher(), cacheDir)
	}

	ds := &Dataset{
		url:      url,
		fetcher:  fetcher,
		cacheDir: cacheDir,
	}

	body, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest %s: %w", url, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", url, err)
	}
	if err := json.Unmarshal(raw, &ds.manifest); err != nil {
		// A stale or truncated cache entry is the usual culprit.
		return nil, fmt.Errorf(
			"unexpected dataset error: cannot decode croissant manifest (try clearing the dataset cache at %s): %w",
			cacheDir, err,
		)
	}

	logger.Debug("loaded croissant manifest", "dataset", ds.manifest.Name, "recordSets", len(ds.manifest.RecordSets))
	return ds, nil
}

// Name returns the dataset name declared by the manifest.
func (d *Dataset) Name() string {
	return d.manifest.Name
}

// CacheDir returns the local cache directory used by the default fetcher.
func (d *Dataset) CacheDir() string {
	return d.cacheDir
}

// RecordSets returns the identifiers of all record sets in manifest order.
func (d *Dataset) RecordSets() []string {
	ids := make([]string, 0, len(d.manifest.RecordSets))
	for _, rs := range d.manifest.RecordSets {
		ids = append(ids, rs.identifier())
	}
	return ids
}

// Records opens the record set with the given identifier and returns an
// iterator over its rows. Failures while streaming the underlying file
// propagate to the iterator's caller unmodified.
func (d *Dataset) Records(ctx context.Context, id string) (RecordIterator, error) {
	rs, ok := d.manifest.recordSet(id)
	if !ok {
		return nil, fmt.Errorf("unknown record set %q", id)
	}
	source, err := d.manifest.sourceFile(rs)
	if err != nil {
		return nil, err
	}

	body, err := d.fetcher.Fetch(ctx, source.ContentURL)
	if err != nil {
		return nil, err
	}

	logger.Debug("streaming record set", "recordSet", id, "contentUrl", source.ContentURL)
	return newCSVRecords(body, rs)
}
