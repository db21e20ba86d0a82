package fedigraph

import (
	"context"
	"fmt"
	"io"

	"github.com/fediscience/fedigraph/pkg/croissant"
)

// fakeDataset serves canned record sets, standing in for the Croissant
// client in tests.
type fakeDataset struct {
	ids     []string
	records map[string][]croissant.Record
}

func (d *fakeDataset) RecordSets() []string {
	return d.ids
}

func (d *fakeDataset) Records(ctx context.Context, id string) (croissant.RecordIterator, error) {
	records, ok := d.records[id]
	if !ok {
		return nil, fmt.Errorf("unknown record set %q", id)
	}
	return &fakeIterator{records: records}, nil
}

type fakeIterator struct {
	records []croissant.Record
	pos     int
}

func (it *fakeIterator) Next() (croissant.Record, error) {
	if it.pos >= len(it.records) {
		return nil, io.EOF
	}
	record := it.records[it.pos]
	it.pos++
	return record, nil
}

func (it *fakeIterator) Close() error {
	return nil
}

// failingIterator yields an error mid-stream for passthrough tests.
type failingIterator struct {
	err error
}

func (it *failingIterator) Next() (croissant.Record, error) {
	return nil, it.err
}

func (it *failingIterator) Close() error {
	return nil
}

type failingDataset struct {
	fakeDataset
	err error
}

func (d *failingDataset) Records(ctx context.Context, id string) (croissant.RecordIterator, error) {
	return &failingIterator{err: d.err}, nil
}

// interaction builds one interactions.csv record for the given partition.
func interaction(path, source, target, weight string) croissant.Record {
	return croissant.Record{
		path + "/Source": []byte(source),
		path + "/Target": []byte(target),
		path + "/Weight": []byte(weight),
	}
}

// newFakeDataset wires a dataset with partitions for tests. Keys of
// partitions are record set identifiers, values the rows behind them.
// Identifiers without rows show up in RecordSets only.
func newFakeDataset(ids []string, partitions map[string][]croissant.Record) *fakeDataset {
	return &fakeDataset{ids: ids, records: partitions}
}
