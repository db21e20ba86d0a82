package fedigraph

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const (
	interactionsFile = "interactions.csv"
	instancesFile    = "instances.csv"

	// DateLatest selects the most recent dated partition.
	DateLatest = "latest"
)

// recordSetPath is the structured form of a record set identifier. The
// dataset exposes record sets as "{software}/{graphType}/{date}/{file}";
// the textual parsing stays at this boundary and everything past it
// works with the structured form.
type recordSetPath struct {
	Software  string
	GraphType string
	Date      string
	File      string
}

func (p recordSetPath) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", p.Software, p.GraphType, p.Date, p.File)
}

// parseRecordSetPath splits a record set identifier into its four
// segments. Identifiers with any other shape are not partitions of this
// dataset and are reported as such.
func parseRecordSetPath(id string) (recordSetPath, bool) {
	parts := strings.Split(id, "/")
	if len(parts) != 4 {
		return recordSetPath{}, false
	}
	return recordSetPath{
		Software:  parts[0],
		GraphType: parts[1],
		Date:      parts[2],
		File:      parts[3],
	}, true
}

// listAvailableDates returns the dates of every interactions partition
// for the pair, ascending. Dates are zero-padded fixed-width strings, so
// lexicographic order is chronological order; they are never parsed as
// calendar dates. An empty result is not an error.
func listAvailableDates(ctx context.Context, dataset Dataset, software, graphType string) ([]string, error) {
	if err := checkInput(software, graphType); err != nil {
		return nil, err
	}

	var dates []string
	for _, id := range dataset.RecordSets() {
		path, ok := parseRecordSetPath(id)
		if !ok || path.File != interactionsFile {
			continue
		}
		if path.Software == software && path.GraphType == graphType {
			dates = append(dates, path.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// dateSelector is the resolved form of the caller's date/index options.
type dateSelector struct {
	kind  selectorKind
	date  string
	index int
}

type selectorKind int

const (
	selectLatest selectorKind = iota
	selectDate
	selectIndex
)

// resolveDate turns a selector into a concrete date. Explicit dates pass
// through untouched; latest and index selectors consult the available
// dates, failing with ErrNoGraphAvailable when there are none.
func resolveDate(ctx context.Context, dataset Dataset, software, graphType string, sel dateSelector) (string, error) {
	if sel.kind == selectDate && sel.date != DateLatest {
		return sel.date, nil
	}

	dates, err := listAvailableDates(ctx, dataset, software, graphType)
	if err != nil {
		return "", err
	}
	if len(dates) == 0 {
		return "", fmt.Errorf("%w for %s/%s", ErrNoGraphAvailable, software, graphType)
	}

	switch sel.kind {
	case selectIndex:
		index := sel.index
		if index < 0 {
			index += len(dates)
		}
		if index < 0 || index >= len(dates) {
			return "", fmt.Errorf("%w: date index %d out of range for %d available dates",
				ErrInvalidArgument, sel.index, len(dates))
		}
		return dates[index], nil
	default:
		return dates[len(dates)-1], nil
	}
}
