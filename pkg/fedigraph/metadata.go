package fedigraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/fediscience/fedigraph/pkg/logger"
)

// GetGraphMetadata materializes the per-instance metadata table for
// (software, graphType). An empty date or DateLatest selects the most
// recent partition. The returned table is owned by the caller.
func (l *GraphLoader) GetGraphMetadata(ctx context.Context, software, graphType, date string) (dataframe.DataFrame, error) {
	return LoadGraphMetadata(ctx, l.dataset, software, graphType, date)
}

// LoadGraphMetadata is the free-function form of
// GraphLoader.GetGraphMetadata for callers that manage their own dataset
// handle.
//
// The table has one row per instance record and one column per record
// field, with every column renamed to the final segment of its field
// identifier (".../UserCount" becomes "UserCount").
func LoadGraphMetadata(ctx context.Context, dataset Dataset, software, graphType, date string) (dataframe.DataFrame, error) {
	if err := checkInput(software, graphType); err != nil {
		return dataframe.DataFrame{}, err
	}

	if date == "" || date == DateLatest {
		resolved, err := resolveDate(ctx, dataset, software, graphType, dateSelector{kind: selectLatest})
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		date = resolved
	}

	path := recordSetPath{
		Software:  software,
		GraphType: graphType,
		Date:      date,
		File:      instancesFile,
	}.String()

	records, err := dataset.Records(ctx, path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer records.Close()

	var rows []map[string]any
	for {
		record, err := records.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		row := make(map[string]any, len(record))
		for key, value := range record {
			row[columnName(key)] = string(value)
		}
		rows = append(rows, row)
	}

	logger.Debug("instance metadata loaded", "partition", path, "rows", len(rows))

	if len(rows) == 0 {
		return dataframe.DataFrame{}, nil
	}
	df := dataframe.LoadMaps(rows)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to build metadata table for %s: %w", path, df.Err)
	}
	return df, nil
}

// columnName strips the dataset path prefix from a field identifier,
// keeping only the part after the last slash.
func columnName(fieldID string) string {
	if i := strings.LastIndex(fieldID, "/"); i >= 0 {
		return fieldID[i+1:]
	}
	return fieldID
}
