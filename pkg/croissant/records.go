package croissant

import (
	"encoding/csv"
	"fmt"
	"io"
)

// fieldColumn binds a fully qualified field identifier to the position
// of its column in the CSV header.
type fieldColumn struct {
	id  string
	col int
}

// csvRecords iterates the rows of one CSV-backed record set.
type csvRecords struct {
	body   io.ReadCloser
	reader *csv.Reader
	fields []fieldColumn
}

// newCSVRecords reads the CSV header from body and maps every record set
// field onto its column. The iterator takes ownership of body.
func newCSVRecords(body io.ReadCloser, rs recordSet) (*csvRecords, error) {
	reader := csv.NewReader(body)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("failed to read header of record set %q: %w", rs.identifier(), err)
	}
	position := make(map[string]int, len(header))
	for i, name := range header {
		position[name] = i
	}

	fields := make([]fieldColumn, 0, len(rs.Fields))
	for _, f := range rs.Fields {
		column := f.Source.Extract.Column
		idx, ok := position[column]
		if !ok {
			body.Close()
			return nil, fmt.Errorf("record set %q: column %q not found in file header", rs.identifier(), column)
		}
		fields = append(fields, fieldColumn{id: f.fieldID(rs.identifier()), col: idx})
	}

	return &csvRecords{
		body:   body,
		reader: reader,
		fields: fields,
	}, nil
}

// Next returns the next record, or io.EOF after the last one.
func (it *csvRecords) Next() (Record, error) {
	row, err := it.reader.Read()
	if err != nil {
		return nil, err
	}
	record := make(Record, len(it.fields))
	for _, f := range it.fields {
		if f.col < len(row) {
			record[f.id] = []byte(row[f.col])
		}
	}
	return record, nil
}

// Close releases the underlying file body.
func (it *csvRecords) Close() error {
	return it.body.Close()
}
