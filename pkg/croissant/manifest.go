package croissant

import "fmt"

// manifest is the subset of a Croissant (JSON-LD) dataset description
// this client consumes: the file objects that hold the raw data and the
// record sets that describe how to read them.
type manifest struct {
	Name         string       `json:"name"`
	Distribution []fileObject `json:"distribution"`
	RecordSets   []recordSet  `json:"recordSet"`
}

type fileObject struct {
	ID             string `json:"@id"`
	Name           string `json:"name"`
	ContentURL     string `json:"contentUrl"`
	EncodingFormat string `json:"encodingFormat"`
}

type recordSet struct {
	ID     string  `json:"@id"`
	Name   string  `json:"name"`
	Fields []field `json:"field"`
}

type field struct {
	ID     string      `json:"@id"`
	Name   string      `json:"name"`
	Source fieldSource `json:"source"`
}

type fieldSource struct {
	FileObject jsonLDRef `json:"fileObject"`
	FileSet    jsonLDRef `json:"fileSet"`
	Extract    extract   `json:"extract"`
}

type jsonLDRef struct {
	ID string `json:"@id"`
}

type extract struct {
	Column string `json:"column"`
}

// identifier returns the record set's @id, falling back to its name for
// manifests that only carry the latter.
func (rs recordSet) identifier() string {
	if rs.ID != "" {
		return rs.ID
	}
	return rs.Name
}

func (fo fileObject) identifier() string {
	if fo.ID != "" {
		return fo.ID
	}
	return fo.Name
}

// fieldID returns the fully qualified field identifier,
// "{recordSetID}/{column}" when the manifest does not carry one.
func (f field) fieldID(recordSetID string) string {
	if f.ID != "" {
		return f.ID
	}
	return fmt.Sprintf("%s/%s", recordSetID, f.Source.Extract.Column)
}

// sourceFile resolves a record set to the file object its fields read
// from. Every field of the record sets this client consumes extracts a
// column of a single CSV file.
func (m *manifest) sourceFile(rs recordSet) (fileObject, error) {
	if len(rs.Fields) == 0 {
		return fileObject{}, fmt.Errorf("record set %q has no fields", rs.identifier())
	}
	ref := rs.Fields[0].Source.FileObject.ID
	if ref == "" {
		ref = rs.Fields[0].Source.FileSet.ID
	}
	if ref == "" {
		return fileObject{}, fmt.Errorf("record set %q has no source file reference", rs.identifier())
	}
	for _, fo := range m.Distribution {
		if fo.identifier() == ref {
			return fo, nil
		}
	}
	return fileObject{}, fmt.Errorf("record set %q references unknown file object %q", rs.identifier(), ref)
}

func (m *manifest) recordSet(id string) (recordSet, bool) {
	for _, rs := range m.RecordSets {
		if rs.identifier() == id {
			return rs, true
		}
	}
	return recordSet{}, false
}
