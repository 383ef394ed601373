/*
Package json reads and writes feature.Metadata as JSON documents.
*/
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/pbanos/sapling/feature"
)

type jsonColumn struct {
	Name   string       `json:"name"`
	Type   feature.Type `json:"type"`
	Values []string     `json:"values,omitempty"`
}

type jsonMetadata struct {
	Label    string        `json:"label,omitempty"`
	Features []*jsonColumn `json:"features"`
}

/*
WriteMetadata takes a feature.Metadata and an io.Writer and writes the
metadata onto it as a JSON object with the following fields:
  - "label": the name of the column with the labels, if any
  - "features": an array of objects with the "name" and "type" of each
    column and the known "values" of nominal columns
*/
func WriteMetadata(m *feature.Metadata, w io.Writer) error {
	jm := &jsonMetadata{Label: m.Label, Features: make([]*jsonColumn, 0, len(m.Columns))}
	for _, c := range m.Columns {
		jm.Features = append(jm.Features, &jsonColumn{c.Name, c.Type, c.Dictionary.Values()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jm); err != nil {
		return fmt.Errorf("encoding json metadata: %v", err)
	}
	return nil
}

/*
ReadMetadata takes an io.Reader and decodes a feature.Metadata from the
JSON object it provides, as written by WriteMetadata.
*/
func ReadMetadata(r io.Reader) (*feature.Metadata, error) {
	jm := &jsonMetadata{}
	if err := json.NewDecoder(r).Decode(jm); err != nil {
		return nil, fmt.Errorf("parsing json metadata: %v", err)
	}
	if len(jm.Features) == 0 {
		return nil, fmt.Errorf("metadata has no feature information")
	}
	m := &feature.Metadata{Label: jm.Label}
	for i, jc := range jm.Features {
		if jc == nil || jc.Name == "" {
			return nil, fmt.Errorf("feature %d has no name", i)
		}
		if jc.Type != feature.Nominal && len(jc.Values) > 0 {
			return nil, fmt.Errorf("feature %s: values are only allowed on nominal features", jc.Name)
		}
		c := feature.NewColumn(jc.Name, jc.Type)
		for _, v := range jc.Values {
			c.Dictionary.Add(v)
		}
		m.Columns = append(m.Columns, c)
	}
	return m, nil
}

// ReadMetadataFromFile opens the file at the given path and reads it with ReadMetadata
func ReadMetadataFromFile(filepath string) (*feature.Metadata, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata json file %s: %v", filepath, err)
	}
	f, err := ReadMetadata(bytes.NewReader(data))
	if err != nil {
		err = fmt.Errorf("parsing metadata json file %s: %v", filepath, err)
	}
	return f, err
}
