/*
Package yaml provides methods to parse feature.Metadata, the description
of a dataset's columns, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/sapling/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadMetadata takes a slice of bytes with a dataset description in YAML
and returns the feature.Metadata parsed from it or an error.

The YAML is expected to be an object with a features property and an
optional label property naming the column with the labels. The features
value is an object with a property per column, in column order, whose
value is one of:
  - the string 'continuous'
  - the string 'nominal'
  - a list with the valid values of a nominal column
  - null, leaving the type to be inferred from the data
*/
func ReadMetadata(md []byte) (*feature.Metadata, error) {
	doc := struct {
		Label    string        `yaml:"label"`
		Features yaml.MapSlice `yaml:"features"`
	}{}
	err := yaml.Unmarshal(md, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if len(doc.Features) == 0 {
		return nil, fmt.Errorf("metadata has no feature information")
	}
	m := &feature.Metadata{Label: doc.Label}
	for _, item := range doc.Features {
		name := fmt.Sprintf("%v", item.Key)
		if name == doc.Label {
			continue
		}
		c, err := parseColumn(name, item.Value)
		if err != nil {
			return nil, err
		}
		m.Columns = append(m.Columns, c)
	}
	return m, nil
}

func parseColumn(name string, decl interface{}) (*feature.Column, error) {
	switch decl := decl.(type) {
	case nil:
		return feature.NewColumn(name, feature.Undefined), nil
	case string:
		t, err := feature.ParseType(decl)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %v", name, err)
		}
		return feature.NewColumn(name, t), nil
	case []interface{}:
		c := feature.NewColumn(name, feature.Nominal)
		for _, v := range decl {
			k, ok := feature.Key(v)
			if !ok {
				return nil, fmt.Errorf("feature %s: null is not a valid nominal value", name)
			}
			c.Dictionary.Add(k)
		}
		return c, nil
	}
	return nil, fmt.Errorf("feature %s: invalid feature declaration of type %T", name, decl)
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the metadata or an error.
*/
func ReadMetadataFromFile(filepath string) (*feature.Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	m, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return m, err
}
