package feature

/*
Metadata describes a dataset: the name of the column holding the labels
and the columns used to predict them, in order. A column type may be
Undefined, leaving it to inference. Nominal columns declared with their
values carry them in their Dictionary.
*/
type Metadata struct {
	Label   string
	Columns []*Column
}

// Names returns the names of the columns in order
func (m *Metadata) Names() []string {
	names := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		names[i] = c.Name
	}
	return names
}

// Types returns the declared type of the columns in order
func (m *Metadata) Types() []Type {
	types := make([]Type, len(m.Columns))
	for i, c := range m.Columns {
		types[i] = c.Type
	}
	return types
}

// Column returns the position and description of the column with the given name
func (m *Metadata) Column(name string) (int, *Column) {
	for i, c := range m.Columns {
		if c.Name == name {
			return i, c
		}
	}
	return -1, nil
}
