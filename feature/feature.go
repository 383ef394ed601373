/*
Package feature describes the columns a classifier learns from: their
types, the dictionaries of nominal columns and the encoded values rows
are turned into before growing or walking a tree.
*/
package feature

import (
	"fmt"
	"strings"
)

/*
Type is the kind of a column. Undefined is only meaningful in a vector of
type overrides, where it asks for the type to be inferred from the data.
*/
type Type int

const (
	// Undefined marks a column whose type has not been decided yet
	Undefined Type = iota
	// Nominal columns take values out of a finite set compared for equality
	Nominal
	// Continuous columns take numeric values compared against a threshold
	Continuous
)

func (t Type) String() string {
	switch t {
	case Nominal:
		return "nominal"
	case Continuous:
		return "continuous"
	case Undefined:
		return ""
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid returns whether t is one of the declared types
func (t Type) Valid() bool {
	return t == Undefined || t == Nominal || t == Continuous
}

/*
ParseType takes a string and returns the Type it names. The empty string
and "undefined" parse to Undefined. An error is returned for anything else.
*/
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "undefined":
		return Undefined, nil
	case "nominal", "discrete", "categorical":
		return Nominal, nil
	case "continuous", "numeric":
		return Continuous, nil
	}
	return Undefined, fmt.Errorf("unknown column type %q", s)
}

// MarshalText encodes the type as its name
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid column type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type from its name
func (t *Type) UnmarshalText(text []byte) error {
	pt, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = pt
	return nil
}

/*
Column holds what is known about a column of the rows: an optional name,
its type and, for nominal columns, the dictionary of values seen while
training.
*/
type Column struct {
	Name       string
	Type       Type
	Dictionary *Dictionary
}

/*
NewColumn takes a name and a type and returns a Column. Nominal columns
get an empty dictionary.
*/
func NewColumn(name string, t Type) *Column {
	c := &Column{Name: name, Type: t}
	if t == Nominal {
		c.Dictionary = NewDictionary()
	}
	return c
}

/*
Learn encodes a raw value while training: nominal values not yet in the
column dictionary are added to it.
*/
func (c *Column) Learn(raw interface{}) Value {
	if c.Type != Nominal {
		return c.Encode(raw)
	}
	k, ok := Key(raw)
	if !ok {
		return Missing()
	}
	return NominalValue(c.Dictionary.Add(k))
}

/*
Encode takes a raw value and returns it encoded for the column. Values
that cannot be expressed in the column type are Missing. Nominal values
absent from the dictionary encode to an index that matches no dictionary
entry.
*/
func (c *Column) Encode(raw interface{}) Value {
	switch c.Type {
	case Continuous:
		f, ok := Number(raw)
		if !ok {
			return Missing()
		}
		return ContinuousValue(f)
	case Nominal:
		k, ok := Key(raw)
		if !ok {
			return Missing()
		}
		return NominalValue(c.Dictionary.Index(k))
	}
	return Missing()
}

// Label returns a human readable name for the column at position i
func (c *Column) Label(i int) string {
	if c != nil && c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("column %d", i)
}
