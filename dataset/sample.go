package dataset

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

/*
Sample is a row given by column name, as received from interactive
input or JSON documents. Columns it does not mention are missing.
*/
type Sample map[string]interface{}

// Row returns the values of the sample for the given columns, in order
func (s Sample) Row(columns []string) []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = s[c]
	}
	return row
}

// Unknown returns the names in the sample that are not among the given columns
func (s Sample) Unknown(columns []string) []string {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}
	var unknown []string
	for name := range s {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	return unknown
}

func (s Sample) String() string {
	names := maps.Keys(s)
	slices.Sort(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s:%v", name, s[name])
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, " "))
}
