/*
Package dataset provides the in-memory form of the labeled data
classifiers are trained and tested with, and of the samples they
classify.
*/
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/pbanos/sapling/feature"
)

/*
Set is a table of rows sharing a header. When the set is labeled, Labels
holds the label of every row, in order.
*/
type Set struct {
	Header []string
	Rows   [][]interface{}
	Labels []string
}

// New takes a header and returns an empty Set with it
func New(header []string) *Set {
	return &Set{Header: append([]string(nil), header...)}
}

/*
FromTable takes a header, rows following it and the name of the column
holding the labels, and returns a labeled Set without that column. An
empty label name returns an unlabeled Set with every column. An error is
returned if the label column is not in the header, or if a row misses
its label.
*/
func FromTable(header []string, rows [][]interface{}, label string) (*Set, error) {
	if label == "" {
		s := New(header)
		s.Rows = rows
		return s, nil
	}
	li := -1
	for i, name := range header {
		if name == label {
			li = i
			break
		}
	}
	if li < 0 {
		return nil, fmt.Errorf("label column %q not found among %v", label, header)
	}
	s := New(append(append([]string(nil), header[:li]...), header[li+1:]...))
	s.Rows = make([][]interface{}, 0, len(rows))
	s.Labels = make([]string, 0, len(rows))
	for i, row := range rows {
		if li >= len(row) {
			return nil, fmt.Errorf("row %d has no label", i)
		}
		l, ok := feature.Key(row[li])
		if !ok {
			return nil, fmt.Errorf("row %d has no label", i)
		}
		s.Append(append(append([]interface{}(nil), row[:li]...), row[li+1:]...), l)
	}
	return s, nil
}

// Append adds a row and its label to the set
func (s *Set) Append(row []interface{}, label string) {
	s.Rows = append(s.Rows, row)
	s.Labels = append(s.Labels, label)
}

// Count returns the number of rows in the set
func (s *Set) Count() int {
	return len(s.Rows)
}

// Width returns the number of columns in the set
func (s *Set) Width() int {
	return len(s.Header)
}

// Labeled returns whether the set has a label for every row
func (s *Set) Labeled() bool {
	return s.Labels != nil && len(s.Labels) == len(s.Rows)
}

/*
Select takes column names and returns a set with only those columns, in
the given order. Labels are kept. An error is returned if a name is not
in the header.
*/
func (s *Set) Select(names []string) (*Set, error) {
	positions := make([]int, len(names))
	for i, name := range names {
		positions[i] = -1
		for j, h := range s.Header {
			if h == name {
				positions[i] = j
				break
			}
		}
		if positions[i] < 0 {
			return nil, fmt.Errorf("column %q not found among %v", name, s.Header)
		}
	}
	result := &Set{Header: append([]string(nil), names...), Rows: make([][]interface{}, len(s.Rows))}
	for i, row := range s.Rows {
		selected := make([]interface{}, len(positions))
		for k, p := range positions {
			if p < len(row) {
				selected[k] = row[p]
			}
		}
		result.Rows[i] = selected
	}
	if s.Labels != nil {
		result.Labels = append([]string(nil), s.Labels...)
	}
	return result, nil
}

/*
Split takes a probability and a random source and returns two sets: one
with the rows that drew a number below the probability, one with the
rest. Both keep the header and the labels of their rows.
*/
func (s *Set) Split(p float64, r *rand.Rand) (*Set, *Set) {
	a, b := New(s.Header), New(s.Header)
	if s.Labels != nil {
		a.Labels, b.Labels = []string{}, []string{}
	}
	for i, row := range s.Rows {
		dst := b
		if r.Float64() < p {
			dst = a
		}
		dst.Rows = append(dst.Rows, row)
		if s.Labels != nil {
			dst.Labels = append(dst.Labels, s.Labels[i])
		}
	}
	return a, b
}
