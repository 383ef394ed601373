/*
Package csv reads and writes dataset.Sets as CSV documents.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

// DefaultUndefinedValue is the cell content read and written for missing values
const DefaultUndefinedValue = "?"

/*
ReadOptions tunes how CSV content is parsed into a set:
  - Label names the column holding the labels; empty for unlabeled sets
  - UndefinedValue is the cell content standing for a missing value,
    DefaultUndefinedValue if empty. Empty cells are always missing.
  - Types maps column names to their declared type. Cells of nominal
    columns are kept as strings, cells of other columns are read as
    float64 when they parse as numbers.
*/
type ReadOptions struct {
	Label          string
	UndefinedValue string
	Types          map[string]feature.Type
}

/*
ReadSet takes an io.Reader for a CSV stream and ReadOptions and returns
the dataset.Set parsed from it or an error.

The header or first row of the CSV content is expected to consist of the
names of the columns. The rest of the rows should have a value for every
column or the undefined value.
*/
func ReadSet(reader io.Reader, opts ReadOptions) (*dataset.Set, error) {
	if opts.UndefinedValue == "" {
		opts.UndefinedValue = DefaultUndefinedValue
	}
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	var rows [][]interface{}
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %v", l, err)
		}
		rows = append(rows, parseRow(record, header, opts))
	}
	s, err := dataset.FromTable(header, rows, opts.Label)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV set: %v", err)
	}
	return s, nil
}

func parseRow(record, header []string, opts ReadOptions) []interface{} {
	row := make([]interface{}, len(header))
	for i := range header {
		if i >= len(record) {
			continue
		}
		v := record[i]
		if v == "" || v == opts.UndefinedValue {
			continue
		}
		if header[i] == opts.Label || opts.Types[header[i]] == feature.Nominal {
			row[i] = v
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			row[i] = f
		} else {
			row[i] = v
		}
	}
	return row
}

/*
ReadSetFromFilePath takes a filepath string and ReadOptions, opens the
file to which the filepath points to and uses ReadSet to return the set
read from it or an error. If the filepath is "", os.Stdin is read instead.
*/
func ReadSetFromFilePath(filepath string, opts ReadOptions) (*dataset.Set, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading set: %v", err)
		}
		defer f.Close()
	}
	s, err := ReadSet(f, opts)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return s, err
}

/*
WriteSet takes an io.Writer, a dataset.Set, the name for its label column
and the content for undefined cells and dumps the set onto the writer in
CSV format. The label column is only written for labeled sets, last.
*/
func WriteSet(writer io.Writer, s *dataset.Set, label, undefinedValue string) error {
	if undefinedValue == "" {
		undefinedValue = DefaultUndefinedValue
	}
	labeled := s.Labeled() && label != ""
	w := csv.NewWriter(writer)
	header := append([]string(nil), s.Header...)
	if labeled {
		header = append(header, label)
	}
	err := w.Write(header)
	if err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	for i, row := range s.Rows {
		record := make([]string, len(header))
		for j := range s.Header {
			var v interface{}
			if j < len(row) {
				v = row[j]
			}
			record[j] = formatValue(v, undefinedValue)
		}
		if labeled {
			record[len(record)-1] = s.Labels[i]
		}
		err = w.Write(record)
		if err != nil {
			return fmt.Errorf("writing CSV row for sample %d: %v", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

func formatValue(v interface{}, undefinedValue string) string {
	if feature.IsMissing(v) {
		return undefinedValue
	}
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
