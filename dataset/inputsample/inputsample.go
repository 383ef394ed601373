/*
Package inputsample reads rows to classify from an io.Reader, a value per
line, typically typed in by a user answering prompts.
*/
package inputsample

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/feature"
)

/*
ValueRequester represents a way to ask
for column values and reject the given values.
*/
type ValueRequester interface {
	RequestValueFor(*feature.Column) error
	RejectValueFor(*feature.Column, string) error
}

/*
Reader reads rows whose values are requested
column by column with a ValueRequester.
*/
type Reader struct {
	scanner        *bufio.Scanner
	columns        []*feature.Column
	requester      ValueRequester
	undefinedValue string
}

/*
New takes an io.Reader, a slice of columns, a ValueRequester and an
undefinedValue coding string and returns a Reader.

The parsing expects each value to be presented ending with the
'\n' character, that is in new lines. Also, the undefinedValue
string followed by the '\n' character will be interpreted as a
missing value.

For a continuous column, lines will be read from the reader until
a line containing a valid float64 number is found.

For a nominal column, lines will be read from the reader until a
line with a known value for the column is found. Columns without
known values accept any line.

For both kinds of column, non accepted values will be
rejected with the ValueRequester's RejectValueFor method.
*/
func New(r io.Reader, columns []*feature.Column, requester ValueRequester, undefinedValue string) *Reader {
	return &Reader{bufio.NewScanner(r), columns, requester, undefinedValue}
}

/*
ReadRow takes a context and returns a row with a value for each column
of the reader, requesting them in order. If the input ends before the
first value io.EOF is returned, and if it ends later io.ErrUnexpectedEOF.
*/
func (r *Reader) ReadRow(ctx context.Context) ([]interface{}, error) {
	row := make([]interface{}, len(r.columns))
	for i, c := range r.columns {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}
		err = r.requester.RequestValueFor(c)
		if err != nil {
			return nil, err
		}
		row[i], err = r.readValue(c)
		if err == io.EOF && i > 0 {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}
	}
	return row, nil
}

func (r *Reader) readValue(c *feature.Column) (interface{}, error) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == r.undefinedValue {
			return nil, nil
		}
		if v, ok := r.parse(c, line); ok {
			return v, nil
		}
		err := r.requester.RejectValueFor(c, line)
		if err != nil {
			return nil, err
		}
	}
	err := r.scanner.Err()
	if err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (r *Reader) parse(c *feature.Column, line string) (interface{}, bool) {
	if c.Type == feature.Nominal {
		if c.Dictionary.Len() == 0 || c.Dictionary.Index(line) >= 0 {
			return line, true
		}
		return nil, false
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return nil, false
	}
	return f, true
}

/*
Prompter is a ValueRequester that writes its requests and
rejections to an io.Writer.
*/
type Prompter struct {
	Writer         io.Writer
	UndefinedValue string
}

// RequestValueFor writes a prompt for the value of the given column
func (p *Prompter) RequestValueFor(c *feature.Column) error {
	var hint string
	if c.Type == feature.Nominal && c.Dictionary.Len() > 0 {
		hint = fmt.Sprintf("one of %s", strings.Join(c.Dictionary.Values(), ", "))
	} else {
		hint = "a number"
	}
	_, err := fmt.Fprintf(p.Writer, "%s (%s, or %s if unknown)? ", c.Name, hint, p.UndefinedValue)
	return err
}

// RejectValueFor writes that the given value is not valid for the column
func (p *Prompter) RejectValueFor(c *feature.Column, value string) error {
	_, err := fmt.Fprintf(p.Writer, "%q is not a valid value for %s\n", value, c.Name)
	if err != nil {
		return err
	}
	return p.RequestValueFor(c)
}
