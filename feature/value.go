package feature

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	missingKind valueKind = iota
	continuousKind
	nominalKind
)

/*
Value is an encoded cell: either Missing, a continuous number or the
dictionary index of a nominal value.
*/
type Value struct {
	kind   valueKind
	number float64
	index  int
}

// Missing returns the encoding of an absent value
func Missing() Value {
	return Value{}
}

// ContinuousValue returns the encoding of a number
func ContinuousValue(f float64) Value {
	return Value{kind: continuousKind, number: f}
}

// NominalValue returns the encoding of the dictionary entry at index i
func NominalValue(i int) Value {
	return Value{kind: nominalKind, index: i}
}

// IsMissing returns whether the value is absent
func (v Value) IsMissing() bool {
	return v.kind == missingKind
}

// Number returns the number held by a continuous value
func (v Value) Number() float64 {
	return v.number
}

// Index returns the dictionary index held by a nominal value
func (v Value) Index() int {
	return v.index
}

/*
IsMissing returns whether a raw value counts as missing: nil and NaN
floats do.
*/
func IsMissing(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	}
	return false
}

/*
IsString returns whether a raw value is string-like. Any string-like value
makes a column nominal.
*/
func IsString(raw interface{}) bool {
	switch raw.(type) {
	case string, []byte, bool:
		return true
	}
	return false
}

/*
Number takes a raw value and returns it as a float64 along with true,
or false when the value is missing or has no numeric reading. Strings
are parsed.
*/
func Number(raw interface{}) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case string:
		var err error
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
	case []byte:
		var err error
		f, err = strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		if err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

/*
Key takes a raw value and returns its canonical string, the form under
which it is stored in a Dictionary, along with true. Numbers that compare
equal share a key, so 60 and 60.0 are the same nominal value. It returns
false for missing values.
*/
func Key(raw interface{}) (string, bool) {
	if IsMissing(raw) {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	}
	if f, ok := Number(raw); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return fmt.Sprintf("%v", raw), true
}

/*
Integral returns whether a raw numeric value has no fractional part.
*/
func Integral(raw interface{}) bool {
	f, ok := Number(raw)
	if !ok {
		return false
	}
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}
