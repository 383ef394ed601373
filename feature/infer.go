package feature

import (
	mapset "github.com/deckarep/golang-set"
)

const (
	// MinimumNominalSample is the number of known values an integer column
	// needs before its repetitions are taken as a sign of being nominal.
	MinimumNominalSample = 10
	// NominalDistinctRatio is the largest share of distinct values an
	// integer column may show and still be considered nominal.
	NominalDistinctRatio = 0.2
)

/*
Infer takes the values of a column and returns the type they suggest:
  - missing values are ignored
  - any string-like or non numeric value makes the column Nominal
  - a column with no known value, or with a non-integral number, is Continuous
  - an integer column with at least MinimumNominalSample known values of
    which at most NominalDistinctRatio are distinct is Nominal
  - anything else is Continuous
*/
func Infer(values []interface{}) Type {
	distinct := mapset.NewThreadUnsafeSet()
	var count int
	integral := true
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		if IsString(v) {
			return Nominal
		}
		if _, ok := Number(v); !ok {
			return Nominal
		}
		if !Integral(v) {
			integral = false
		}
		k, _ := Key(v)
		distinct.Add(k)
		count++
	}
	if count == 0 || !integral {
		return Continuous
	}
	if count >= MinimumNominalSample && float64(distinct.Cardinality()) <= NominalDistinctRatio*float64(count) {
		return Nominal
	}
	return Continuous
}

/*
InferTypes takes rows of the given width and a vector of type overrides
and returns the type of every column. A column gets its override unless
it is Undefined or missing from the vector, in which case its type is
inferred from its own values. Rows shorter than the width read as missing
for the absent columns.
*/
func InferTypes(rows [][]interface{}, width int, overrides []Type) []Type {
	types := make([]Type, width)
	column := make([]interface{}, len(rows))
	for j := 0; j < width; j++ {
		if j < len(overrides) && overrides[j] != Undefined {
			types[j] = overrides[j]
			continue
		}
		for i, row := range rows {
			if j < len(row) {
				column[i] = row[j]
			} else {
				column[i] = nil
			}
		}
		types[j] = Infer(column)
	}
	return types
}
