package sapling

import (
	"github.com/pbanos/sapling/tree"
)

// Error represents an error returned by a Classifier
type Error string

const (
	// ErrShapeMismatch is returned when training rows and labels
	// differ in number or rows differ in length.
	ErrShapeMismatch = Error("rows and labels do not have matching shapes")
	// ErrInvalidColumnTypeOverride is returned when a vector of
	// column types does not fit the width of the rows or holds
	// unknown types.
	ErrInvalidColumnTypeOverride = Error("invalid column type override")
	// ErrNotTrained is returned when asking a classifier that has
	// not been trained with at least one row for predictions.
	ErrNotTrained = tree.ErrNotTrained
)

func (e Error) Error() string {
	return string(e)
}
