package scoring

import "errors"

// ErrDimensionMismatch is returned when two vectors from different
// vocabulary builds are compared.
var ErrDimensionMismatch = errors.New("feature vectors differ in length")
