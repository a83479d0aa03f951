package similarity

import "errors"

var (
	// ErrObjectNotFound is returned when a query references an id outside the mapping.
	ErrObjectNotFound = errors.New("object not found")

	// ErrNonContiguousIDs is returned when object ids do not form the range 0..N-1.
	ErrNonContiguousIDs = errors.New("object ids must be contiguous starting at 0")

	ErrInvalidNumHashes = errors.New("number of hash functions must be positive")
	ErrInvalidNumBands  = errors.New("number of bands must be between 1 and the number of hash functions")
	ErrInvalidNumValues = errors.New("number of feature values out of range")

	// ErrFeatureOutOfRange is returned when a feature id is not below numValues.
	ErrFeatureOutOfRange = errors.New("feature id out of range")

	ErrUnknownMethod = errors.New("unknown search method")
)
