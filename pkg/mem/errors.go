package mem

import "github.com/pkg/errors"

var (
	ErrNullPointer    = errors.New("null pointer")
	ErrOutOfBounds    = errors.New("access out of region bounds")
	ErrNegativeSize   = errors.New("negative size")
	ErrInvalidWidth   = errors.New("zero run width must be positive")
	ErrScanLimit      = errors.New("no zero run found within scan limit")
	ErrObjectReleased = errors.New("object handle no longer valid")
)
