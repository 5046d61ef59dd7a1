package cref

import "github.com/pkg/errors"

var (
	ErrInvalidTypeSpecifier = errors.New("could not determine a proper type")
	ErrInvalidIndirection   = errors.New("indirection level must be at least 1")
	ErrNotABuffer           = errors.New("expected a buffer")
	ErrNotAString           = errors.New("expected a string")
	ErrUnterminatedString   = errors.New("no NUL terminator within buffer")
	ErrUnknownType          = errors.New("unknown type")
	ErrOutOfRange           = errors.New("value out of range for type")
	ErrInvalidValue         = errors.New("value cannot be converted for type")
	ErrInvalidInt64         = errors.New("invalid 64-bit integer")
	ErrUnknownEncoding      = errors.New("unknown string encoding")
)
