package cref

import (
	"github.com/pkg/errors"

	"github.com/rawbytedev/cref/internal/common"
	"github.com/rawbytedev/cref/pkg/mem"
)

// Alloc returns a zeroed buffer big enough for spec, tagged with it. Pointer
// types get a pointer-sized buffer.
func Alloc(spec any) (*Buffer, error) {
	t, err := CoerceType(spec)
	if err != nil {
		return nil, err
	}
	size := t.Size
	if t.Indirection != 1 {
		size = common.PointerSize
	}
	r, err := mem.Alloc(size)
	if err != nil {
		return nil, errors.Wrapf(err, "alloc %s", t.Name)
	}
	logger().Debug().Str("type", t.Name).Int("size", size).Msg("allocating buffer")
	return newBuffer(r, t), nil
}

// AllocValue is Alloc followed by writing v at offset 0.
func AllocValue(spec any, v any) (*Buffer, error) {
	b, err := Alloc(spec)
	if err != nil {
		return nil, err
	}
	if err := setWith(b, 0, v, b.typ); err != nil {
		return nil, err
	}
	return b, nil
}

// Ref returns a new buffer holding b's address, typed one level above b.
func Ref(b *Buffer) (*Buffer, error) {
	if b == nil {
		return nil, ErrNotABuffer
	}
	return AllocValue(refType(GetType(b)), b)
}

// Deref reads the value b points at. For a pointer to pointer the result is
// another *Buffer.
func Deref(b *Buffer) (any, error) {
	return Get(b, 0)
}

// Get reads a value from b at offset using b's type.
func Get(b *Buffer, offset int) (any, error) {
	if b == nil {
		return nil, ErrNotABuffer
	}
	return getWith(b, offset, GetType(b))
}

// GetAs reads a value from b at offset using spec instead of b's type.
func GetAs(b *Buffer, offset int, spec any) (any, error) {
	if b == nil {
		return nil, ErrNotABuffer
	}
	t, err := CoerceType(spec)
	if err != nil {
		return nil, err
	}
	return getWith(b, offset, t)
}

func getWith(b *Buffer, offset int, t *Type) (any, error) {
	if t.Indirection < 1 {
		return nil, errors.Wrapf(ErrInvalidIndirection, "get %q", t.Name)
	}
	if t.Indirection == 1 {
		return t.Get(b, offset)
	}
	size := common.PointerSize
	if t.Indirection == 2 {
		size = t.Size
	}
	p, err := ReadPointer(b, offset, size)
	if err != nil {
		return nil, err
	}
	p.typ, err = DerefType(t)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Set writes v into b at offset using b's type. Pointer types take a *Buffer
// or nil.
func Set(b *Buffer, offset int, v any) error {
	if b == nil {
		return ErrNotABuffer
	}
	return setWith(b, offset, v, GetType(b))
}

// SetAs writes v into b at offset using spec instead of b's type.
func SetAs(b *Buffer, offset int, v any, spec any) error {
	if b == nil {
		return ErrNotABuffer
	}
	t, err := CoerceType(spec)
	if err != nil {
		return err
	}
	return setWith(b, offset, v, t)
}

func setWith(b *Buffer, offset int, v any, t *Type) error {
	if t.Indirection < 1 {
		return errors.Wrapf(ErrInvalidIndirection, "set %q", t.Name)
	}
	if t.Indirection == 1 {
		return t.Set(b, offset, v)
	}
	switch p := v.(type) {
	case *Buffer:
		return WritePointer(b, offset, p)
	case nil:
		return WritePointer(b, offset, nil)
	}
	return errors.Wrapf(ErrNotABuffer, "set %q with %T", t.Name, v)
}
