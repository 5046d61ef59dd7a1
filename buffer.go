// Package cref treats byte regions as typed C pointers. A Buffer pairs a
// region with a Type describing how to read and write it; pointer writes
// between buffers are tracked so that a referenced region stays alive for as
// long as the buffer holding its address does.
package cref

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"

	"github.com/rawbytedev/cref/pkg/mem"
)

// Buffer is a byte region with an optional type tag and the list of values it
// keeps alive.
type Buffer struct {
	region mem.Region
	typ    *Type
	refs   []any
}

var (
	// NULL is the zero-length buffer at address 0.
	NULL *Buffer
	// NULLPointer is a pointer-sized buffer holding the address of NULL.
	NULLPointer *Buffer
)

// NewBuffer wraps b without copying. The result is untagged.
func NewBuffer(b []byte) *Buffer {
	return newBuffer(mem.FromBytes(b), nil)
}

func newBuffer(r mem.Region, t *Type) *Buffer {
	return &Buffer{region: r, typ: t}
}

func regionOf(b *Buffer) (mem.Region, error) {
	if b == nil {
		return mem.Region{}, ErrNotABuffer
	}
	return b.region, nil
}

func (b *Buffer) Region() mem.Region { return b.region }

func (b *Buffer) Len() int { return b.region.Len() }

// Bytes aliases the buffer contents; nil for a NULL buffer.
func (b *Buffer) Bytes() []byte { return b.region.Bytes() }

func (b *Buffer) Address() uintptr { return b.region.Address() }

func (b *Buffer) IsNull() bool { return b.region.IsNull() }

// Type is the tag, nil when the buffer is untagged. See GetType.
func (b *Buffer) Type() *Type { return b.typ }

func (b *Buffer) SetType(t *Type) { b.typ = t }

// Refs returns a copy of the retained references in insertion order.
func (b *Buffer) Refs() []any {
	out := make([]any, len(b.refs))
	copy(out, b.refs)
	return out
}

// Slice returns the sub-buffer [start, end). The result keeps b alive.
func (b *Buffer) Slice(start, end int) (*Buffer, error) {
	r, err := b.region.Slice(start, end)
	if err != nil {
		return nil, err
	}
	out := newBuffer(r, nil)
	attach(out, b)
	return out, nil
}

func (b *Buffer) String() string {
	if b == nil {
		return "<Buffer nil>"
	}
	data := b.Bytes()
	suffix := ""
	if len(data) > 50 {
		data, suffix = data[:50], " ..."
	}
	return fmt.Sprintf("<Buffer@0x%x %s%s>", b.Address(), hex.EncodeToString(data), suffix)
}

func (b *Buffer) Ref() (*Buffer, error) { return Ref(b) }

func (b *Buffer) Deref() (any, error) { return Deref(b) }

func (b *Buffer) ReadPointer(offset, size int) (*Buffer, error) { return ReadPointer(b, offset, size) }

func (b *Buffer) WritePointer(offset int, p *Buffer) error { return WritePointer(b, offset, p) }

func (b *Buffer) ReadObject(offset int) (any, error) { return ReadObject(b, offset) }

func (b *Buffer) WriteObject(offset int, v any) error { return WriteObject(b, offset, v) }

func (b *Buffer) ReadCString(offset int) (string, error) { return ReadCString(b, offset) }

func (b *Buffer) WriteCString(offset int, s, encoding string) error {
	return WriteCString(b, offset, s, encoding)
}

func (b *Buffer) ReadInt64LE(offset int) (any, error)  { return ReadInt64LE(b, offset) }
func (b *Buffer) ReadInt64BE(offset int) (any, error)  { return ReadInt64BE(b, offset) }
func (b *Buffer) ReadUInt64LE(offset int) (any, error) { return ReadUInt64LE(b, offset) }
func (b *Buffer) ReadUInt64BE(offset int) (any, error) { return ReadUInt64BE(b, offset) }

func (b *Buffer) WriteInt64LE(offset int, v any) error  { return WriteInt64LE(b, offset, v) }
func (b *Buffer) WriteInt64BE(offset int, v any) error  { return WriteInt64BE(b, offset, v) }
func (b *Buffer) WriteUInt64LE(offset int, v any) error { return WriteUInt64LE(b, offset, v) }
func (b *Buffer) WriteUInt64BE(offset int, v any) error { return WriteUInt64BE(b, offset, v) }

func (b *Buffer) Reinterpret(size, offset int) (*Buffer, error) {
	return ReinterpretAt(b, size, offset)
}

func (b *Buffer) ReinterpretUntilZeros(width, offset int) (*Buffer, error) {
	return ReinterpretUntilZerosAt(b, width, offset)
}

// IsNull reports whether b is nil or points at address 0.
func IsNull(b *Buffer) bool {
	return b == nil || b.IsNull()
}

// Address returns b's base address plus offset.
func Address(b *Buffer, offset int) (uintptr, error) {
	r, err := regionOf(b)
	if err != nil {
		return 0, err
	}
	if r.IsNull() {
		return 0, errors.Wrap(mem.ErrNullPointer, "address")
	}
	return r.Address() + uintptr(offset), nil
}
