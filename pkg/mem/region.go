// Package mem holds the primitive byte-region operations: allocation, native
// endian scalar access, raw pointer and object handle slots, and address
// queries. Nothing here tracks ownership; a region written into another region
// stays alive only as long as something else keeps it reachable.
package mem

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Region is an address plus a declared length. The zero value is the NULL
// region.
type Region struct {
	ptr unsafe.Pointer
	n   int
}

// Null is the zero-length region at address 0.
var Null Region

// Alloc returns a zeroed region of n bytes backed by the Go heap.
func Alloc(n int) (Region, error) {
	if n < 0 {
		return Region{}, errors.Wrapf(ErrNegativeSize, "alloc %d bytes", n)
	}
	return FromBytes(make([]byte, n)), nil
}

// FromBytes returns a region over b without copying. A nil slice yields an
// empty, non-null region.
func FromBytes(b []byte) Region {
	if b == nil {
		b = []byte{}
	}
	return Region{ptr: unsafe.Pointer(unsafe.SliceData(b)), n: len(b)}
}

// Len is the declared length.
func (r Region) Len() int { return r.n }

// Address is the base address, 0 for NULL.
func (r Region) Address() uintptr { return uintptr(r.ptr) }

// IsNull reports whether the base address is 0.
func (r Region) IsNull() bool { return r.ptr == nil }

// Bytes aliases the declared span. It returns nil for NULL.
//
//go:nocheckptr
func (r Region) Bytes() []byte {
	if r.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(r.ptr), r.n)
}

// Slice returns the sub-region [start, end).
//
//go:nocheckptr
func (r Region) Slice(start, end int) (Region, error) {
	if start < 0 || end < start || end > r.n {
		return Region{}, errors.Wrapf(ErrOutOfBounds, "slice [%d:%d] of %d bytes", start, end, r.n)
	}
	if r.ptr == nil {
		return Null, nil
	}
	return Region{ptr: unsafe.Add(r.ptr, start), n: end - start}, nil
}

// span checks [off, off+size) against the declared length and aliases it.
//
//go:nocheckptr
func span(r Region, off, size int) ([]byte, error) {
	if r.ptr == nil {
		return nil, ErrNullPointer
	}
	if off < 0 || size < 0 || off > r.n-size {
		return nil, errors.Wrapf(ErrOutOfBounds, "%d bytes at offset %d of %d", size, off, r.n)
	}
	return unsafe.Slice((*byte)(unsafe.Add(r.ptr, off)), size), nil
}
