package mem

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// NoScanLimit disables the scan cap of ReinterpretUntilZeros.
const NoScanLimit = math.MaxInt

// Reinterpret returns a region of size bytes at r's address plus off. The
// declared length of r is not consulted.
//
//go:nocheckptr
func Reinterpret(r Region, size, off int) (Region, error) {
	if r.ptr == nil {
		return Region{}, errors.Wrap(ErrNullPointer, "reinterpret")
	}
	if size < 0 {
		return Region{}, errors.Wrapf(ErrNegativeSize, "reinterpret to %d bytes", size)
	}
	return Region{ptr: unsafe.Add(r.ptr, off), n: size}, nil
}

// ReinterpretUntilZeros scans from r's address plus off, in steps of width,
// until width consecutive zero bytes are found, and returns the region ending
// just before them. The scan crosses r's declared length and gives up after
// limit bytes. A limit of NoScanLimit scans until the run is found.
//
//go:nocheckptr
func ReinterpretUntilZeros(r Region, width, off, limit int) (Region, error) {
	if r.ptr == nil {
		return Region{}, errors.Wrap(ErrNullPointer, "reinterpret until zeros")
	}
	if width <= 0 {
		return Region{}, errors.Wrapf(ErrInvalidWidth, "width %d", width)
	}
	base := unsafe.Add(r.ptr, off)
	for size := 0; size >= 0 && size < limit; size += width {
		if zeroRun(base, size, width) {
			return Region{ptr: base, n: size}, nil
		}
	}
	return Region{}, errors.Wrapf(ErrScanLimit, "%d byte run within %d bytes", width, limit)
}

//go:nocheckptr
func zeroRun(base unsafe.Pointer, at, width int) bool {
	for i := 0; i < width; i++ {
		if *(*byte)(unsafe.Add(base, at+i)) != 0 {
			return false
		}
	}
	return true
}
