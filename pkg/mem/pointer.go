package mem

import (
	"encoding/binary"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/rawbytedev/cref/internal/common"
)

// ReadPointer loads the address stored at off and returns a region of length
// bytes at that address. A stored 0 yields Null.
//
//go:nocheckptr
func ReadPointer(r Region, off, length int) (Region, error) {
	if length < 0 {
		return Region{}, errors.Wrapf(ErrNegativeSize, "pointer target of %d bytes", length)
	}
	b, err := span(r, off, common.PointerSize)
	if err != nil {
		return Region{}, errors.Wrap(err, "read pointer")
	}
	addr := loadWord(b)
	if addr == 0 {
		return Null, nil
	}
	return Region{ptr: unsafe.Pointer(addr), n: length}, nil
}

// WritePointer stores p's base address at off. The slot is plain bytes, so
// the garbage collector does not see it.
func WritePointer(r Region, off int, p Region) error {
	b, err := span(r, off, common.PointerSize)
	if err != nil {
		return errors.Wrap(err, "write pointer")
	}
	storeWord(b, p.Address())
	return nil
}

func loadWord(b []byte) uintptr {
	if common.PointerSize == 8 {
		return uintptr(binary.NativeEndian.Uint64(b))
	}
	return uintptr(binary.NativeEndian.Uint32(b))
}

func storeWord(b []byte, w uintptr) {
	if common.PointerSize == 8 {
		binary.NativeEndian.PutUint64(b, uint64(w))
		return
	}
	binary.NativeEndian.PutUint32(b, uint32(w))
}
