package mem

import (
	"runtime"
	"sync"
	"sync/atomic"
	"weak"

	"github.com/pkg/errors"

	"github.com/rawbytedev/cref/internal/common"
)

// cell boxes an object written into a region. The handle table only holds a
// weak pointer to it; whoever keeps the cell keeps the object.
type cell struct {
	v any
}

var (
	handles    sync.Map // uintptr -> weak.Pointer[cell]
	nextHandle atomic.Uintptr
)

// WriteObject stores an opaque handle for v at off. The returned value must be
// retained for as long as the handle should resolve.
func WriteObject(r Region, off int, v any) (any, error) {
	b, err := span(r, off, common.PointerSize)
	if err != nil {
		return nil, errors.Wrap(err, "write object")
	}
	c := &cell{v: v}
	h := nextHandle.Add(1)
	handles.Store(h, weak.Make(c))
	runtime.AddCleanup(c, func(h uintptr) { handles.Delete(h) }, h)
	storeWord(b, h)
	return c, nil
}

// ReadObject resolves the handle stored at off. An empty slot yields nil.
func ReadObject(r Region, off int) (any, error) {
	b, err := span(r, off, common.PointerSize)
	if err != nil {
		return nil, errors.Wrap(err, "read object")
	}
	h := loadWord(b)
	if h == 0 {
		return nil, nil
	}
	w, ok := handles.Load(h)
	if !ok {
		return nil, errors.Wrapf(ErrObjectReleased, "handle %d", h)
	}
	c := w.(weak.Pointer[cell]).Value()
	if c == nil {
		return nil, errors.Wrapf(ErrObjectReleased, "handle %d", h)
	}
	return c.v, nil
}
