package cref

import (
	"runtime"
	"testing"
	"weak"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/cref/internal/common"
)

func collect(done func() bool) {
	for i := 0; i < 10 && !done(); i++ {
		runtime.GC()
	}
}

func TestPointerKeepsTargetAlive(t *testing.T) {
	p, w := func() (*Buffer, weak.Pointer[Buffer]) {
		target, err := AllocValue(Int32, 7)
		require.NoError(t, err)
		p, err := Ref(target)
		require.NoError(t, err)
		return p, weak.Make(target)
	}()

	for i := 0; i < 5; i++ {
		runtime.GC()
	}
	require.NotNil(t, w.Value())

	v, err := Deref(p)
	require.NoError(t, err)
	v, err = Deref(v.(*Buffer))
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
	runtime.KeepAlive(p)
}

func TestTargetReleasedWithHolder(t *testing.T) {
	w := func() weak.Pointer[Buffer] {
		target, err := AllocValue(Int32, 7)
		require.NoError(t, err)
		_, err = Ref(target)
		require.NoError(t, err)
		return weak.Make(target)
	}()
	collect(func() bool { return w.Value() == nil })
	assert.Nil(t, w.Value())
}

func TestObjectKeptByHolder(t *testing.T) {
	type payload struct{ N int }
	b, err := Alloc(Object)
	require.NoError(t, err)
	w := func() weak.Pointer[payload] {
		obj := &payload{N: 3}
		require.NoError(t, b.WriteObject(0, obj))
		return weak.Make(obj)
	}()

	for i := 0; i < 5; i++ {
		runtime.GC()
	}
	require.NotNil(t, w.Value())
	v, err := b.ReadObject(0)
	require.NoError(t, err)
	assert.Equal(t, 3, v.(*payload).N)
	runtime.KeepAlive(b)
}

func TestWritePointerRecordsRefs(t *testing.T) {
	holder := NewBuffer(make([]byte, 2*common.PointerSize))
	a := NewBuffer([]byte("a"))
	b := NewBuffer([]byte("b"))
	require.NoError(t, WritePointer(holder, 0, a))
	require.NoError(t, holder.WritePointer(common.PointerSize, b))
	require.NoError(t, WritePointer(holder, 0, a))
	require.NoError(t, WritePointer(holder, 0, nil))

	refs := holder.Refs()
	require.Len(t, refs, 3)
	assert.Same(t, a, refs[0])
	assert.Same(t, b, refs[1])
	assert.Same(t, a, refs[2])

	refs[0] = nil
	assert.Same(t, a, holder.Refs()[0])

	out, err := holder.ReadPointer(common.PointerSize, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", string(out.Bytes()))
	assert.Nil(t, out.Type())

	assert.ErrorIs(t, WritePointer(nil, 0, a), ErrNotABuffer)
}

func TestSliceRetainsParent(t *testing.T) {
	parent := NewBuffer([]byte("hello world"))
	s, err := parent.Slice(6, 11)
	require.NoError(t, err)
	assert.Equal(t, "world", string(s.Bytes()))
	require.Len(t, s.Refs(), 1)
	assert.Same(t, parent, s.Refs()[0])

	_, err = parent.Slice(3, 20)
	assert.Error(t, err)
}
