package common

import (
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeofAtLeastOne(t *testing.T) {
	for name, size := range Sizeof {
		assert.GreaterOrEqual(t, size, 1, "sizeof(%s)", name)
	}
}

func TestAlignofCoversSizeof(t *testing.T) {
	for name := range Sizeof {
		a, ok := Alignof[name]
		require.True(t, ok, "missing alignof(%s)", name)
		assert.GreaterOrEqual(t, a, 1, "alignof(%s)", name)
		assert.LessOrEqual(t, a, Sizeof[name], "alignof(%s)", name)
	}
}

func TestPointerSizedEntries(t *testing.T) {
	assert.Contains(t, []int{4, 8}, PointerSize)
	assert.Equal(t, PointerSize, Sizeof["pointer"])
	assert.Equal(t, PointerSize, Sizeof["size_t"])
	assert.Equal(t, PointerSize, Sizeof["Object"])
}

func TestEndiannessMatchesNativeOrder(t *testing.T) {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	want := BigEndian
	if b[0] == 1 {
		want = LittleEndian
	}
	assert.Equal(t, want, Endianness)
	assert.NotEqual(t, Endianness, Opposite(Endianness))
	assert.Equal(t, Endianness, Opposite(Opposite(Endianness)))
}

func TestFixedSize(t *testing.T) {
	for _, k := range []reflect.Kind{reflect.Bool, reflect.Int8, reflect.Uint16, reflect.Float32, reflect.Int64} {
		require.True(t, IsFixedKind(k))
		assert.Positive(t, FixedSize(k))
	}
	assert.False(t, IsFixedKind(reflect.String))
	assert.Equal(t, -1, FixedSize(reflect.String))
	assert.True(t, IsIntKind(reflect.Int))
	assert.True(t, IsUintKind(reflect.Uintptr))
	assert.False(t, IsUintKind(reflect.Int))
}
