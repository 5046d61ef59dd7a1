package cref

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/cref/pkg/mem"
)

func TestAllocCString(t *testing.T) {
	cases := map[string]string{
		"hello world":    "hello world",
		"hello\x00world": "hello",
		"\x00":           "",
		"":               "",
	}
	for in, want := range cases {
		b, err := AllocCString(in, "")
		require.NoError(t, err)
		assert.Equal(t, len(in)+1, b.Len())
		assert.Equal(t, "char*", b.Type().Name)
		assert.Equal(t, 2, b.Type().Indirection)
		got, err := b.ReadCString(0)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestWriteCString(t *testing.T) {
	b := NewBuffer(make([]byte, 5))
	assert.ErrorIs(t, WriteCString(b, 0, "hello", "utf8"), mem.ErrOutOfBounds)
	require.NoError(t, b.WriteCString(0, "hell", "utf8"))
	assert.Equal(t, []byte("hell\x00"), b.Bytes())
	require.NoError(t, WriteCString(b, 3, "y", ""))
	s, err := ReadCString(b, 3)
	require.NoError(t, err)
	assert.Equal(t, "y", s)
	s, err = ReadCString(b, 0)
	require.NoError(t, err)
	assert.Equal(t, "hely", s)

	assert.ErrorIs(t, WriteCString(nil, 0, "x", ""), ErrNotABuffer)
	assert.ErrorIs(t, WriteCString(b, -1, "x", ""), mem.ErrOutOfBounds)
	assert.ErrorIs(t, WriteCString(b, 0, "x", "ebcdic"), ErrUnknownEncoding)
}

func TestReadCStringUnterminated(t *testing.T) {
	_, err := ReadCString(NewBuffer([]byte("abc")), 0)
	assert.ErrorIs(t, err, ErrUnterminatedString)
	_, err = ReadCString(NULL, 0)
	assert.ErrorIs(t, err, mem.ErrNullPointer)
	_, err = ReadCString(NewBuffer([]byte("a\x00")), 3)
	assert.ErrorIs(t, err, mem.ErrOutOfBounds)
}

func TestCStringType(t *testing.T) {
	b, err := AllocValue(CString, "hello")
	require.NoError(t, err)
	require.Len(t, b.Refs(), 1)
	v, err := Deref(b)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	require.NoError(t, Set(b, 0, nil))
	v, err = Deref(b)
	require.NoError(t, err)
	assert.Nil(t, v)

	str, err := AllocCString("reused", "")
	require.NoError(t, err)
	require.NoError(t, Set(b, 0, str))
	v, err = Deref(b)
	require.NoError(t, err)
	assert.Equal(t, "reused", v)

	assert.ErrorIs(t, Set(b, 0, 12), ErrNotAString)
}

func TestCStringTypeLongValue(t *testing.T) {
	long := strings.Repeat("x", 20000)
	require.Greater(t, len(long), CurrentOptions().MaxZeroScan)
	b, err := AllocValue(CString, long)
	require.NoError(t, err)
	v, err := Deref(b)
	require.NoError(t, err)
	assert.Equal(t, long, v)

	// the explicit scan still honors the configured cap
	p, err := ReadPointer(b, 0, 0)
	require.NoError(t, err)
	_, err = ReinterpretUntilZeros(p, 1)
	assert.ErrorIs(t, err, mem.ErrScanLimit)
}

func TestAllocCStringValue(t *testing.T) {
	b, err := AllocCStringValue(nil, "")
	require.NoError(t, err)
	assert.Same(t, NULL, b)
	_, err = AllocCStringValue(3.14, "")
	assert.ErrorIs(t, err, ErrNotAString)
	b, err = AllocCStringValue("x", "latin1")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
}

func TestEncodings(t *testing.T) {
	b, err := AllocCString("hi", "ucs2")
	require.NoError(t, err)
	assert.Equal(t, []byte{'h', 0, 'i', 0, 0}, b.Bytes())

	n, err := ByteLength("hi", "UTF-16LE")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	s, err := Decode(b.Bytes()[:4], "ucs-2")
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	b, err = AllocCString("é", "latin1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe9, 0}, b.Bytes())
	n, err = ByteLength("é", "utf-8")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = ByteLength("x", "klingon")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}
