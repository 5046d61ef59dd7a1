package cref

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/rawbytedev/cref/pkg/mem"
)

// DefaultEncoding is used when an empty encoding name is given.
const DefaultEncoding = "utf8"

func encodingFor(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf8", "utf-8":
		return unicode.UTF8, nil
	case "ucs2", "ucs-2", "utf16le", "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "latin1", "binary":
		return charmap.ISO8859_1, nil
	}
	return nil, errors.Wrapf(ErrUnknownEncoding, "%q", name)
}

func encodeString(s, enc string) ([]byte, error) {
	e, err := encodingFor(enc)
	if err != nil {
		return nil, err
	}
	out, err := e.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidValue, "encode %q as %s: %v", s, enc, err)
	}
	return out, nil
}

// ByteLength is the encoded length of s, not counting the terminator.
func ByteLength(s, enc string) (int, error) {
	out, err := encodeString(s, enc)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

// Decode turns encoded bytes back into a Go string.
func Decode(b []byte, enc string) (string, error) {
	e, err := encodingFor(enc)
	if err != nil {
		return "", err
	}
	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidValue, "decode %s: %v", enc, err)
	}
	return string(out), nil
}

// WriteCString encodes s and writes it followed by a single NUL byte into b at
// offset.
func WriteCString(b *Buffer, offset int, s, enc string) error {
	if b == nil {
		return ErrNotABuffer
	}
	data, err := encodeString(s, enc)
	if err != nil {
		return err
	}
	if offset < 0 || len(data)+1 > b.Len()-offset {
		return errors.Wrapf(mem.ErrOutOfBounds, "%d byte string at offset %d of %d", len(data)+1, offset, b.Len())
	}
	dst := b.Bytes()[offset:]
	copy(dst, data)
	dst[len(data)] = 0
	return nil
}

// ReadCString returns the bytes from offset up to the first NUL. The NUL must
// lie within the buffer.
func ReadCString(b *Buffer, offset int) (string, error) {
	if b == nil {
		return "", ErrNotABuffer
	}
	if b.IsNull() {
		return "", errors.Wrap(mem.ErrNullPointer, "read C string")
	}
	if offset < 0 || offset > b.Len() {
		return "", errors.Wrapf(mem.ErrOutOfBounds, "offset %d of %d", offset, b.Len())
	}
	data := b.Bytes()[offset:]
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return "", errors.Wrapf(ErrUnterminatedString, "%d bytes from offset %d", len(data), offset)
	}
	return string(data[:i]), nil
}

// AllocCString returns a new buffer holding s and its terminator, tagged
// char*.
func AllocCString(s, enc string) (*Buffer, error) {
	data, err := encodeString(s, enc)
	if err != nil {
		return nil, err
	}
	r, err := mem.Alloc(len(data) + 1)
	if err != nil {
		return nil, err
	}
	copy(r.Bytes(), data)
	return newBuffer(r, charPtr), nil
}

// AllocCStringValue is AllocCString for loosely typed input: nil gives NULL.
func AllocCStringValue(v any, enc string) (*Buffer, error) {
	switch s := v.(type) {
	case nil:
		return NULL, nil
	case string:
		return AllocCString(s, enc)
	}
	return nil, errors.Wrapf(ErrNotAString, "%T", v)
}

func cstringGet(b *Buffer, offset int) (any, error) {
	p, err := ReadPointer(b, offset, 0)
	if err != nil {
		return nil, err
	}
	if p.IsNull() {
		return nil, nil
	}
	// the pointee was written NUL-terminated, so the scan needs no cap
	s, err := untilZeros(p, 1, 0, mem.NoScanLimit)
	if err != nil {
		return nil, err
	}
	return string(s.Bytes()), nil
}

func cstringSet(b *Buffer, offset int, v any) error {
	p, ok := v.(*Buffer)
	if !ok {
		var err error
		if p, err = AllocCStringValue(v, DefaultEncoding); err != nil {
			return err
		}
	}
	return WritePointer(b, offset, p)
}
