package cref

import (
	"encoding/binary"
	"encoding/json"
	"math/big"
	"strconv"

	"github.com/pkg/errors"

	"github.com/rawbytedev/cref/internal/common"
	"github.com/rawbytedev/cref/pkg/mem"
)

// MaxSafeInteger is the largest magnitude a 64-bit read returns as a number.
// Anything wider comes back as a decimal string so callers that carry values
// as float64 never lose precision silently.
const MaxSafeInteger = 1 << 53

// ReadInt64 reads a native-endian int64. The result is an int64 when its
// magnitude is at most MaxSafeInteger, otherwise its decimal string.
func ReadInt64(b *Buffer, offset int) (any, error) {
	r, err := regionOf(b)
	if err != nil {
		return nil, err
	}
	v, err := mem.ReadInt64(r, offset)
	if err != nil {
		return nil, err
	}
	return int64Value(v), nil
}

// ReadUInt64 is the unsigned counterpart of ReadInt64.
func ReadUInt64(b *Buffer, offset int) (any, error) {
	r, err := regionOf(b)
	if err != nil {
		return nil, err
	}
	v, err := mem.ReadUint64(r, offset)
	if err != nil {
		return nil, err
	}
	return uint64Value(v), nil
}

// WriteInt64 writes v as a native-endian int64. v may be any Go integer, an
// integral float, a decimal string, a json.Number or a *big.Int.
func WriteInt64(b *Buffer, offset int, v any) error {
	r, err := regionOf(b)
	if err != nil {
		return err
	}
	n, err := parseInt64(v)
	if err != nil {
		return err
	}
	return mem.WriteInt64(r, offset, n)
}

func WriteUInt64(b *Buffer, offset int, v any) error {
	r, err := regionOf(b)
	if err != nil {
		return err
	}
	n, err := parseUint64(v)
	if err != nil {
		return err
	}
	return mem.WriteUint64(r, offset, n)
}

func ReadInt64LE(b *Buffer, offset int) (any, error) {
	return readInt64Order(b, offset, common.LittleEndian)
}

func ReadInt64BE(b *Buffer, offset int) (any, error) {
	return readInt64Order(b, offset, common.BigEndian)
}

func ReadUInt64LE(b *Buffer, offset int) (any, error) {
	return readUint64Order(b, offset, common.LittleEndian)
}

func ReadUInt64BE(b *Buffer, offset int) (any, error) {
	return readUint64Order(b, offset, common.BigEndian)
}

func WriteInt64LE(b *Buffer, offset int, v any) error {
	return writeInt64Order(b, offset, v, common.LittleEndian)
}

func WriteInt64BE(b *Buffer, offset int, v any) error {
	return writeInt64Order(b, offset, v, common.BigEndian)
}

func WriteUInt64LE(b *Buffer, offset int, v any) error {
	return writeUint64Order(b, offset, v, common.LittleEndian)
}

func WriteUInt64BE(b *Buffer, offset int, v any) error {
	return writeUint64Order(b, offset, v, common.BigEndian)
}

func readInt64Order(b *Buffer, offset int, order string) (any, error) {
	if order == common.Endianness {
		return ReadInt64(b, offset)
	}
	var scratch [8]byte
	if err := load8(b, offset, &scratch); err != nil {
		return nil, err
	}
	return int64Value(int64(byteOrder(order).Uint64(scratch[:]))), nil
}

func readUint64Order(b *Buffer, offset int, order string) (any, error) {
	if order == common.Endianness {
		return ReadUInt64(b, offset)
	}
	var scratch [8]byte
	if err := load8(b, offset, &scratch); err != nil {
		return nil, err
	}
	return uint64Value(byteOrder(order).Uint64(scratch[:])), nil
}

func writeInt64Order(b *Buffer, offset int, v any, order string) error {
	if order == common.Endianness {
		return WriteInt64(b, offset, v)
	}
	n, err := parseInt64(v)
	if err != nil {
		return err
	}
	var scratch [8]byte
	byteOrder(order).PutUint64(scratch[:], uint64(n))
	return store8(b, offset, &scratch)
}

func writeUint64Order(b *Buffer, offset int, v any, order string) error {
	if order == common.Endianness {
		return WriteUInt64(b, offset, v)
	}
	n, err := parseUint64(v)
	if err != nil {
		return err
	}
	var scratch [8]byte
	byteOrder(order).PutUint64(scratch[:], n)
	return store8(b, offset, &scratch)
}

// load8 copies the 8 bytes at offset through a native read so bounds and
// NULL checks match the native variants.
func load8(b *Buffer, offset int, dst *[8]byte) error {
	r, err := regionOf(b)
	if err != nil {
		return err
	}
	v, err := mem.ReadUint64(r, offset)
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint64(dst[:], v)
	return nil
}

func store8(b *Buffer, offset int, src *[8]byte) error {
	r, err := regionOf(b)
	if err != nil {
		return err
	}
	return mem.WriteUint64(r, offset, binary.NativeEndian.Uint64(src[:]))
}

func byteOrder(order string) binary.ByteOrder {
	if order == common.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func int64Value(v int64) any {
	if v > MaxSafeInteger || v < -MaxSafeInteger {
		return strconv.FormatInt(v, 10)
	}
	return v
}

func uint64Value(v uint64) any {
	if v > MaxSafeInteger {
		return strconv.FormatUint(v, 10)
	}
	return v
}

func parseInt64(v any) (int64, error) {
	switch x := v.(type) {
	case string:
		return parseInt64String(x)
	case json.Number:
		return parseInt64String(string(x))
	case *big.Int:
		if x == nil || !x.IsInt64() {
			return 0, errors.Wrapf(ErrInvalidInt64, "%v overflows int64", x)
		}
		return x.Int64(), nil
	}
	n, err := toSigned(v, 64)
	if err != nil {
		return 0, errors.Wrap(err, "int64")
	}
	return n, nil
}

func parseUint64(v any) (uint64, error) {
	switch x := v.(type) {
	case string:
		return parseUint64String(x)
	case json.Number:
		return parseUint64String(string(x))
	case *big.Int:
		if x == nil || !x.IsUint64() {
			return 0, errors.Wrapf(ErrInvalidInt64, "%v overflows uint64", x)
		}
		return x.Uint64(), nil
	}
	n, err := toUnsigned(v, 64)
	if err != nil {
		return 0, errors.Wrap(err, "uint64")
	}
	return n, nil
}

func parseInt64String(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidInt64, "%q", s)
	}
	return n, nil
}

func parseUint64String(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidInt64, "%q", s)
	}
	return n, nil
}
