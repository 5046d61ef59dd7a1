package mem

import (
	"encoding/binary"
	"math"
)

// Scalar accessors read and write in the host byte order.

func ReadInt8(r Region, off int) (int8, error) {
	b, err := span(r, off, 1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func WriteInt8(r Region, off int, v int8) error {
	b, err := span(r, off, 1)
	if err != nil {
		return err
	}
	b[0] = byte(v)
	return nil
}

func ReadUint8(r Region, off int) (uint8, error) {
	b, err := span(r, off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func WriteUint8(r Region, off int, v uint8) error {
	b, err := span(r, off, 1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

func ReadInt16(r Region, off int) (int16, error) {
	v, err := ReadUint16(r, off)
	return int16(v), err
}

func WriteInt16(r Region, off int, v int16) error {
	return WriteUint16(r, off, uint16(v))
}

func ReadUint16(r Region, off int) (uint16, error) {
	b, err := span(r, off, 2)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint16(b), nil
}

func WriteUint16(r Region, off int, v uint16) error {
	b, err := span(r, off, 2)
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint16(b, v)
	return nil
}

func ReadInt32(r Region, off int) (int32, error) {
	v, err := ReadUint32(r, off)
	return int32(v), err
}

func WriteInt32(r Region, off int, v int32) error {
	return WriteUint32(r, off, uint32(v))
}

func ReadUint32(r Region, off int) (uint32, error) {
	b, err := span(r, off, 4)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(b), nil
}

func WriteUint32(r Region, off int, v uint32) error {
	b, err := span(r, off, 4)
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint32(b, v)
	return nil
}

func ReadInt64(r Region, off int) (int64, error) {
	v, err := ReadUint64(r, off)
	return int64(v), err
}

func WriteInt64(r Region, off int, v int64) error {
	return WriteUint64(r, off, uint64(v))
}

func ReadUint64(r Region, off int) (uint64, error) {
	b, err := span(r, off, 8)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(b), nil
}

func WriteUint64(r Region, off int, v uint64) error {
	b, err := span(r, off, 8)
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint64(b, v)
	return nil
}

func ReadFloat32(r Region, off int) (float32, error) {
	v, err := ReadUint32(r, off)
	return math.Float32frombits(v), err
}

func WriteFloat32(r Region, off int, v float32) error {
	return WriteUint32(r, off, math.Float32bits(v))
}

func ReadFloat64(r Region, off int) (float64, error) {
	v, err := ReadUint64(r, off)
	return math.Float64frombits(v), err
}

func WriteFloat64(r Region, off int, v float64) error {
	return WriteUint64(r, off, math.Float64bits(v))
}
