package cref

import (
	"github.com/rawbytedev/cref/pkg/mem"
)

// Reinterpret returns a view of size bytes starting at b's address. The
// declared length of b is ignored, which makes this the way to widen a
// zero-length buffer returned from a pointer read.
func Reinterpret(b *Buffer, size int) (*Buffer, error) {
	return ReinterpretAt(b, size, 0)
}

func ReinterpretAt(b *Buffer, size, offset int) (*Buffer, error) {
	r, err := regionOf(b)
	if err != nil {
		return nil, err
	}
	v, err := mem.Reinterpret(r, size, offset)
	if err != nil {
		return nil, err
	}
	logger().Debug().Uint64("addr", uint64(v.Address())).Int("size", size).Msg("reinterpret")
	out := newBuffer(v, nil)
	attach(out, b)
	return out, nil
}

// ReinterpretUntilZeros returns a view from b's address up to the first run
// of width zero bytes that starts on a width boundary. The scan may run past
// b's declared length but stops after Options.MaxZeroScan bytes.
func ReinterpretUntilZeros(b *Buffer, width int) (*Buffer, error) {
	return ReinterpretUntilZerosAt(b, width, 0)
}

func ReinterpretUntilZerosAt(b *Buffer, width, offset int) (*Buffer, error) {
	return untilZeros(b, width, offset, CurrentOptions().MaxZeroScan)
}

func untilZeros(b *Buffer, width, offset, limit int) (*Buffer, error) {
	r, err := regionOf(b)
	if err != nil {
		return nil, err
	}
	v, err := mem.ReinterpretUntilZeros(r, width, offset, limit)
	if err != nil {
		return nil, err
	}
	logger().Debug().Uint64("addr", uint64(v.Address())).Int("size", v.Len()).Msg("reinterpret until zeros")
	out := newBuffer(v, nil)
	attach(out, b)
	return out, nil
}
