package cref

import (
	"math"
	"reflect"
	"strconv"

	"github.com/pkg/errors"

	"github.com/rawbytedev/cref/internal/common"
)

// toSigned converts v to an integer that fits in bits signed bits.
func toSigned(v any, bits int) (int64, error) {
	if v == nil {
		return 0, errors.Wrap(ErrInvalidValue, "nil")
	}
	rv := reflect.ValueOf(v)
	k := rv.Kind()
	var n int64
	switch {
	case common.IsIntKind(k):
		n = rv.Int()
	case common.IsUintKind(k):
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, errors.Wrapf(ErrOutOfRange, "%d does not fit in int%d", u, bits)
		}
		n = int64(u)
	case k == reflect.Float32 || k == reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, errors.Wrapf(ErrInvalidValue, "%v is not an integer", f)
		}
		if f < -(1<<63) || f >= 1<<63 {
			return 0, errors.Wrapf(ErrOutOfRange, "%v does not fit in int%d", f, bits)
		}
		n = int64(f)
	case k == reflect.Bool:
		if rv.Bool() {
			n = 1
		}
	case k == reflect.String:
		p, err := strconv.ParseInt(rv.String(), 10, 64)
		if err != nil {
			return 0, numError(err, rv.String(), bits)
		}
		n = p
	default:
		return 0, errors.Wrapf(ErrInvalidValue, "%T", v)
	}
	if bits < 64 {
		lo := int64(-1) << (bits - 1)
		if n < lo || n > -lo-1 {
			return 0, errors.Wrapf(ErrOutOfRange, "%d does not fit in int%d", n, bits)
		}
	}
	return n, nil
}

// toUnsigned converts v to an integer that fits in bits unsigned bits.
func toUnsigned(v any, bits int) (uint64, error) {
	if v == nil {
		return 0, errors.Wrap(ErrInvalidValue, "nil")
	}
	rv := reflect.ValueOf(v)
	k := rv.Kind()
	var n uint64
	switch {
	case common.IsIntKind(k):
		i := rv.Int()
		if i < 0 {
			return 0, errors.Wrapf(ErrOutOfRange, "%d does not fit in uint%d", i, bits)
		}
		n = uint64(i)
	case common.IsUintKind(k):
		n = rv.Uint()
	case k == reflect.Float32 || k == reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, errors.Wrapf(ErrInvalidValue, "%v is not an integer", f)
		}
		if f < 0 || f >= 1<<64 {
			return 0, errors.Wrapf(ErrOutOfRange, "%v does not fit in uint%d", f, bits)
		}
		n = uint64(f)
	case k == reflect.Bool:
		if rv.Bool() {
			n = 1
		}
	case k == reflect.String:
		p, err := strconv.ParseUint(rv.String(), 10, 64)
		if err != nil {
			return 0, numError(err, rv.String(), bits)
		}
		n = p
	default:
		return 0, errors.Wrapf(ErrInvalidValue, "%T", v)
	}
	if bits < 64 && n > uint64(1)<<bits-1 {
		return 0, errors.Wrapf(ErrOutOfRange, "%d does not fit in uint%d", n, bits)
	}
	return n, nil
}

func toFloat(v any) (float64, error) {
	if v == nil {
		return 0, errors.Wrap(ErrInvalidValue, "nil")
	}
	rv := reflect.ValueOf(v)
	k := rv.Kind()
	switch {
	case common.IsIntKind(k):
		return float64(rv.Int()), nil
	case common.IsUintKind(k):
		return float64(rv.Uint()), nil
	case k == reflect.Float32 || k == reflect.Float64:
		return rv.Float(), nil
	case k == reflect.String:
		f, err := strconv.ParseFloat(rv.String(), 64)
		if err != nil {
			return 0, numError(err, rv.String(), 64)
		}
		return f, nil
	}
	return 0, errors.Wrapf(ErrInvalidValue, "%T", v)
}

func toBool(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return false, err
	}
	return f != 0, nil
}

func numError(err error, s string, bits int) error {
	if errors.Is(err, strconv.ErrRange) {
		return errors.Wrapf(ErrOutOfRange, "%q for %d bits", s, bits)
	}
	return errors.Wrapf(ErrInvalidValue, "%q", s)
}
