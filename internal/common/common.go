package common

import (
	"reflect"
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Endianness tags.
const (
	LittleEndian = "LE"
	BigEndian    = "BE"
)

// PointerSize is the width in bytes of a raw address stored inside a region.
const PointerSize = int(unsafe.Sizeof(uintptr(0)))

// Endianness is the host byte order, one of LittleEndian or BigEndian.
var Endianness = hostEndianness()

func hostEndianness() string {
	if cpu.IsBigEndian {
		return BigEndian
	}
	return LittleEndian
}

// Opposite returns the byte order tag that is not e.
func Opposite(e string) string {
	if e == LittleEndian {
		return BigEndian
	}
	return LittleEndian
}

// Sizeof is the platform size table, keyed by C type name.
var Sizeof = map[string]int{
	// fixed sizes
	"int8":   1,
	"uint8":  1,
	"int16":  2,
	"uint16": 2,
	"int32":  4,
	"uint32": 4,
	"int64":  8,
	"uint64": 8,
	"float":  4,
	"double": 8,
	// (potentially) variable sizes
	"bool":      1,
	"byte":      1,
	"char":      1,
	"uchar":     1,
	"short":     2,
	"ushort":    2,
	"int":       4,
	"uint":      4,
	"long":      longSize(),
	"ulong":     longSize(),
	"longlong":  8,
	"ulonglong": 8,
	"pointer":   PointerSize,
	"size_t":    PointerSize,
	// an object handle is stored as a pointer-sized word
	"Object": PointerSize,
}

// Alignof is the platform alignment table, keyed like Sizeof.
var Alignof = buildAlignof()

// long is 32 bits on windows (LLP64) and pointer sized elsewhere.
func longSize() int {
	if runtime.GOOS == "windows" {
		return 4
	}
	return PointerSize
}

func buildAlignof() map[string]int {
	fixed := map[int]int{
		1: int(unsafe.Alignof(int8(0))),
		2: int(unsafe.Alignof(int16(0))),
		4: int(unsafe.Alignof(int32(0))),
		8: int(unsafe.Alignof(int64(0))),
	}
	a := make(map[string]int, len(Sizeof))
	for name, size := range Sizeof {
		a[name] = fixed[size]
	}
	a["float"] = int(unsafe.Alignof(float32(0)))
	a["double"] = int(unsafe.Alignof(float64(0)))
	a["pointer"] = int(unsafe.Alignof(uintptr(0)))
	a["size_t"] = a["pointer"]
	a["Object"] = a["pointer"]
	return a
}

// IsFixedKind reports whether k is a fixed-size primitive kind.
func IsFixedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// IsIntKind reports whether k is any signed integer kind, including int.
func IsIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// IsUintKind reports whether k is any unsigned integer kind, including uint and uintptr.
func IsUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// FixedSize returns the byte width for fixed-size primitive kinds.
func FixedSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		return 8
	default:
		return -1
	}
}
