package cref

import (
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/rawbytedev/cref/internal/common"
	"github.com/rawbytedev/cref/internal/logging"
	"github.com/rawbytedev/cref/pkg/mem"
)

// Type describes how to read and write a buffer. Size is the byte count of
// the value when Indirection is 1, otherwise the size of what the pointer
// chain ends at. Get and Set are only called for Indirection 1.
type Type struct {
	Name        string
	Size        int
	Indirection int
	Alignment   int
	Get         func(b *Buffer, offset int) (any, error)
	Set         func(b *Buffer, offset int, v any) error
}

// Built-in types.
var (
	Void       *Type
	Int8       *Type
	Uint8      *Type
	Int16      *Type
	Uint16     *Type
	Int32      *Type
	Uint32     *Type
	Int64      *Type
	Uint64     *Type
	Float      *Type
	Double     *Type
	Bool       *Type
	Byte       *Type
	Char       *Type
	UChar      *Type
	Short      *Type
	UShort     *Type
	Int        *Type
	UInt       *Type
	Long       *Type
	ULong      *Type
	LongLong   *Type
	ULongLong  *Type
	SizeT      *Type
	Object     *Type
	CString    *Type
	Utf8String *Type // Deprecated: use CString.

	charPtr *Type
)

// Types indexes the built-in types by name.
var Types = map[string]*Type{}

var (
	foldedTypes   = map[string]*Type{}
	hiddenTypes   = map[string]bool{"Utf8String": true}
	utf8Deprecate sync.Once
)

func init() {
	Void = &Type{
		Name:        "void",
		Indirection: 1,
		Alignment:   1,
		Get:         func(*Buffer, int) (any, error) { return nil, nil },
		Set:         func(*Buffer, int, any) error { return nil },
	}
	Int8 = signedType("int8", reflect.Int8)
	Uint8 = unsignedType("uint8", reflect.Uint8)
	Int16 = signedType("int16", reflect.Int16)
	Uint16 = unsignedType("uint16", reflect.Uint16)
	Int32 = signedType("int32", reflect.Int32)
	Uint32 = unsignedType("uint32", reflect.Uint32)
	Int64 = signedType("int64", reflect.Int64)
	Uint64 = unsignedType("uint64", reflect.Uint64)
	Float = &Type{
		Name:        "float",
		Size:        common.FixedSize(reflect.Float32),
		Indirection: 1,
		Alignment:   common.Alignof["float"],
		Get: func(b *Buffer, off int) (any, error) {
			r, err := regionOf(b)
			if err != nil {
				return nil, err
			}
			return mem.ReadFloat32(r, off)
		},
		Set: func(b *Buffer, off int, v any) error {
			r, err := regionOf(b)
			if err != nil {
				return err
			}
			f, err := toFloat(v)
			if err != nil {
				return err
			}
			if math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
				return errors.Wrapf(ErrOutOfRange, "%v does not fit in float", f)
			}
			return mem.WriteFloat32(r, off, float32(f))
		},
	}
	Double = &Type{
		Name:        "double",
		Size:        common.FixedSize(reflect.Float64),
		Indirection: 1,
		Alignment:   common.Alignof["double"],
		Get: func(b *Buffer, off int) (any, error) {
			r, err := regionOf(b)
			if err != nil {
				return nil, err
			}
			return mem.ReadFloat64(r, off)
		},
		Set: func(b *Buffer, off int, v any) error {
			r, err := regionOf(b)
			if err != nil {
				return err
			}
			f, err := toFloat(v)
			if err != nil {
				return err
			}
			return mem.WriteFloat64(r, off, f)
		},
	}

	signed := map[int]*Type{1: Int8, 2: Int16, 4: Int32, 8: Int64}
	unsigned := map[int]*Type{1: Uint8, 2: Uint16, 4: Uint32, 8: Uint64}
	alias := func(name string, base map[int]*Type) *Type {
		t := CloneType(base[common.Sizeof[name]])
		t.Name = name
		t.Alignment = common.Alignof[name]
		return t
	}
	Bool = boolType()
	Byte = alias("byte", unsigned)
	Char = alias("char", signed)
	UChar = alias("uchar", unsigned)
	Short = alias("short", signed)
	UShort = alias("ushort", unsigned)
	Int = alias("int", signed)
	UInt = alias("uint", unsigned)
	Long = alias("long", signed)
	ULong = alias("ulong", unsigned)
	LongLong = alias("longlong", signed)
	ULongLong = alias("ulonglong", unsigned)
	SizeT = alias("size_t", unsigned)

	Object = &Type{
		Name:        "Object",
		Size:        common.Sizeof["Object"],
		Indirection: 1,
		Alignment:   common.Alignof["Object"],
		Get:         ReadObject,
		Set:         WriteObject,
	}
	CString = &Type{
		Name:        "CString",
		Size:        common.PointerSize,
		Indirection: 1,
		Alignment:   common.Alignof["pointer"],
		Get:         cstringGet,
		Set:         cstringSet,
	}
	Utf8String = CloneType(CString)
	Utf8String.Name = "Utf8String"
	Utf8String.Get = func(b *Buffer, off int) (any, error) {
		warnUtf8String()
		return cstringGet(b, off)
	}
	Utf8String.Set = func(b *Buffer, off int, v any) error {
		warnUtf8String()
		return cstringSet(b, off, v)
	}

	for _, t := range []*Type{
		Void, Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64, Float, Double,
		Bool, Byte, Char, UChar, Short, UShort, Int, UInt, Long, ULong, LongLong, ULongLong,
		SizeT, Object, CString, Utf8String,
	} {
		Types[t.Name] = t
		foldedTypes[strings.ToLower(t.Name)] = t
	}

	charPtr = refType(Char)
	NULL = newBuffer(mem.Null, Void)
	ptr, err := Ref(NULL)
	if err != nil {
		panic(err)
	}
	NULLPointer = ptr
}

// warnUtf8String reports the deprecation once. A logger that drops warnings,
// like the silent library default, is bypassed in favor of warnOut.
func warnUtf8String() {
	utf8Deprecate.Do(func() {
		l := logger()
		if l.GetLevel() > zerolog.WarnLevel {
			w := logging.Build("cref", logging.Config{Level: zerolog.WarnLevel, NoColor: true, Out: warnOut})
			l = &w
		}
		l.Warn().Msg("Utf8String is deprecated, use CString instead")
	})
}

// signedType builds an integer type whose width comes from kind.
func signedType(name string, kind reflect.Kind) *Type {
	if !common.IsFixedKind(kind) {
		panic("cref: " + kind.String() + " has no fixed width")
	}
	size := common.FixedSize(kind)
	t := &Type{
		Name:        name,
		Size:        size,
		Indirection: 1,
		Alignment:   common.Alignof[name],
	}
	bits := size * 8
	if size == 8 {
		t.Get, t.Set = ReadInt64, WriteInt64
		return t
	}
	t.Get = func(b *Buffer, off int) (any, error) {
		r, err := regionOf(b)
		if err != nil {
			return nil, err
		}
		switch size {
		case 1:
			return mem.ReadInt8(r, off)
		case 2:
			return mem.ReadInt16(r, off)
		default:
			return mem.ReadInt32(r, off)
		}
	}
	t.Set = func(b *Buffer, off int, v any) error {
		r, err := regionOf(b)
		if err != nil {
			return err
		}
		if s, ok := v.(string); ok && size == 1 {
			v = firstByte(s)
		}
		n, err := toSigned(v, bits)
		if err != nil {
			return errors.Wrapf(err, "set %s", name)
		}
		switch size {
		case 1:
			return mem.WriteInt8(r, off, int8(n))
		case 2:
			return mem.WriteInt16(r, off, int16(n))
		default:
			return mem.WriteInt32(r, off, int32(n))
		}
	}
	return t
}

// unsignedType builds an integer type whose width comes from kind.
func unsignedType(name string, kind reflect.Kind) *Type {
	if !common.IsFixedKind(kind) {
		panic("cref: " + kind.String() + " has no fixed width")
	}
	size := common.FixedSize(kind)
	t := &Type{
		Name:        name,
		Size:        size,
		Indirection: 1,
		Alignment:   common.Alignof[name],
	}
	bits := size * 8
	if size == 8 {
		t.Get, t.Set = ReadUInt64, WriteUInt64
		return t
	}
	t.Get = func(b *Buffer, off int) (any, error) {
		r, err := regionOf(b)
		if err != nil {
			return nil, err
		}
		switch size {
		case 1:
			return mem.ReadUint8(r, off)
		case 2:
			return mem.ReadUint16(r, off)
		default:
			return mem.ReadUint32(r, off)
		}
	}
	t.Set = func(b *Buffer, off int, v any) error {
		r, err := regionOf(b)
		if err != nil {
			return err
		}
		if s, ok := v.(string); ok && size == 1 {
			v = firstByte(s)
		}
		n, err := toUnsigned(v, bits)
		if err != nil {
			return errors.Wrapf(err, "set %s", name)
		}
		switch size {
		case 1:
			return mem.WriteUint8(r, off, uint8(n))
		case 2:
			return mem.WriteUint16(r, off, uint16(n))
		default:
			return mem.WriteUint32(r, off, uint32(n))
		}
	}
	return t
}

func boolType() *Type {
	return &Type{
		Name:        "bool",
		Size:        common.Sizeof["bool"],
		Indirection: 1,
		Alignment:   common.Alignof["bool"],
		Get: func(b *Buffer, off int) (any, error) {
			r, err := regionOf(b)
			if err != nil {
				return nil, err
			}
			v, err := mem.ReadUint8(r, off)
			if err != nil {
				return nil, err
			}
			return v != 0, nil
		},
		Set: func(b *Buffer, off int, v any) error {
			r, err := regionOf(b)
			if err != nil {
				return err
			}
			on, err := toBool(v)
			if err != nil {
				return errors.Wrap(err, "set bool")
			}
			var n uint8
			if on {
				n = 1
			}
			return mem.WriteUint8(r, off, n)
		},
	}
}

// firstByte is the code of a one-character string, as used by char types.
func firstByte(s string) int {
	if s == "" {
		return 0
	}
	return int(s[0])
}

// TypeNames lists the built-in type names in sorted order. Deprecated aliases
// are left out.
func TypeNames() []string {
	names := make([]string, 0, len(Types))
	for name := range Types {
		if !hiddenTypes[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// CoerceType resolves spec to a type. spec may be a *Type, a Type or a type
// string such as "int", "uint8 **", "pointer" or "string".
func CoerceType(spec any) (*Type, error) {
	switch s := spec.(type) {
	case *Type:
		if s == nil {
			return nil, errors.Wrap(ErrInvalidTypeSpecifier, "nil type")
		}
		if s.Size == 0 && s.Indirection == 0 {
			return nil, errors.Wrapf(ErrInvalidTypeSpecifier, "empty type %q", s.Name)
		}
		return s, nil
	case Type:
		if s.Size == 0 && s.Indirection == 0 {
			return nil, errors.Wrapf(ErrInvalidTypeSpecifier, "empty type %q", s.Name)
		}
		return &s, nil
	case string:
		return parseType(s)
	}
	return nil, errors.Wrapf(ErrInvalidTypeSpecifier, "%T", spec)
}

// MustCoerceType is like CoerceType but panics on failure.
func MustCoerceType(spec any) *Type {
	t, err := CoerceType(spec)
	if err != nil {
		panic(err)
	}
	return t
}

func parseType(s string) (*Type, error) {
	if t, ok := Types[s]; ok {
		return t, nil
	}
	name := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch name {
	case "pointer":
		return refType(Void), nil
	case "string":
		return CString, nil
	}
	refs := 0
	for strings.HasSuffix(name, "*") {
		name = name[:len(name)-1]
		refs++
	}
	t, ok := Types[name]
	if !ok {
		t, ok = foldedTypes[name]
	}
	if !ok {
		return nil, errors.Wrapf(ErrInvalidTypeSpecifier, "%q", s)
	}
	for ; refs > 0; refs-- {
		t = refType(t)
	}
	return t, nil
}

// RefType returns a type one level of indirection above spec.
func RefType(spec any) (*Type, error) {
	t, err := CoerceType(spec)
	if err != nil {
		return nil, err
	}
	return refType(t), nil
}

func refType(t *Type) *Type {
	rt := CloneType(t)
	rt.Indirection++
	if rt.Name != "" {
		rt.Name += "*"
	}
	return rt
}

// DerefType returns a type one level of indirection below spec. It fails when
// spec is not a pointer type.
func DerefType(spec any) (*Type, error) {
	t, err := CoerceType(spec)
	if err != nil {
		return nil, err
	}
	if t.Indirection <= 1 {
		return nil, errors.Wrapf(ErrInvalidIndirection, "cannot dereference %q", t.Name)
	}
	rt := CloneType(t)
	rt.Indirection--
	rt.Name = strings.TrimSuffix(rt.Name, "*")
	return rt, nil
}

func CloneType(t *Type) *Type {
	c := *t
	return &c
}

// GetType returns b's tag. An untagged buffer gets a byte-sized default whose
// Get and Set fail; the buffer itself is left untagged.
func GetType(b *Buffer) *Type {
	if b.typ != nil {
		return b.typ
	}
	logger().Debug().Uint64("addr", uint64(b.Address())).Msg("no type on buffer, using default")
	return &Type{
		Size:        b.Len(),
		Indirection: 1,
		Alignment:   1,
		Get: func(*Buffer, int) (any, error) {
			return nil, errors.Wrap(ErrUnknownType, "cannot get")
		},
		Set: func(*Buffer, int, any) error {
			return errors.Wrap(ErrUnknownType, "cannot set")
		},
	}
}
