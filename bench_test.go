package cref

import (
	"testing"
)

func BenchmarkAllocValueInt32(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = AllocValue(Int32, i&0x7fff)
	}
}

func BenchmarkRefDeref(b *testing.B) {
	v, _ := AllocValue(Double, 1.25)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p, _ := Ref(v)
		_, _ = Deref(p)
	}
}

func BenchmarkWriteInt64Native(b *testing.B) {
	buf := NewBuffer(make([]byte, 8))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = WriteInt64(buf, 0, int64(i))
	}
}

func BenchmarkWriteInt64Swapped(b *testing.B) {
	buf := NewBuffer(make([]byte, 8))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = WriteInt64BE(buf, 0, int64(i))
		_ = WriteInt64LE(buf, 0, int64(i))
	}
}

func BenchmarkCStringRoundTrip(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s, _ := AllocValue(CString, "hello world")
		_, _ = Deref(s)
	}
}

func BenchmarkCoerceType(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = CoerceType("ulong **")
	}
}
