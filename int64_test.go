package cref

import (
	"encoding/json"
	"math"
	"math/big"
	"os"
	"strconv"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type int64Case struct {
	Name     string `yaml:"name"`
	Value    string `yaml:"value"`
	Unsigned bool   `yaml:"unsigned"`
	Numeric  bool   `yaml:"numeric"`
}

func loadInt64Cases(t *testing.T) []int64Case {
	raw, err := os.ReadFile("testdata/int64.yaml")
	require.NoError(t, err)
	var cases []int64Case
	require.NoError(t, yaml.Unmarshal(raw, &cases))
	require.NotEmpty(t, cases)
	return cases
}

func TestInt64Cases(t *testing.T) {
	for _, c := range loadInt64Cases(t) {
		t.Run(c.Name, func(t *testing.T) {
			b := NewBuffer(make([]byte, 8))
			var got any
			var err error
			if c.Unsigned {
				require.NoError(t, WriteUInt64(b, 0, c.Value))
				got, err = ReadUInt64(b, 0)
			} else {
				require.NoError(t, WriteInt64(b, 0, c.Value))
				got, err = ReadInt64(b, 0)
			}
			require.NoError(t, err)
			switch v := got.(type) {
			case int64:
				require.True(t, c.Numeric, "got number %d", v)
				assert.Equal(t, c.Value, strconv.FormatInt(v, 10))
			case uint64:
				require.True(t, c.Numeric, "got number %d", v)
				assert.Equal(t, c.Value, strconv.FormatUint(v, 10))
			case string:
				require.False(t, c.Numeric, "got string %s", v)
				assert.Equal(t, c.Value, v)
			default:
				t.Fatalf("unexpected %T", got)
			}
		})
	}
}

func TestWriteInt64Inputs(t *testing.T) {
	b := NewBuffer(make([]byte, 8))
	inputs := map[string]any{
		"int":         123456789,
		"float":       float64(1 << 53),
		"json number": json.Number("-42"),
		"big":         big.NewInt(math.MinInt64),
		"uint32":      uint32(7),
	}
	want := map[string]any{
		"int":         int64(123456789),
		"float":       int64(1 << 53),
		"json number": int64(-42),
		"big":         "-9223372036854775808",
		"uint32":      int64(7),
	}
	for name, in := range inputs {
		require.NoError(t, WriteInt64(b, 0, in), name)
		got, err := ReadInt64(b, 0)
		require.NoError(t, err)
		assert.Equal(t, want[name], got, name)
	}
}

func TestWriteInt64Invalid(t *testing.T) {
	b := NewBuffer(make([]byte, 8))
	assert.ErrorIs(t, WriteInt64(b, 0, "abc"), ErrInvalidInt64)
	assert.ErrorIs(t, WriteInt64(b, 0, "9223372036854775808"), ErrInvalidInt64)
	assert.ErrorIs(t, WriteUInt64(b, 0, "-1"), ErrInvalidInt64)
	assert.ErrorIs(t, WriteInt64(b, 0, new(big.Int).Lsh(big.NewInt(1), 64)), ErrInvalidInt64)
	assert.ErrorIs(t, WriteInt64(b, 0, 1.5), ErrInvalidValue)
	assert.ErrorIs(t, WriteUInt64(b, 0, -1), ErrOutOfRange)
	assert.ErrorIs(t, WriteInt64(nil, 0, 1), ErrNotABuffer)
	assert.Error(t, WriteInt64(NewBuffer(make([]byte, 4)), 0, 1))
}

func TestInt64ExplicitEndian(t *testing.T) {
	b := NewBuffer(make([]byte, 8))
	require.NoError(t, WriteInt64LE(b, 0, int64(0x0102030405060708)))
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, b.Bytes())
	v, err := b.ReadInt64BE(0)
	require.NoError(t, err)
	assert.Equal(t, "578437695752307201", v)

	require.NoError(t, b.WriteUInt64BE(0, uint64(0x0102030405060708)))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, b.Bytes())
	v, err = b.ReadUInt64LE(0)
	require.NoError(t, err)
	assert.Equal(t, "578437695752307201", v)

	_, err = ReadInt64BE(NewBuffer(make([]byte, 7)), 0)
	assert.Error(t, err)
}

func TestInt64EndianRoundTrip(t *testing.T) {
	b := NewBuffer(make([]byte, 8))
	check := func(n int64, u uint64) bool {
		require.NoError(t, WriteInt64LE(b, 0, n))
		le, err := ReadInt64LE(b, 0)
		require.NoError(t, err)
		require.NoError(t, b.WriteInt64BE(0, n))
		be, err := ReadInt64BE(b, 0)
		require.NoError(t, err)
		require.NoError(t, WriteUInt64BE(b, 0, u))
		ube, err := ReadUInt64BE(b, 0)
		require.NoError(t, err)
		require.NoError(t, b.WriteUInt64LE(0, u))
		ule, err := b.ReadUInt64LE(0)
		require.NoError(t, err)
		return le == int64Value(n) && be == int64Value(n) &&
			ube == uint64Value(u) && ule == uint64Value(u)
	}
	require.NoError(t, quick.Check(check, &quick.Config{}))
}

func FuzzInt64RoundTrip(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(MaxSafeInteger + 1))
	f.Add(int64(math.MinInt64))
	f.Fuzz(func(t *testing.T, n int64) {
		b := NewBuffer(make([]byte, 8))
		require.NoError(t, WriteInt64(b, 0, n))
		got, err := ReadInt64(b, 0)
		require.NoError(t, err)
		// feeding the read value back in must reproduce the same bytes
		before := append([]byte(nil), b.Bytes()...)
		require.NoError(t, WriteInt64(b, 0, got))
		assert.Equal(t, before, b.Bytes())
	})
}
