package cppon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAccessorsStrictMatch(t *testing.T) {
	b, err := NewBool(true).AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	_, err = NewBool(true).AsInt64()
	assert.ErrorIs(t, err, ErrType)
}

func TestAsStringCollapsesViewAndOwned(t *testing.T) {
	for _, v := range []*Value{
		{kind: StringView, text: "hi"},
		{kind: StringOwned, text: "hi"},
	} {
		s, err := v.AsString()
		require.NoError(t, err)
		assert.Equal(t, "hi", s)
	}
}

func TestBlobDecodesBlobStringInPlace(t *testing.T) {
	v := NewBlobStringFromBase64("SGVsbG8sIFdvcmxkIQ==")
	p, err := v.Blob()
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(*p))
	assert.Equal(t, Blob, v.Kind(), "Blob must mutate a blob-string in place on decode")
}

func TestBlobInvalidBase64(t *testing.T) {
	v := NewBlobStringFromBase64("not base64!!")
	_, err := v.Blob()
	assert.ErrorIs(t, err, ErrInvalidBase64)
}

func TestGetBlobFreeFunction(t *testing.T) {
	v := NewBlob([]byte("raw"))
	p, err := GetBlob(v)
	require.NoError(t, err)
	assert.Equal(t, "raw", string(*p))
}

func TestGetStrictExactKindOnly(t *testing.T) {
	i, err := GetStrict[int64](NewInt64(5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), i)

	_, err = GetStrict[uint64](NewInt64(5))
	assert.ErrorIs(t, err, ErrType)
}

func TestGetStrictContainers(t *testing.T) {
	arr := NewArray()
	arr.arr = append(arr.arr, NewInt64(1), NewInt64(2))
	elems, err := GetStrict[[]*Value](arr)
	require.NoError(t, err)
	assert.Len(t, elems, 2)

	obj := NewObject()
	obj.objectSet("a", NewInt64(1))
	m, err := GetStrict[map[string]*Value](obj)
	require.NoError(t, err)
	assert.Contains(t, m, "a")
}

func TestGetCastNumberLazy(t *testing.T) {
	v := &Value{kind: NumberLazy, text: "42"}
	i, err := GetCast[int64](v)
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)

	f, err := GetCast[float64](v)
	require.NoError(t, err)
	assert.Equal(t, float64(42), f)
}

func TestGetCastCrossNumericKinds(t *testing.T) {
	for _, test := range []struct {
		name     string
		input    *Value
		int64Ok  bool
		expected int64
	}{
		{"uint64 in range", NewUint64(5), true, 5},
		{"double integral", NewDouble(5.0), true, 5},
	} {
		t.Run(test.name, func(t *testing.T) {
			i, err := GetCast[int64](test.input)
			if test.int64Ok {
				require.NoError(t, err)
				assert.Equal(t, test.expected, i)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetCastRangeErrors(t *testing.T) {
	_, err := GetCast[int64](NewUint64(^uint64(0)))
	assert.ErrorIs(t, err, ErrRange)

	_, err = GetCast[uint64](NewInt64(-1))
	assert.ErrorIs(t, err, ErrRange)

	_, err = GetCast[int64](NewDouble(1.5))
	assert.ErrorIs(t, err, ErrRange)
}

func TestGetCastStringNeverConvertsNumeric(t *testing.T) {
	_, err := GetCast[string](NewInt64(5))
	assert.True(t, errors.Is(err, ErrType))
}
