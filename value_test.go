package cppon

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for _, test := range []struct {
		input    Kind
		expected string
	}{
		{Null, "null"},
		{Bool, "bool"},
		{NumberLazy, "number-lazy"},
		{Int64, "int64"},
		{Uint64, "uint64"},
		{Double, "double"},
		{StringView, "string-view"},
		{StringOwned, "string-owned"},
		{Array, "array"},
		{Object, "object"},
		{Blob, "blob"},
		{BlobString, "blob-string"},
		{Path, "path"},
		{Pointer, "pointer"},
		{numKinds, "<unknown>"},
		{kindUnknown, "<unknown>"},
		{100, "<unknown>"},
	} {
		t.Run(fmt.Sprintf("%v", test.input), func(t *testing.T) {
			assert.Equal(t, test.expected, test.input.String())
		})
	}
}

func TestValueKindNilReceiver(t *testing.T) {
	var v *Value
	assert.Equal(t, Null, v.Kind())
	assert.True(t, v.IsNull())
}

func TestConstructorsRoundtripKind(t *testing.T) {
	for _, test := range []struct {
		name     string
		val      *Value
		expected Kind
	}{
		{"null", NewNull(), Null},
		{"bool", NewBool(true), Bool},
		{"int64", NewInt64(-5), Int64},
		{"uint64", NewUint64(5), Uint64},
		{"double", NewDouble(1.5), Double},
		{"string", NewString("hi"), StringOwned},
		{"array", NewArray(), Array},
		{"object", NewObject(), Object},
		{"blob", NewBlob([]byte("hi")), Blob},
		{"blob-string", NewBlobStringFromBase64("aGk="), BlobString},
		{"path", NewPath("/a/b"), Path},
		{"pointer", NewPointer(NewNull()), Pointer},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.val.Kind())
		})
	}
}

func TestObjectSetDuplicateKeyLastWins(t *testing.T) {
	obj := NewObject()
	obj.objectSet("a", NewInt64(1))
	obj.objectSet("b", NewInt64(2))
	obj.objectSet("a", NewInt64(3))

	require.Equal(t, 2, obj.Len())
	members, err := obj.Members()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "a", members[0].Name)
	assert.Equal(t, "b", members[1].Name)

	a, err := GetStrict[int64](obj.objectGet("a"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), a)
}

func TestValueLen(t *testing.T) {
	arr := NewArray()
	arr.arr = append(arr.arr, NewNull(), NewNull())
	assert.Equal(t, 2, arr.Len())
	assert.Equal(t, 0, NewInt64(5).Len())
}

func TestSetReplacesInPlace(t *testing.T) {
	v := NewInt64(1)
	child := v
	v.set(NewString("now a string"))
	assert.Equal(t, StringOwned, child.Kind())
	s, err := child.AsString()
	require.NoError(t, err)
	assert.Equal(t, "now a string", s)
}

func TestAssign(t *testing.T) {
	for _, test := range []struct {
		name     string
		input    any
		expected Kind
	}{
		{"nil", nil, Null},
		{"bool", true, Bool},
		{"int", int(5), Int64},
		{"int64", int64(5), Int64},
		{"uint", uint(5), Uint64},
		{"float64", float64(1.5), Double},
		{"string", "hi", StringOwned},
		{"bytes", []byte("hi"), Blob},
	} {
		t.Run(test.name, func(t *testing.T) {
			v := NewNull()
			v.Assign(test.input)
			assert.Equal(t, test.expected, v.Kind())
		})
	}
}

func TestAssignPointer(t *testing.T) {
	target := NewInt64(42)
	v := NewNull()
	v.Assign(target)
	assert.Equal(t, Pointer, v.Kind())
	p, err := v.AsPointer()
	require.NoError(t, err)
	assert.Same(t, target, p)
}

func TestAssignUnsupportedPanics(t *testing.T) {
	v := NewNull()
	assert.Panics(t, func() { v.Assign(struct{}{}) })
}
