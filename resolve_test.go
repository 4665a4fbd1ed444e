package cppon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathsRewritesPathToPointer(t *testing.T) {
	root := NewObject()
	target := NewInt64(9)
	root.objectSet("target", target)
	root.objectSet("ref", NewPath("/target"))

	report, err := ResolvePaths(root, true)
	require.NoError(t, err)
	assert.Empty(t, report.Unresolved)

	ref := root.objectGet("ref")
	require.Equal(t, Pointer, ref.Kind())
	p, err := ref.AsPointer()
	require.NoError(t, err)
	assert.Same(t, target, p)
}

func TestResolvePathsStrictFailsOnUnresolved(t *testing.T) {
	root := NewObject()
	root.objectSet("ref", NewPath("/missing"))

	_, err := ResolvePaths(root, true)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestResolvePathsNonStrictCollectsReport(t *testing.T) {
	root := NewObject()
	root.objectSet("ref", NewPath("/missing"))

	report, err := ResolvePaths(root, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/missing"}, report.Unresolved)
	assert.Equal(t, Path, root.objectGet("ref").Kind(), "an unresolved path Value is left as-is")
}

func TestResolvePathsWalksNestedContainers(t *testing.T) {
	root := NewObject()
	inner := NewArray()
	inner.arr = append(inner.arr, NewPath("/target"))
	root.objectSet("arr", inner)
	root.objectSet("target", NewInt64(1))

	_, err := ResolvePaths(root, true)
	require.NoError(t, err)
	assert.Equal(t, Pointer, inner.arr[0].Kind())
}
