package registry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telrender/tel/registry"
)

type meshHandle uint32

func TestAddIssuesIncreasingHandlesFromZero(t *testing.T) {

	r := registry.New[meshHandle, string]()

	a := r.Add("cube")
	b := r.Add("sphere")
	c := r.Add("cube")

	assert.Equal(t, meshHandle(0), a)
	assert.Equal(t, meshHandle(1), b)
	assert.Equal(t, meshHandle(2), c)
	assert.Equal(t, 3, r.Len())

	v, ok := r.Find(b)
	require.True(t, ok)
	assert.Equal(t, "sphere", v)
}

func TestFindUnknownHandle(t *testing.T) {

	r := registry.New[meshHandle, *int]()
	r.Add(new(int))

	v, ok := r.Find(42)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestRemovedHandlesAreNotReused(t *testing.T) {

	r := registry.New[meshHandle, string]()
	a := r.Add("a")

	v, err := r.Remove(a)
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	_, ok := r.Find(a)
	assert.False(t, ok)

	b := r.Add("b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, meshHandle(1), b)

	_, err = r.Remove(a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrUnknownHandle))
	assert.Contains(t, err.Error(), "0")
}

func TestEachVisitsInHandleOrder(t *testing.T) {

	r := registry.New[meshHandle, int]()
	for i := 0; i < 20; i++ {
		r.Add(i * 10)
	}
	_, err := r.Remove(5)
	require.NoError(t, err)

	visited := []meshHandle{}
	r.Each(func(h meshHandle, v int) {
		assert.Equal(t, int(h)*10, v)
		visited = append(visited, h)
	})

	require.Len(t, visited, 19)
	for i := 1; i < len(visited); i++ {
		assert.Less(t, visited[i-1], visited[i])
	}
	assert.NotContains(t, visited, meshHandle(5))
}

func TestZeroValueRegistryIsUsable(t *testing.T) {

	var r registry.Registry[meshHandle, string]
	h := r.Add("x")
	assert.Equal(t, meshHandle(0), h)
	assert.Equal(t, 1, r.Len())
}
