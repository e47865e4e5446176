package collection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollection_SetKeepsPosition(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Set("a", 10)

	require.Equal(t, []string{"a", "b", "c"}, c.Keys())
	require.Equal(t, []int{10, 2, 3}, c.Values())
	require.Equal(t, 3, c.Len())

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 10, v)

	_, ok = c.Get("z")
	require.False(t, ok)
}

func TestCollection_Delete(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 1)
	c.Set("b", 2)

	require.True(t, c.Delete("a"))
	require.False(t, c.Delete("a"))
	require.False(t, c.Has("a"))
	require.Equal(t, []string{"b"}, c.Keys())

	c.Set("a", 3)
	require.Equal(t, []string{"b", "a"}, c.Keys())

	c.Clear()
	require.Zero(t, c.Len())
	_, ok := c.First()
	require.False(t, ok)
}

func TestCollection_RangeIsRestartable(t *testing.T) {
	c := New[int, string]()
	c.Set(3, "c")
	c.Set(1, "a")
	c.Set(2, "b")

	collect := func(limit int) []string {
		var out []string
		c.Range(func(_ int, v string) bool {
			out = append(out, v)
			return len(out) < limit
		})
		return out
	}

	require.Equal(t, []string{"c", "a"}, collect(2))
	require.Equal(t, []string{"c", "a", "b"}, collect(10))
}

func TestCollection_Helpers(t *testing.T) {
	c := New[string, int]()
	c.Set("x", 5)
	c.Set("y", 1)
	c.Set("z", 5)

	first, ok := c.First()
	require.True(t, ok)
	require.Equal(t, 5, first)

	v, ok := c.Find(func(v int) bool { return v < 3 })
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = c.Find(func(v int) bool { return v > 100 })
	require.False(t, ok)

	big := c.Filter(func(v int) bool { return v == 5 })
	require.Equal(t, []string{"x", "z"}, big.Keys())

	require.Equal(t, []int{5, 5, 1}, c.Sorted(func(a, b int) bool { return a > b }))
	require.Equal(t, []int{5, 1, 5}, c.Values())
}

func TestCollection_ConcurrentSet(t *testing.T) {
	c := New[int, int]()

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(i%10, i)
			c.Values()
		}(i)
	}
	wg.Wait()

	require.Equal(t, 10, c.Len())
}
