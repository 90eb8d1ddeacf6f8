package registry

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocked_Basics(t *testing.T) {
	l := NewLocked[string, *testNode]()
	node := &testNode{value: 42}

	l.Add(node, "carA", "speed")
	assert.True(t, l.Contains("carA:speed"))
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, []string{"carA:speed"}, l.Keys())
	assert.Equal(t, ':', l.Traits().Delimiter())

	n, ok := l.Find("carA:speed")
	require.True(t, ok)
	assert.Equal(t, 42, n.value)

	n, err := l.At("carA:speed")
	require.NoError(t, err)
	assert.Same(t, node, n)

	_, err = l.At("carB:speed")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.True(t, l.Erase("carA:speed"))
	assert.True(t, node.released)

	l.Add(&testNode{}, "x")
	l.Clear()
	assert.Equal(t, 0, l.Len())
}

func TestLocked_RangeAllowsMutation(t *testing.T) {
	l := NewLocked[string, *testNode]()
	l.Add(&testNode{value: 1}, "one")
	l.Add(&testNode{value: 2}, "two")

	l.Range(func(k string, n *testNode) bool {
		l.Add(&testNode{value: n.value * 10}, "new", k)
		return true
	})

	assert.Equal(t, 4, l.Len())
	assert.True(t, l.Contains("new:one"))
	assert.True(t, l.Contains("new:two"))
}

func TestLocked_Do(t *testing.T) {
	l := NewLocked[string, *testNode]()
	l.Add(&testNode{value: 1}, "a")

	l.Do(func(r *Registry[string, *testNode]) {
		n, ok := r.Find("a")
		require.True(t, ok)
		r.Add(&testNode{value: n.value + 1}, "b")
	})

	n, ok := l.Find("b")
	require.True(t, ok)
	assert.Equal(t, 2, n.value)
}

func TestLocked_ConcurrentAdd(t *testing.T) {
	l := NewLocked[string, *testNode]()
	var wg sync.WaitGroup

	for i := range 200 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Add(&testNode{value: i}, "node", fmt.Sprint(i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 200, l.Len())
	for i := range 200 {
		n, ok := l.Find("node:" + fmt.Sprint(i))
		require.True(t, ok)
		assert.Equal(t, i, n.value)
	}
}

func TestLocked_ConcurrentReadWrite(t *testing.T) {
	l := NewLocked[string, *testNode]()
	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := range 50 {
				l.Add(&testNode{value: j}, fmt.Sprint(i), fmt.Sprint(j))
			}
		}(i)
		go func() {
			defer wg.Done()
			for range 50 {
				l.Keys()
				l.Len()
				l.Contains("0:0")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, l.Len())
}

func TestLocked_GetOrAdd(t *testing.T) {
	l := NewLocked[string, *testNode]()
	var calls atomic.Int32
	factory := func() *testNode {
		calls.Add(1)
		return &testNode{value: 42}
	}

	var wg sync.WaitGroup
	results := make([]*testNode, 100)
	for i := range 100 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.GetOrAdd("shared", factory)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, l.Len())
	for _, n := range results {
		assert.Same(t, results[0], n)
	}
}
