package spill

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string
	Count int
	Tags  []string
}

func TestSpill(t *testing.T) {
	t.Run("New uses the given directory", func(t *testing.T) {
		dir := t.TempDir()

		s, err := New[int](dir)
		require.NoError(t, err)
		defer s.Close()

		require.Contains(t, s.Path(), dir)
	})

	t.Run("Append and Get", func(t *testing.T) {
		s, err := New[string](t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Append("first"))
		require.NoError(t, s.Append("second"))

		val, err := s.Get(0)
		require.NoError(t, err)
		require.Equal(t, "first", val)

		val, err = s.Get(1)
		require.NoError(t, err)
		require.Equal(t, "second", val)

		val, err = s.Get(3)
		require.Error(t, err)
		require.Equal(t, "", val)
	})

	t.Run("AppendBatch and Len", func(t *testing.T) {
		s, err := New[int](t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		require.Equal(t, uint64(0), s.Len())
		require.NoError(t, s.AppendBatch([]int{10, 20, 30}))
		require.Equal(t, uint64(3), s.Len())
	})

	t.Run("Range stops on callback error", func(t *testing.T) {
		s, err := New[int](t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.AppendBatch([]int{1, 2, 3}))

		stop := errors.New("stop here")

		var seen []int
		err = s.Range(func(_ uint64, item int) error {
			seen = append(seen, item)
			if item == 2 {
				return stop
			}
			return nil
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, []int{1, 2}, seen)
	})

	t.Run("zero fields do not leak between items", func(t *testing.T) {
		s, err := New[record](t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Append(record{Name: "a", Count: 2, Tags: []string{"x"}}))
		require.NoError(t, s.Append(record{Name: "b"}))

		items, err := s.Collect()
		require.NoError(t, err)
		assert.Equal(t, []record{{Name: "a", Count: 2, Tags: []string{"x"}}, {Name: "b"}}, items)
	})

	t.Run("concurrent appends", func(t *testing.T) {
		s, err := New[int](t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.Append(i))
			}()
		}
		wg.Wait()

		items, err := s.Collect()
		require.NoError(t, err)
		assert.Len(t, items, 20)
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, items)
	})

	t.Run("Close removes the file", func(t *testing.T) {
		s, err := New[int](t.TempDir())
		require.NoError(t, err)
		require.NoError(t, s.Append(1))

		require.NoError(t, s.Close())
		require.NoError(t, s.Close())

		_, err = os.Stat(s.Path())
		assert.True(t, os.IsNotExist(err))

		assert.Error(t, s.Append(2))
		assert.Error(t, s.Range(func(uint64, int) error { return nil }))
	})
}
