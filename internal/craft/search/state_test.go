package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/ids"
)

func TestRootAndItemAt(t *testing.T) {
	root := NewRoot([]int64{10, 20, 30})
	require.Equal(t, 3, root.ItemCount())
	require.Equal(t, int64(-1), root.PairKey())
	require.Equal(t, int64(10), root.ItemAt(0))
	require.Equal(t, int64(30), root.ItemAt(2))
	require.Empty(t, root.UnusedItems())
}

func TestChildRejectsOutOfOrderKey(t *testing.T) {
	root := NewRoot([]int64{10, 20})
	key := ids.Encode(0, 1)
	child, ok := root.Child(key, 99, false)
	require.True(t, ok)

	// A key below the parent's own key is out of canonical order and must
	// be rejected.
	_, ok = child.Child(ids.Encode(0, 0), 100, false)
	require.False(t, ok)

	// Subsequent crafts must use strictly increasing keys.
	_, ok = child.Child(key, 101, false)
	require.False(t, ok)
}

func TestChildRejectsDuplicateResultWhenNotAllowingStartingElements(t *testing.T) {
	root := NewRoot([]int64{10, 20})
	key := ids.Encode(0, 1)

	_, ok := root.Child(key, 10, false)
	require.False(t, ok, "result equal to an existing seed must be rejected")
}

func TestUnusedItemsAndUsedCounts(t *testing.T) {
	root := NewRoot([]int64{10, 20})
	c1, ok := root.Child(ids.Encode(0, 1), 30, false)
	require.True(t, ok)
	require.Equal(t, []int{2}, c1.UnusedItems())

	c2, ok := c1.Child(ids.Encode(0, 2), 40, false)
	require.True(t, ok)
	require.Equal(t, []int{3}, c2.UnusedItems())
	require.Equal(t, 2, c2.Used(0))
	require.Equal(t, 1, c2.Used(2))
	require.Equal(t, 1, c2.Used(1))
}

func TestChildRejectsOutOfRangeKey(t *testing.T) {
	root := NewRoot([]int64{10, 20})
	limit := ids.Limit(2)
	_, ok := root.Child(limit, 30, false)
	require.False(t, ok)
}

func TestAllowStartingElementsRejectsReusingAJustCombinedIngredient(t *testing.T) {
	root := NewRoot([]int64{10, 20, 30})

	// Combining seeds at index 0 and 1 (ids 10, 20); the result can't be
	// either of those two ingredients even in starting-elements mode.
	_, ok := root.Child(ids.Encode(0, 1), 10, true)
	require.False(t, ok)
}

func TestAllowStartingElementsPermitsReusingAnUnconsumedSeed(t *testing.T) {
	root := NewRoot([]int64{10, 20, 30})

	// Combining seeds 0 and 1 to reproduce seed id 30 (index 2, still
	// unused) is fine in starting-elements mode.
	c1, ok := root.Child(ids.Encode(0, 1), 30, true)
	require.True(t, ok)
	require.Equal(t, int64(30), c1.ItemAt(3))

	// But once the original occurrence (index 2) has been consumed, the
	// value can't be reintroduced again from unrelated ingredients.
	c2, ok := c1.Child(ids.Encode(0, 2), 40, true)
	require.True(t, ok)
	require.Equal(t, 1, c2.Used(2))
	_, ok = c2.Child(ids.Encode(1, 4), 30, true)
	require.False(t, ok)
}

func TestKeysOrderingForResumeComparison(t *testing.T) {
	root := NewRoot([]int64{10, 20})
	c1, _ := root.Child(ids.Encode(0, 1), 30, false)
	c2, _ := c1.Child(ids.Encode(0, 2), 40, false)

	require.Equal(t, []int64{ids.Encode(0, 1), ids.Encode(0, 2)}, c2.Keys())
	require.True(t, lessKeys([]int64{1}, []int64{1, 2}))
	require.True(t, lessKeys([]int64{1, 2}, []int64{1, 3}))
	require.False(t, lessKeys([]int64{1, 3}, []int64{1, 2}))
}
