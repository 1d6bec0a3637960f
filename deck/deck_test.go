package deck

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	utils "github.com/minaorangina/concentration/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func faceCounts(faces []Face) map[Face]int {
	counts := map[Face]int{}
	for _, f := range faces {
		counts[f]++
	}
	return counts
}

func TestBuild(t *testing.T) {
	catalog := []Face{"A", "B", "C", "D", "E"}

	t.Run("every face appears exactly twice", func(t *testing.T) {
		for pairCount := 1; pairCount <= len(catalog); pairCount++ {
			b := NewBuilder(rand.New(rand.NewSource(int64(pairCount))), 0)
			d, err := b.Build(catalog, pairCount)
			require.NoError(t, err)

			utils.AssertEqual(t, len(d), 2*pairCount)
			utils.AssertEqual(t, d.PairCount(), pairCount)

			counts := faceCounts(d.Faces())
			utils.AssertEqual(t, len(counts), pairCount)
			for _, f := range catalog[:pairCount] {
				utils.AssertEqual(t, counts[f], 2)
			}
		}
	})

	t.Run("three faces, three pairs", func(t *testing.T) {
		b := NewBuilder(rand.New(rand.NewSource(7)), 0)
		d, err := b.Build([]Face{"A", "B", "C"}, 3)
		require.NoError(t, err)

		utils.AssertEqual(t, len(d), 6)
		utils.AssertDeepEqual(t, faceCounts(d.Faces()), map[Face]int{"A": 2, "B": 2, "C": 2})
	})

	t.Run("cards are face down with ids in order", func(t *testing.T) {
		b := NewBuilder(nil, 0)
		d, err := b.Build(catalog, 4)
		require.NoError(t, err)

		for i, c := range d {
			utils.AssertEqual(t, c.ID(), i)
			utils.AssertEqual(t, c.Orientation(), FaceDown)
		}
	})

	t.Run("takes the first faces of the catalog", func(t *testing.T) {
		b := NewBuilder(rand.New(rand.NewSource(1)), 0)
		d, err := b.Build(catalog, 2)
		require.NoError(t, err)

		counts := faceCounts(d.Faces())
		assert.Equal(t, 2, counts["A"])
		assert.Equal(t, 2, counts["B"])
		assert.Zero(t, counts["C"])
	})

	t.Run("rejects too many pairs", func(t *testing.T) {
		b := NewBuilder(nil, 0)
		d, err := b.Build(catalog, len(catalog)+1)
		utils.AssertErrored(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration))
		assert.Nil(t, d)
	})

	t.Run("rejects repeated faces", func(t *testing.T) {
		b := NewBuilder(nil, 0)
		_, err := b.Build([]Face{"A", "B", "A"}, 3)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)

		t.Log("but repeats beyond the pairs in play are ignored")
		_, err = b.Build([]Face{"A", "B", "A"}, 2)
		assert.NoError(t, err)
	})

	t.Run("rejects no pairs", func(t *testing.T) {
		b := NewBuilder(nil, 0)
		_, err := b.Build(catalog, 0)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestShuffle(t *testing.T) {
	t.Run("is a permutation", func(t *testing.T) {
		faces := []Face{"A", "B", "C", "D", "A", "B", "C", "D"}
		shuffled := append([]Face{}, faces...)
		Shuffle(shuffled, rand.New(rand.NewSource(42)))

		sortFaces(faces)
		sortFaces(shuffled)
		utils.AssertDeepEqual(t, shuffled, faces)
	})

	t.Run("is deterministic for a seed", func(t *testing.T) {
		a := []Face{"A", "B", "C", "D", "E", "F"}
		b := append([]Face{}, a...)
		Shuffle(a, rand.New(rand.NewSource(3)))
		Shuffle(b, rand.New(rand.NewSource(3)))
		utils.AssertDeepEqual(t, a, b)
	})

	t.Run("reaches every arrangement of three", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		seen := map[string]int{}
		for i := 0; i < 6000; i++ {
			faces := []Face{"A", "B", "C"}
			Shuffle(faces, rng)
			seen[string(faces[0])+string(faces[1])+string(faces[2])]++
		}

		utils.AssertEqual(t, len(seen), 6)
		for arrangement, n := range seen {
			assert.InDeltaf(t, 1000, n, 150, "arrangement %s", arrangement)
		}
	})

	t.Run("handles tiny slices", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		Shuffle(nil, rng)
		one := []Face{"A"}
		Shuffle(one, rng)
		utils.AssertDeepEqual(t, one, []Face{"A"})
	})
}

func sortFaces(faces []Face) {
	sort.Slice(faces, func(i, j int) bool { return faces[i] < faces[j] })
}

func TestLayout(t *testing.T) {
	t.Run("centres a full grid", func(t *testing.T) {
		got := Layout(4, 2, 1)
		want := []Position{
			{-0.5, 0.5}, {0.5, 0.5},
			{-0.5, -0.5}, {0.5, -0.5},
		}
		utils.AssertDeepEqual(t, got, want)
	})

	t.Run("ten cards in five columns", func(t *testing.T) {
		got := Layout(10, 5, 0.5)
		require.Len(t, got, 10)
		assert.InDelta(t, -1.0, got[0].X, 1e-9)
		assert.InDelta(t, 0.25, got[0].Y, 1e-9)
		assert.InDelta(t, 1.0, got[4].X, 1e-9)
		assert.InDelta(t, -0.25, got[9].Y, 1e-9)
	})

	t.Run("fewer cards than columns", func(t *testing.T) {
		got := Layout(2, 5, 1)
		utils.AssertDeepEqual(t, got, []Position{{-0.5, 0}, {0.5, 0}})
	})

	t.Run("nothing to lay out", func(t *testing.T) {
		assert.Empty(t, Layout(0, 5, 1))
		assert.Empty(t, Layout(4, 0, 1))
	})
}
