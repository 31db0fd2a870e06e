package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for a := int64(0); a < 50; a++ {
		for b := int64(0); b < 50; b++ {
			k := Encode(a, b)
			da, db, err := Decode(k)
			require.NoError(t, err)
			want1, want2 := a, b
			if want2 < want1 {
				want1, want2 = want2, want1
			}
			require.Equal(t, want1, da, "a,b=%d,%d k=%d", a, b, k)
			require.Equal(t, want2, db, "a,b=%d,%d k=%d", a, b, k)
		}
	}
}

func TestEncodeOrderIndependent(t *testing.T) {
	require.Equal(t, Encode(3, 7), Encode(7, 3))
}

func TestEncodeStrictlyIncreasing(t *testing.T) {
	// Over unordered pairs ordered by (max, min) lexicographically, Encode
	// must be strictly increasing.
	type pair struct{ a, b int64 }
	var pairs []pair
	for maxV := int64(0); maxV < 20; maxV++ {
		for minV := int64(0); minV <= maxV; minV++ {
			pairs = append(pairs, pair{minV, maxV})
		}
	}
	var prev int64 = -1
	for _, p := range pairs {
		k := Encode(p.a, p.b)
		require.Greater(t, k, prev)
		prev = k
	}
}

func TestDecodeNegative(t *testing.T) {
	_, _, err := Decode(-1)
	require.Error(t, err)
}

func TestLimit(t *testing.T) {
	require.Equal(t, Encode(3, 3)+1, Limit(4))
	require.Equal(t, int64(0), Limit(0))
}

func TestToStartCase(t *testing.T) {
	require.Equal(t, "Water", ToStartCase("water"))
	require.Equal(t, "Big Bang", ToStartCase("big bang"))
	require.Equal(t, "Big Bang", ToStartCase("BIG BANG"))
}

func TestRegistryGetID(t *testing.T) {
	r := NewRegistry()
	r.SetID(NothingName, Nothing)
	r.SetID(UncertainNothingName, UncertainNothing)

	id1 := r.GetID("Water")
	id2 := r.GetID("Water")
	require.Equal(t, id1, id2)

	id3 := r.GetID("Fire")
	require.NotEqual(t, id1, id3)

	require.Equal(t, "Water", r.GetName(id1))
	gotID, ok := r.LookupID("Water")
	require.True(t, ok)
	require.Equal(t, id1, gotID)

	require.Equal(t, Nothing, r.GetID(NothingName))
}
