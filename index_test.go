package hdrhistogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBucketIndexZero(t *testing.T) {
	t.Parallel()

	h, err := New(3_600_000_000, 3)
	require.NoError(t, err)

	b := h.getBucketIndex(0)
	assert.EqualValues(t, 0, b)
	s := h.getSubBucketIndex(0, b)
	assert.EqualValues(t, 0, s)
	assert.EqualValues(t, 1, h.sizeOfEquivalentRange(0))
}

func TestRoundTripValueFromIndex(t *testing.T) {
	// P6: valueFromIndex(getBucketIndex(v), getSubBucketIndex(v, b)) == lowestEquivalentValue(v)
	t.Parallel()

	h, err := New(3_600_000_000, 3)
	require.NoError(t, err)

	for _, v := range []uint64{0, 1, 2, 100, 4095, 4096, 1_000_000, 3_600_000_000} {
		b := h.getBucketIndex(v)
		s := h.getSubBucketIndex(v, b)
		assert.Equal(t, h.lowestEquivalentValue(v), valueFromIndex(b, s), "v=%d", v)
	}
}

func TestPrecisionBound(t *testing.T) {
	// P4: |medianEquivalentValue(v) - v| / v <= 10^-significantDigits
	t.Parallel()

	const digits = 3
	h, err := New(3_600_000_000, digits)
	require.NoError(t, err)

	bound := 1.0
	for i := 0; i < digits; i++ {
		bound /= 10
	}

	for v := uint64(1); v < 2_000_000; v += 997 {
		med := h.medianEquivalentValue(v)
		diff := float64(med) - float64(v)
		if diff < 0 {
			diff = -diff
		}
		rel := diff / float64(v)
		assert.LessOrEqual(t, rel, bound, "v=%d median=%d", v, med)
	}
}

func TestValuesAreEquivalentMatchesIndex(t *testing.T) {
	// P5: valuesAreEquivalent(a,b) iff countsIndexFor(a) == countsIndexFor(b)
	// iff lowestEquivalentValue(a) == lowestEquivalentValue(b).
	t.Parallel()

	h, err := New(3_600_000_000, 3)
	require.NoError(t, err)

	pairs := [][2]uint64{
		{1000, 1000},
		{1000, 1001},
		{1000, 1007},
		{1000, 1100},
		{100_000_000, 100_000_001},
		{0, 1},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		idxA, okA := h.countsIndexFor(a)
		idxB, okB := h.countsIndexFor(b)
		require.True(t, okA)
		require.True(t, okB)

		byIndex := idxA == idxB
		byEquiv := h.ValuesAreEquivalent(a, b)
		byLowest := h.lowestEquivalentValue(a) == h.lowestEquivalentValue(b)

		assert.Equal(t, byIndex, byEquiv, "a=%d b=%d", a, b)
		assert.Equal(t, byEquiv, byLowest, "a=%d b=%d", a, b)
	}
}

func TestEquivalentValueInvariant(t *testing.T) {
	// I4: lowestEquivalentValue(v) <= v < lowestEquivalentValue(v) + sizeOfEquivalentRange(v)
	t.Parallel()

	h, err := New(3_600_000_000, 3)
	require.NoError(t, err)

	for v := uint64(0); v < 200_000; v += 1301 {
		low := h.lowestEquivalentValue(v)
		size := h.sizeOfEquivalentRange(v)
		assert.LessOrEqual(t, low, v)
		assert.Less(t, v, low+size)
	}
}
