// Package hdrhistogram implements a High Dynamic Range histogram: a
// fixed-memory structure that records non-negative integer values spanning
// many orders of magnitude while preserving a configurable number of
// significant decimal digits across the whole range.
//
// A Histogram is sized once at construction from the highest value it needs
// to track and the precision it must preserve, and never reallocates its
// backing counter array afterwards. It is not safe for concurrent use;
// callers that need concurrent recording should shard one Histogram per
// writer and merge externally.
package hdrhistogram

import (
	"fmt"
	"math"
)

// Histogram records the distribution of non-negative integer values (like
// latencies) with high dynamic range and a bounded, configurable degree of
// relative precision.
type Histogram struct {
	highestTrackableValue uint64
	significantDigits     int64

	subBucketHalfCountMagnitude uint32
	subBucketHalfCount          uint32
	subBucketMask               uint64
	subBucketCount              uint32
	bucketCount                 uint32
	countsArrayLength           uint32

	totalCount uint64
	counts     []uint64
}

// New builds a Histogram able to track values in [0, highestTrackableValue]
// while preserving significantDigits decimal digits of relative precision.
// It returns a *ConfigError if highestTrackableValue is below 2 or
// significantDigits falls outside [1, 5].
func New(highestTrackableValue uint64, significantDigits int) (*Histogram, error) {
	if significantDigits < 1 || 5 < significantDigits {
		return nil, &ConfigError{
			Param: "significantDigits",
			Value: int64(significantDigits),
			Msg:   "must be in [1, 5]",
		}
	}
	if highestTrackableValue < 2 {
		return nil, &ConfigError{
			Param: "highestTrackableValue",
			Value: int64(highestTrackableValue),
			Msg:   "must be >= 2",
		}
	}

	largestValueWithSingleUnitResolution := 2 * pow10(int64(significantDigits))
	subBucketCountMagnitude := uint32(math.Ceil(math.Log2(float64(largestValueWithSingleUnitResolution))))

	subBucketHalfCountMagnitude := subBucketCountMagnitude
	if subBucketHalfCountMagnitude < 1 {
		subBucketHalfCountMagnitude = 1
	}
	subBucketHalfCountMagnitude--

	subBucketCount := uint32(1) << (subBucketHalfCountMagnitude + 1)
	subBucketHalfCount := subBucketCount / 2
	subBucketMask := uint64(subBucketCount - 1)

	// Smallest bucket count B such that (subBucketCount-1)*2^(B-1) >= highestTrackableValue.
	trackableValue := uint64(subBucketCount - 1)
	bucketsNeeded := uint32(1)
	for trackableValue < highestTrackableValue {
		trackableValue <<= 1
		bucketsNeeded++
	}
	bucketCount := bucketsNeeded

	countsArrayLength := (bucketCount + 1) * subBucketHalfCount

	return &Histogram{
		highestTrackableValue:       highestTrackableValue,
		significantDigits:           int64(significantDigits),
		subBucketHalfCountMagnitude: subBucketHalfCountMagnitude,
		subBucketHalfCount:          subBucketHalfCount,
		subBucketMask:               subBucketMask,
		subBucketCount:              subBucketCount,
		bucketCount:                 bucketCount,
		countsArrayLength:           countsArrayLength,
		counts:                      make([]uint64, countsArrayLength),
	}, nil
}

// HighestTrackableValue returns the upper bound supplied at construction.
func (h *Histogram) HighestTrackableValue() uint64 { return h.highestTrackableValue }

// SignificantDigits returns the precision, in decimal digits, supplied at
// construction.
func (h *Histogram) SignificantDigits() int64 { return h.significantDigits }

// Reset clears all recorded counts and the total count without releasing or
// resizing the backing counter array.
func (h *Histogram) Reset() {
	h.totalCount = 0
	for i := range h.counts {
		h.counts[i] = 0
	}
}

// String renders the histogram's derived layout constants as a single
// human-readable line. The format is not stable and exists for diagnostics
// only.
func (h *Histogram) String() string {
	return fmt.Sprintf(
		"highestTrackableValue: %d, significantDigits: %d, subBucketHalfCountMagnitude: %d, "+
			"subBucketHalfCount: %d, subBucketMask: %d, subBucketCount: %d, bucketCount: %d, countsArrayLength: %d",
		h.highestTrackableValue, h.significantDigits, h.subBucketHalfCountMagnitude,
		h.subBucketHalfCount, h.subBucketMask, h.subBucketCount, h.bucketCount, h.countsArrayLength,
	)
}

func pow10(exp int64) int64 {
	n := int64(1)
	for ; exp > 0; exp-- {
		n *= 10
	}
	return n
}
