package hdrhistogram

// RecordValue increments the counter for v and the total count. It returns
// ErrOutOfRange, leaving the histogram unchanged, when v exceeds
// HighestTrackableValue.
func (h *Histogram) RecordValue(v uint64) error {
	if v > h.highestTrackableValue {
		return ErrOutOfRange
	}
	idx, ok := h.countsIndexFor(v)
	if !ok {
		return ErrOutOfRange
	}
	h.counts[idx]++
	h.totalCount++
	return nil
}

// RecordCorrectedValue records v, then compensates for coordinated omission
// by synthesizing additional samples at expectedInterval below v: v -
// expectedInterval, v - 2*expectedInterval, and so on, down to and including
// the last value that is still at least expectedInterval. Each synthesized
// sample is recorded through RecordValue and counts toward the total.
//
// This models the load an observer would have seen had it not been blocked
// for the duration between samples — e.g. a GC pause or an overloaded
// recorder that missed ticks it should have measured.
func (h *Histogram) RecordCorrectedValue(v, expectedInterval uint64) error {
	if err := h.RecordValue(v); err != nil {
		return err
	}

	if expectedInterval == 0 || v <= expectedInterval {
		return nil
	}

	for missingValue := v - expectedInterval; missingValue >= expectedInterval; missingValue -= expectedInterval {
		if err := h.RecordValue(missingValue); err != nil {
			return err
		}
	}
	return nil
}
