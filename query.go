package hdrhistogram

// iterator walks the flat counts array in canonical order: bucket 0 visits
// every sub-bucket from 0, each subsequent bucket visits only its upper
// half (subBucketHalfCount..subBucketCount-1), since the lower half
// duplicates the previous bucket's upper half. Traversal stops once the
// running count reaches the histogram's total, so trailing empty slots are
// never visited.
type iterator struct {
	h       *Histogram
	started bool

	bucketIdx    uint32
	subBucketIdx uint32

	countAtIdx   uint64
	countToIdx   uint64
	valueFromIdx uint64
}

func (it *iterator) next() bool {
	if it.countToIdx >= it.h.totalCount {
		return false
	}

	if !it.started {
		it.started = true
		it.bucketIdx = 0
		it.subBucketIdx = 0
	} else {
		it.subBucketIdx++
		if it.subBucketIdx >= it.h.subBucketCount {
			it.subBucketIdx = it.h.subBucketHalfCount
			it.bucketIdx++
		}
	}

	if it.bucketIdx >= it.h.bucketCount {
		return false
	}

	it.countAtIdx = it.h.counts[it.h.countsArrayIndex(it.bucketIdx, it.subBucketIdx)]
	it.countToIdx += it.countAtIdx
	it.valueFromIdx = valueFromIndex(it.bucketIdx, it.subBucketIdx)

	return true
}

// ForAll visits every emitted (value, count) slot in canonical order,
// including zero-count slots that precede a non-empty one. visit must not
// mutate the histogram and must not retain its arguments beyond the call.
func (h *Histogram) ForAll(visit func(value, count uint64)) {
	it := &iterator{h: h}
	for it.next() {
		visit(it.valueFromIdx, it.countAtIdx)
	}
}

// GetTotalCount returns the number of values recorded so far, including any
// samples synthesized by RecordCorrectedValue.
func (h *Histogram) GetTotalCount() uint64 {
	return h.totalCount
}

// GetCountAtValue returns the count of recorded values equivalent to v. It
// returns 0, rather than failing, when v lies beyond the last bucket (which
// can reach above HighestTrackableValue).
func (h *Histogram) GetCountAtValue(v uint64) uint64 {
	idx, ok := h.countsIndexFor(v)
	if !ok {
		return 0
	}
	return h.counts[idx]
}

// GetMinValue returns the value at the first non-zero slot, or 0 if the
// histogram has no recorded values.
func (h *Histogram) GetMinValue() uint64 {
	var min uint64
	it := &iterator{h: h}
	for it.next() {
		if it.countAtIdx != 0 {
			min = h.highestEquivalentValue(it.valueFromIdx)
			break
		}
	}
	return h.lowestEquivalentValue(min)
}

// GetMaxValue returns the value at the last non-zero slot, or 0 if the
// histogram has no recorded values.
func (h *Histogram) GetMaxValue() uint64 {
	var max uint64
	it := &iterator{h: h}
	for it.next() {
		if it.countAtIdx != 0 {
			max = h.highestEquivalentValue(it.valueFromIdx)
		}
	}
	return h.lowestEquivalentValue(max)
}

// GetMeanValue returns the arithmetic mean of recorded values, computed
// from each slot's median equivalent value weighted by its count. It
// returns ErrEmpty when nothing has been recorded.
func (h *Histogram) GetMeanValue() (float64, error) {
	if h.totalCount == 0 {
		return 0, ErrEmpty
	}

	var total uint64
	it := &iterator{h: h}
	for it.next() {
		if it.countAtIdx != 0 {
			total += it.countAtIdx * h.medianEquivalentValue(it.valueFromIdx)
		}
	}
	return float64(total) / float64(h.totalCount), nil
}

// GetValueAtPercentile returns the lowest value at or below which at least
// p percent of recorded observations fall. p is clamped to [0, 100]. It
// returns 0 if the histogram is empty.
func (h *Histogram) GetValueAtPercentile(p float64) uint64 {
	switch {
	case p < 0:
		p = 0
	case p > 100:
		p = 100
	}

	target := uint64((p/100)*float64(h.totalCount) + 0.5)
	if target < 1 {
		target = 1
	}

	var total uint64
	it := &iterator{h: h}
	for it.next() {
		total += it.countAtIdx
		if total >= target {
			return it.valueFromIdx
		}
	}
	return 0
}

// GetPercentileAtOrBelowValue returns the percentage of recorded
// observations at or below v's equivalence class. It returns 100.0 if v
// lies beyond the last bucket, and 0.0 if nothing has been recorded.
func (h *Histogram) GetPercentileAtOrBelowValue(v uint64) float64 {
	targetBucketIdx := h.getBucketIndex(v)
	if targetBucketIdx >= h.bucketCount {
		return 100.0
	}
	if h.totalCount == 0 {
		return 0.0
	}
	targetSubBucketIdx := h.getSubBucketIndex(v, targetBucketIdx)

	var total uint64
	for i := uint32(0); i <= targetBucketIdx; i++ {
		j := uint32(0)
		if i > 0 {
			j = h.subBucketHalfCount
		}
		subBucketCap := h.subBucketCount
		if i == targetBucketIdx {
			subBucketCap = targetSubBucketIdx + 1
		}
		for ; j < subBucketCap; j++ {
			total += h.counts[h.countsArrayIndex(i, j)]
		}
	}

	return 100.0 * float64(total) / float64(h.totalCount)
}

// GetCountBetweenValues returns the sum of counts for every slot whose
// value lies in [LowestEquivalentValue(lo), LowestEquivalentValue(hi)],
// inclusive. It returns 0 if either bound lies beyond the last bucket, or
// if lo and hi are reversed.
func (h *Histogram) GetCountBetweenValues(lo, hi uint64) uint64 {
	loBucketIdx := h.getBucketIndex(lo)
	hiBucketIdx := h.getBucketIndex(hi)
	if loBucketIdx >= h.bucketCount || hiBucketIdx >= h.bucketCount {
		return 0
	}

	loSubBucketIdx := h.getSubBucketIndex(lo, loBucketIdx)
	valueAtLo := valueFromIndex(loBucketIdx, loSubBucketIdx)

	hiSubBucketIdx := h.getSubBucketIndex(hi, hiBucketIdx)
	valueAtHi := valueFromIndex(hiBucketIdx, hiSubBucketIdx)

	var count uint64
	for i := loBucketIdx; i <= hiBucketIdx; i++ {
		j := uint32(0)
		if i > 0 {
			j = h.subBucketHalfCount
		}
		for ; j < h.subBucketCount; j++ {
			val := valueFromIndex(i, j)
			if val > valueAtHi {
				return count
			}
			if val >= valueAtLo {
				count += h.counts[h.countsArrayIndex(i, j)]
			}
		}
	}
	return count
}
