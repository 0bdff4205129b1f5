package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benhoyt-labs/hdrhistogram"
)

func TestRecordAllCountsValidLines(t *testing.T) {
	significantDigits = 3
	expectedInterval = 0
	verbose = false

	h, err := hdrhistogram.New(1_000_000, 3)
	require.NoError(t, err)

	recorded, rejected, err := recordAll(h, strings.NewReader("100\n200\nnot-a-number\n300\n\n"))
	require.NoError(t, err)
	assert.EqualValues(t, 3, recorded)
	assert.EqualValues(t, 1, rejected)
	assert.EqualValues(t, 3, h.GetTotalCount())
}

func TestRecordAllRejectsOutOfRange(t *testing.T) {
	expectedInterval = 0
	verbose = false

	h, err := hdrhistogram.New(1000, 3)
	require.NoError(t, err)

	recorded, rejected, err := recordAll(h, strings.NewReader("500\n5000\n"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, recorded)
	assert.EqualValues(t, 1, rejected)
}

func TestRecordAllAppliesCorrection(t *testing.T) {
	expectedInterval = 10000
	defer func() { expectedInterval = 0 }()
	verbose = false

	h, err := hdrhistogram.New(100_000_000, 3)
	require.NoError(t, err)

	recorded, rejected, err := recordAll(h, strings.NewReader("100000000\n"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, rejected)
	assert.EqualValues(t, 10000, recorded)
	assert.EqualValues(t, 10000, h.GetTotalCount())
}
