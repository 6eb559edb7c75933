package nodegraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wiresound/nodegraph"
)

// TestRunBatchesAppliesRateChangeAtNextBoundary is a regression test for a
// mid-block rate change: onSlowUpdate returning a smaller rate than it was
// called with must shorten the very next countdown, not just the one after
// the call returns.
func TestRunBatchesAppliesRateChangeAtNextBoundary(t *testing.T) {
	var samplesUntilUpdate int32
	var boundaries []int32

	rate := int32(8)
	nodegraph.RunBatches(rate, &samplesUntilUpdate, 0, 20,
		func() int32 {
			if rate == 8 {
				rate = 2
			}
			return rate
		},
		func(i int32) {
			if samplesUntilUpdate == rate {
				boundaries = append(boundaries, i)
			}
		},
	)

	// The first boundary fires at 0 (rate still 8 there), retuning to 2;
	// every boundary after that must be 2 samples apart, not 8.
	assert.Equal(t, []int32{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}, boundaries)
}

// TestRunBatchesHonorsResidualCountdown ensures samplesUntilUpdate carries
// its residual value across separate calls instead of resetting at every
// call boundary.
func TestRunBatchesHonorsResidualCountdown(t *testing.T) {
	var samplesUntilUpdate int32
	var updates int

	onSlowUpdate := func() int32 {
		updates++
		return 10
	}
	onSamples := func(i int32) {}

	nodegraph.RunBatches(10, &samplesUntilUpdate, 0, 5, onSlowUpdate, onSamples)
	nodegraph.RunBatches(10, &samplesUntilUpdate, 0, 5, onSlowUpdate, onSamples)

	assert.Equal(t, 1, updates, "a 10-sample update boundary spanning two 5-sample calls must only fire once")
}
