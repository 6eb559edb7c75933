package nodegraph

// RunBatches drives the "slow update" clock shared by ops like filters and
// signal generators. It walks sample index i over
// [start,end), calling onSlowUpdate whenever the countdown in
// samplesUntilUpdate reaches zero and calling onSamples(i) for every
// sample in the range.
//
// onSlowUpdate returns the update rate to use going forward: a node that
// retunes its own cadence (e.g. a signal generator reading a "update_rate"
// input) applies the new value at the very next boundary, within the same
// call, rather than one block late. A node that never changes its rate
// just returns the same value it was given.
//
// samplesUntilUpdate is caller-owned and carries its residual value across
// calls, so a node whose slow-update boundary doesn't line up with a
// block boundary still ticks on schedule rather than resetting every
// block.
func RunBatches(updateRate int32, samplesUntilUpdate *int32, start, end int32, onSlowUpdate func() int32, onSamples func(i int32)) {
	if updateRate <= 0 {
		updateRate = 1
	}
	for i := start; i < end; i++ {
		if *samplesUntilUpdate <= 0 {
			updateRate = onSlowUpdate()
			if updateRate <= 0 {
				updateRate = 1
			}
			*samplesUntilUpdate = updateRate
		}
		onSamples(i)
		*samplesUntilUpdate--
	}
}
