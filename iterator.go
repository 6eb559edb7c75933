package nodegraph

import "github.com/wiresound/nodegraph/internal/smooth"

// ValueIterator is a strided read cursor over a producer's output buffer,
// at whatever level-of-detail (LOD) the producer chose for this process
// call: a consumer asking for N samples from a buffer of ceil(N/lod) slots
// gets a zero-order-hold mapping back onto those slots.
//
// The step accumulator is warm-started to half a step so that whole-number
// boundaries round to the intended slot instead of the previous one due to
// floating point imprecision.
type ValueIterator struct {
	data []float32
	step float32
	pos  float32
}

// NewValueIterator builds an iterator over data, stepping 1/lod per Next.
// lod must be >= 1; lod 1 visits one slot per Next. A lod below 1 (or a
// single-slot buffer) degenerates to a zero step, i.e. every Next returns
// the first slot.
func NewValueIterator(data []float32, lod float32) ValueIterator {
	step := float32(0)
	if lod >= 1 && len(data) > 1 {
		step = 1.0 / lod
	}
	return ValueIterator{data: data, step: step, pos: step * 0.5}
}

// Next returns the value at the current floor-indexed position and
// advances the accumulator by one step.
func (it *ValueIterator) Next() float32 {
	if len(it.data) == 0 {
		return 0
	}
	idx := int32(it.pos)
	if idx < 0 {
		idx = 0
	}
	if int(idx) >= len(it.data) {
		idx = int32(len(it.data)) - 1
	}
	v := it.data[idx]
	it.pos += it.step
	return v
}

// Peek returns the value Next would return, without advancing.
func (it *ValueIterator) Peek() float32 {
	if len(it.data) == 0 {
		return 0
	}
	idx := int32(it.pos)
	if idx < 0 {
		idx = 0
	}
	if int(idx) >= len(it.data) {
		idx = int32(len(it.data)) - 1
	}
	return it.data[idx]
}

// StepsPerIncrement returns how many consumer samples elapse per producer
// slot, i.e. 1/step. Used to auto-tune SmoothedIterator's time constant.
func (it *ValueIterator) StepsPerIncrement() float32 {
	if it.step == 0 {
		return 0
	}
	return 1.0 / it.step
}

// SmoothedIterator wraps a ValueIterator with a first-order IIR filter so a
// coarse-LOD source is heard as a continuous ramp instead of a staircase.
type SmoothedIterator struct {
	iter   ValueIterator
	filter smooth.Filter
}

// NewSmoothedIterator builds a SmoothedIterator over it. The filter's time
// constant is auto-chosen as max(4, samples-per-step) with damping 0.35.
func NewSmoothedIterator(it ValueIterator) SmoothedIterator {
	samplesPerStep := it.StepsPerIncrement()
	tc := samplesPerStep
	if tc < 4.0 {
		tc = 4.0
	}
	s := SmoothedIterator{iter: it}
	s.filter.SetValue(it.Peek())
	s.filter.SetConvergence(tc, 0.35)
	return s
}

// Next sets the filter's target to the next raw value from the wrapped
// iterator and returns the filter's next output.
func (s *SmoothedIterator) Next() float32 {
	s.filter.SetTarget(s.iter.Next())
	return s.filter.Next()
}

// Value returns the filter's current output without advancing it.
func (s *SmoothedIterator) Value() float32 {
	return s.filter.Value()
}
