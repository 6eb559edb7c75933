package nodegraph

import "github.com/wiresound/nodegraph/internal/smooth"

// SlotMode selects how an InputManager slot turns per-block input data
// into a per-sample value stream.
type SlotMode int8

const (
	// SlotSampled reads straight from the node's input buffer each block,
	// zero-order-held across LOD boundaries via a ValueIterator.
	SlotSampled SlotMode = iota
	// SlotSampledRwa is SlotSampled wrapped in the auto-tuned RWA filter
	// (SmoothedIterator), so a coarse producer LOD ramps rather than
	// steps.
	SlotSampledRwa
	// SlotConstantArray ignores the node's input entirely and iterates a
	// fixed array installed once via SetConstantArray.
	SlotConstantArray
	// SlotCustomInterpTween ramps toward a target set by SetTarget/
	// NodeUpdate over a duration set in samples.
	SlotCustomInterpTween
	// SlotCustomInterpTweenMs is SlotCustomInterpTween with the duration
	// expressed in milliseconds.
	SlotCustomInterpTweenMs
	// SlotCustomInterpRwa converges toward a target with an explicit RWA
	// time constant expressed in samples, independent of any input LOD.
	SlotCustomInterpRwa
	// SlotCustomInterpRwaMs is SlotCustomInterpRwa with the time constant
	// expressed in milliseconds.
	SlotCustomInterpRwaMs
)

type inputSlot struct {
	mode    SlotMode
	chanIdx int8

	valueIter  ValueIterator
	smoothIter SmoothedIterator

	tween  smooth.Tween
	filter smooth.Filter

	array     []float32
	arrayIter ValueIterator

	convergence float32
	damping     float32
}

// InputManager manages a set of per-sample interpolation slots on behalf
// of an Operation, keyed by an arbitrary slot index. Slot indices need not
// correspond 1:1 to declared input channels: an index at or beyond the
// node's declared input count is a "virtual slot" driven entirely by
// SetTarget/NodeUpdate rather than by any InputPort (used e.g. by an
// envelope operation's internal attack/release ramps).
type InputManager struct {
	slots map[int8]*inputSlot
}

// NewInputManager returns an empty InputManager ready to have slots
// configured on it.
func NewInputManager() *InputManager {
	return &InputManager{slots: make(map[int8]*inputSlot)}
}

func (m *InputManager) slot(idx int8) *inputSlot {
	s, ok := m.slots[idx]
	if !ok {
		s = &inputSlot{damping: 0.35}
		m.slots[idx] = s
	}
	return s
}

// SetSampled configures slot idx to read channel chanIdx's input buffer
// directly, with zero-order-hold LOD mapping.
func (m *InputManager) SetSampled(idx, chanIdx int8) {
	s := m.slot(idx)
	s.mode = SlotSampled
	s.chanIdx = chanIdx
}

// SetSampledRwa is SetSampled plus the auto-tuned smoothing filter.
func (m *InputManager) SetSampledRwa(idx, chanIdx int8) {
	s := m.slot(idx)
	s.mode = SlotSampledRwa
	s.chanIdx = chanIdx
}

// SetConstantArray configures slot idx to iterate a fixed array instead of
// any node input.
func (m *InputManager) SetConstantArray(idx int8, vals []float32) {
	s := m.slot(idx)
	s.mode = SlotConstantArray
	s.array = vals
}

// SetCustomInterpTween configures slot idx as a duration-ramped tween,
// duration expressed in samples.
func (m *InputManager) SetCustomInterpTween(idx int8, durationSteps float32) {
	s := m.slot(idx)
	s.mode = SlotCustomInterpTween
	s.tween.SetDuration(durationSteps)
}

// SetCustomInterpTweenMs is SetCustomInterpTween with duration in
// milliseconds.
func (m *InputManager) SetCustomInterpTweenMs(idx int8, durationMs float32) {
	durationSteps := durationMs * 0.001 * smooth.SampleRate
	m.SetCustomInterpTween(idx, durationSteps)
}

// SetCustomInterpRwa configures slot idx as an RWA filter with an explicit
// time constant in samples, independent of any upstream LOD.
func (m *InputManager) SetCustomInterpRwa(idx int8, convergenceSteps, damping float32) {
	s := m.slot(idx)
	s.mode = SlotCustomInterpRwa
	s.convergence = convergenceSteps
	s.damping = damping
	s.filter.SetConvergence(convergenceSteps, damping)
}

// SetCustomInterpRwaMs is SetCustomInterpRwa with the time constant in
// milliseconds.
func (m *InputManager) SetCustomInterpRwaMs(idx int8, convergenceMs, damping float32) {
	s := m.slot(idx)
	s.mode = SlotCustomInterpRwaMs
	s.convergence = convergenceMs
	s.damping = damping
	s.filter.SetConvergenceInMs(convergenceMs, damping)
}

// BatchUpdate is called once per Process block. For Sampled/SampledRwa
// slots it re-pulls the node's current input buffer for numSamples and
// rebuilds the per-sample iterator; ConstantArray slots restart their
// iterator at the array's first element; tween/RWA slots carry their state
// across blocks untouched.
func (m *InputManager) BatchUpdate(n *Node, numSamples int32) {
	for _, s := range m.slots {
		switch s.mode {
		case SlotSampled, SlotSampledRwa:
			in := n.Input(s.chanIdx)
			if in == nil {
				continue
			}
			buf := in.GetBuffer(numSamples)
			lod := float32(1)
			if len(buf) > 0 {
				lod = float32(numSamples) / float32(len(buf))
				if lod < 1 {
					lod = 1
				}
			}
			s.valueIter = NewValueIterator(buf, lod)
			if s.mode == SlotSampledRwa {
				s.smoothIter = NewSmoothedIterator(s.valueIter)
			}
		case SlotConstantArray:
			s.arrayIter = NewValueIterator(s.array, 1)
		}
	}
}

// NodeUpdate retargets slot idx at a slow-update boundary (driven by
// RunBatches' onSlowUpdate callback). For tween/RWA slots this begins a
// new ramp toward v; for sampled slots it has no effect, since those
// track their input directly.
func (m *InputManager) NodeUpdate(idx int8, v float32) {
	m.SetTarget(idx, v)
}

// SetTarget sets a new target value for a tween or RWA slot.
func (m *InputManager) SetTarget(idx int8, v float32) {
	s := m.slot(idx)
	switch s.mode {
	case SlotCustomInterpTween, SlotCustomInterpTweenMs:
		s.tween.SetTarget(v)
	case SlotCustomInterpRwa, SlotCustomInterpRwaMs:
		s.filter.SetTarget(v)
	}
}

// SetDuration updates the ramp duration (in samples) of a tween slot.
func (m *InputManager) SetDuration(idx int8, steps float32) {
	m.slot(idx).tween.SetDuration(steps)
}

// GetValueNext advances slot idx by one sample and returns its new value.
func (m *InputManager) GetValueNext(idx int8) float32 {
	s := m.slot(idx)
	switch s.mode {
	case SlotSampled:
		return s.valueIter.Next()
	case SlotSampledRwa:
		return s.smoothIter.Next()
	case SlotConstantArray:
		return s.arrayIter.Next()
	case SlotCustomInterpTween, SlotCustomInterpTweenMs:
		return s.tween.Next()
	case SlotCustomInterpRwa, SlotCustomInterpRwaMs:
		return s.filter.Next()
	default:
		return 0
	}
}

// GetValue returns slot idx's current value without advancing it.
func (m *InputManager) GetValue(idx int8) float32 {
	s := m.slot(idx)
	switch s.mode {
	case SlotSampled:
		return s.valueIter.Peek()
	case SlotSampledRwa:
		return s.smoothIter.Value()
	case SlotConstantArray:
		return s.arrayIter.Peek()
	case SlotCustomInterpTween, SlotCustomInterpTweenMs:
		return s.tween.Value()
	case SlotCustomInterpRwa, SlotCustomInterpRwaMs:
		return s.filter.Value()
	default:
		return 0
	}
}

// GetArray returns the backing array installed by SetConstantArray.
func (m *InputManager) GetArray(idx int8) []float32 {
	return m.slot(idx).array
}
