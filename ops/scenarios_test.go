package ops_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiresound/nodegraph"
	"github.com/wiresound/nodegraph/ops"
)

// oneRev uses the literal 3.14 (not math.Pi) for one sine revolution over
// a 30-sample cycle, so the expected constants below hold to a tight
// tolerance against this lower-precision value.
const oneRev = 2.0 * 3.14 / 30.0

func TestBasicAdd(t *testing.T) {
	add := ops.NewAdd()
	add.SetInputConstant(0, 1.8)
	add.SetInputConstant(1, 2.3)
	add.ProcessSubgraph(1, true)
	assert.InDelta(t, 4.1, add.GetOutput(0, 1), 1e-5)
}

func TestSimpleAddNetwork(t *testing.T) {
	a := ops.NewAdd()
	a.SetInputConstant(0, 1.8)
	a.SetInputConstant(1, 2.3)

	b := ops.NewAdd()
	b.SetInputConstant(0, 3.1)
	b.SetInputConstant(1, 3.2)

	sum := ops.NewAdd()
	sum.SetInputNode(0, a, 0)
	sum.SetInputNode(1, b, 0)

	sum.ProcessSubgraph(1, true)
	assert.InDelta(t, 10.4, sum.GetOutput(0, 1), 1e-4)
}

func TestBasicMathematicalOperations(t *testing.T) {
	add := ops.NewAdd()
	add.SetInputConstant(0, 1.8)
	add.SetInputConstant(1, 2.3)

	mul := ops.NewMultiply()
	mul.SetInputNode(0, add, 0)
	mul.SetInputConstant(1, 3.0)

	sub := ops.NewSubtract()
	sub.SetInputNode(0, mul, 0)
	sub.SetInputConstant(1, 19.2)

	neg := ops.NewNegate()
	neg.SetInputNode(0, sub, 0)

	neg.ProcessSubgraph(1, true)
	assert.InDelta(t, 6.9, neg.GetOutput(0, 1), 1e-4)
}

func TestNumericIntegral(t *testing.T) {
	sine := make([]float32, 30)
	for i := range sine {
		sine[i] = float32(math.Sin(float64(2.0 * float32(i) * oneRev)))
	}

	integ := ops.NewIntegral()
	for i := 0; i < 30; i++ {
		integ.SetInputConstant(0, sine[i])
		integ.ProcessSubgraph(1, true)
	}
	assert.InDelta(t, 0.00323272, integ.GetOutput(0, 1), 1e-4)
}

// TestFilterLowpassConverges is a characterization test for the Lowpass
// filter driven over 30 iterations of a synthetic sine with cutoff 0.8,
// resonance 0.9. It does not assert an exact published constant: the
// convergence time constant GraphFilterBase's constructor installs on the
// cutoff/resonance slots isn't present in the retrieval pack (see
// DESIGN.md), so the numeric decimal can't be pinned honestly. What is
// asserted is the contract that must hold regardless: the filter is
// deterministic given identical input, it produces a bounded,
// non-degenerate output, and (this is the regression coverage for the
// channel-wiring fix) retargeting cutoff/resonance actually changes the
// trajectory, which the old (cutoff/resonance wired as plain SetSampled)
// configuration would also show, but for the wrong reason: that wiring
// left NodeUpdate's cutoff/resonance calls dead and instead ran the raw
// audio signal through an unrelated LOD-smoothing filter.
func TestFilterLowpassConverges(t *testing.T) {
	run := func(cutoff, resonance float32) float32 {
		lp := ops.NewLowpass()
		lp.SetInputConstant(2, cutoff)
		lp.SetInputConstant(3, resonance)
		var last float32
		for i := 0; i < 30; i++ {
			v := float32(math.Sin(float64(2.0 * float32(i) * oneRev)))
			lp.SetInputConstant(1, v)
			lp.ProcessSubgraph(1, true)
			last = lp.GetOutput(0, 1)
		}
		return last
	}
	a := run(0.8, 0.9)
	b := run(0.8, 0.9)
	require.Equal(t, a, b, "lowpass must be a pure function of its input sequence")
	assert.Less(t, math.Abs(float64(a)), 10.0, "lowpass output should stay in a plausible audio range")

	c := run(0.2, 0.1)
	assert.NotEqual(t, a, c, "retargeting cutoff/resonance must change the filter's output")
}

// TestSignalGeneratorBatching is a characterization test over a
// Sine2 -> Lowpass topology with update rate 4 across four 8-sample
// blocks. As with TestFilterLowpassConverges, the exact published constant
// depends on a convergence time constant not present in the retrieval
// pack; the assertions here cover determinism and boundedness instead.
func TestSignalGeneratorBatching(t *testing.T) {
	build := func() *nodegraph.Node {
		sine := ops.NewSine2()
		sine.SetInputConstant(1, 4.0)
		sine.SetInputConstant(2, 1400.0)
		sine.SetInputConstant(3, 0.5)

		lp := ops.NewLowpass()
		lp.SetInputNode(1, sine, 0)
		return lp
	}

	runLast := func() float32 {
		lp := build()
		var out float32
		for iter := 0; iter < 4; iter++ {
			lp.ProcessSubgraph(8, true)
			out = lp.GetOutputBuffer(0, 8)[7]
		}
		return out
	}

	a := runLast()
	b := runLast()
	require.Equal(t, a, b)
	assert.Less(t, math.Abs(float64(a)), 10.0)
}

// TestEnvelopeTimingIsConstantOnly exercises the AddConstant shorthand:
// Envelope's attack/release ports must reject a patch-cable connection
// while still accepting (and clamping) a plain constant set.
func TestEnvelopeTimingIsConstantOnly(t *testing.T) {
	env := ops.NewEnvelope()
	src := ops.NewConstant(10)

	assert.True(t, env.Input(1).IsConstantOnly())
	assert.False(t, env.SetInputNode(1, src, 0))
	assert.False(t, env.Input(1).HasUpstream())

	assert.True(t, env.SetInputConstant(1, 20))
	assert.InDelta(t, 20, env.Input(1).GetScalar(), 1e-6)
}

// TestSaw2Bounded is a characterization test for the Saw2 oscillator:
// deterministic given identical input, and its output stays in a
// plausible ramp range.
func TestSaw2Bounded(t *testing.T) {
	run := func() float32 {
		saw := ops.NewSaw2()
		saw.SetInputConstant(2, 220.0)
		saw.SetInputConstant(3, 1.0)
		var last float32
		for i := 0; i < 4; i++ {
			saw.ProcessSubgraph(16, true)
			last = saw.GetOutputBuffer(0, 16)[15]
		}
		return last
	}
	a := run()
	b := run()
	require.Equal(t, a, b)
	assert.LessOrEqual(t, math.Abs(float64(a)), 1.5)
}

func TestLowpassInputBoundsClamped(t *testing.T) {
	lp := ops.NewLowpass()
	ok := lp.SetInputConstant(2, 5.0)
	require.True(t, ok)
	assert.LessOrEqual(t, lp.Input(2).GetScalar(), float32(1.0))
}
