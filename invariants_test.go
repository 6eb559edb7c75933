package nodegraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/wiresound/nodegraph"
)

// countingOp is an instrumented Operation: it counts Process and Tick
// calls so tests can assert the once-per-pass / once-per-tick-count
// invariants a Node must uphold.
type countingOp struct {
	nodegraph.OpBase
	processCount int
	tickCount    int
}

func newCountingNode() *nodegraph.Node {
	op := &countingOp{}
	n := nodegraph.NewNode(1, op)
	n.SetNumInputs(1)
	n.SetNumOutputs(1)
	op.AddInput(0, "in", nodegraph.BoundsUnbounded, 0)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *countingOp) Process(n *nodegraph.Node, numSamples int32) {
	op.processCount++
	n.Output(0).SetScalar(n.Input(0).GetScalar())
}

func (op *countingOp) Tick(n *nodegraph.Node, tickCount uint64, elapsed float32) {
	op.tickCount++
}

// TestDiamondProcessesOnce is invariant 1: a node reachable by two
// downstream paths (a diamond) still runs its Operation exactly once per
// ProcessSubgraph pass.
func TestDiamondProcessesOnce(t *testing.T) {
	shared := newCountingNode()
	shared.SetInputConstant(0, 3.0)

	left := newCountingNode()
	require.True(t, left.SetInputNode(0, shared, 0))
	right := newCountingNode()
	require.True(t, right.SetInputNode(0, shared, 0))

	sink := newCountingNode()
	require.True(t, sink.SetInputNode(0, left, 0))
	sinkB := newCountingNode()
	require.True(t, sinkB.SetInputNode(0, right, 0))

	sink.ProcessSubgraph(1, true)
	sinkB.ProcessSubgraph(1, false)

	assert.Equal(t, 1, shared.Operation().(*countingOp).processCount,
		"shared upstream node must process exactly once even when reached via two downstream paths")
}

// TestTickIdempotent is invariant 3: calling Tick twice with the same
// tickCount visits each node's Operation.Tick exactly once.
func TestTickIdempotent(t *testing.T) {
	n := newCountingNode()
	n.Tick(1, 0.016)
	n.Tick(1, 0.016)
	n.Tick(1, 0.016)
	assert.Equal(t, 1, n.Operation().(*countingOp).tickCount)

	n.Tick(2, 0.016)
	assert.Equal(t, 2, n.Operation().(*countingOp).tickCount)
}

// TestTickIdempotentAtZero is a regression test for tickCount 0: a node
// freshly constructed has never ticked, so Tick(0, ...) must still run
// once and a second Tick(0, ...) must be a no-op, the same as any other
// tickCount value.
func TestTickIdempotentAtZero(t *testing.T) {
	n := newCountingNode()
	n.Tick(0, 0.016)
	n.Tick(0, 0.016)
	assert.Equal(t, 1, n.Operation().(*countingOp).tickCount)

	n.Tick(1, 0.016)
	assert.Equal(t, 2, n.Operation().(*countingOp).tickCount)
}

// TestConstantClampProperty is invariant 2: a Constant input's reads are
// always clamp(v, min, max), however far out of range v was set.
func TestConstantClampProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minV := rapid.Float32Range(-1000, 0).Draw(t, "min")
		maxV := rapid.Float32Range(0, 1000).Draw(t, "max")
		v := rapid.Float32Range(-100000, 100000).Draw(t, "v")

		n := newCountingNode()
		n.Input(0).SetBounds(minV, maxV)
		n.SetInputConstant(0, v)

		got := n.Input(0).GetScalar()
		assert.GreaterOrEqual(t, got, minV)
		assert.LessOrEqual(t, got, maxV)
		if v < minV {
			assert.Equal(t, minV, got)
		} else if v > maxV {
			assert.Equal(t, maxV, got)
		} else {
			assert.InDelta(t, v, got, 1e-6)
		}
	})
}

// TestValueIteratorLODContract is invariant 4: for a buffer produced at
// lod k (k >= 1) and requested size N, the buffer has ceil(N/k) slots and
// iterating N times returns a zero-order-hold walk that never indexes out
// of bounds and never regresses to an earlier slot.
func TestValueIteratorLODContract(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int32Range(1, 256).Draw(t, "n")
		lod := rapid.Float32Range(1, float32(n)).Draw(t, "lod")

		slots := int32((float32(n) + lod - 1) / lod)
		if slots < 1 {
			slots = 1
		}
		data := make([]float32, slots)
		for i := range data {
			data[i] = float32(i)
		}

		it := nodegraph.NewValueIterator(data, lod)
		var lastIdx int
		for i := int32(0); i < n; i++ {
			v := it.Next()
			idx := int(v)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, len(data))
			assert.GreaterOrEqual(t, idx, lastIdx, "zero-order-hold index must be monotone non-decreasing")
			lastIdx = idx
		}
	})
}
