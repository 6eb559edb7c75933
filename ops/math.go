// Package ops implements the concrete node operations: the arithmetic
// and logic primitives, signal generators, filters, and a handful of
// supplemented control operations, each embedding nodegraph.OpBase with
// one struct per operation.
package ops

import "github.com/wiresound/nodegraph"

// Add sums two scalar inputs: out = in0 + in1.
type Add struct {
	nodegraph.OpBase
}

// NewAdd builds an Add node with its two unbounded inputs and single output
// declared.
func NewAdd() *nodegraph.Node {
	op := &Add{}
	n := nodegraph.NewNode(TypeAdd, op)
	n.SetNumInputs(2)
	n.SetNumOutputs(1)
	op.AddInput(0, "a", nodegraph.BoundsUnbounded, 0)
	op.AddInput(1, "b", nodegraph.BoundsUnbounded, 0)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *Add) Process(n *nodegraph.Node, numSamples int32) {
	a := n.Input(0).GetScalar()
	b := n.Input(1).GetScalar()
	n.Output(0).SetScalar(a + b)
}

// Multiply computes out = in0 * in1.
type Multiply struct {
	nodegraph.OpBase
}

func NewMultiply() *nodegraph.Node {
	op := &Multiply{}
	n := nodegraph.NewNode(TypeMultiply, op)
	n.SetNumInputs(2)
	n.SetNumOutputs(1)
	op.AddInput(0, "a", nodegraph.BoundsUnbounded, 0)
	op.AddInput(1, "b", nodegraph.BoundsUnbounded, 1)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *Multiply) Process(n *nodegraph.Node, numSamples int32) {
	a := n.Input(0).GetScalar()
	b := n.Input(1).GetScalar()
	n.Output(0).SetScalar(a * b)
}

// Subtract computes out = in0 - in1.
type Subtract struct {
	nodegraph.OpBase
}

func NewSubtract() *nodegraph.Node {
	op := &Subtract{}
	n := nodegraph.NewNode(TypeSubtract, op)
	n.SetNumInputs(2)
	n.SetNumOutputs(1)
	op.AddInput(0, "a", nodegraph.BoundsUnbounded, 0)
	op.AddInput(1, "b", nodegraph.BoundsUnbounded, 0)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *Subtract) Process(n *nodegraph.Node, numSamples int32) {
	a := n.Input(0).GetScalar()
	b := n.Input(1).GetScalar()
	n.Output(0).SetScalar(a - b)
}

// Negate computes out = -in0.
type Negate struct {
	nodegraph.OpBase
}

func NewNegate() *nodegraph.Node {
	op := &Negate{}
	n := nodegraph.NewNode(TypeNegate, op)
	n.SetNumInputs(1)
	n.SetNumOutputs(1)
	op.AddInput(0, "in", nodegraph.BoundsUnbounded, 0)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *Negate) Process(n *nodegraph.Node, numSamples int32) {
	n.Output(0).SetScalar(-n.Input(0).GetScalar())
}

// Integral accumulates its input: out += in0 each process call. The
// running sum is operation-local state, so Reset zeroes it alongside
// re-applying declared defaults.
type Integral struct {
	nodegraph.OpBase
	sum float32
}

func NewIntegral() *nodegraph.Node {
	op := &Integral{}
	n := nodegraph.NewNode(TypeIntegral, op)
	n.SetNumInputs(1)
	n.SetNumOutputs(1)
	op.AddInput(0, "in", nodegraph.BoundsUnbounded, 0)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *Integral) Reset(n *nodegraph.Node) {
	op.sum = 0
	op.OpBase.Reset(n)
}

func (op *Integral) Process(n *nodegraph.Node, numSamples int32) {
	op.sum += n.Input(0).GetScalar()
	n.Output(0).SetScalar(op.sum)
}

// And computes a boolean AND of two inputs, treating any nonzero value as
// true and producing 1.0/0.0.
type And struct {
	nodegraph.OpBase
}

func NewAnd() *nodegraph.Node {
	op := &And{}
	n := nodegraph.NewNode(TypeAnd, op)
	n.SetNumInputs(2)
	n.SetNumOutputs(1)
	op.AddInput(0, "a", nodegraph.Bounds01, 0)
	op.AddInput(1, "b", nodegraph.Bounds01, 0)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *And) Process(n *nodegraph.Node, numSamples int32) {
	n.Output(0).SetScalar(boolToFloat(truthy(n.Input(0).GetScalar()) && truthy(n.Input(1).GetScalar())))
}

// Or computes a boolean OR of two inputs.
type Or struct {
	nodegraph.OpBase
}

func NewOr() *nodegraph.Node {
	op := &Or{}
	n := nodegraph.NewNode(TypeOr, op)
	n.SetNumInputs(2)
	n.SetNumOutputs(1)
	op.AddInput(0, "a", nodegraph.Bounds01, 0)
	op.AddInput(1, "b", nodegraph.Bounds01, 0)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *Or) Process(n *nodegraph.Node, numSamples int32) {
	n.Output(0).SetScalar(boolToFloat(truthy(n.Input(0).GetScalar()) || truthy(n.Input(1).GetScalar())))
}

// Xor computes a boolean exclusive-OR of two inputs.
type Xor struct {
	nodegraph.OpBase
}

func NewXor() *nodegraph.Node {
	op := &Xor{}
	n := nodegraph.NewNode(TypeXor, op)
	n.SetNumInputs(2)
	n.SetNumOutputs(1)
	op.AddInput(0, "a", nodegraph.Bounds01, 0)
	op.AddInput(1, "b", nodegraph.Bounds01, 0)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *Xor) Process(n *nodegraph.Node, numSamples int32) {
	n.Output(0).SetScalar(boolToFloat(truthy(n.Input(0).GetScalar()) != truthy(n.Input(1).GetScalar())))
}

func truthy(v float32) bool { return v != 0 }

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Constant outputs a fixed scalar. The value lives in a constant-only
// input (channel 0, never patchable) rather than a private op field, so
// it is carried through serialize.Save/Load like any other node's
// constants instead of always resetting to its construction-time default.
type Constant struct {
	nodegraph.OpBase
}

func NewConstant(value float32) *nodegraph.Node {
	op := &Constant{}
	n := nodegraph.NewNode(TypeConstant, op)
	n.SetNumInputs(1)
	n.SetNumOutputs(1)
	op.AddConstant(0, "value", nodegraph.BoundsUnbounded, value)
	op.AddOutput(0, "out")
	op.Reset(n)
	return n
}

func (op *Constant) Process(n *nodegraph.Node, numSamples int32) {
	n.Output(0).SetScalar(n.Input(0).GetScalar())
}

// Time outputs elapsed seconds since the graph started, advanced once per
// Tick rather than once per Process — it is a UI-rate clock source, not an
// audio-rate one.
type Time struct {
	nodegraph.OpBase
	elapsed float32
}

func NewTime() *nodegraph.Node {
	op := &Time{}
	n := nodegraph.NewNode(TypeTime, op)
	n.SetNumInputs(0)
	n.SetNumOutputs(1)
	op.AddOutput(0, "seconds")
	op.Reset(n)
	return n
}

func (op *Time) Reset(n *nodegraph.Node) {
	op.elapsed = 0
	op.OpBase.Reset(n)
}

func (op *Time) Tick(n *nodegraph.Node, tickCount uint64, dt float32) {
	op.elapsed += dt
}

func (op *Time) Process(n *nodegraph.Node, numSamples int32) {
	n.Output(0).SetScalar(op.elapsed)
}

// Copy passes each of its inputs straight through to the matching output
// channel. It is used standalone and as the sentinel node underlying a
// Group's external input/output boundary.
type Copy struct {
	nodegraph.OpBase
}

// NewCopy builds a Copy node with numChannels parallel input/output pairs.
func NewCopy(numChannels int8) *nodegraph.Node {
	op := &Copy{}
	n := nodegraph.NewNode(TypeCopy, op)
	n.SetNumInputs(numChannels)
	n.SetNumOutputs(numChannels)
	for c := int8(0); c < numChannels; c++ {
		op.AddInput(c, "in", nodegraph.BoundsUnbounded, 0)
		op.AddOutput(c, "out")
	}
	op.Reset(n)
	return n
}

func (op *Copy) Process(n *nodegraph.Node, numSamples int32) {
	for c := int8(0); c < n.NumInputs(); c++ {
		in := n.Input(c)
		out := n.Output(c)
		if in.Size() > 1 || numSamples > 1 {
			buf := in.GetBuffer(numSamples)
			dst := out.Get(numSamples)
			copy(dst, buf)
			if len(dst) > int(numSamples) {
				dst = dst[:numSamples]
			}
		} else {
			out.SetScalar(in.GetScalar())
		}
	}
}
